package palette

import (
	"errors"
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/palette-extract/internal/imaging"
)

// ErrTooManyColors is returned when an image holds more distinct colors than
// the histogram cap allows.
var ErrTooManyColors = errors.New("too many distinct colors")

// Entry is one histogram bucket: a color and the number of pixels with it.
type Entry struct {
	Color imaging.RGBColor `json:"rgb"`
	Count int              `json:"count"`
}

// Hex returns the entry's color as "#rrggbb".
func (e Entry) Hex() string { return e.Color.Hex() }

// Histogram holds the pixel count of every distinct color in an image.
//
// Entries are unique by color and appear in first-seen order until sorted.
type Histogram struct {
	Entries []Entry
	Total   int // Number of pixels scanned
}

// BuildHistogram counts the colors of img, ignoring alpha.
//
// Pixels are scanned row by row from the top-left corner. If more than
// maxColors distinct colors are found, BuildHistogram stops and returns an
// error wrapping ErrTooManyColors.
func BuildHistogram(img *image.NRGBA, maxColors int) (*Histogram, error) {
	if maxColors < 1 {
		return nil, fmt.Errorf("invalid color cap %d", maxColors)
	}

	bounds := img.Bounds()
	index := make(map[uint32]int)
	h := &Histogram{}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, y):]
		for x := 0; x < bounds.Dx(); x++ {
			c := imaging.RGBColor{R: row[x*4], G: row[x*4+1], B: row[x*4+2]}
			key := c.Key()
			i, ok := index[key]
			if !ok {
				if len(h.Entries) == maxColors {
					return nil, fmt.Errorf("%w: more than %d", ErrTooManyColors, maxColors)
				}
				i = len(h.Entries)
				index[key] = i
				h.Entries = append(h.Entries, Entry{Color: c})
			}
			h.Entries[i].Count++
			h.Total++
		}
	}

	return h, nil
}

// SortByCount orders the entries by count, most frequent first. Entries
// with equal counts keep their relative order.
func (h *Histogram) SortByCount() {
	sort.SliceStable(h.Entries, func(i, j int) bool {
		return h.Entries[i].Count > h.Entries[j].Count
	})
}
