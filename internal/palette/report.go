package palette

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ironsheep/palette-extract/internal/imaging"
)

// ColorReport describes one palette color in a Report.
type ColorReport struct {
	Hex        string           `json:"hex"`        // Hex color "#rrggbb"
	Count      int              `json:"count"`      // Number of pixels with this color
	Percentage float64          `json:"percentage"` // Share of all pixels (0-100)
	RGB        imaging.RGBColor `json:"rgb"`
	HSL        imaging.HSLColor `json:"hsl"`
}

// Report is the JSON form of a Result.
type Report struct {
	Path           string        `json:"path,omitempty"`
	Region         string        `json:"region,omitempty"`
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	TotalPixels    int           `json:"total_pixels"`
	DistinctColors int           `json:"distinct_colors"`
	MinCount       int           `json:"min_count"`
	Colors         []ColorReport `json:"colors"`
}

// NewReport builds a Report from an extraction result. Colors keep the
// palette order.
func NewReport(path string, r *Result) *Report {
	colors := make([]ColorReport, 0, len(r.Palette))
	for _, e := range r.Palette {
		var pct float64
		if r.TotalPixels > 0 {
			pct = float64(e.Count) / float64(r.TotalPixels) * 100
		}
		colors = append(colors, ColorReport{
			Hex:        e.Hex(),
			Count:      e.Count,
			Percentage: pct,
			RGB:        e.Color,
			HSL:        e.Color.HSL(),
		})
	}

	return &Report{
		Path:           path,
		Region:         r.Region,
		Width:          r.Width,
		Height:         r.Height,
		TotalPixels:    r.TotalPixels,
		DistinctColors: r.DistinctColors,
		MinCount:       r.MinCount,
		Colors:         colors,
	}
}

// WriteText writes the banner and one "#rrggbb (count: n)" line per color,
// the same text an Extractor streams to its output.
func WriteText(w io.Writer, p Palette) error {
	if _, err := fmt.Fprintln(w, Banner); err != nil {
		return fmt.Errorf("failed to write palette: %w", err)
	}
	for _, e := range p {
		if _, err := fmt.Fprintf(w, "%s (count: %d)\n", e.Hex(), e.Count); err != nil {
			return fmt.Errorf("failed to write palette: %w", err)
		}
	}
	return nil
}

// WriteJSON writes the report to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
