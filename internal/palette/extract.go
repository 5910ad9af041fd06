package palette

import (
	"fmt"
	"image"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/palette-extract/internal/imaging"
)

const (
	// DefaultMinCount is the occurrence threshold. A color is kept only if
	// more pixels than this have it.
	DefaultMinCount = 100

	// DefaultMaxColors caps the number of distinct colors counted.
	DefaultMaxColors = 1000000

	// Banner is written before the first accepted color.
	Banner = "Extracted Colors:"
)

// Options configures an Extractor.
type Options struct {
	MinCount   int  // Keep colors with a count strictly greater than this
	MaxColors  int  // Fail when an image has more distinct colors than this
	AutoOrient bool // Apply EXIF orientation when decoding

	// Region limits counting to part of the image. It is a named region or
	// "x1,y1,x2,y2", see imaging.ParseRegion. Empty means the whole image.
	Region string
}

// DefaultOptions returns the thresholds used when none are configured.
func DefaultOptions() Options {
	return Options{
		MinCount:   DefaultMinCount,
		MaxColors:  DefaultMaxColors,
		AutoOrient: true,
	}
}

// Validate reports the first invalid field, if any.
func (o Options) Validate() error {
	if o.MinCount < 0 {
		return fmt.Errorf("min count must not be negative, got %d", o.MinCount)
	}
	if o.MaxColors < 1 {
		return fmt.Errorf("max colors must be at least 1, got %d", o.MaxColors)
	}
	return nil
}

// Palette is an ordered list of unique colors, most frequent first.
type Palette []Entry

// Hexes returns the palette's colors as "#rrggbb" strings, in order.
func (p Palette) Hexes() []string {
	out := make([]string, len(p))
	for i, e := range p {
		out[i] = e.Hex()
	}
	return out
}

// Colors returns the palette's colors, in order.
func (p Palette) Colors() []imaging.RGBColor {
	out := make([]imaging.RGBColor, len(p))
	for i, e := range p {
		out[i] = e.Color
	}
	return out
}

// Result is the outcome of one extraction.
type Result struct {
	Palette        Palette
	Width          int
	Height         int
	TotalPixels    int
	DistinctColors int
	MinCount       int
	Region         string // Region that was analyzed, empty for the whole image
}

// Extractor turns images into palettes.
type Extractor struct {
	opts Options
	out  io.Writer
	log  logrus.FieldLogger
}

// New creates an Extractor.
//
// If out is non-nil, the banner and each accepted color are written to it as
// extraction proceeds. If log is nil, logging is discarded.
func New(opts Options, out io.Writer, log logrus.FieldLogger) (*Extractor, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Extractor{opts: opts, out: out, log: log}, nil
}

// Extract decodes the image at path and returns its palette.
//
// A decode failure is returned as a *imaging.DecodeError. On any error no
// palette is returned. Decode and histogram failures happen before the
// banner is written.
func (e *Extractor) Extract(path string) (*Result, error) {
	img, err := imaging.Decode(path, imaging.DecodeOptions{AutoOrient: e.opts.AutoOrient})
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"path":   path,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("decoded image")

	return e.extract(img)
}

// ExtractImage returns the palette of an already decoded image.
func (e *Extractor) ExtractImage(img image.Image) (*Result, error) {
	return e.extract(imaging.ToNRGBA(img))
}

func (e *Extractor) extract(img *image.NRGBA) (*Result, error) {
	if e.opts.Region != "" {
		cropped, err := imaging.CropRegion(img, e.opts.Region)
		if err != nil {
			return nil, err
		}
		e.log.WithFields(logrus.Fields{
			"region": e.opts.Region,
			"width":  cropped.Bounds().Dx(),
			"height": cropped.Bounds().Dy(),
		}).Debug("cropped to region")
		img = cropped
	}

	hist, err := BuildHistogram(img, e.opts.MaxColors)
	if err != nil {
		return nil, err
	}
	hist.SortByCount()

	e.log.WithFields(logrus.Fields{
		"pixels":   hist.Total,
		"distinct": len(hist.Entries),
	}).Debug("built color histogram")

	if err := e.printf("%s\n", Banner); err != nil {
		return nil, err
	}

	var pal Palette
	seen := make(map[string]struct{})
	for _, entry := range hist.Entries {
		hex := entry.Hex()
		if _, dup := seen[hex]; dup {
			continue
		}
		if entry.Count <= e.opts.MinCount {
			continue
		}
		pal = append(pal, entry)
		seen[hex] = struct{}{}
		if err := e.printf("%s (count: %d)\n", hex, entry.Count); err != nil {
			return nil, err
		}
	}

	e.log.WithField("accepted", len(pal)).Debug("filtered palette")

	bounds := img.Bounds()
	return &Result{
		Palette:        pal,
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		TotalPixels:    hist.Total,
		DistinctColors: len(hist.Entries),
		MinCount:       e.opts.MinCount,
		Region:         e.opts.Region,
	}, nil
}

func (e *Extractor) printf(format string, args ...interface{}) error {
	if e.out == nil {
		return nil
	}
	if _, err := fmt.Fprintf(e.out, format, args...); err != nil {
		return fmt.Errorf("failed to write palette: %w", err)
	}
	return nil
}
