package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// labelPadding is the gap between a tile edge and its hex label.
const labelPadding = 4

// SwatchOptions controls the layout of a rendered palette swatch.
type SwatchOptions struct {
	TileSize int  // Edge length of each square tile in pixels
	Columns  int  // Maximum number of tiles per row
	Labels   bool // Draw the hex value inside each tile
}

// DefaultSwatchOptions returns the layout used by the command line tool.
func DefaultSwatchOptions() SwatchOptions {
	return SwatchOptions{TileSize: 96, Columns: 6, Labels: true}
}

// ErrEmptySwatch is returned when asked to render a palette with no colors.
var ErrEmptySwatch = errors.New("no colors to render")

// RenderSwatch paints one square tile per color, left to right and top to
// bottom in the order given.
//
// Tiles that are too small to hold a label are left unlabelled. Unused cells
// in the last row are white.
func RenderSwatch(colors []RGBColor, opts SwatchOptions) (*image.NRGBA, error) {
	if len(colors) == 0 {
		return nil, ErrEmptySwatch
	}
	if opts.TileSize <= 0 || opts.Columns <= 0 {
		return nil, fmt.Errorf("invalid swatch layout: tile size %d, columns %d", opts.TileSize, opts.Columns)
	}

	cols := min(opts.Columns, len(colors))
	rows := (len(colors) + cols - 1) / cols
	size := opts.TileSize

	canvas := imaging.New(cols*size, rows*size, color.White)
	for i, c := range colors {
		tile := imaging.New(size, size, c)
		if opts.Labels {
			drawHexLabel(tile, c)
		}
		canvas = imaging.Paste(canvas, tile, image.Pt((i%cols)*size, (i/cols)*size))
	}
	return canvas, nil
}

// drawHexLabel writes the color's hex value near the bottom-left corner of
// the tile, in black or white depending on the tile's lightness.
func drawHexLabel(tile *image.NRGBA, c RGBColor) {
	face := basicfont.Face7x13
	text := c.Hex()
	size := tile.Bounds().Size()

	d := &font.Drawer{Dst: tile, Face: face}
	if d.MeasureString(text).Ceil()+2*labelPadding > size.X || face.Height+2*labelPadding > size.Y {
		return
	}

	fg := color.White
	if c.IsLight() {
		fg = color.Black
	}
	d.Src = image.NewUniform(fg)
	d.Dot = fixed.P(labelPadding, size.Y-labelPadding-face.Descent)
	d.DrawString(text)
}

// SaveSwatch encodes img as PNG and writes it to path, replacing any existing
// file.
func SaveSwatch(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to save swatch: %w", err)
	}
	return nil
}
