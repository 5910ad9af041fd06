package imaging

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// RegionNames lists the named regions accepted by ParseRegion.
var RegionNames = []string{
	"top-left", "top-right", "bottom-left", "bottom-right",
	"top-half", "bottom-half", "left-half", "right-half", "center",
}

// ParseRegion resolves a region specification against the given image
// bounds.
//
// The specification is either one of RegionNames or four comma-separated
// integers "x1,y1,x2,y2", where (x1,y1) is inclusive and (x2,y2) exclusive.
// Coordinates are relative to the top-left corner of bounds.
func ParseRegion(spec string, bounds image.Rectangle) (image.Rectangle, error) {
	w := bounds.Dx()
	h := bounds.Dy()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch spec {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		// Center 50% of the image
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		parts := strings.Split(spec, ",")
		if len(parts) != 4 {
			return image.Rectangle{}, fmt.Errorf("unknown region %q (want x1,y1,x2,y2 or one of %s)",
				spec, strings.Join(RegionNames, ", "))
		}
		coords := make([]int, 4)
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return image.Rectangle{}, fmt.Errorf("invalid region coordinate %q: %w", p, err)
			}
			coords[i] = n
		}
		x1, y1, x2, y2 = coords[0], coords[1], coords[2], coords[3]
	}

	if x1 < 0 || y1 < 0 || x2 > w || y2 > h {
		return image.Rectangle{}, fmt.Errorf("region (%d,%d)-(%d,%d) outside image bounds (0,0)-(%d,%d)",
			x1, y1, x2, y2, w, h)
	}
	if x1 >= x2 || y1 >= y2 {
		return image.Rectangle{}, fmt.Errorf("invalid region: x1 must be < x2, y1 must be < y2")
	}

	return image.Rect(x1, y1, x2, y2).Add(bounds.Min), nil
}

// CropRegion returns the part of img selected by spec (see ParseRegion) as
// a new image with its origin at (0,0).
func CropRegion(img *image.NRGBA, spec string) (*image.NRGBA, error) {
	rect, err := ParseRegion(spec, img.Bounds())
	if err != nil {
		return nil, err
	}
	return imaging.Crop(img, rect), nil
}
