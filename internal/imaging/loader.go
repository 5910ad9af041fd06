package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DecodeError reports a failure to turn an image file into pixels.
//
// It covers a missing or unreadable file as well as unsupported or corrupt
// image data. The original cause is available through Unwrap.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeOptions controls how an image file is decoded.
type DecodeOptions struct {
	// AutoOrient rotates and flips the image according to its EXIF
	// orientation tag before pixels are read.
	AutoOrient bool
}

// Decode opens the image at path and converts it to a non-premultiplied
// 8-bit RGBA buffer.
//
// Parameters:
//   - path: Absolute or relative file path to the image.
//   - opts: Decoding options.
//
// Returns:
//   - *image.NRGBA: The decoded pixels. Callers that want RGB simply ignore
//     the alpha channel.
//   - error: A *DecodeError if the file cannot be opened or decoded.
//
// The file is closed before Decode returns, on success and on error.
func Decode(path string, opts DecodeOptions) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(opts.AutoOrient))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return imaging.Clone(img), nil
}

// ToNRGBA converts an already decoded image to the same buffer layout that
// Decode returns. An *image.NRGBA is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}
