// Package imaging provides the image-side operations of the palette extractor.
//
// This package decodes image files into 8-bit pixel buffers, formats colors
// for display, and renders palettes back into swatch images. All operations
// work with standard Go image.Image types and use a coordinate system where
// (0,0) is at the top-left corner.
//
// # Supported Formats
//
// Decoding supports PNG, JPEG, GIF, BMP, TIFF and WebP. EXIF orientation is
// applied to JPEG files unless disabled.
//
// # Color Representation
//
// Colors are 8-bit RGB triples. Alpha is discarded after conversion to a
// non-premultiplied buffer, so a half-transparent red pixel counts as red.
//   - Hex: lowercase 7-character format "#rrggbb"
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Error Handling
//
// Every failure while opening or decoding a file is reported as a
// *DecodeError, which wraps the underlying cause. Use errors.Is to test for
// conditions such as fs.ErrNotExist.
package imaging
