// Package palette extracts an ordered color palette from an image.
//
// Extraction runs in four steps:
//
//  1. Decode the file into 8-bit pixels (see the imaging package).
//  2. Count every distinct RGB color, up to a fixed cap.
//  3. Sort the counts in descending order. Ties keep the order in which the
//     colors were first seen while scanning rows top to bottom.
//  4. Keep the colors whose count is strictly greater than the threshold.
//
// The result is a Palette: unique colors, most frequent first. An Extractor
// configured with an output writer also prints the palette as it is built,
// one "#rrggbb (count: n)" line per accepted color after an
// "Extracted Colors:" banner.
//
// Nothing is retained between calls. An Extractor may be reused but is not
// safe for concurrent use when it writes to a shared output.
package palette
