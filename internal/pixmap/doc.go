// Package pixmap decodes and encodes the portable pixel-map format.
//
// Both payload variants are supported:
//   - P3: ASCII samples, one whitespace-delimited decimal token per channel
//   - P6: binary samples, one byte per channel when maxValue < 256, two
//     big-endian bytes per channel otherwise
//
// # Header
//
// The header is the magic token followed by width, height and maxValue. Tokens
// are separated by whitespace; a '#' at the start of a token opens a comment
// that runs to the end of the line. For P6 the single whitespace byte that
// terminates maxValue is the last header byte; the payload starts right after.
//
// # Output
//
// Every sample is rescaled to 8 bits as floor(s*255/maxValue) and the result
// is a *raster.Image. P6 with maxValue 255 copies the payload verbatim.
// Samples above maxValue clamp to 255.
//
// # Errors
//
// All failures wrap an errkind sentinel and carry the offending token or the
// expected and actual byte counts. No partial image is ever returned.
//
// Importing this package registers the "ppm" format with the standard image
// package, so image.Decode and image.DecodeConfig accept P3 and P6 input.
package pixmap
