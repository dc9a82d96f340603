// Package imaging loads raster images for the canvas and samples their
// pixels.
//
// Files in the portable pixel-map format are decoded by package pixmap.
// Every other format is delegated to a general-purpose codec and converted to
// the same packed RGB raster, so the rest of the program deals with one image
// type.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Sampling functions are stateless.
//
// # Color Representation
//
// Sampled colors are returned as:
//   - Hex: "#RRGGBB"
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
package imaging
