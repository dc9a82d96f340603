package imaging

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
	"github.com/ironsheep/draw-tools-mcp/internal/raster"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a pixel value in several representations.
type ColorResult struct {
	X   int      `json:"x"`
	Y   int      `json:"y"`
	Hex string   `json:"hex"` // "#RRGGBB"
	RGB RGBColor `json:"rgb"`
	HSL HSLColor `json:"hsl"`
}

// SampleColor reads the pixel at (x, y) of img.
//
// Coordinates are 0-based from the top-left corner. A position outside the
// image fails with errkind.ErrInvalidArgument.
func SampleColor(img *raster.Image, x, y int) (*ColorResult, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image loaded", errkind.ErrInvalidArgument)
	}
	if !img.InBounds(x, y) {
		return nil, fmt.Errorf("%w: coordinates (%d,%d) outside image bounds %dx%d",
			errkind.ErrInvalidArgument, x, y, img.Width, img.Height)
	}

	r, g, b := img.RGB(x, y)
	return &ColorResult{
		X:   x,
		Y:   y,
		Hex: fmt.Sprintf("#%02X%02X%02X", r, g, b),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: toHSL(r, g, b),
	}, nil
}

// SampleAt samples the pixel under a fractional image-space position, as
// produced by mapping a canvas point into the image.
func SampleAt(img *raster.Image, px, py float64) (*ColorResult, error) {
	return SampleColor(img, int(math.Floor(px)), int(math.Floor(py)))
}

func toHSL(r, g, b uint8) HSLColor {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	return HSLColor{
		H: int(math.Round(h)) % 360,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}
