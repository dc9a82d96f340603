package viewport

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// OverlayMinZoom is the zoom level from which pixel values are shown.
	OverlayMinZoom = 20.0

	// OverlayMaxPixels suppresses the overlay when more image pixels than
	// this are visible.
	OverlayMaxPixels = 500
)

// Label is one pixel-value annotation, centered on its pixel.
type Label struct {
	PixelX   int     `json:"pixel_x"`
	PixelY   int     `json:"pixel_y"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	R        uint8   `json:"r"`
	G        uint8   `json:"g"`
	B        uint8   `json:"b"`
	Text     string  `json:"text"`
	FontSize int     `json:"font_size"`
	Color    string  `json:"color"`
}

// Overlay computes the pixel-value labels for the visible part of the image.
//
// It returns nil unless an image with a known origin is loaded and the zoom
// is at least OverlayMinZoom, and also when more than OverlayMaxPixels image
// pixels are visible.
func (v *Viewport) Overlay() []Label {
	img := v.original
	if img == nil || v.origin == nil || v.zoom < OverlayMinZoom {
		return nil
	}

	r := v.surf.ViewRect()
	z, ox, oy := v.zoom, v.origin.X, v.origin.Y

	x0 := clampInt(int(math.Floor((r.MinX-ox)/z)), 0, img.Width)
	x1 := clampInt(int(math.Ceil((r.MaxX-ox)/z)), 0, img.Width)
	y0 := clampInt(int(math.Floor((r.MinY-oy)/z)), 0, img.Height)
	y1 := clampInt(int(math.Ceil((r.MaxY-oy)/z)), 0, img.Height)

	count := (x1 - x0) * (y1 - y0)
	if count <= 0 || count > OverlayMaxPixels {
		return nil
	}

	size := int(math.Max(1, math.Min(6, z/4)))
	labels := make([]Label, 0, count)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			cr, cg, cb := img.RGB(px, py)
			labels = append(labels, Label{
				PixelX:   px,
				PixelY:   py,
				X:        (float64(px)+0.5)*z + ox,
				Y:        (float64(py)+0.5)*z + oy,
				R:        cr,
				G:        cg,
				B:        cb,
				Text:     fmt.Sprintf("%d\n%d\n%d", cr, cg, cb),
				FontSize: size,
				Color:    contrast(cr, cg, cb),
			})
		}
	}
	return labels
}

// contrast picks a label color readable on top of the given pixel.
func contrast(r, g, b uint8) string {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	l, _, _ := c.Lab()
	if l > 0.5 {
		return "black"
	}
	return "white"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
