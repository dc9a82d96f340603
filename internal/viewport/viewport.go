// Package viewport keeps a raster image and the vector shapes drawn over it
// consistently scaled and positioned under cursor-anchored zoom and pan.
//
// Three coordinate spaces are involved:
//
//	screen  device pixels relative to the visible region
//	canvas  logical document units; screen + surface scroll offset
//	image   pixels of the original, unscaled raster
//
// The mapping between canvas and image space is
// image = (canvas - origin) / zoom.
package viewport

import (
	"log"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/draw-tools-mcp/internal/raster"
	"github.com/ironsheep/draw-tools-mcp/internal/surface"
)

const (
	MinZoom = 0.05
	MaxZoom = 100.0

	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9

	// DefaultMaxScaledPixels caps the size of a resampled raster. Above it the
	// zoom proceeds but the displayed raster is left as it was.
	DefaultMaxScaledPixels = 50_000_000
)

// VectorLayer is the model side of the vector-tagged surface primitives.
// Zoom scales it with the same factor and pivot as the surface so hit
// testing keeps matching what is drawn.
type VectorLayer interface {
	ScaleAbout(px, py, factor float64)
}

// Point is a position in canvas units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Options tunes a Viewport. The zero value uses the defaults.
type Options struct {
	MaxScaledPixels int
}

// Viewport owns the zoom/pan state.
type Viewport struct {
	surf    surface.Surface
	vectors VectorLayer

	zoom      float64
	original  *raster.Image
	displayed *raster.Image
	origin    *Point

	maxScaled int
	labels    []Label
}

// New creates a viewport at zoom 1 with no image. vectors may be nil.
func New(surf surface.Surface, vectors VectorLayer, opts Options) *Viewport {
	limit := opts.MaxScaledPixels
	if limit <= 0 {
		limit = DefaultMaxScaledPixels
	}
	return &Viewport{
		surf:      surf,
		vectors:   vectors,
		zoom:      1,
		maxScaled: limit,
	}
}

// Zoom returns the current zoom level, 1 meaning 100%.
func (v *Viewport) Zoom() float64 { return v.zoom }

// Origin returns the canvas position of the image's top-left corner.
func (v *Viewport) Origin() (Point, bool) {
	if v.origin == nil {
		return Point{}, false
	}
	return *v.origin, true
}

// Original returns the decoded image, or nil.
func (v *Viewport) Original() *raster.Image { return v.original }

// Displayed returns the resampled image currently shown, or nil.
func (v *Viewport) Displayed() *raster.Image { return v.displayed }

// Labels returns the overlay computed by the last zoom, pan or image load.
func (v *Viewport) Labels() []Label { return v.labels }

// LoadImage installs img with its top-left corner at origin. The original is
// kept as the resampling source; the displayed copy is produced at the
// current zoom.
func (v *Viewport) LoadImage(img *raster.Image, origin Point) {
	v.original = img
	v.origin = &origin
	v.displayed = nil
	if !v.resample(v.zoom) {
		v.displayed = img.Clone()
	}
	v.refresh()
}

// ClearImage drops the raster and its origin.
func (v *Viewport) ClearImage() {
	v.original = nil
	v.displayed = nil
	v.origin = nil
	v.labels = nil
}

// ScreenToCanvas converts a screen position using the surface scroll offset.
func (v *Viewport) ScreenToCanvas(sx, sy float64) (float64, float64) {
	r := v.surf.ViewRect()
	return sx + r.MinX, sy + r.MinY
}

// CanvasToImage maps a canvas position into original image pixel space.
// It reports false when no image is loaded.
func (v *Viewport) CanvasToImage(x, y float64) (float64, float64, bool) {
	if v.origin == nil {
		return 0, 0, false
	}
	return (x - v.origin.X) / v.zoom, (y - v.origin.Y) / v.zoom, true
}

// ImageToCanvas is the inverse of CanvasToImage.
func (v *Viewport) ImageToCanvas(px, py float64) (float64, float64, bool) {
	if v.origin == nil {
		return 0, 0, false
	}
	return px*v.zoom + v.origin.X, py*v.zoom + v.origin.Y, true
}

// ZoomAt zooms in (dir > 0) or out (dir < 0) keeping the canvas point
// (cx, cy) fixed. It returns false, changing nothing, when dir is zero or
// the new level would leave [MinZoom, MaxZoom].
func (v *Viewport) ZoomAt(cx, cy float64, dir int) bool {
	var factor float64
	switch {
	case dir > 0:
		factor = ZoomInFactor
	case dir < 0:
		factor = ZoomOutFactor
	default:
		return false
	}

	next := v.zoom * factor
	if next < MinZoom || next > MaxZoom {
		return false
	}
	v.apply(cx, cy, factor, next)
	return true
}

// Reset returns to zoom 1, scaling about the canvas origin.
func (v *Viewport) Reset() {
	if v.zoom == 1 {
		return
	}
	v.apply(0, 0, 1/v.zoom, 1)
}

func (v *Viewport) apply(cx, cy, factor, next float64) {
	if v.original != nil && v.origin != nil {
		v.origin.X = (v.origin.X-cx)*factor + cx
		v.origin.Y = (v.origin.Y-cy)*factor + cy
		v.resample(next)
	}

	v.surf.Scale(surface.TagVector, cx, cy, factor)
	if v.vectors != nil {
		v.vectors.ScaleAbout(cx, cy, factor)
	}

	v.zoom = next
	v.refresh()
}

// resample rebuilds the displayed raster from the original at zoom z and
// reports whether it did. A target with a non-positive side or more than
// maxScaled pixels is skipped.
func (v *Viewport) resample(z float64) bool {
	w := int(math.Round(float64(v.original.Width) * z))
	h := int(math.Round(float64(v.original.Height) * z))
	if w <= 0 || h <= 0 {
		return false
	}
	if w*h > v.maxScaled {
		log.Printf("viewport: skipping resample to %dx%d (limit %d pixels)", w, h, v.maxScaled)
		return false
	}
	if w == v.original.Width && h == v.original.Height {
		v.displayed = v.original.Clone()
		return true
	}
	v.displayed = raster.FromImage(imaging.Resize(v.original, w, h, imaging.NearestNeighbor))
	return true
}

// PanBy scrolls the surface. Zoom and all coordinates are unchanged.
func (v *Viewport) PanBy(dx, dy float64) {
	v.surf.ScrollBy(dx, dy)
	v.refresh()
}

func (v *Viewport) refresh() {
	v.labels = v.Overlay()
}
