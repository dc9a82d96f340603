package viewport

import (
	"math"
	"testing"

	"github.com/ironsheep/draw-tools-mcp/internal/raster"
	"github.com/ironsheep/draw-tools-mcp/internal/surface"
)

// 1.1^32 = 21.11, the first step at or above OverlayMinZoom.
const stepsToOverlay = 32

func TestOverlay_Labels(t *testing.T) {
	img, _ := raster.FromPix(2, 2, []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 0, 250, 250, 250,
	})
	v := New(surface.NewRecorder(800, 600), nil, Options{})
	v.LoadImage(img, Point{})

	if v.Labels() != nil {
		t.Fatal("overlay shown at zoom 1")
	}
	zoomInTimes(t, v, stepsToOverlay-1)
	if v.Labels() != nil {
		t.Fatalf("overlay shown at zoom %v", v.Zoom())
	}
	zoomInTimes(t, v, 1)

	labels := v.Labels()
	if len(labels) != 4 {
		t.Fatalf("labels: got %d, want 4", len(labels))
	}

	z := v.Zoom()
	first := labels[0]
	if first.PixelX != 0 || first.PixelY != 0 || first.R != 255 || first.G != 0 || first.B != 0 {
		t.Errorf("first label: got %+v", first)
	}
	if first.Text != "255\n0\n0" {
		t.Errorf("text: got %q", first.Text)
	}
	if math.Abs(first.X-0.5*z) > eps || math.Abs(first.Y-0.5*z) > eps {
		t.Errorf("position: got (%v,%v), want (%v,%v)", first.X, first.Y, 0.5*z, 0.5*z)
	}
	if first.FontSize != 5 {
		t.Errorf("font size: got %d, want 5", first.FontSize)
	}

	last := labels[3]
	if last.PixelX != 1 || last.PixelY != 1 || last.Color != "black" {
		t.Errorf("last label: got %+v", last)
	}
	if labels[2].Color != "white" {
		t.Errorf("label on black: got color %q", labels[2].Color)
	}
	if math.Abs(last.X-1.5*z) > eps {
		t.Errorf("last X: got %v, want %v", last.X, 1.5*z)
	}
}

func TestOverlay_SuppressedAbove500(t *testing.T) {
	// 30x20 = 600 pixels, all visible in an 800x600 viewport at zoom 21
	v := New(surface.NewRecorder(800, 600), nil, Options{})
	v.LoadImage(solidImage(t, 30, 20, 10, 20, 30), Point{})
	zoomInTimes(t, v, stepsToOverlay)

	if got := v.Overlay(); got != nil {
		t.Errorf("overlay for 600 visible pixels: got %d labels", len(got))
	}
}

func TestOverlay_ClampsToVisibleRegion(t *testing.T) {
	// 40x40 = 1600 pixels, but a 100x100 viewport shows only 5x5 of them
	v := New(surface.NewRecorder(100, 100), nil, Options{})
	v.LoadImage(solidImage(t, 40, 40, 0, 0, 0), Point{})
	zoomInTimes(t, v, stepsToOverlay)

	labels := v.Labels()
	if len(labels) != 25 {
		t.Fatalf("labels: got %d, want 25", len(labels))
	}

	// scroll right to the middle of image pixel 10
	v.PanBy(10.5*v.Zoom(), 0)
	labels = v.Labels()
	if len(labels) == 0 || labels[0].PixelX != 10 {
		t.Errorf("first label after pan: got %+v", labels)
	}
}

func TestOverlay_OffscreenImage(t *testing.T) {
	v := New(surface.NewRecorder(800, 600), nil, Options{})
	v.LoadImage(solidImage(t, 4, 3, 0, 0, 0), Point{})
	zoomInTimes(t, v, stepsToOverlay)
	if len(v.Labels()) != 12 {
		t.Fatalf("labels: got %d, want 12", len(v.Labels()))
	}

	v.PanBy(1000, 0)
	if v.Labels() != nil {
		t.Error("overlay for an image scrolled out of view")
	}
}

func TestOverlay_FromOriginalPixels(t *testing.T) {
	img, _ := raster.FromPix(1, 1, []byte{7, 8, 9})
	v := New(surface.NewRecorder(800, 600), nil, Options{MaxScaledPixels: 1})
	v.LoadImage(img, Point{})
	zoomInTimes(t, v, stepsToOverlay)

	labels := v.Labels()
	if len(labels) != 1 || labels[0].R != 7 || labels[0].B != 9 {
		t.Errorf("labels: got %+v", labels)
	}
}

func TestOverlay_NoImage(t *testing.T) {
	v := New(surface.NewRecorder(800, 600), nil, Options{})
	zoomInTimes(t, v, stepsToOverlay)
	if v.Overlay() != nil {
		t.Error("overlay without an image")
	}
}
