package imaging

import (
	"errors"
	"testing"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
	"github.com/ironsheep/draw-tools-mcp/internal/raster"
)

// solid creates an in-memory raster filled with one color.
func solid(t *testing.T, width, height int, r, g, b byte) *raster.Image {
	t.Helper()
	img, err := raster.New(width, height)
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	for i := 0; i < len(img.Pix); i += 3 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = r, g, b
	}
	return img
}

func TestSampleColor(t *testing.T) {
	img := solid(t, 100, 100, 255, 128, 64)

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB.R != 255 || result.RGB.G != 128 || result.RGB.B != 64 {
		t.Errorf("RGB: got (%d,%d,%d), want (255,128,64)", result.RGB.R, result.RGB.G, result.RGB.B)
	}
	if result.X != 50 || result.Y != 50 {
		t.Errorf("position: got (%d,%d)", result.X, result.Y)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b byte
		wantHex string
		wantHSL HSLColor
	}{
		{"pure red", 255, 0, 0, "#FF0000", HSLColor{0, 100, 50}},
		{"pure green", 0, 255, 0, "#00FF00", HSLColor{120, 100, 50}},
		{"pure blue", 0, 0, 255, "#0000FF", HSLColor{240, 100, 50}},
		{"white", 255, 255, 255, "#FFFFFF", HSLColor{0, 0, 100}},
		{"black", 0, 0, 0, "#000000", HSLColor{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SampleColor(solid(t, 10, 10, tt.r, tt.g, tt.b), 5, 5)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}
			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.HSL != tt.wantHSL {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.wantHSL)
			}
		})
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := solid(t, 100, 100, 255, 0, 0)

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			if !errors.Is(err, errkind.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestSampleColor_EdgeCoordinates(t *testing.T) {
	img := solid(t, 100, 100, 255, 0, 0)

	for _, p := range [][2]int{{0, 0}, {99, 0}, {0, 99}, {99, 99}} {
		if _, err := SampleColor(img, p[0], p[1]); err != nil {
			t.Errorf("SampleColor failed for valid edge coordinate %v: %v", p, err)
		}
	}
}

func TestSampleColor_NoImage(t *testing.T) {
	if _, err := SampleColor(nil, 0, 0); !errors.Is(err, errkind.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSampleAt(t *testing.T) {
	img, _ := raster.FromPix(2, 1, []byte{1, 2, 3, 4, 5, 6})

	result, err := SampleAt(img, 1.9, 0.2)
	if err != nil {
		t.Fatalf("SampleAt failed: %v", err)
	}
	if result.X != 1 || result.RGB.R != 4 {
		t.Errorf("SampleAt(1.9, 0.2): got %+v", result)
	}

	if _, err := SampleAt(img, -0.5, 0); err == nil {
		t.Error("SampleAt left of the image should fail")
	}
}
