package raster

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
)

func TestNew(t *testing.T) {
	img, err := New(4, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(img.Pix) != 4*3*3 {
		t.Errorf("Pix length: got %d, want 36", len(img.Pix))
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("Bounds: got %v", img.Bounds())
	}
}

func TestNew_Negative(t *testing.T) {
	_, err := New(-1, 3)
	if !errors.Is(err, errkind.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestFromPix_LengthMismatch(t *testing.T) {
	_, err := FromPix(2, 2, make([]byte, 11))
	if !errors.Is(err, errkind.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRGBAndAt(t *testing.T) {
	img, _ := FromPix(2, 1, []byte{1, 2, 3, 4, 5, 6})

	r, g, b := img.RGB(1, 0)
	if r != 4 || g != 5 || b != 6 {
		t.Errorf("RGB(1,0): got (%d,%d,%d), want (4,5,6)", r, g, b)
	}

	c := img.At(0, 0).(color.RGBA)
	if c != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("At(0,0): got %v", c)
	}

	r, g, b = img.RGB(5, 5)
	if r != 0 || g != 0 || b != 0 {
		t.Error("out of bounds RGB should be black")
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.NRGBA{10, 20, 30, 255})
	src.Set(0, 0, color.NRGBA{200, 100, 50, 255})

	img := FromImage(src)
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("size: got %dx%d, want 3x2", img.Width, img.Height)
	}
	if r, g, b := img.RGB(2, 1); r != 10 || g != 20 || b != 30 {
		t.Errorf("RGB(2,1): got (%d,%d,%d)", r, g, b)
	}
	if r, g, b := img.RGB(0, 0); r != 200 || g != 100 || b != 50 {
		t.Errorf("RGB(0,0): got (%d,%d,%d)", r, g, b)
	}
}

func TestFromImage_GenericPath(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, color.RGBA{7, 8, 9, 255})

	img := FromImage(src)
	if r, g, b := img.RGB(0, 0); r != 7 || g != 8 || b != 9 {
		t.Errorf("RGB(0,0): got (%d,%d,%d)", r, g, b)
	}
}

func TestFromImage_ClonesRaster(t *testing.T) {
	src, _ := FromPix(1, 1, []byte{1, 1, 1})
	dst := FromImage(src)
	dst.Pix[0] = 99
	if src.Pix[0] != 1 {
		t.Error("FromImage shared storage with its source")
	}
}
