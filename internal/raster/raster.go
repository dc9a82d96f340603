// Package raster holds the decoded RGB8 pixel buffer shared by the decoder,
// the image cache and the viewport.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
)

// Image is a row-major RGB buffer with 8 bits per channel.
//
// Pix holds Width*Height*3 bytes; the pixel at (x, y) starts at
// Pix[(y*Width+x)*3]. An Image is treated as immutable once built: resizing
// produces a new Image that shares no storage with its source.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// New allocates a zeroed (black) image of the given size.
func New(width, height int) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: image size %dx%d", errkind.ErrInvalidArgument, width, height)
	}
	return &Image{Width: width, Height: height, Pix: make([]byte, width*height*3)}, nil
}

// FromPix wraps an existing buffer. The length must match the dimensions.
func FromPix(width, height int, pix []byte) (*Image, error) {
	if width < 0 || height < 0 || len(pix) != width*height*3 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d image", errkind.ErrInvalidArgument, len(pix), width, height)
	}
	return &Image{Width: width, Height: height, Pix: pix}, nil
}

// FromImage copies any image.Image into a new RGB buffer, dropping alpha.
// An *Image argument is cloned, never shared.
func FromImage(src image.Image) *Image {
	if r, ok := src.(*Image); ok {
		return r.Clone()
	}
	b := src.Bounds()
	dst := &Image{Width: b.Dx(), Height: b.Dy(), Pix: make([]byte, b.Dx()*b.Dy()*3)}

	if n, ok := src.(*image.NRGBA); ok {
		i := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := n.Pix[n.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				dst.Pix[i] = row[x*4]
				dst.Pix[i+1] = row[x*4+1]
				dst.Pix[i+2] = row[x*4+2]
				i += 3
			}
		}
		return dst
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := src.At(x, y).RGBA()
			dst.Pix[i] = uint8(r >> 8)
			dst.Pix[i+1] = uint8(g >> 8)
			dst.Pix[i+2] = uint8(bl >> 8)
			i += 3
		}
	}
	return dst
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	pix := make([]byte, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{Width: m.Width, Height: m.Height, Pix: pix}
}

// InBounds reports whether (x, y) addresses a pixel.
func (m *Image) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// RGB returns the channel values at (x, y). Out-of-range coordinates
// return black.
func (m *Image) RGB(x, y int) (r, g, b uint8) {
	if !m.InBounds(x, y) {
		return 0, 0, 0
	}
	i := (y*m.Width + x) * 3
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

// At implements image.Image. Pixels are always opaque.
func (m *Image) At(x, y int) color.Color {
	r, g, b := m.RGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
