package pixmap

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
	"github.com/ironsheep/draw-tools-mcp/internal/raster"
)

const (
	// MagicASCII introduces a P3 (ASCII payload) file.
	MagicASCII = "P3"
	// MagicBinary introduces a P6 (binary payload) file.
	MagicBinary = "P6"

	// MaxValueLimit is the largest legal maxValue.
	MaxValueLimit = 65535

	// maxPixels bounds width*height so the output buffer stays allocatable.
	maxPixels = 1 << 28
	// maxDimension bounds each header dimension before multiplication.
	maxDimension = 1 << 28
)

func init() {
	image.RegisterFormat("ppm", MagicASCII, decodeImage, DecodeConfig)
	image.RegisterFormat("ppm", MagicBinary, decodeImage, DecodeConfig)
}

// Header is the parsed pixel-map header.
type Header struct {
	Magic    string
	Width    int
	Height   int
	MaxValue int
}

// Samples returns the number of channel samples in the payload.
func (h Header) Samples() int {
	return h.Width * h.Height * 3
}

// Decode reads a complete P3 or P6 pixel map and returns it as RGB8.
//
// The decoder is deterministic: identical input bytes always yield identical
// output bytes. It only advances the read cursor of r.
func Decode(r io.Reader) (*raster.Image, error) {
	br := asByteReader(r)
	t := newTokenizer(br)

	h, err := readHeader(t)
	if err != nil {
		return nil, err
	}

	var pix []byte
	switch {
	case h.Magic == MagicASCII:
		pix, err = readASCII(t, h)
	case h.MaxValue < 256:
		pix, err = readBinary8(br, h)
	default:
		pix, err = readBinary16(br, h)
	}
	if err != nil {
		return nil, err
	}

	return raster.FromPix(h.Width, h.Height, pix)
}

// DecodeConfig reads only the header and reports the image dimensions.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(newTokenizer(asByteReader(r)))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.Width, Height: h.Height}, nil
}

// ReadHeader parses the header and leaves r positioned at the payload.
// r must implement io.ByteReader for the position to be meaningful.
func ReadHeader(r io.Reader) (Header, error) {
	return readHeader(newTokenizer(asByteReader(r)))
}

func decodeImage(r io.Reader) (image.Image, error) {
	img, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func asByteReader(r io.Reader) byteReader {
	if br, ok := r.(byteReader); ok {
		return br
	}
	return bufio.NewReader(r)
}

func readHeader(t *tokenizer) (Header, error) {
	var h Header

	tok, err := t.next()
	if err != nil {
		return h, headerErr(err, "magic")
	}
	h.Magic = string(tok)
	if h.Magic != MagicASCII && h.Magic != MagicBinary {
		return h, fmt.Errorf("%w: magic %q, want %s or %s", errkind.ErrUnsupportedFormat, h.Magic, MagicASCII, MagicBinary)
	}

	if h.Width, err = headerValue(t, "width", maxDimension); err != nil {
		return h, err
	}
	if h.Height, err = headerValue(t, "height", maxDimension); err != nil {
		return h, err
	}
	if h.MaxValue, err = headerValue(t, "maxValue", MaxValueLimit); err != nil {
		return h, err
	}

	if h.Width < 1 || h.Height < 1 {
		return h, fmt.Errorf("%w: dimensions %dx%d must be positive", errkind.ErrInvalidHeader, h.Width, h.Height)
	}
	if h.Width*h.Height > maxPixels {
		return h, fmt.Errorf("%w: %dx%d exceeds %d pixels", errkind.ErrInvalidHeader, h.Width, h.Height, maxPixels)
	}
	if h.MaxValue < 1 {
		return h, fmt.Errorf("%w: maxValue %d outside 1..%d", errkind.ErrInvalidHeader, h.MaxValue, MaxValueLimit)
	}
	return h, nil
}

func headerValue(t *tokenizer, name string, limit int) (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, headerErr(err, name)
	}
	v, ok := parseUint(tok, limit)
	if !ok {
		return 0, fmt.Errorf("%w: %s token %q is not an integer in 0..%d", errkind.ErrInvalidHeader, name, tok, limit)
	}
	return v, nil
}

func headerErr(err error, field string) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: stream ended before %s", errkind.ErrTruncatedHeader, field)
	}
	return fmt.Errorf("reading %s: %w", field, err)
}

// rescale maps a raw sample onto 0..255 as floor(s*255/maxValue).
func rescale(s, maxValue int) byte {
	v := s * 255 / maxValue
	if v > 255 {
		return 255
	}
	return byte(v)
}

func readASCII(t *tokenizer, h Header) ([]byte, error) {
	n := h.Samples()
	pix := make([]byte, n)
	for i := 0; i < n; i++ {
		tok, err := t.next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: expected %d samples, got %d", errkind.ErrTruncatedPixelData, n, i)
		}
		if err != nil {
			return nil, err
		}
		s, ok := parseUint(tok, MaxValueLimit)
		if !ok {
			return nil, fmt.Errorf("%w: sample %d token %q", errkind.ErrInvalidSample, i, tok)
		}
		pix[i] = rescale(s, h.MaxValue)
	}
	return pix, nil
}

func readBinary8(r io.Reader, h Header) ([]byte, error) {
	pix := make([]byte, h.Samples())
	if err := readPayload(r, pix); err != nil {
		return nil, err
	}
	if h.MaxValue == 255 {
		return pix, nil
	}
	for i, s := range pix {
		pix[i] = rescale(int(s), h.MaxValue)
	}
	return pix, nil
}

func readBinary16(r io.Reader, h Header) ([]byte, error) {
	n := h.Samples()
	raw := make([]byte, n*2)
	if err := readPayload(r, raw); err != nil {
		return nil, err
	}
	pix := make([]byte, n)
	for i := range pix {
		v := int(raw[2*i])<<8 | int(raw[2*i+1])
		pix[i] = rescale(v, h.MaxValue)
	}
	return pix, nil
}

func readPayload(r io.Reader, buf []byte) error {
	got, err := io.ReadFull(r, buf)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: expected %d bytes, got %d", errkind.ErrTruncatedPixelData, len(buf), got)
	}
	if err != nil {
		return fmt.Errorf("%w: reading payload: %v", errkind.ErrIOFailure, err)
	}
	return nil
}
