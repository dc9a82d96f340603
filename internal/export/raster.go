package export

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
	"github.com/ironsheep/draw-tools-mcp/internal/pixmap"
	"github.com/ironsheep/draw-tools-mcp/internal/raster"
)

// JPEGQuality is the quality used for JPEG exports.
const JPEGQuality = 92

// Raster formats accepted by SaveRaster.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatBMP  = "bmp"
	FormatPPM  = "ppm"
)

// FormatFromPath infers a raster format from the file extension.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".bmp":
		return FormatBMP
	case ".ppm", ".pnm":
		return FormatPPM
	}
	return FormatPNG
}

func encoderFor(format string) (imgio.Encoder, error) {
	switch strings.ToLower(format) {
	case FormatPNG:
		return imgio.PNGEncoder(), nil
	case FormatJPEG, "jpg":
		return imgio.JPEGEncoder(JPEGQuality), nil
	case FormatBMP:
		return imgio.BMPEncoder(), nil
	case FormatPPM:
		return func(w io.Writer, img image.Image) error {
			return pixmap.Encode(w, raster.FromImage(img))
		}, nil
	}
	return nil, fmt.Errorf("%w: raster format %q", errkind.ErrUnsupportedFormat, format)
}

// SaveRaster writes img to path. An empty format is inferred from the
// extension; PNG is the fallback.
func SaveRaster(path string, img image.Image, format string) error {
	if img == nil {
		return fmt.Errorf("%w: no image to export", errkind.ErrInvalidArgument)
	}
	if format == "" {
		format = FormatFromPath(path)
	}
	enc, err := encoderFor(format)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("%w: saving %s: %v", errkind.ErrIOFailure, path, err)
	}
	return nil
}
