package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
)

// SnapshotResult is an inline PNG of part of a raster.
type SnapshotResult struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Snapshot crops region out of img and returns it as a base64 PNG. The
// region is clipped to the image; an empty intersection is an error.
func Snapshot(img image.Image, region image.Rectangle) (*SnapshotResult, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image to snapshot", errkind.ErrInvalidArgument)
	}
	r := region.Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("%w: region %v does not overlap image bounds %v",
			errkind.ErrInvalidArgument, region, img.Bounds())
	}

	cropped := imaging.Crop(img, r)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cropped, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: failed to encode snapshot: %v", errkind.ErrIOFailure, err)
	}

	return &SnapshotResult{
		X:           r.Min.X,
		Y:           r.Min.Y,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
