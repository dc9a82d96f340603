package imaging

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"sync"

	dimaging "github.com/disintegration/imaging"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
	"github.com/ironsheep/draw-tools-mcp/internal/pixmap"
	"github.com/ironsheep/draw-tools-mcp/internal/raster"
)

// FormatPixmap is the format name reported for P3 and P6 files.
const FormatPixmap = "ppm"

// ImageCache provides thread-safe caching of decoded rasters keyed by path.
//
// Once a file is loaded, later Load calls for the same path return the cached
// raster without disk I/O. Cached rasters stay in memory until Evict or
// Clear.
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/photo.ppm")
//	if err != nil {
//	    log.Fatal(err)
//	}
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*raster.Image
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*raster.Image),
	}
}

// Load returns the raster for path, decoding it on first use.
//
// Files starting with the pixel-map magic ("P3" or "P6") go through the
// pixmap decoder. Anything else is handed to the general-purpose codec (PNG,
// JPEG, GIF, BMP, TIFF), honoring EXIF orientation.
//
// # Errors
//
//   - errkind.ErrIOFailure if the file cannot be opened or read
//   - a pixmap error kind (errkind.ErrInvalidHeader, ...) for a malformed
//     pixel map
//   - errkind.ErrUnsupportedFormat if no codec recognizes the file
func (c *ImageCache) Load(path string) (*raster.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all rasters from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*raster.Image)
	c.mu.Unlock()
}

// Evict removes one path from the cache. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached rasters.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

func decodeFile(path string) (*raster.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %v", errkind.ErrIOFailure, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if isPixmap(br) {
		img, err := pixmap.Decode(br)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		return img, nil
	}

	src, err := dimaging.Decode(br, dimaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", errkind.ErrUnsupportedFormat, path, err)
	}
	return raster.FromImage(src), nil
}

// isPixmap peeks at the magic without consuming it.
func isPixmap(br *bufio.Reader) bool {
	magic, err := br.Peek(2)
	if err != nil {
		return false
	}
	return bytes.Equal(magic, []byte(pixmap.MagicASCII)) || bytes.Equal(magic, []byte(pixmap.MagicBinary))
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width and Height are the decoded size in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Format is detected from the file contents: "ppm", "png", "jpeg", "gif",
	// "bmp" or "tiff".
	Format string `json:"format"`

	// Magic and MaxValue are set for pixel maps only.
	Magic    string `json:"magic,omitempty"`
	MaxValue int    `json:"max_value,omitempty"`

	// ColorDepth is "8-bit" or "16-bit" per channel in the source file.
	ColorDepth string `json:"color_depth"`

	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path into the cache and describes it.
//
// The format is sniffed from the file contents rather than the extension.
// Pixel maps report their magic and maxValue; a maxValue above 255 means
// 16-bit samples.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open image: %v", errkind.ErrIOFailure, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to stat file: %v", errkind.ErrIOFailure, err)
	}

	info := &ImageInfo{
		Width:         img.Width,
		Height:        img.Height,
		ColorDepth:    "8-bit",
		FileSizeBytes: stat.Size(),
	}

	br := bufio.NewReader(f)
	if isPixmap(br) {
		h, err := pixmap.ReadHeader(br)
		if err != nil {
			return nil, err
		}
		info.Format = FormatPixmap
		info.Magic = h.Magic
		info.MaxValue = h.MaxValue
		if h.MaxValue > 255 {
			info.ColorDepth = "16-bit"
		}
		return info, nil
	}

	cfg, format, err := image.DecodeConfig(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errkind.ErrUnsupportedFormat, err)
	}
	info.Format = format
	if is16Bit(cfg) {
		info.ColorDepth = "16-bit"
	}
	return info, nil
}

func is16Bit(cfg image.Config) bool {
	switch cfg.ColorModel {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model:
		return true
	}
	return false
}
