package pixmap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
	"github.com/ironsheep/draw-tools-mcp/internal/raster"
)

// Encode writes img as a binary P6 file with maxValue 255.
func Encode(w io.Writer, img *raster.Image) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", MagicBinary, img.Width, img.Height)
	bw.Write(img.Pix)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: writing P6: %v", errkind.ErrIOFailure, err)
	}
	return nil
}

// EncodeASCII writes img as a P3 file with maxValue 255, one image row per
// line.
func EncodeASCII(w io.Writer, img *raster.Image) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", MagicASCII, img.Width, img.Height)

	num := make([]byte, 0, 4)
	for y := 0; y < img.Height; y++ {
		row := img.Pix[y*img.Width*3 : (y+1)*img.Width*3]
		for i, s := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			num = strconv.AppendUint(num[:0], uint64(s), 10)
			bw.Write(num)
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: writing P3: %v", errkind.ErrIOFailure, err)
	}
	return nil
}
