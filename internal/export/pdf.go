package export

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/jung-kurt/gofpdf"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
	"github.com/ironsheep/draw-tools-mcp/internal/shapes"
)

// DocumentPDF renders doc as vector graphics on one landscape A4 page.
//
// Canvas units map 1:1 to PDF points. Shapes are painted back to front with
// their stored colors; a color that does not resolve is drawn black and
// logged.
func DocumentPDF(w io.Writer, doc *shapes.Document) error {
	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetTitle("Drawing", true)
	pdf.AddPage()

	for i, s := range doc.Shapes() {
		c := s.Coordinates()
		x1, y1, x2, y2 := c[0], c[1], c[2], c[3]

		stroke := resolve(s.StrokeColor(), i)
		pdf.SetDrawColor(rgb(stroke))

		switch v := s.(type) {
		case *shapes.Line:
			pdf.SetLineWidth(shapes.LineWidth)
			pdf.Line(x1, y1, x2, y2)
		case *shapes.Rectangle:
			pdf.SetLineWidth(shapes.OutlineWidth)
			style := fillStyle(pdf, v.Fill, i)
			pdf.Rect(math.Min(x1, x2), math.Min(y1, y2), math.Abs(x2-x1), math.Abs(y2-y1), style)
		case *shapes.Circle:
			pdf.SetLineWidth(shapes.OutlineWidth)
			style := fillStyle(pdf, v.Fill, i)
			pdf.Ellipse((x1+x2)/2, (y1+y2)/2, math.Abs(x2-x1)/2, math.Abs(y2-y1)/2, 0, style)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: writing pdf: %v", errkind.ErrIOFailure, err)
	}
	return nil
}

// fillStyle sets the fill color and returns the gofpdf paint style.
func fillStyle(pdf *gofpdf.Fpdf, fill string, index int) string {
	c, ok, err := shapes.ResolveColor(fill)
	if err != nil {
		log.Printf("export: shape %d fill: %v", index, err)
	}
	if !ok {
		return "D"
	}
	pdf.SetFillColor(rgb(c))
	return "FD"
}

func resolve(name string, index int) colorful.Color {
	c, ok, err := shapes.ResolveColor(name)
	if err != nil {
		log.Printf("export: shape %d stroke: %v", index, err)
	}
	if !ok {
		return colorful.Color{}
	}
	return c
}

func rgb(c colorful.Color) (int, int, int) {
	r, g, b := c.Clamped().RGB255()
	return int(r), int(g), int(b)
}
