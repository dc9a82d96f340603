// Package editor drives a drawing session: pointer input in draw and edit
// modes, the selection, coordinate entry, document files and the raster
// backdrop.
//
// All pointer and zoom positions given to a Session are screen coordinates;
// the session maps them to canvas units through the viewport before the
// shape model sees them.
package editor

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
	"github.com/ironsheep/draw-tools-mcp/internal/imaging"
	"github.com/ironsheep/draw-tools-mcp/internal/shapes"
	"github.com/ironsheep/draw-tools-mcp/internal/surface"
	"github.com/ironsheep/draw-tools-mcp/internal/viewport"
)

// Mode selects what pointer input does.
type Mode string

const (
	ModeDraw Mode = "draw"
	ModeEdit Mode = "edit"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeDraw, ModeEdit:
		return m, nil
	}
	return "", fmt.Errorf("%w: mode %q", errkind.ErrInvalidArgument, s)
}

// DefaultSelectionColor is the stroke color of the selected shape.
const DefaultSelectionColor = "red"

// Canvas is the surface a session draws on. Clear wipes every primitive, as
// loading a document does.
type Canvas interface {
	surface.Surface
	Clear()
}

// Options configures a Session.
type Options struct {
	SelectionColor  string
	MaxScaledPixels int
	Cache           *imaging.ImageCache
}

// Session is one editor: a document, its canvas and viewport.
//
// A Session is not safe for concurrent use; the caller serializes input.
type Session struct {
	canvas Canvas
	doc    *shapes.Document
	view   *viewport.Viewport
	cache  *imaging.ImageCache

	mode      Mode
	kind      shapes.Kind
	selection string

	// drawing is the shape being created between press and release.
	drawing shapes.Shape
	// lastX, lastY is the previous pointer position in edit mode.
	lastX, lastY float64
	// imagePath is the file the backdrop raster came from.
	imagePath string
}

// New creates a session in draw mode with line as the shape kind.
func New(canvas Canvas, opts Options) *Session {
	s := &Session{
		canvas:    canvas,
		doc:       shapes.NewDocument(),
		cache:     opts.Cache,
		mode:      ModeDraw,
		kind:      shapes.KindLine,
		selection: opts.SelectionColor,
	}
	if s.selection == "" {
		s.selection = DefaultSelectionColor
	}
	if s.cache == nil {
		s.cache = imaging.NewImageCache()
	}
	s.view = viewport.New(canvas, layer{s}, viewport.Options{MaxScaledPixels: opts.MaxScaledPixels})
	return s
}

// layer scales the document and the shape under construction together with
// the surface during a zoom.
type layer struct{ s *Session }

func (l layer) ScaleAbout(px, py, factor float64) {
	l.s.doc.ScaleAbout(px, py, factor)
	if l.s.drawing != nil {
		l.s.drawing.ScaleAbout(px, py, factor)
	}
}

func (s *Session) Document() *shapes.Document  { return s.doc }
func (s *Session) Viewport() *viewport.Viewport { return s.view }
func (s *Session) Canvas() Canvas               { return s.canvas }
func (s *Session) Mode() Mode                   { return s.mode }
func (s *Session) ShapeKind() shapes.Kind       { return s.kind }
func (s *Session) SelectionColor() string       { return s.selection }
func (s *Session) ImagePath() string            { return s.imagePath }

// Drawing returns the shape under construction, or nil.
func (s *Session) Drawing() shapes.Shape { return s.drawing }

// SetMode switches between draw and edit. A shape still under construction
// is discarded.
func (s *Session) SetMode(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	s.abandonDrawing()
	s.mode = m
	return nil
}

// SetShapeKind chooses what draw mode creates.
func (s *Session) SetShapeKind(k shapes.Kind) error {
	if _, err := shapes.ParseKind(string(k)); err != nil {
		return err
	}
	s.kind = k
	return nil
}

func (s *Session) abandonDrawing() {
	if s.drawing != nil {
		s.drawing.Erase(s.canvas)
		s.drawing = nil
	}
}

// Press starts a pointer gesture at screen position (sx, sy).
//
// In draw mode it creates a zero-extent shape of the current kind. In edit
// mode it selects the topmost shape under the pointer, or clears the
// selection when there is none.
func (s *Session) Press(sx, sy float64) {
	x, y := s.view.ScreenToCanvas(sx, sy)

	switch s.mode {
	case ModeDraw:
		s.abandonDrawing()
		sh, err := shapes.New(s.kind, x, y)
		if err != nil {
			log.Printf("editor: %v", err)
			return
		}
		sh.Draw(s.canvas, "")
		s.drawing = sh
	case ModeEdit:
		s.lastX, s.lastY = x, y
		s.Select(s.doc.HitTest(x, y))
	}
}

// Drag continues the gesture. Draw mode moves the second corner of the new
// shape; edit mode moves the selection by the pointer delta.
func (s *Session) Drag(sx, sy float64) {
	x, y := s.view.ScreenToCanvas(sx, sy)

	switch s.mode {
	case ModeDraw:
		if s.drawing == nil {
			return
		}
		s.drawing.SetEnd(x, y)
		s.drawing.Draw(s.canvas, "")
	case ModeEdit:
		sel := s.doc.Selected()
		if sel == nil {
			return
		}
		sel.Translate(x-s.lastX, y-s.lastY)
		sel.Draw(s.canvas, s.selection)
		s.lastX, s.lastY = x, y
	}
}

// Release ends the gesture. In draw mode the new shape is committed to the
// document and returned; otherwise Release returns nil.
func (s *Session) Release(sx, sy float64) shapes.Shape {
	if s.mode != ModeDraw || s.drawing == nil {
		return nil
	}
	s.Drag(sx, sy)
	sh := s.drawing
	s.drawing = nil
	s.doc.Add(sh)
	return sh
}

// Select makes sh the selection and highlights it. The previous selection is
// redrawn in its own color. nil clears the selection.
func (s *Session) Select(sh shapes.Shape) error {
	prev := s.doc.Selected()
	if err := s.doc.Select(sh); err != nil {
		return err
	}
	if prev != nil && prev != sh && s.doc.IndexOf(prev) >= 0 {
		prev.Draw(s.canvas, "")
	}
	if sh != nil {
		sh.Draw(s.canvas, s.selection)
	}
	return nil
}

// SelectIndex selects the shape at z-index i. A negative index clears the
// selection.
func (s *Session) SelectIndex(i int) error {
	if i < 0 {
		return s.Select(nil)
	}
	all := s.doc.Shapes()
	if i >= len(all) {
		return fmt.Errorf("%w: shape index %d out of range [0,%d)", errkind.ErrInvalidArgument, i, len(all))
	}
	return s.Select(all[i])
}

// CoordinateFields returns the selection's coordinates as the text shown in
// the x1, y1, x2, y2 entry fields. ok is false with no selection, in which
// case the fields are empty.
func (s *Session) CoordinateFields() (fields [4]string, ok bool) {
	sel := s.doc.Selected()
	if sel == nil {
		return fields, false
	}
	for i, c := range sel.Coordinates() {
		fields[i] = strconv.FormatFloat(c, 'f', -1, 64)
	}
	return fields, true
}

// ApplyCoordinates parses four integer fields and moves the selection to
// them. Any unparsable field fails with errkind.ErrInvalidArgument and
// leaves the selection unchanged.
func (s *Session) ApplyCoordinates(fields [4]string) error {
	sel := s.doc.Selected()
	if sel == nil {
		return fmt.Errorf("%w: no shape selected", errkind.ErrInvalidArgument)
	}

	coords := make([]float64, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return fmt.Errorf("%w: coordinate %d %q is not an integer", errkind.ErrInvalidArgument, i, f)
		}
		coords[i] = float64(n)
	}

	if err := sel.UpdateCoordinates(coords); err != nil {
		return err
	}
	sel.Draw(s.canvas, s.selection)
	return nil
}

// Clear empties the document and wipes the canvas. The raster backdrop and
// the zoom level are kept.
func (s *Session) Clear() {
	s.drawing = nil
	s.doc.Clear()
	s.canvas.Clear()
}

// Save writes the document to w.
func (s *Session) Save(w io.Writer) error {
	return s.doc.Save(w)
}

// SaveFile writes the document to path.
func (s *Session) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", errkind.ErrIOFailure, err)
	}
	if err := s.doc.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", errkind.ErrIOFailure, err)
	}
	log.Printf("editor: saved %d shapes to %s", s.doc.Len(), path)
	return nil
}

// Load replaces the document with the records read from r and draws them.
// A stream that is not a document leaves the session untouched.
func (s *Session) Load(r io.Reader) (shapes.LoadReport, error) {
	loaded, report, err := shapes.Decode(r)
	if err != nil {
		return report, err
	}

	s.Clear()
	for _, sh := range loaded {
		s.doc.Add(sh)
		sh.Draw(s.canvas, "")
	}
	return report, nil
}

// LoadFile loads the document stored at path.
func (s *Session) LoadFile(path string) (shapes.LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return shapes.LoadReport{}, fmt.Errorf("%w: %v", errkind.ErrIOFailure, err)
	}
	defer f.Close()

	report, err := s.Load(f)
	if err != nil {
		return report, err
	}
	log.Printf("editor: loaded %d shapes from %s (%d skipped)", report.Loaded, path, len(report.Skipped))
	return report, nil
}

// LoadImage decodes the file at path and shows it with its top-left corner
// at the canvas position origin.
func (s *Session) LoadImage(path string, origin viewport.Point) (*imaging.ImageInfo, error) {
	info, err := imaging.LoadImageInfo(s.cache, path)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	s.view.LoadImage(img, origin)
	s.imagePath = path
	return info, nil
}

// ClearImage removes the raster backdrop.
func (s *Session) ClearImage() {
	s.view.ClearImage()
	s.imagePath = ""
}

// ZoomAt zooms about the screen position (sx, sy). See viewport.ZoomAt.
func (s *Session) ZoomAt(sx, sy float64, dir int) bool {
	x, y := s.view.ScreenToCanvas(sx, sy)
	return s.view.ZoomAt(x, y, dir)
}

// PanBy scrolls the view by (dx, dy) canvas units.
func (s *Session) PanBy(dx, dy float64) {
	s.view.PanBy(dx, dy)
}

// SampleAt reads the original image pixel under the screen position.
func (s *Session) SampleAt(sx, sy float64) (*imaging.ColorResult, error) {
	x, y := s.view.ScreenToCanvas(sx, sy)
	px, py, ok := s.view.CanvasToImage(x, y)
	if !ok {
		return nil, fmt.Errorf("%w: no image loaded", errkind.ErrInvalidArgument)
	}
	return imaging.SampleAt(s.view.Original(), px, py)
}
