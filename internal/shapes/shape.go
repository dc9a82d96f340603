package shapes

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
	"github.com/ironsheep/draw-tools-mcp/internal/surface"
)

// Kind is the record tag of a shape variant.
type Kind string

const (
	KindLine      Kind = "line"
	KindRectangle Kind = "rectangle"
	KindCircle    Kind = "circle"
)

// ParseKind validates a record tag.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindLine, KindRectangle, KindCircle:
		return k, nil
	}
	return "", fmt.Errorf("%w: shape type %q", errkind.ErrUnsupportedFormat, s)
}

const (
	// LineTolerance is the hit distance around a line segment.
	LineTolerance = 5.0

	LineWidth    = 3.0
	OutlineWidth = 2.0

	DefaultLineColor      = "black"
	DefaultRectangleColor = "black"
	DefaultCircleColor    = "blue"
)

// Shape is the capability set shared by every variant.
type Shape interface {
	Kind() Kind

	// Draw replaces the shape's primitive on s. A non-empty override is used
	// as the stroke color instead of the stored one.
	Draw(s surface.Surface, override string) surface.Handle

	// Erase removes the shape's primitive from s, if any.
	Erase(s surface.Surface)

	Handle() surface.Handle
	ContainsPoint(x, y float64) bool
	Translate(dx, dy float64)

	// UpdateCoordinates replaces all four coordinates, in x1, y1, x2, y2
	// order.
	UpdateCoordinates(coords []float64) error

	// SetEnd moves the second corner, as a pointer drag does while the shape
	// is created.
	SetEnd(x, y float64)

	Coordinates() [4]float64

	// ScaleAbout maps both corners through p' = pivot + (p-pivot)*factor.
	ScaleAbout(px, py, factor float64)

	StrokeColor() string
	Record() Record
}

// geometry is the two-corner payload and the rendering handle embedded in
// every variant.
type geometry struct {
	X1, Y1, X2, Y2 float64

	handle surface.Handle
}

func (g *geometry) Handle() surface.Handle { return g.handle }

func (g *geometry) Coordinates() [4]float64 {
	return [4]float64{g.X1, g.Y1, g.X2, g.Y2}
}

func (g *geometry) Translate(dx, dy float64) {
	g.X1 += dx
	g.Y1 += dy
	g.X2 += dx
	g.Y2 += dy
}

func (g *geometry) SetEnd(x, y float64) {
	g.X2, g.Y2 = x, y
}

func (g *geometry) UpdateCoordinates(coords []float64) error {
	if len(coords) != 4 {
		return fmt.Errorf("%w: want 4 coordinates, got %d", errkind.ErrInvalidArgument, len(coords))
	}
	for i, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: coordinate %d is %v", errkind.ErrInvalidArgument, i, c)
		}
	}
	g.X1, g.Y1, g.X2, g.Y2 = coords[0], coords[1], coords[2], coords[3]
	return nil
}

func (g *geometry) ScaleAbout(px, py, factor float64) {
	g.X1 = px + (g.X1-px)*factor
	g.Y1 = py + (g.Y1-py)*factor
	g.X2 = px + (g.X2-px)*factor
	g.Y2 = py + (g.Y2-py)*factor
}

func (g *geometry) Erase(s surface.Surface) {
	if g.handle == "" {
		return
	}
	if err := s.Remove(g.handle); err != nil && !errors.Is(err, errkind.ErrHandleGone) {
		log.Printf("shapes: removing %s: %v", g.handle, err)
	}
	g.handle = ""
}

// replace drops the old primitive and stores the handle returned by add.
func (g *geometry) replace(s surface.Surface, add func() surface.Handle) surface.Handle {
	g.Erase(s)
	g.handle = add()
	return g.handle
}

func (g *geometry) inBox(x, y float64) bool {
	left, right := math.Min(g.X1, g.X2), math.Max(g.X1, g.X2)
	top, bottom := math.Min(g.Y1, g.Y2), math.Max(g.Y1, g.Y2)
	return left <= x && x <= right && top <= y && y <= bottom
}

func pick(override, own string) string {
	if override != "" {
		return override
	}
	return own
}

// Line is a straight segment between (X1, Y1) and (X2, Y2).
type Line struct {
	geometry
	Stroke string
}

// NewLine creates a line with the default stroke color.
func NewLine(x1, y1, x2, y2 float64) *Line {
	return &Line{geometry: geometry{X1: x1, Y1: y1, X2: x2, Y2: y2}, Stroke: DefaultLineColor}
}

func (l *Line) Kind() Kind          { return KindLine }
func (l *Line) StrokeColor() string { return l.Stroke }

func (l *Line) Draw(s surface.Surface, override string) surface.Handle {
	st := surface.Style{Stroke: pick(override, l.Stroke), Width: LineWidth}
	return l.replace(s, func() surface.Handle {
		return s.AddLine(l.X1, l.Y1, l.X2, l.Y2, st, surface.TagVector)
	})
}

// ContainsPoint projects (x, y) onto the segment, clamping to the endpoints,
// and reports whether the projection is within LineTolerance. A zero-length
// line contains nothing.
func (l *Line) ContainsPoint(x, y float64) bool {
	dx, dy := l.X2-l.X1, l.Y2-l.Y1
	if dx == 0 && dy == 0 {
		return false
	}
	t := ((x-l.X1)*dx + (y-l.Y1)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))
	projX, projY := l.X1+t*dx, l.Y1+t*dy
	return math.Hypot(x-projX, y-projY) < LineTolerance
}

func (l *Line) Record() Record {
	return Record{
		fieldType:   string(KindLine),
		fieldX1:     l.X1,
		fieldY1:     l.Y1,
		fieldX2:     l.X2,
		fieldY2:     l.Y2,
		fieldStroke: l.Stroke,
	}
}

// Box is the bounding-box payload shared by Rectangle and Circle.
type Box struct {
	geometry
	Stroke string
	Fill   string
}

func (b *Box) StrokeColor() string { return b.Stroke }

// ContainsPoint reports whether (x, y) lies in the bounding box, edges
// included, regardless of fill.
func (b *Box) ContainsPoint(x, y float64) bool {
	return b.inBox(x, y)
}

func (b *Box) record(kind Kind) Record {
	return Record{
		fieldType:   string(kind),
		fieldX1:     b.X1,
		fieldY1:     b.Y1,
		fieldX2:     b.X2,
		fieldY2:     b.Y2,
		fieldStroke: b.Stroke,
		fieldFill:   b.Fill,
	}
}

func (b *Box) style(override string) surface.Style {
	return surface.Style{Stroke: pick(override, b.Stroke), Fill: b.Fill, Width: OutlineWidth}
}

// Rectangle is an axis-aligned box.
type Rectangle struct {
	Box
}

// NewRectangle creates an unfilled rectangle with the default stroke color.
func NewRectangle(x1, y1, x2, y2 float64) *Rectangle {
	return &Rectangle{Box{geometry: geometry{X1: x1, Y1: y1, X2: x2, Y2: y2}, Stroke: DefaultRectangleColor}}
}

func (r *Rectangle) Kind() Kind     { return KindRectangle }
func (r *Rectangle) Record() Record { return r.record(KindRectangle) }

func (r *Rectangle) Draw(s surface.Surface, override string) surface.Handle {
	st := r.style(override)
	return r.replace(s, func() surface.Handle {
		return s.AddRectangle(r.X1, r.Y1, r.X2, r.Y2, st, surface.TagVector)
	})
}

// Circle is the ellipse inscribed in its bounding box.
type Circle struct {
	Box
}

// NewCircle creates an unfilled circle with the default stroke color.
func NewCircle(x1, y1, x2, y2 float64) *Circle {
	return &Circle{Box{geometry: geometry{X1: x1, Y1: y1, X2: x2, Y2: y2}, Stroke: DefaultCircleColor}}
}

func (c *Circle) Kind() Kind     { return KindCircle }
func (c *Circle) Record() Record { return c.record(KindCircle) }

func (c *Circle) Draw(s surface.Surface, override string) surface.Handle {
	st := c.style(override)
	return c.replace(s, func() surface.Handle {
		return s.AddEllipse(c.X1, c.Y1, c.X2, c.Y2, st, surface.TagVector)
	})
}

// New creates a zero-extent shape of the given kind at (x, y), as a pointer
// press in draw mode does.
func New(kind Kind, x, y float64) (Shape, error) {
	switch kind {
	case KindLine:
		return NewLine(x, y, x, y), nil
	case KindRectangle:
		return NewRectangle(x, y, x, y), nil
	case KindCircle:
		return NewCircle(x, y, x, y), nil
	}
	return nil, fmt.Errorf("%w: shape type %q", errkind.ErrUnsupportedFormat, kind)
}
