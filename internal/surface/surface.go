// Package surface defines what the core needs from a drawable surface and
// provides Recorder, an in-memory display list that satisfies it.
//
// The hosting layer owns rendering. The core only adds and removes tagged
// primitives, scales every primitive with a tag about a pivot, and reads the
// current scroll rectangle and viewport size.
package surface

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
)

// TagVector classifies shape primitives so a zoom can scale them together
// without touching raster content.
const TagVector = "vector"

// Handle identifies one primitive on a surface. The zero value means
// "not drawn".
type Handle string

// Style carries the paint attributes of a primitive. Empty Fill means
// outline only.
type Style struct {
	Stroke string  `json:"stroke"`
	Fill   string  `json:"fill,omitempty"`
	Width  float64 `json:"width"`
}

// Rect is an axis-aligned rectangle in canvas (logical) units.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Dx returns the width.
func (r Rect) Dx() float64 { return r.MaxX - r.MinX }

// Dy returns the height.
func (r Rect) Dy() float64 { return r.MaxY - r.MinY }

// Surface is the drawing collaborator contract.
type Surface interface {
	AddLine(x1, y1, x2, y2 float64, st Style, tag string) Handle
	AddRectangle(x1, y1, x2, y2 float64, st Style, tag string) Handle
	AddEllipse(x1, y1, x2, y2 float64, st Style, tag string) Handle

	// Remove deletes a primitive. It returns errkind.ErrHandleGone when the
	// handle is unknown, for example after the surface was cleared.
	Remove(h Handle) error

	// Scale maps every primitive tagged tag through p' = pivot + (p-pivot)*factor.
	Scale(tag string, px, py, factor float64)

	// ViewRect returns the visible region in canvas units.
	ViewRect() Rect

	// ViewportSize returns the visible region in device pixels.
	ViewportSize() (w, h int)

	// ScrollBy moves the visible region by (dx, dy) canvas units.
	ScrollBy(dx, dy float64)
}

// PrimitiveKind names the three primitive shapes a surface draws.
type PrimitiveKind string

const (
	PrimitiveLine      PrimitiveKind = "line"
	PrimitiveRectangle PrimitiveKind = "rectangle"
	PrimitiveEllipse   PrimitiveKind = "ellipse"
)

// Item is one recorded primitive.
type Item struct {
	Handle Handle        `json:"handle"`
	Kind   PrimitiveKind `json:"kind"`
	X1     float64       `json:"x1"`
	Y1     float64       `json:"y1"`
	X2     float64       `json:"x2"`
	Y2     float64       `json:"y2"`
	Style  Style         `json:"style"`
	Tag    string        `json:"tag"`
}

// Recorder is an in-memory Surface. It keeps primitives in insertion order
// (back to front) and hands out uuid handles.
//
// Recorder is safe for concurrent use, although the core only ever drives it
// from a single goroutine.
type Recorder struct {
	mu      sync.RWMutex
	items   map[Handle]*Item
	order   []Handle
	scrollX float64
	scrollY float64
	width   int
	height  int
}

// NewRecorder creates an empty surface with the given viewport size in
// pixels. One pixel equals one canvas unit.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		items:  make(map[Handle]*Item),
		width:  width,
		height: height,
	}
}

func (r *Recorder) add(kind PrimitiveKind, x1, y1, x2, y2 float64, st Style, tag string) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := Handle(uuid.NewString())
	r.items[h] = &Item{Handle: h, Kind: kind, X1: x1, Y1: y1, X2: x2, Y2: y2, Style: st, Tag: tag}
	r.order = append(r.order, h)
	return h
}

// AddLine implements Surface.
func (r *Recorder) AddLine(x1, y1, x2, y2 float64, st Style, tag string) Handle {
	return r.add(PrimitiveLine, x1, y1, x2, y2, st, tag)
}

// AddRectangle implements Surface.
func (r *Recorder) AddRectangle(x1, y1, x2, y2 float64, st Style, tag string) Handle {
	return r.add(PrimitiveRectangle, x1, y1, x2, y2, st, tag)
}

// AddEllipse implements Surface.
func (r *Recorder) AddEllipse(x1, y1, x2, y2 float64, st Style, tag string) Handle {
	return r.add(PrimitiveEllipse, x1, y1, x2, y2, st, tag)
}

// Remove implements Surface.
func (r *Recorder) Remove(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[h]; !ok {
		return fmt.Errorf("%w: %s", errkind.ErrHandleGone, h)
	}
	delete(r.items, h)
	for i, o := range r.order {
		if o == h {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes every primitive. Handles issued before Clear become gone.
func (r *Recorder) Clear() {
	r.mu.Lock()
	r.items = make(map[Handle]*Item)
	r.order = nil
	r.mu.Unlock()
}

// Scale implements Surface.
func (r *Recorder) Scale(tag string, px, py, factor float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range r.items {
		if it.Tag != tag {
			continue
		}
		it.X1 = px + (it.X1-px)*factor
		it.Y1 = py + (it.Y1-py)*factor
		it.X2 = px + (it.X2-px)*factor
		it.Y2 = py + (it.Y2-py)*factor
	}
}

// ViewRect implements Surface.
func (r *Recorder) ViewRect() Rect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Rect{
		MinX: r.scrollX,
		MinY: r.scrollY,
		MaxX: r.scrollX + float64(r.width),
		MaxY: r.scrollY + float64(r.height),
	}
}

// ViewportSize implements Surface.
func (r *Recorder) ViewportSize() (int, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width, r.height
}

// ScrollBy implements Surface.
func (r *Recorder) ScrollBy(dx, dy float64) {
	r.mu.Lock()
	r.scrollX += dx
	r.scrollY += dy
	r.mu.Unlock()
}

// Resize changes the viewport size.
func (r *Recorder) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
}

// Item returns a copy of the primitive behind h.
func (r *Recorder) Item(h Handle) (Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[h]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Items returns a snapshot of all primitives, back to front.
func (r *Recorder) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, 0, len(r.order))
	for _, h := range r.order {
		out = append(out, *r.items[h])
	}
	return out
}

// Len returns the number of primitives.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
