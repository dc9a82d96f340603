package shapes

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
)

// Document is the ordered shape collection plus the current selection.
//
// Insertion order is z-order, back to front. The selection, when set, always
// refers to a shape currently in the document; removing that shape clears
// it.
type Document struct {
	shapes   []Shape
	selected Shape
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Add appends s on top of the existing shapes.
func (d *Document) Add(s Shape) {
	d.shapes = append(d.shapes, s)
}

// Remove deletes s and reports whether it was present.
func (d *Document) Remove(s Shape) bool {
	i := d.IndexOf(s)
	if i < 0 {
		return false
	}
	d.shapes = append(d.shapes[:i], d.shapes[i+1:]...)
	if d.selected == s {
		d.selected = nil
	}
	return true
}

// Clear removes every shape and the selection.
func (d *Document) Clear() {
	d.shapes = nil
	d.selected = nil
}

// Len returns the number of shapes.
func (d *Document) Len() int { return len(d.shapes) }

// Shapes returns the shapes back to front. The slice is a copy; the shapes
// are not.
func (d *Document) Shapes() []Shape {
	out := make([]Shape, len(d.shapes))
	copy(out, d.shapes)
	return out
}

// IndexOf returns the z-index of s, or -1.
func (d *Document) IndexOf(s Shape) int {
	for i, o := range d.shapes {
		if o == s {
			return i
		}
	}
	return -1
}

// Select sets the selection. nil clears it; a shape that is not in the
// document fails with errkind.ErrInvalidArgument.
func (d *Document) Select(s Shape) error {
	if s != nil && d.IndexOf(s) < 0 {
		return fmt.Errorf("%w: shape is not in the document", errkind.ErrInvalidArgument)
	}
	d.selected = s
	return nil
}

// Selected returns the selection, or nil.
func (d *Document) Selected() Shape { return d.selected }

// HitTest returns the topmost shape containing (x, y), or nil.
func (d *Document) HitTest(x, y float64) Shape {
	for i := len(d.shapes) - 1; i >= 0; i-- {
		if d.shapes[i].ContainsPoint(x, y) {
			return d.shapes[i]
		}
	}
	return nil
}

// ScaleAbout scales every shape about (px, py).
func (d *Document) ScaleAbout(px, py, factor float64) {
	for _, s := range d.shapes {
		s.ScaleAbout(px, py, factor)
	}
}

// Records returns the record of every shape in z-order.
func (d *Document) Records() []Record {
	out := make([]Record, len(d.shapes))
	for i, s := range d.shapes {
		out[i] = s.Record()
	}
	return out
}

// Save writes the document as an indented JSON array of records.
func (d *Document) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(d.Records()); err != nil {
		return fmt.Errorf("%w: writing document: %v", errkind.ErrIOFailure, err)
	}
	return nil
}

// SkippedRecord describes one record Load could not use.
type SkippedRecord struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// LoadReport summarizes a Load.
type LoadReport struct {
	Loaded  int             `json:"loaded"`
	Skipped []SkippedRecord `json:"skipped,omitempty"`
}

// Load replaces the document contents with the records read from r.
//
// A record with an unknown type, a missing field or a malformed value is
// skipped, logged and listed in the report; the remaining records still
// load. Only a stream that is not a JSON array fails the whole load, in
// which case the document is left untouched.
func (d *Document) Load(r io.Reader) (LoadReport, error) {
	shapes, report, err := Decode(r)
	if err != nil {
		return report, err
	}
	d.Clear()
	d.shapes = shapes
	return report, nil
}

// Decode reads a document stream into shapes without touching any document.
func Decode(r io.Reader) ([]Shape, LoadReport, error) {
	var report LoadReport

	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, report, fmt.Errorf("%w: document is not a JSON array: %v", errkind.ErrInvalidArgument, err)
	}

	shapes := make([]Shape, 0, len(raw))
	for i, msg := range raw {
		var rec Record
		err := json.Unmarshal(msg, &rec)
		if err == nil && rec == nil {
			err = fmt.Errorf("%w: record is null", errkind.ErrInvalidArgument)
		} else if err != nil {
			err = fmt.Errorf("%w: record is not an object: %v", errkind.ErrInvalidArgument, err)
		}

		var s Shape
		if err == nil {
			s, err = FromRecord(rec)
		}
		if err != nil {
			log.Printf("shapes: skipping record %d: %v", i, err)
			report.Skipped = append(report.Skipped, SkippedRecord{Index: i, Reason: err.Error(), Err: err})
			continue
		}
		shapes = append(shapes, s)
	}
	report.Loaded = len(shapes)
	return shapes, report, nil
}
