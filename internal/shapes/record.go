package shapes

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
)

const (
	fieldType   = "type"
	fieldX1     = "x1"
	fieldY1     = "y1"
	fieldX2     = "x2"
	fieldY2     = "y2"
	fieldStroke = "stroke_color"
	fieldFill   = "fill_color"
)

// Record is the tagged mapping a shape serializes to.
type Record map[string]any

// FromRecord builds a shape from its record.
//
// A missing key fails with errkind.ErrMissingField, an unknown type tag with
// errkind.ErrUnsupportedFormat and a value of the wrong JSON type with
// errkind.ErrInvalidArgument.
func FromRecord(rec Record) (Shape, error) {
	tag, err := rec.text(fieldType)
	if err != nil {
		return nil, err
	}
	kind, err := ParseKind(tag)
	if err != nil {
		return nil, err
	}

	var g geometry
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{fieldX1, &g.X1}, {fieldY1, &g.Y1}, {fieldX2, &g.X2}, {fieldY2, &g.Y2},
	} {
		if *f.dst, err = rec.number(f.key); err != nil {
			return nil, err
		}
	}

	stroke, err := rec.text(fieldStroke)
	if err != nil {
		return nil, err
	}
	if kind == KindLine {
		return &Line{geometry: g, Stroke: stroke}, nil
	}

	fill, err := rec.text(fieldFill)
	if err != nil {
		return nil, err
	}
	box := Box{geometry: g, Stroke: stroke, Fill: fill}
	if kind == KindRectangle {
		return &Rectangle{box}, nil
	}
	return &Circle{box}, nil
}

func (r Record) lookup(key string) (any, error) {
	v, ok := r[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errkind.ErrMissingField, key)
	}
	return v, nil
}

func (r Record) text(key string) (string, error) {
	v, err := r.lookup(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %T, want string", errkind.ErrInvalidArgument, key, v)
	}
	return s, nil
}

func (r Record) number(key string) (float64, error) {
	v, err := r.lookup(key)
	if err != nil {
		return 0, err
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case json.Number:
		if f, err = n.Float64(); err != nil {
			return 0, fmt.Errorf("%w: field %q: %v", errkind.ErrInvalidArgument, key, err)
		}
	default:
		return 0, fmt.Errorf("%w: field %q is %T, want number", errkind.ErrInvalidArgument, key, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: field %q is %v", errkind.ErrInvalidArgument, key, f)
	}
	return f, nil
}
