// Package shapes implements the vector shape model: lines, rectangles and
// circles, the ordered document that holds them, and the JSON record format
// used to save and load drawings.
//
// # Coordinates
//
// Shapes live in canvas space. Coordinates are float64 because zoom applies
// fractional scale factors. Each shape stores two corner points (X1, Y1) and
// (X2, Y2); for a line they are the endpoints, for a rectangle or circle they
// are opposite corners of the bounding box, in any order.
//
// # Rendering
//
// A shape owns at most one surface handle. Draw removes the previous handle
// and adds a fresh primitive tagged surface.TagVector. A handle the surface
// no longer knows (the surface may have been cleared) is not an error.
//
// # Hit testing
//
// A line contains points closer than LineTolerance to its segment. Rectangles
// and circles contain every point of their bounding box, inclusive. Circle
// hit testing is therefore the bounding rectangle, not the ellipse; this is a
// known limitation kept for compatibility with existing drawings.
//
// # Records
//
// The record of a shape is a flat JSON object:
//
//	{"type": "line", "x1": 0, "y1": 0, "x2": 10, "y2": 10, "stroke_color": "black"}
//	{"type": "circle", "x1": 0, "y1": 0, "x2": 10, "y2": 10, "stroke_color": "blue", "fill_color": ""}
//
// A document file is a JSON array of records; array order is z-order, back
// to front.
package shapes
