package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"strings"

	"github.com/ironsheep/draw-tools-mcp/internal/editor"
	"github.com/ironsheep/draw-tools-mcp/internal/errkind"
	"github.com/ironsheep/draw-tools-mcp/internal/export"
	"github.com/ironsheep/draw-tools-mcp/internal/imaging"
	"github.com/ironsheep/draw-tools-mcp/internal/shapes"
	"github.com/ironsheep/draw-tools-mcp/internal/surface"
	"github.com/ironsheep/draw-tools-mcp/internal/viewport"
)

// maxZoomSteps bounds the steps argument of canvas_zoom.
const maxZoomSteps = 200

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "canvas_zoom", "pointer_press").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.cfg.Debug() {
			log.Printf("tool %s failed: %v", params.Name, err)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Canvas and raster backdrop
	case "canvas_load_image":
		return s.handleCanvasLoadImage(args)
	case "canvas_state":
		return s.state(), nil
	case "canvas_zoom":
		return s.handleCanvasZoom(args)
	case "canvas_pan":
		return s.handleCanvasPan(args)
	case "canvas_pixel_overlay":
		return s.handleCanvasPixelOverlay()
	case "canvas_sample_pixel":
		return s.handleCanvasSamplePixel(args)
	case "canvas_snapshot":
		return s.handleCanvasSnapshot(args)
	case "canvas_export_image":
		return s.handleCanvasExportImage(args)

	// Editor input
	case "editor_set_mode":
		return s.handleEditorSetMode(args)
	case "editor_set_shape":
		return s.handleEditorSetShape(args)
	case "pointer_press", "pointer_drag", "pointer_release":
		return s.handlePointer(name, args)

	// Shapes
	case "shape_list":
		return s.shapeList(), nil
	case "shape_select":
		return s.handleShapeSelect(args)
	case "shape_set_coordinates":
		return s.handleShapeSetCoordinates(args)

	// Document
	case "document_save":
		return s.handleDocumentSave(args)
	case "document_load":
		return s.handleDocumentLoad(args)
	case "document_clear":
		s.session.Clear()
		return s.state(), nil
	case "document_export_pdf":
		return s.handleDocumentExportPDF(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing arguments", errkind.ErrInvalidArgument)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", errkind.ErrInvalidArgument, err)
	}
	return nil
}

type pathArgs struct {
	Path string `json:"path"`
}

func (a pathArgs) validate() error {
	if strings.TrimSpace(a.Path) == "" {
		return fmt.Errorf("%w: path is required", errkind.ErrMissingField)
	}
	return nil
}

func decodePath(args json.RawMessage) (string, error) {
	var a pathArgs
	if err := decodeArgs(args, &a); err != nil {
		return "", err
	}
	if err := a.validate(); err != nil {
		return "", err
	}
	return a.Path, nil
}

// === State reporting ===

type canvasState struct {
	Zoom            float64         `json:"zoom"`
	HasImage        bool            `json:"has_image"`
	ImagePath       string          `json:"image_path,omitempty"`
	Origin          *viewport.Point `json:"origin,omitempty"`
	ImageWidth      int             `json:"image_width,omitempty"`
	ImageHeight     int             `json:"image_height,omitempty"`
	DisplayedWidth  int             `json:"displayed_width,omitempty"`
	DisplayedHeight int             `json:"displayed_height,omitempty"`
	View            surface.Rect    `json:"view"`
	ViewportWidth   int             `json:"viewport_width"`
	ViewportHeight  int             `json:"viewport_height"`
	Mode            editor.Mode     `json:"mode"`
	ShapeKind       shapes.Kind     `json:"shape_kind"`
	ShapeCount      int             `json:"shape_count"`
	Selected        int             `json:"selected"`
	OverlayLabels   int             `json:"overlay_labels"`
}

func (s *Server) state() *canvasState {
	view := s.session.Viewport()
	doc := s.session.Document()
	w, h := s.canvas.ViewportSize()

	st := &canvasState{
		Zoom:           view.Zoom(),
		ImagePath:      s.session.ImagePath(),
		View:           s.canvas.ViewRect(),
		ViewportWidth:  w,
		ViewportHeight: h,
		Mode:           s.session.Mode(),
		ShapeKind:      s.session.ShapeKind(),
		ShapeCount:     doc.Len(),
		Selected:       -1,
		OverlayLabels:  len(view.Labels()),
	}
	if sel := doc.Selected(); sel != nil {
		st.Selected = doc.IndexOf(sel)
	}
	if o, ok := view.Origin(); ok {
		st.Origin = &o
	}
	if img := view.Original(); img != nil {
		st.HasImage = true
		st.ImageWidth, st.ImageHeight = img.Width, img.Height
	}
	if d := view.Displayed(); d != nil {
		st.DisplayedWidth, st.DisplayedHeight = d.Width, d.Height
	}
	return st
}

// === Canvas handlers ===

type canvasLoadImageArgs struct {
	Path    string  `json:"path"`
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
}

type canvasLoadImageResult struct {
	Image *imaging.ImageInfo `json:"image"`
	State *canvasState       `json:"state"`
}

func (s *Server) handleCanvasLoadImage(args json.RawMessage) (interface{}, error) {
	var a canvasLoadImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (pathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}
	info, err := s.session.LoadImage(a.Path, viewport.Point{X: a.OriginX, Y: a.OriginY})
	if err != nil {
		return nil, err
	}
	return &canvasLoadImageResult{Image: info, State: s.state()}, nil
}

type canvasZoomArgs struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Direction int     `json:"direction"`
	Steps     int     `json:"steps"`
}

type canvasZoomResult struct {
	Applied  int          `json:"applied"`
	Rejected int          `json:"rejected"`
	State    *canvasState `json:"state"`
}

func (s *Server) handleCanvasZoom(args json.RawMessage) (interface{}, error) {
	var a canvasZoomArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Direction == 0 {
		return nil, fmt.Errorf("%w: direction must be non-zero", errkind.ErrInvalidArgument)
	}
	if a.Steps == 0 {
		a.Steps = 1
	}
	if a.Steps < 0 || a.Steps > maxZoomSteps {
		return nil, fmt.Errorf("%w: steps must be in [1,%d]", errkind.ErrInvalidArgument, maxZoomSteps)
	}

	res := &canvasZoomResult{}
	for i := 0; i < a.Steps; i++ {
		if s.session.ZoomAt(a.X, a.Y, a.Direction) {
			res.Applied++
		} else {
			res.Rejected++
		}
	}
	res.State = s.state()
	return res, nil
}

type canvasPanArgs struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (s *Server) handleCanvasPan(args json.RawMessage) (interface{}, error) {
	var a canvasPanArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	s.session.PanBy(a.DX, a.DY)
	return s.state(), nil
}

type overlayResult struct {
	Zoom   float64          `json:"zoom"`
	Count  int              `json:"count"`
	Labels []viewport.Label `json:"labels"`
}

func (s *Server) handleCanvasPixelOverlay() (interface{}, error) {
	view := s.session.Viewport()
	labels := view.Labels()
	if labels == nil {
		labels = []viewport.Label{}
	}
	return &overlayResult{Zoom: view.Zoom(), Count: len(labels), Labels: labels}, nil
}

type screenPointArgs struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleCanvasSamplePixel(args json.RawMessage) (interface{}, error) {
	var a screenPointArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.session.SampleAt(a.X, a.Y)
}

type canvasSnapshotArgs struct {
	X1 *int `json:"x1"`
	Y1 *int `json:"y1"`
	X2 *int `json:"x2"`
	Y2 *int `json:"y2"`
}

func (s *Server) handleCanvasSnapshot(args json.RawMessage) (interface{}, error) {
	var a canvasSnapshotArgs
	if len(args) > 0 {
		if err := decodeArgs(args, &a); err != nil {
			return nil, err
		}
	}

	view := s.session.Viewport()
	img := view.Displayed()
	origin, ok := view.Origin()
	if img == nil || !ok {
		return nil, fmt.Errorf("%w: no image loaded", errkind.ErrInvalidArgument)
	}

	var region image.Rectangle
	switch {
	case a.X1 == nil && a.Y1 == nil && a.X2 == nil && a.Y2 == nil:
		// displayed pixels are canvas units offset by the image origin
		r := s.canvas.ViewRect()
		region = image.Rect(
			int(math.Floor(r.MinX-origin.X)), int(math.Floor(r.MinY-origin.Y)),
			int(math.Ceil(r.MaxX-origin.X)), int(math.Ceil(r.MaxY-origin.Y)),
		)
	case a.X1 != nil && a.Y1 != nil && a.X2 != nil && a.Y2 != nil:
		if *a.X1 >= *a.X2 || *a.Y1 >= *a.Y2 {
			return nil, fmt.Errorf("%w: invalid region: x1 must be < x2, y1 must be < y2", errkind.ErrInvalidArgument)
		}
		region = image.Rect(*a.X1, *a.Y1, *a.X2, *a.Y2)
	default:
		return nil, fmt.Errorf("%w: give all of x1, y1, x2, y2 or none", errkind.ErrInvalidArgument)
	}

	return export.Snapshot(img, region)
}

type canvasExportImageArgs struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

type exportResult struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Shapes int    `json:"shapes,omitempty"`
}

func (s *Server) handleCanvasExportImage(args json.RawMessage) (interface{}, error) {
	var a canvasExportImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := (pathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}

	img := s.session.Viewport().Displayed()
	if img == nil {
		return nil, fmt.Errorf("%w: no image loaded", errkind.ErrInvalidArgument)
	}
	format := a.Format
	if format == "" {
		format = export.FormatFromPath(a.Path)
	}
	if err := export.SaveRaster(a.Path, img, format); err != nil {
		return nil, err
	}
	return &exportResult{Path: a.Path, Format: format, Width: img.Width, Height: img.Height}, nil
}

// === Editor handlers ===

type editorSetModeArgs struct {
	Mode string `json:"mode"`
}

func (s *Server) handleEditorSetMode(args json.RawMessage) (interface{}, error) {
	var a editorSetModeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.SetMode(editor.Mode(a.Mode)); err != nil {
		return nil, err
	}
	return s.state(), nil
}

type editorSetShapeArgs struct {
	Shape string `json:"shape"`
}

func (s *Server) handleEditorSetShape(args json.RawMessage) (interface{}, error) {
	var a editorSetShapeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.SetShapeKind(shapes.Kind(a.Shape)); err != nil {
		return nil, err
	}
	return s.state(), nil
}

type pointerResult struct {
	// Active is the shape being drawn, or the selection in edit mode.
	Active *shapeInfo `json:"active,omitempty"`
	// Committed is set when a release added a shape to the document.
	Committed *shapeInfo `json:"committed,omitempty"`
	Fields    *[4]string `json:"fields,omitempty"`
}

func (s *Server) handlePointer(name string, args json.RawMessage) (interface{}, error) {
	var a screenPointArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	res := &pointerResult{}
	switch name {
	case "pointer_press":
		s.session.Press(a.X, a.Y)
	case "pointer_drag":
		s.session.Drag(a.X, a.Y)
	case "pointer_release":
		if sh := s.session.Release(a.X, a.Y); sh != nil {
			res.Committed = s.describe(sh)
		}
	}

	if d := s.session.Drawing(); d != nil {
		res.Active = s.describe(d)
	} else if sel := s.session.Document().Selected(); sel != nil {
		res.Active = s.describe(sel)
	}
	if fields, ok := s.session.CoordinateFields(); ok {
		res.Fields = &fields
	}
	return res, nil
}

// === Shape handlers ===

type shapeInfo struct {
	Index    int           `json:"index"`
	Selected bool          `json:"selected"`
	Record   shapes.Record `json:"record"`
}

func (s *Server) describe(sh shapes.Shape) *shapeInfo {
	doc := s.session.Document()
	return &shapeInfo{
		Index:    doc.IndexOf(sh),
		Selected: sh == doc.Selected(),
		Record:   sh.Record(),
	}
}

type shapeListResult struct {
	Count  int          `json:"count"`
	Shapes []*shapeInfo `json:"shapes"`
}

func (s *Server) shapeList() *shapeListResult {
	all := s.session.Document().Shapes()
	res := &shapeListResult{Count: len(all), Shapes: make([]*shapeInfo, 0, len(all))}
	for _, sh := range all {
		res.Shapes = append(res.Shapes, s.describe(sh))
	}
	return res
}

type shapeSelectArgs struct {
	Index *int `json:"index"`
}

func (s *Server) handleShapeSelect(args json.RawMessage) (interface{}, error) {
	var a shapeSelectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Index == nil {
		return nil, fmt.Errorf("%w: index is required", errkind.ErrMissingField)
	}
	if err := s.session.SelectIndex(*a.Index); err != nil {
		return nil, err
	}
	return s.shapeList(), nil
}

// fieldText accepts a coordinate entry field given as a JSON string or
// number and keeps its text for integer parsing.
type fieldText struct {
	set  bool
	text string
}

func (f *fieldText) UnmarshalJSON(b []byte) error {
	f.set = true
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.text = s
		return nil
	}
	f.text = string(b)
	return nil
}

type shapeSetCoordinatesArgs struct {
	X1 fieldText `json:"x1"`
	Y1 fieldText `json:"y1"`
	X2 fieldText `json:"x2"`
	Y2 fieldText `json:"y2"`
}

func (s *Server) handleShapeSetCoordinates(args json.RawMessage) (interface{}, error) {
	var a shapeSetCoordinatesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var fields [4]string
	for i, f := range []fieldText{a.X1, a.Y1, a.X2, a.Y2} {
		if !f.set {
			return nil, fmt.Errorf("%w: %s is required", errkind.ErrMissingField, []string{"x1", "y1", "x2", "y2"}[i])
		}
		fields[i] = f.text
	}

	if err := s.session.ApplyCoordinates(fields); err != nil {
		return nil, err
	}
	return s.describe(s.session.Document().Selected()), nil
}

// === Document handlers ===

func (s *Server) handleDocumentSave(args json.RawMessage) (interface{}, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}
	if err := s.session.SaveFile(path); err != nil {
		return nil, err
	}
	return &exportResult{Path: path, Format: "json", Shapes: s.session.Document().Len()}, nil
}

func (s *Server) handleDocumentLoad(args json.RawMessage) (interface{}, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}
	return s.session.LoadFile(path)
}

func (s *Server) handleDocumentExportPDF(args json.RawMessage) (interface{}, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errkind.ErrIOFailure, err)
	}
	doc := s.session.Document()
	if err := export.DocumentPDF(f, doc); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", errkind.ErrIOFailure, err)
	}
	return &exportResult{Path: path, Format: "pdf", Shapes: doc.Len()}, nil
}
