package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	s := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

// screenPoint is the schema of a pointer position.
func screenPoint() map[string]interface{} {
	return map[string]interface{}{
		"x": prop("number", "Screen X in viewport pixels (0 = left edge of the visible area)"),
		"y": prop("number", "Screen Y in viewport pixels (0 = top edge of the visible area)"),
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Canvas and raster backdrop
		{
			Name:        "canvas_load_image",
			Description: "Load an image file as the canvas backdrop. Portable pixel maps (P3/P6, 8- or 16-bit) are decoded natively; PNG, JPEG, GIF, BMP and TIFF go through the image codec. Returns the file metadata and the new viewport state.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":     prop("string", "Absolute path to the image file"),
				"origin_x": prop("number", "Canvas X of the image's top-left corner. Default 0"),
				"origin_y": prop("number", "Canvas Y of the image's top-left corner. Default 0"),
			}, "path"),
		},
		{
			Name:        "canvas_state",
			Description: "Report the zoom level, image origin, scroll rectangle, editor mode and document size.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "canvas_zoom",
			Description: "Zoom in (direction > 0, x1.1 per step) or out (direction < 0, x0.9 per step) keeping the point under the cursor fixed. Steps that would leave the range 0.05-100 are rejected without changing anything.",
			InputSchema: objectSchema(map[string]interface{}{
				"x":         prop("number", "Cursor screen X"),
				"y":         prop("number", "Cursor screen Y"),
				"direction": prop("integer", "Positive to zoom in, negative to zoom out"),
				"steps": map[string]interface{}{
					"type":        "integer",
					"description": "Number of zoom steps to apply. Default 1",
					"default":     1,
				},
			}, "x", "y", "direction"),
		},
		{
			Name:        "canvas_pan",
			Description: "Scroll the visible region by (dx, dy) canvas units. Zoom and coordinates are unchanged.",
			InputSchema: objectSchema(map[string]interface{}{
				"dx": prop("number", "Horizontal scroll in canvas units"),
				"dy": prop("number", "Vertical scroll in canvas units"),
			}, "dx", "dy"),
		},
		{
			Name:        "canvas_pixel_overlay",
			Description: "Return the per-pixel RGB labels for the visible part of the image. Labels appear from zoom 20 upward and are suppressed when more than 500 image pixels are visible.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "canvas_sample_pixel",
			Description: "Get the original image color under a screen position.",
			InputSchema: objectSchema(screenPoint(), "x", "y"),
		},
		{
			Name:        "canvas_snapshot",
			Description: "Return the displayed (zoomed) raster as a base64-encoded PNG. Without a region, the part inside the visible area is returned.",
			InputSchema: objectSchema(map[string]interface{}{
				"x1": prop("integer", "Left edge in displayed pixels (inclusive)"),
				"y1": prop("integer", "Top edge in displayed pixels (inclusive)"),
				"x2": prop("integer", "Right edge in displayed pixels (exclusive)"),
				"y2": prop("integer", "Bottom edge in displayed pixels (exclusive)"),
			}),
		},
		{
			Name:        "canvas_export_image",
			Description: "Write the displayed (zoomed) raster to a file as PNG, JPEG, BMP or PPM.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": prop("string", "Absolute path of the output file"),
				"format": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"png", "jpeg", "bmp", "ppm"},
					"description": "Output format. Default: inferred from the extension",
				},
			}, "path"),
		},

		// Editor input
		{
			Name:        "editor_set_mode",
			Description: "Choose what pointer input does: draw creates shapes, edit selects and moves them.",
			InputSchema: objectSchema(map[string]interface{}{
				"mode": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"draw", "edit"},
					"description": "Editor mode",
				},
			}, "mode"),
		},
		{
			Name:        "editor_set_shape",
			Description: "Choose the kind of shape draw mode creates.",
			InputSchema: objectSchema(map[string]interface{}{
				"shape": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"line", "rectangle", "circle"},
					"description": "Shape kind",
				},
			}, "shape"),
		},
		{
			Name:        "pointer_press",
			Description: "Press the pointer. Draw mode starts a new shape; edit mode selects the topmost shape under the pointer.",
			InputSchema: objectSchema(screenPoint(), "x", "y"),
		},
		{
			Name:        "pointer_drag",
			Description: "Move the pressed pointer. Draw mode resizes the new shape; edit mode moves the selection.",
			InputSchema: objectSchema(screenPoint(), "x", "y"),
		},
		{
			Name:        "pointer_release",
			Description: "Release the pointer. Draw mode commits the new shape to the document.",
			InputSchema: objectSchema(screenPoint(), "x", "y"),
		},

		// Shapes
		{
			Name:        "shape_list",
			Description: "List the document's shapes back to front with their coordinates and colors.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "shape_select",
			Description: "Select the shape at a z-index, or clear the selection with -1.",
			InputSchema: objectSchema(map[string]interface{}{
				"index": prop("integer", "Z-index from shape_list, or -1"),
			}, "index"),
		},
		{
			Name:        "shape_set_coordinates",
			Description: "Set the selected shape's x1, y1, x2, y2 from integer text fields. Invalid input leaves the shape unchanged.",
			InputSchema: objectSchema(map[string]interface{}{
				"x1": prop("string", "First corner X"),
				"y1": prop("string", "First corner Y"),
				"x2": prop("string", "Second corner X"),
				"y2": prop("string", "Second corner Y"),
			}, "x1", "y1", "x2", "y2"),
		},

		// Document
		{
			Name:        "document_save",
			Description: "Save the document as a JSON array of shape records.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": prop("string", "Absolute path of the JSON file"),
			}, "path"),
		},
		{
			Name:        "document_load",
			Description: "Replace the document with the shapes in a JSON file. Records with an unknown type or missing fields are skipped and reported.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": prop("string", "Absolute path of the JSON file"),
			}, "path"),
		},
		{
			Name:        "document_clear",
			Description: "Remove every shape and the selection. The image backdrop stays.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},
		{
			Name:        "document_export_pdf",
			Description: "Render the document's shapes as vector graphics into a PDF file.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": prop("string", "Absolute path of the PDF file"),
			}, "path"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
