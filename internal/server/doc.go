// Package server implements the MCP (Model Context Protocol) server for the
// drawing tools.
//
// The server holds one editor session: a canvas of recorded primitives, the
// shape document drawn on it and an optional raster backdrop that can be
// zoomed about a cursor position, panned and inspected pixel by pixel.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Canvas and backdrop:
//   - canvas_load_image: Load a pixel map or other raster as the backdrop
//   - canvas_state: Zoom, origin, scroll rectangle and editor state
//   - canvas_zoom: Cursor-anchored zoom steps
//   - canvas_pan: Scroll the visible region
//   - canvas_pixel_overlay: Per-pixel RGB labels at high zoom
//   - canvas_sample_pixel: Original color under a screen position
//   - canvas_snapshot: Base64 PNG of the displayed raster
//   - canvas_export_image: Write the displayed raster to a file
//
// Editor input:
//   - editor_set_mode, editor_set_shape
//   - pointer_press, pointer_drag, pointer_release
//
// Shapes and documents:
//   - shape_list, shape_select, shape_set_coordinates
//   - document_save, document_load, document_clear, document_export_pdf
//
// Pointer, zoom and sample positions are screen coordinates, relative to the
// top-left corner of the visible area.
//
// # Configuration
//
// ConfigFromEnv reads DRAW_MCP_LOG_LEVEL, DRAW_MCP_CANVAS_SIZE,
// DRAW_MCP_SELECTION_COLOR and DRAW_MCP_MAX_SCALED_PIXELS.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, which starts with the errkind category
//
// # Usage
//
//	srv := server.New(server.ConfigFromEnv())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
