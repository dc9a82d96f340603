package server

import (
	"testing"
)

func toolMap() map[string]Tool {
	m := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		m[tool.Name] = tool
	}
	return m
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"canvas_load_image",
		"canvas_state",
		"canvas_zoom",
		"canvas_pan",
		"canvas_pixel_overlay",
		"canvas_sample_pixel",
		"canvas_snapshot",
		"canvas_export_image",
		"editor_set_mode",
		"editor_set_shape",
		"pointer_press",
		"pointer_drag",
		"pointer_release",
		"shape_list",
		"shape_select",
		"shape_set_coordinates",
		"document_save",
		"document_load",
		"document_clear",
		"document_export_pdf",
	}

	m := toolMap()
	for _, name := range expectedTools {
		if _, ok := m[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}

	// every defined tool must be dispatched
	s := New(DefaultConfig())
	for _, tool := range tools {
		if _, err := s.executeTool(tool.Name, nil); err != nil && err.Error() == "unknown tool: "+tool.Name {
			t.Errorf("%s is listed but not dispatched", tool.Name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			// Name should not be empty
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}

			// Description should not be empty
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}

			// InputSchema should exist
			if tool.InputSchema == nil {
				t.Error("Tool InputSchema is nil")
			}

			// InputSchema should be an object type
			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			// InputSchema should have properties
			props, ok := tool.InputSchema["properties"]
			if !ok {
				t.Error("InputSchema missing 'properties' field")
			}
			if props == nil {
				t.Error("InputSchema properties is nil")
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	tests := map[string][]string{
		"canvas_load_image":     {"path"},
		"canvas_zoom":           {"x", "y", "direction"},
		"canvas_pan":            {"dx", "dy"},
		"canvas_sample_pixel":   {"x", "y"},
		"canvas_export_image":   {"path"},
		"editor_set_mode":       {"mode"},
		"editor_set_shape":      {"shape"},
		"pointer_press":         {"x", "y"},
		"pointer_drag":          {"x", "y"},
		"pointer_release":       {"x", "y"},
		"shape_select":          {"index"},
		"shape_set_coordinates": {"x1", "y1", "x2", "y2"},
		"document_save":         {"path"},
		"document_load":         {"path"},
		"document_export_pdf":   {"path"},
	}

	m := toolMap()
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			tool, ok := m[name]
			if !ok {
				t.Fatalf("%s not found", name)
			}
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			have := make(map[string]bool)
			for _, r := range required {
				have[r] = true
			}
			for _, r := range want {
				if !have[r] {
					t.Errorf("%s should require '%s'", name, r)
				}
			}
		})
	}
}

func TestToolDefinitions_Enums(t *testing.T) {
	tests := []struct {
		tool, param string
		want        []string
	}{
		{"editor_set_mode", "mode", []string{"draw", "edit"}},
		{"editor_set_shape", "shape", []string{"line", "rectangle", "circle"}},
		{"canvas_export_image", "format", []string{"png", "jpeg", "bmp", "ppm"}},
	}

	m := toolMap()
	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			props, ok := m[tt.tool].InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("properties should be a map")
			}
			param, ok := props[tt.param].(map[string]interface{})
			if !ok {
				t.Fatalf("%s property should exist and be a map", tt.param)
			}
			enum, ok := param["enum"].([]string)
			if !ok {
				t.Fatalf("%s should have enum", tt.param)
			}
			if len(enum) != len(tt.want) {
				t.Fatalf("enum: got %v, want %v", enum, tt.want)
			}
			for i := range enum {
				if enum[i] != tt.want[i] {
					t.Errorf("enum[%d]: got %s, want %s", i, enum[i], tt.want[i])
				}
			}
		})
	}
}

func TestToolDefinitions_ZoomStepsDefault(t *testing.T) {
	props := toolMap()["canvas_zoom"].InputSchema["properties"].(map[string]interface{})
	steps, ok := props["steps"].(map[string]interface{})
	if !ok {
		t.Fatal("steps property not found")
	}
	if steps["default"] != 1 {
		t.Errorf("steps default: got %v, want 1", steps["default"])
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New(DefaultConfig())
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}

	tools, ok := result["tools"]
	if !ok {
		t.Fatal("Result should contain 'tools' key")
	}

	toolsList, ok := tools.([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}

	// Should match GetToolDefinitions
	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}

func TestToolStruct(t *testing.T) {
	tool := Tool{
		Name:        "test_tool",
		Description: "A test tool",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"param1": map[string]interface{}{
					"type":        "string",
					"description": "A test parameter",
				},
			},
			"required": []string{"param1"},
		},
	}

	if tool.Name != "test_tool" {
		t.Errorf("Name: got %s, want test_tool", tool.Name)
	}
	if tool.Description != "A test tool" {
		t.Errorf("Description: got %s, want 'A test tool'", tool.Description)
	}
	if tool.InputSchema == nil {
		t.Error("InputSchema should not be nil")
	}
}
