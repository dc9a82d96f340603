package server

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ironsheep/draw-tools-mcp/internal/editor"
	"github.com/ironsheep/draw-tools-mcp/internal/shapes"
	"github.com/ironsheep/draw-tools-mcp/internal/viewport"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel        = "DRAW_MCP_LOG_LEVEL"
	EnvCanvasSize      = "DRAW_MCP_CANVAS_SIZE"
	EnvSelectionColor  = "DRAW_MCP_SELECTION_COLOR"
	EnvMaxScaledPixels = "DRAW_MCP_MAX_SCALED_PIXELS"
)

// Config holds the server settings.
type Config struct {
	LogLevel        string
	CanvasWidth     int
	CanvasHeight    int
	SelectionColor  string
	MaxScaledPixels int
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:     800,
		CanvasHeight:    600,
		SelectionColor:  editor.DefaultSelectionColor,
		MaxScaledPixels: viewport.DefaultMaxScaledPixels,
	}
}

// Debug reports whether debug logging is on.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}

// ConfigFromEnv builds a Config from the process environment. Invalid values
// are logged and replaced by their defaults.
func ConfigFromEnv() Config {
	return configFrom(os.Getenv)
}

func configFrom(getenv func(string) string) Config {
	cfg := DefaultConfig()
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getenv(EnvLogLevel)))

	if v := getenv(EnvCanvasSize); v != "" {
		w, h, err := parseSize(v)
		if err != nil {
			log.Printf("Ignoring %s=%q: %v", EnvCanvasSize, v, err)
		} else {
			cfg.CanvasWidth, cfg.CanvasHeight = w, h
		}
	}

	if v := getenv(EnvSelectionColor); v != "" {
		if _, ok, err := shapes.ResolveColor(v); err != nil || !ok {
			log.Printf("Ignoring %s=%q: not a color", EnvSelectionColor, v)
		} else {
			cfg.SelectionColor = v
		}
	}

	if v := getenv(EnvMaxScaledPixels); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Printf("Ignoring %s=%q: want a positive integer", EnvMaxScaledPixels, v)
		} else {
			cfg.MaxScaledPixels = n
		}
	}

	return cfg
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("want WIDTHxHEIGHT")
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("bad width %q", ws)
	}
	h, err := strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("bad height %q", hs)
	}
	return w, h, nil
}
