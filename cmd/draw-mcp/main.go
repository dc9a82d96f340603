package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/draw-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("draw-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("draw-tools-mcp - MCP server for a shape editor with a zoomable pixel-map backdrop")
			fmt.Println()
			fmt.Println("Usage: draw-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug            Enable debug logging\n", server.EnvLogLevel)
			fmt.Printf("  %s=800x600         Visible canvas area in pixels\n", server.EnvCanvasSize)
			fmt.Printf("  %s=red          Highlight color of the selected shape\n", server.EnvSelectionColor)
			fmt.Printf("  %s=50000000   Largest zoomed raster, in pixels\n", server.EnvMaxScaledPixels)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.ConfigFromEnv()
	if cfg.Debug() {
		log.Printf("Draw MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("canvas %dx%d, selection %s", cfg.CanvasWidth, cfg.CanvasHeight, cfg.SelectionColor)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
