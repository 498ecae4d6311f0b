package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"

	"github.com/ironsheep/sketch-tools-mcp/internal/detect"
	"github.com/ironsheep/sketch-tools-mcp/internal/server"
	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
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
			fmt.Printf("sketch-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("sketch-tools-mcp - MCP server for freehand sketch analysis")
			fmt.Println()
			fmt.Println("Usage: sketch-tools-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  SKETCH_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  SKETCH_MCP_PARAMS=<path>      Detection parameter overrides (YAML)")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Local overrides for development; missing file is fine.
	_ = godotenv.Load()

	// Log to stderr (stdout is for MCP protocol)
	level := slog.LevelInfo
	if os.Getenv("SKETCH_MCP_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Debug("starting sketch MCP server",
		"version", Version, "built", BuildTime, "commit", GitCommit)

	params := sketch.DefaultParams()
	if path := os.Getenv("SKETCH_MCP_PARAMS"); path != "" {
		loaded, err := sketch.LoadParamsFile(path)
		if err != nil {
			fatal(logger, xerrors.New("failed to load detection parameters", err))
		}
		params = loaded
		logger.Debug("loaded detection parameters", "path", path)
	}

	engine, err := detect.NewEngine(params)
	if err != nil {
		fatal(logger, xerrors.New("invalid detection parameters", err))
	}

	srv := server.New(engine, logger)
	if err := srv.Run(); err != nil {
		fatal(logger, xerrors.New("server error", err))
	}
}

func fatal(logger *slog.Logger, err error) {
	logger.Error(err.Error())
	os.Exit(1)
}
