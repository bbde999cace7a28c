// Command workouttracker-mcp serves the tracker's MCP tools over stdio,
// forwarding every call to a running workouttracker's REST API.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/claude/workouttracker/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	baseURL := flag.String("url", envOr("WORKOUTTRACKER_URL", "http://127.0.0.1:8080"), "workouttracker base URL")
	flag.Parse()

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	log.Info("workouttracker-mcp starting", "version", Version, "url", *baseURL)

	s := mcp.New(mcp.NewHTTPClient(*baseURL), Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
