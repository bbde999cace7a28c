package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("WorkoutTracker", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("8-week workout tracker. Weeks run 1-8; sets are numbered from 1 up to the set count of the exercise. Weight and reps are stored as typed and parsed leniently for progress."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetExercises, Handler: h.getExercises},
		server.ServerTool{Tool: toolGetSheet, Handler: h.getSheet},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolRecordSet, Handler: h.recordSet},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resProgram, Handler: h.program},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resProgram = mcp.NewResource(
	"workouttracker://program",
	"Program",
	mcp.WithResourceDescription("The workout days of the 8-week program with exercises, set counts and target reps"),
	mcp.WithMIMEType("application/json"),
)
