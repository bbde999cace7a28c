package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/workouttracker/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) program(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	days, err := h.ds.Workouts(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(map[string]any{
		"weeks":    catalog.ProgramWeeks,
		"workouts": days,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
