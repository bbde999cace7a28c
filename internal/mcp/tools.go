package mcp

import (
	"context"

	"github.com/claude/workouttracker/internal/performance"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List the workout days of the program in order, each with its exercises, set counts and target reps."),
)

var toolGetExercises = mcp.NewTool("get_exercises",
	mcp.WithDescription("List the exercises of one workout day."),
	mcp.WithString("workout", mcp.Required(), mcp.Description("Workout day name (see list_workouts)")),
)

var toolGetSheet = mcp.NewTool("get_sheet",
	mcp.WithDescription("Get the recorded weight and reps of every set of a workout day for one week, plus each exercise's 8-week progress series."),
	mcp.WithString("workout", mcp.Description("Workout day name. Defaults to the first day.")),
	mcp.WithNumber("week", mcp.Description("Week 1-8. Defaults to 1."), mcp.Min(1), mcp.Max(8)),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Get the 8-week progress series of one exercise: average weight and total volume per week. Weeks without entries are zero."),
	mcp.WithString("workout", mcp.Required(), mcp.Description("Workout day name")),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name within the workout day")),
)

var toolRecordSet = mcp.NewTool("record_set",
	mcp.WithDescription("Record weight and/or reps for one set. Values are stored as given; an empty string clears a field."),
	mcp.WithString("workout", mcp.Required(), mcp.Description("Workout day name")),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name within the workout day")),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Week 1-8"), mcp.Min(1), mcp.Max(8)),
	mcp.WithNumber("set", mcp.Required(), mcp.Description("Set number, starting at 1"), mcp.Min(1)),
	mcp.WithString("weight", mcp.Description("Weight in lbs, e.g. '135'")),
	mcp.WithString("reps", mcp.Description("Repetitions, e.g. '8'")),
)

// --- Tool handlers ---

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days, err := h.ds.Workouts(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(days)
}

func (h *handlers) getExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workout, err := req.RequireString("workout")
	if err != nil {
		return mcp.NewToolResultError("workout parameter is required"), nil
	}

	exercises, err := h.ds.Exercises(ctx, workout)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(exercises)
}

func (h *handlers) getSheet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sheet, err := h.ds.Sheet(ctx, req.GetString("workout", ""), req.GetInt("week", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(sheet)
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workout, err := req.RequireString("workout")
	if err != nil {
		return mcp.NewToolResultError("workout parameter is required"), nil
	}
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	points, err := h.ds.Series(ctx, workout, exercise)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(points)
}

func (h *handlers) recordSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var key performance.Key
	var err error
	if key.Workout, err = req.RequireString("workout"); err != nil {
		return mcp.NewToolResultError("workout parameter is required"), nil
	}
	if key.Exercise, err = req.RequireString("exercise"); err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	if key.Week, err = req.RequireInt("week"); err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	if key.Set, err = req.RequireInt("set"); err != nil {
		return mcp.NewToolResultError("set parameter is required"), nil
	}

	args := req.GetArguments()
	var entry performance.SetEntry
	recorded := false
	for _, field := range []performance.Field{performance.FieldWeight, performance.FieldReps} {
		if _, ok := args[string(field)]; !ok {
			continue
		}
		value, err := req.RequireString(string(field))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		entry, err = h.ds.Record(ctx, key, field, value)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		recorded = true
	}
	if !recorded {
		return mcp.NewToolResultError("at least one of weight or reps is required"), nil
	}

	h.log.Info("mcp record_set", "workout", key.Workout, "exercise", key.Exercise, "week", key.Week, "set", key.Set)
	return jsonResult(map[string]any{"key": key, "entry": entry})
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
