package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/claude/workouttracker/internal/catalog"
	"github.com/claude/workouttracker/internal/performance"
	"github.com/claude/workouttracker/internal/progress"
	"github.com/claude/workouttracker/internal/storage"
	"github.com/claude/workouttracker/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

const upperDay = "Upper Body Strength + Cardio"

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandlers(t *testing.T) *handlers {
	t.Helper()
	tr := tracker.New(context.Background(), catalog.Default(), storage.NewMemorySlot(), quietLog())
	return &handlers{ds: NewLocal(tr), log: quietLog()}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("result has no text content")
	return ""
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), v); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

// TestNewRegistersTools verifies the server builds with every tool registered.
func TestNewRegistersTools(t *testing.T) {
	tr := tracker.New(context.Background(), catalog.Default(), storage.NewMemorySlot(), quietLog())
	s := New(NewLocal(tr), "test", quietLog())
	if s == nil {
		t.Fatal("New returned nil")
	}
	names := []string{toolListWorkouts.Name, toolGetExercises.Name, toolGetSheet.Name, toolGetProgress.Name, toolRecordSet.Name}
	want := []string{"list_workouts", "get_exercises", "get_sheet", "get_progress", "record_set"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("tool %d = %q, want %q", i, names[i], want[i])
		}
	}
}

// TestListWorkouts verifies the program is returned in order.
func TestListWorkouts(t *testing.T) {
	h := newTestHandlers(t)
	res, err := h.listWorkouts(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	var days []catalog.WorkoutDay
	decodeResult(t, res, &days)
	if len(days) != 4 || days[1].Name != upperDay {
		t.Errorf("days = %+v", days)
	}
}

// TestGetExercisesUnknownWorkout verifies lookup failures surface as tool errors.
func TestGetExercisesUnknownWorkout(t *testing.T) {
	h := newTestHandlers(t)

	res, err := h.getExercises(context.Background(), callRequest(map[string]any{"workout": "Legs"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error for unknown workout")
	}

	res, _ = h.getExercises(context.Background(), callRequest(nil))
	if !res.IsError {
		t.Error("expected tool error for missing workout")
	}
}

// TestRecordSetAndProgress verifies record_set writes through and
// get_progress aggregates the recorded week.
func TestRecordSetAndProgress(t *testing.T) {
	h := newTestHandlers(t)
	ctx := context.Background()

	for _, args := range []map[string]any{
		{"workout": upperDay, "exercise": "Bench Press", "week": float64(1), "set": float64(1), "weight": "100", "reps": "10"},
		{"workout": upperDay, "exercise": "Bench Press", "week": float64(1), "set": float64(2), "weight": "110", "reps": "8"},
	} {
		res, err := h.recordSet(ctx, callRequest(args))
		if err != nil {
			t.Fatal(err)
		}
		var out struct {
			Entry performance.SetEntry `json:"entry"`
		}
		decodeResult(t, res, &out)
		if out.Entry.Weight != args["weight"] || out.Entry.Reps != args["reps"] {
			t.Errorf("entry = %+v, want %v/%v", out.Entry, args["weight"], args["reps"])
		}
	}

	res, err := h.getProgress(ctx, callRequest(map[string]any{"workout": upperDay, "exercise": "Bench Press"}))
	if err != nil {
		t.Fatal(err)
	}
	var points []progress.Point
	decodeResult(t, res, &points)
	if len(points) != 8 {
		t.Fatalf("got %d points, want 8", len(points))
	}
	if points[0].AvgWeight != 105 || points[0].TotalVolume != 3780 {
		t.Errorf("week 1 = %+v, want avg 105 volume 3780", points[0])
	}
}

// TestRecordSetValidation verifies bad keys and empty edits are rejected.
func TestRecordSetValidation(t *testing.T) {
	h := newTestHandlers(t)
	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"no fields", map[string]any{"workout": upperDay, "exercise": "Bench Press", "week": 1.0, "set": 1.0}, "at least one"},
		{"missing set", map[string]any{"workout": upperDay, "exercise": "Bench Press", "week": 1.0, "weight": "1"}, "set"},
		{"week out of range", map[string]any{"workout": upperDay, "exercise": "Bench Press", "week": 9.0, "set": 1.0, "weight": "1"}, "week"},
		{"set out of range", map[string]any{"workout": upperDay, "exercise": "Jump Rope", "week": 1.0, "set": 2.0, "reps": "1"}, "set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.recordSet(context.Background(), callRequest(tt.args))
			if err != nil {
				t.Fatal(err)
			}
			if !res.IsError {
				t.Fatal("expected tool error")
			}
			if msg := resultText(t, res); !strings.Contains(msg, tt.want) {
				t.Errorf("error = %q, want it to mention %q", msg, tt.want)
			}
		})
	}
}

// TestGetSheetDefaults verifies an empty request returns the first day, week 1.
func TestGetSheetDefaults(t *testing.T) {
	h := newTestHandlers(t)
	res, err := h.getSheet(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	var sheet tracker.Sheet
	decodeResult(t, res, &sheet)
	if sheet.Selection.Workout != "Lower Body Strength + Core" || sheet.Selection.Week != 1 {
		t.Errorf("selection = %+v", sheet.Selection)
	}
	if len(sheet.Exercises) != 5 {
		t.Errorf("got %d exercises, want 5", len(sheet.Exercises))
	}
}

// TestProgramResource verifies the program resource lists every day.
func TestProgramResource(t *testing.T) {
	h := newTestHandlers(t)
	var req mcp.ReadResourceRequest
	req.Params.URI = resProgram.URI

	contents, err := h.program(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("got %d contents, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content type = %T", contents[0])
	}
	var program struct {
		Weeks    int                  `json:"weeks"`
		Workouts []catalog.WorkoutDay `json:"workouts"`
	}
	if err := json.Unmarshal([]byte(text.Text), &program); err != nil {
		t.Fatal(err)
	}
	if program.Weeks != 8 || len(program.Workouts) != 4 {
		t.Errorf("program = %d weeks, %d workouts", program.Weeks, len(program.Workouts))
	}
}
