package mcp

import (
	"context"
	"strconv"

	"github.com/claude/workouttracker/internal/catalog"
	"github.com/claude/workouttracker/internal/performance"
	"github.com/claude/workouttracker/internal/progress"
	"github.com/claude/workouttracker/internal/tracker"
)

// DataSource abstracts the tracker for MCP tools. Both Local (in-process)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Workouts(ctx context.Context) ([]catalog.WorkoutDay, error)
	Exercises(ctx context.Context, workout string) ([]catalog.Exercise, error)
	// Sheet returns one workout day for one week. Empty workout or week 0
	// selects the defaults.
	Sheet(ctx context.Context, workout string, week int) (tracker.Sheet, error)
	Series(ctx context.Context, workout, exercise string) ([]progress.Point, error)
	Record(ctx context.Context, key performance.Key, field performance.Field, value string) (performance.SetEntry, error)
}

// Local serves tools straight from a Tracker in the same process.
type Local struct {
	tr *tracker.Tracker
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

// NewLocal wraps tr as a DataSource.
func NewLocal(tr *tracker.Tracker) *Local {
	return &Local{tr: tr}
}

func (l *Local) Workouts(context.Context) ([]catalog.WorkoutDay, error) {
	return l.tr.Catalog().Days(), nil
}

func (l *Local) Exercises(_ context.Context, workout string) ([]catalog.Exercise, error) {
	return l.tr.Catalog().Exercises(workout)
}

func (l *Local) Sheet(_ context.Context, workout string, week int) (tracker.Sheet, error) {
	var w string
	if week != 0 {
		w = strconv.Itoa(week)
	}
	sel, err := l.tr.Resolve(workout, w)
	if err != nil {
		return tracker.Sheet{}, err
	}
	return l.tr.Sheet(sel)
}

func (l *Local) Series(_ context.Context, workout, exercise string) ([]progress.Point, error) {
	return l.tr.Series(workout, exercise)
}

func (l *Local) Record(ctx context.Context, key performance.Key, field performance.Field, value string) (performance.SetEntry, error) {
	return l.tr.Record(ctx, key, field, value)
}
