// Package tracker is the controller between the UI surfaces and the
// performance store: it owns the live store, validates every edit against
// the catalog and writes each change through to the persistence slot.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/claude/workouttracker/internal/catalog"
	"github.com/claude/workouttracker/internal/performance"
	"github.com/claude/workouttracker/internal/progress"
)

// ErrInvalidKey is returned for a week or set number outside the program.
var ErrInvalidKey = errors.New("invalid key")

// Selection is the workout day and week currently shown.
type Selection struct {
	Workout string `json:"workout"`
	Week    int    `json:"week"`
}

// Tracker holds the in-memory store for one running instance.
type Tracker struct {
	catalog *catalog.Catalog
	slot    performance.Slot
	log     *slog.Logger

	mu       sync.Mutex
	store    performance.Store
	onRecord func(performance.Key, performance.Field)
}

// New hydrates a Tracker from slot. Load failures leave it empty.
func New(ctx context.Context, cat *catalog.Catalog, slot performance.Slot, log *slog.Logger) *Tracker {
	return &Tracker{
		catalog: cat,
		slot:    slot,
		log:     log,
		store:   performance.Load(ctx, slot, log),
	}
}

// Catalog returns the program catalog the tracker validates against.
func (t *Tracker) Catalog() *catalog.Catalog {
	return t.catalog
}

// Resolve turns raw selector values into a Selection. Empty values fall back
// to the first workout day and week 1.
func (t *Tracker) Resolve(workout, week string) (Selection, error) {
	sel := Selection{Workout: workout, Week: 1}
	if sel.Workout == "" {
		sel.Workout = t.catalog.First()
	}
	if !t.catalog.Has(sel.Workout) {
		return Selection{}, &catalog.NotFoundError{Kind: "workout", Name: sel.Workout}
	}
	if week != "" {
		n, err := strconv.Atoi(week)
		if err != nil {
			return Selection{}, fmt.Errorf("%w: week %q is not a number", ErrInvalidKey, week)
		}
		sel.Week = n
	}
	if err := checkWeek(sel.Week); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// Validate checks that key addresses a set the catalog defines.
func (t *Tracker) Validate(key performance.Key) error {
	ex, err := t.catalog.Exercise(key.Workout, key.Exercise)
	if err != nil {
		return err
	}
	if err := checkWeek(key.Week); err != nil {
		return err
	}
	if key.Set < 1 || key.Set > ex.Sets {
		return fmt.Errorf("%w: set %d outside 1..%d for %q", ErrInvalidKey, key.Set, ex.Sets, key.Exercise)
	}
	return nil
}

// Record sets one field of one set and persists the whole store. A failed
// save is logged; the in-memory value still stands. The save is not tied to
// ctx cancellation, so a caller that goes away mid-edit cannot drop it.
func (t *Tracker) Record(ctx context.Context, key performance.Key, field performance.Field, value string) (performance.SetEntry, error) {
	if err := t.Validate(key); err != nil {
		return performance.SetEntry{}, err
	}
	if _, err := performance.ParseField(string(field)); err != nil {
		return performance.SetEntry{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.store = performance.Set(t.store, key, field, value)
	if err := performance.Save(context.WithoutCancel(ctx), t.slot, t.store, t.log); err != nil {
		t.log.Warn("edit kept in memory only", "workout", key.Workout, "exercise", key.Exercise,
			"week", key.Week, "set", key.Set)
	}
	if t.onRecord != nil {
		t.onRecord(key, field)
	}
	return performance.Get(t.store, key), nil
}

// OnRecord registers fn to run after every accepted edit, whichever surface
// made it. It replaces any earlier hook.
func (t *Tracker) OnRecord(fn func(performance.Key, performance.Field)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRecord = fn
}

// Entry returns the recorded values for key, empty if none.
func (t *Tracker) Entry(key performance.Key) performance.SetEntry {
	return performance.Get(t.Snapshot(), key)
}

// Series returns the 8-week progress series for one exercise of a workout day.
func (t *Tracker) Series(workout, exercise string) ([]progress.Point, error) {
	if _, err := t.catalog.Exercise(workout, exercise); err != nil {
		return nil, err
	}
	return progress.ComputeSeries(t.Snapshot(), workout, exercise), nil
}

// Snapshot returns the current store. Stores are never mutated in place, so
// the result stays valid after later edits.
func (t *Tracker) Snapshot() performance.Store {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store
}

func checkWeek(week int) error {
	if week < 1 || week > catalog.ProgramWeeks {
		return fmt.Errorf("%w: week %d outside 1..%d", ErrInvalidKey, week, catalog.ProgramWeeks)
	}
	return nil
}
