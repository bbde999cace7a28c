package tracker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/claude/workouttracker/internal/catalog"
	"github.com/claude/workouttracker/internal/performance"
	"github.com/claude/workouttracker/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// twoDayCatalog has an exercise name shared by both days.
func twoDayCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.WorkoutDay{
		{Name: "Push", Exercises: []catalog.Exercise{
			{Name: "Bench Press", Sets: 3, TargetReps: "5"},
			{Name: "Dips", Sets: 2, TargetReps: "10"},
		}},
		{Name: "Pull", Exercises: []catalog.Exercise{
			{Name: "Bench Press", Sets: 1, TargetReps: "20"},
		}},
	})
	require.NoError(t, err)
	return c
}

type brokenSlot struct{ writes int }

func (b *brokenSlot) Read(context.Context) ([]byte, error) { return []byte("{corrupt"), nil }
func (b *brokenSlot) Write(context.Context, []byte) error {
	b.writes++
	return errors.New("quota exceeded")
}

func TestResolveDefaults(t *testing.T) {
	tr := New(context.Background(), twoDayCatalog(t), storage.NewMemorySlot(), quietLog())

	sel, err := tr.Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, Selection{Workout: "Push", Week: 1}, sel)

	sel, err = tr.Resolve("Pull", "8")
	require.NoError(t, err)
	assert.Equal(t, Selection{Workout: "Pull", Week: 8}, sel)
}

func TestResolveRejectsBadInput(t *testing.T) {
	tr := New(context.Background(), twoDayCatalog(t), storage.NewMemorySlot(), quietLog())

	_, err := tr.Resolve("Legs", "1")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	for _, week := range []string{"0", "9", "x", "-1"} {
		_, err = tr.Resolve("Push", week)
		assert.ErrorIs(t, err, ErrInvalidKey, "week %q", week)
	}
}

func TestRecordWritesThrough(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	tr := New(ctx, twoDayCatalog(t), slot, quietLog())

	key := performance.Key{Workout: "Push", Exercise: "Bench Press", Week: 2, Set: 3}
	entry, err := tr.Record(ctx, key, performance.FieldWeight, "185")
	require.NoError(t, err)
	assert.Equal(t, performance.SetEntry{Weight: "185"}, entry)

	entry, err = tr.Record(ctx, key, performance.FieldReps, "5")
	require.NoError(t, err)
	assert.Equal(t, performance.SetEntry{Weight: "185", Reps: "5"}, entry)

	// A fresh tracker on the same slot sees the persisted edit.
	reloaded := New(ctx, twoDayCatalog(t), slot, quietLog())
	assert.Equal(t, entry, reloaded.Entry(key))
}

func TestRecordValidatesAgainstCatalog(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	tr := New(ctx, twoDayCatalog(t), slot, quietLog())

	cases := []struct {
		key  performance.Key
		want error
	}{
		{performance.Key{Workout: "Legs", Exercise: "Squat", Week: 1, Set: 1}, catalog.ErrNotFound},
		{performance.Key{Workout: "Pull", Exercise: "Dips", Week: 1, Set: 1}, catalog.ErrNotFound},
		{performance.Key{Workout: "Push", Exercise: "Dips", Week: 0, Set: 1}, ErrInvalidKey},
		{performance.Key{Workout: "Push", Exercise: "Dips", Week: 9, Set: 1}, ErrInvalidKey},
		{performance.Key{Workout: "Push", Exercise: "Dips", Week: 1, Set: 3}, ErrInvalidKey},
		{performance.Key{Workout: "Push", Exercise: "Dips", Week: 1, Set: 0}, ErrInvalidKey},
	}
	for _, tc := range cases {
		_, err := tr.Record(ctx, tc.key, performance.FieldWeight, "1")
		assert.ErrorIs(t, err, tc.want, "%+v", tc.key)
	}

	_, err := tr.Record(ctx, performance.Key{Workout: "Push", Exercise: "Dips", Week: 1, Set: 1}, "rir", "2")
	assert.ErrorIs(t, err, ErrInvalidKey)

	assert.Empty(t, tr.Snapshot())
	_, err = slot.Read(ctx)
	assert.ErrorIs(t, err, performance.ErrSlotEmpty, "rejected edits must not be saved")
}

// A corrupt slot yields an empty store, and failing saves keep the session going.
func TestBrokenSlotIsNonFatal(t *testing.T) {
	ctx := context.Background()
	slot := &brokenSlot{}
	tr := New(ctx, twoDayCatalog(t), slot, quietLog())
	assert.Empty(t, tr.Snapshot())

	key := performance.Key{Workout: "Push", Exercise: "Dips", Week: 1, Set: 1}
	entry, err := tr.Record(ctx, key, performance.FieldReps, "12")
	require.NoError(t, err)
	assert.Equal(t, "12", entry.Reps)
	assert.Equal(t, "12", tr.Entry(key).Reps)
	assert.Equal(t, 1, slot.writes)
}

func TestSnapshotIsStable(t *testing.T) {
	ctx := context.Background()
	tr := New(ctx, twoDayCatalog(t), storage.NewMemorySlot(), quietLog())
	key := performance.Key{Workout: "Push", Exercise: "Dips", Week: 1, Set: 1}

	_, err := tr.Record(ctx, key, performance.FieldWeight, "10")
	require.NoError(t, err)
	before := tr.Snapshot()

	_, err = tr.Record(ctx, key, performance.FieldWeight, "20")
	require.NoError(t, err)
	assert.Equal(t, "10", performance.Get(before, key).Weight)
	assert.Equal(t, "20", tr.Entry(key).Weight)
}

func TestSeries(t *testing.T) {
	ctx := context.Background()
	tr := New(ctx, twoDayCatalog(t), storage.NewMemorySlot(), quietLog())

	for set, vals := range map[int][2]string{1: {"100", "10"}, 2: {"110", "8"}} {
		key := performance.Key{Workout: "Push", Exercise: "Bench Press", Week: 1, Set: set}
		_, err := tr.Record(ctx, key, performance.FieldWeight, vals[0])
		require.NoError(t, err)
		_, err = tr.Record(ctx, key, performance.FieldReps, vals[1])
		require.NoError(t, err)
	}

	points, err := tr.Series("Push", "Bench Press")
	require.NoError(t, err)
	require.Len(t, points, 8)
	assert.Equal(t, 105.0, points[0].AvgWeight)
	assert.Equal(t, 3780.0, points[0].TotalVolume)

	other, err := tr.Series("Pull", "Bench Press")
	require.NoError(t, err)
	assert.Zero(t, other[0].AvgWeight)

	_, err = tr.Series("Pull", "Dips")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRecordSavesDespiteCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	slot, err := storage.OpenSQLite(path, "workoutData")
	require.NoError(t, err)

	tr := New(context.Background(), twoDayCatalog(t), slot, quietLog())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	key := performance.Key{Workout: "Push", Exercise: "Bench Press", Week: 1, Set: 1}
	entry, err := tr.Record(ctx, key, performance.FieldWeight, "135")
	require.NoError(t, err)
	assert.Equal(t, "135", entry.Weight)
	require.NoError(t, slot.Close())

	reopened, err := storage.OpenSQLite(path, "workoutData")
	require.NoError(t, err)
	defer reopened.Close()

	reloaded := New(context.Background(), twoDayCatalog(t), reopened, quietLog())
	assert.Equal(t, performance.SetEntry{Weight: "135"}, reloaded.Entry(key))
}

func TestOnRecordSeesEveryAcceptedEdit(t *testing.T) {
	ctx := context.Background()
	tr := New(ctx, twoDayCatalog(t), storage.NewMemorySlot(), quietLog())

	var fields []performance.Field
	tr.OnRecord(func(_ performance.Key, f performance.Field) { fields = append(fields, f) })

	key := performance.Key{Workout: "Push", Exercise: "Dips", Week: 1, Set: 2}
	_, err := tr.Record(ctx, key, performance.FieldWeight, "25")
	require.NoError(t, err)
	_, err = tr.Record(ctx, key, performance.FieldReps, "10")
	require.NoError(t, err)
	_, err = tr.Record(ctx, performance.Key{Workout: "Push", Exercise: "Dips", Week: 1, Set: 3}, performance.FieldReps, "1")
	require.ErrorIs(t, err, ErrInvalidKey)

	assert.Equal(t, []performance.Field{performance.FieldWeight, performance.FieldReps}, fields)
}
