package performance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// ErrSlotEmpty is returned by a Slot that has never been written.
var ErrSlotEmpty = errors.New("persistence slot is empty")

// Slot is a single named location holding the serialized store.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Marshal encodes the store in the persistence format.
func Marshal(s Store) ([]byte, error) {
	if s == nil {
		s = Store{}
	}
	return json.Marshal(s)
}

// Unmarshal decodes a persisted blob. A JSON null decodes to an empty store.
func Unmarshal(data []byte) (Store, error) {
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s == nil {
		s = Store{}
	}
	return s, nil
}

// Load reads the store from slot. It never fails: a missing, unreadable or
// corrupt blob yields an empty store and a log line.
func Load(ctx context.Context, slot Slot, log *slog.Logger) Store {
	data, err := slot.Read(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		log.Info("no saved workout data, starting empty")
		return Store{}
	}
	if err != nil {
		log.Warn("error loading workout data, starting empty", "error", err)
		return Store{}
	}

	s, err := Unmarshal(data)
	if err != nil {
		log.Warn("saved workout data is corrupt, starting empty", "error", err, "bytes", len(data))
		return Store{}
	}
	log.Info("workout data loaded", "workouts", len(s))
	return s
}

// Save writes the full store to slot. Failures are logged and returned;
// the previously persisted snapshot is left as it was.
func Save(ctx context.Context, slot Slot, s Store, log *slog.Logger) error {
	data, err := Marshal(s)
	if err != nil {
		log.Error("error encoding workout data", "error", err)
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := slot.Write(ctx, data); err != nil {
		log.Error("error saving workout data", "error", err)
		return fmt.Errorf("writing slot: %w", err)
	}
	return nil
}
