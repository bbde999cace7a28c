package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/workouttracker/internal/performance"
	_ "modernc.org/sqlite"
)

// SQLiteSlot is a performance.Slot stored as one row of a local SQLite file.
type SQLiteSlot struct {
	db   *sql.DB
	name string
}

var _ performance.Slot = (*SQLiteSlot)(nil)

// OpenSQLite opens (or creates) the SQLite database at path and returns the
// named slot in it. If path is ":memory:", uses an in-memory database.
func OpenSQLite(path, name string) (*SQLiteSlot, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting WAL mode: %w", err)
		}
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS performance_slots (
		name       TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating slots table: %w", err)
	}

	return &SQLiteSlot{db: db, name: name}, nil
}

// Read returns the slot's blob, or performance.ErrSlotEmpty if the row is absent.
func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM performance_slots WHERE name = ?`, s.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, performance.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", s.name, err)
	}
	return []byte(data), nil
}

// Write replaces the slot's blob in a single statement.
func (s *SQLiteSlot) Write(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO performance_slots (name, data, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)`,
		s.name, string(data))
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", s.name, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
