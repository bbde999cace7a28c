package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/claude/workouttracker/internal/performance"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a pgxpool.Pool holding the performance_slots table.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new DB with a connection pool.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// RunMigrations applies all pending embedded migrations.
func RunMigrations(dsn string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("opening embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Slot returns the named persistence slot backed by this database.
func (db *DB) Slot(name string) *PostgresSlot {
	return &PostgresSlot{db: db, name: name}
}

// PostgresSlot is a performance.Slot stored as one row of performance_slots.
type PostgresSlot struct {
	db   *DB
	name string
}

var _ performance.Slot = (*PostgresSlot)(nil)

// Read returns the slot's blob, or performance.ErrSlotEmpty if the row is absent.
func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	var data string
	err := s.db.Pool.QueryRow(ctx,
		`SELECT data FROM performance_slots WHERE name = $1`, s.name).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, performance.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", s.name, err)
	}
	return []byte(data), nil
}

// Write replaces the slot's blob in a single statement.
func (s *PostgresSlot) Write(ctx context.Context, data []byte) error {
	_, err := s.db.Pool.Exec(ctx,
		`INSERT INTO performance_slots (name, data) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
		s.name, string(data))
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", s.name, err)
	}
	return nil
}
