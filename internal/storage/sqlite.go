// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Result is one finished game.
type Result struct {
	ID        string
	Variant   string
	Outcome   string // "win", "draw" or "timeout"
	Winner    string // winner's symbol, empty on a draw
	Moves     int
	Duration  int // seconds
	CreatedAt time.Time
}

// Tally aggregates results for one variant.
type Tally struct {
	Variant    string
	Games      int
	Draws      int
	Timeouts   int
	Wins       map[string]int // by winner symbol
	LastPlayed time.Time
}

// Recorder persists finished games.
type Recorder interface {
	Record(ctx context.Context, r Result) error
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			variant TEXT NOT NULL,
			outcome TEXT NOT NULL,
			winner TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_variant ON results(variant);
		CREATE INDEX IF NOT EXISTS idx_results_recent ON results(variant, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a finished game. A missing ID is generated; recording the
// same ID twice is a no-op.
func (s *Store) Record(ctx context.Context, r Result) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results (id, variant, outcome, winner, moves, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Variant, r.Outcome, r.Winner, r.Moves, r.Duration,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save result: %w", err)
	}
	return nil
}

// RecentResults returns the latest results for a variant, newest first. An
// empty variant matches every variant.
func (s *Store) RecentResults(variant string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, variant, outcome, winner, moves, duration_secs, created_at
		 FROM results
		 WHERE ? = '' OR variant = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		variant, variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Variant, &r.Outcome, &r.Winner, &r.Moves, &r.Duration, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// Tally aggregates all results of one variant.
func (s *Store) Tally(variant string) (*Tally, error) {
	all, err := s.AllTallies()
	if err != nil {
		return nil, err
	}
	if t, ok := all[variant]; ok {
		return t, nil
	}
	return &Tally{Variant: variant, Wins: make(map[string]int)}, nil
}

// AllTallies aggregates results for every variant that has been played.
func (s *Store) AllTallies() (map[string]*Tally, error) {
	rows, err := s.db.Query(
		`SELECT variant, outcome, winner, COUNT(*), MAX(created_at)
		 FROM results
		 GROUP BY variant, outcome, winner`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get tallies: %w", err)
	}
	defer rows.Close()

	tallies := make(map[string]*Tally)
	for rows.Next() {
		var variant, outcome, winner string
		var count int
		var lastPlayed any
		if err := rows.Scan(&variant, &outcome, &winner, &count, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan tally row: %w", err)
		}

		t, ok := tallies[variant]
		if !ok {
			t = &Tally{Variant: variant, Wins: make(map[string]int)}
			tallies[variant] = t
		}
		t.Games += count
		switch outcome {
		case "draw":
			t.Draws += count
		case "timeout":
			t.Timeouts += count
			t.Wins[winner] += count
		default:
			t.Wins[winner] += count
		}
		if played := parseTime(lastPlayed); played.After(t.LastPlayed) {
			t.LastPlayed = played
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return tallies, nil
}

// ResultByID fetches one result. It returns (nil, nil) when absent.
func (s *Store) ResultByID(id string) (*Result, error) {
	var r Result
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, variant, outcome, winner, moves, duration_secs, created_at
		 FROM results WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Variant, &r.Outcome, &r.Winner, &r.Moves, &r.Duration, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// ClearResults deletes all results for the given variant.
func (s *Store) ClearResults(variant string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
