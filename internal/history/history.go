package history

import (
	"database/sql"
	"fmt"
	"time"
)

// Config holds cycle history settings.
type Config struct {
	Enabled bool   `toml:"enabled"`
	DSN     string `toml:"dsn"`
}

// Run statuses.
const (
	StatusOK          = "ok"
	StatusLoadFailed  = "load_failed"
	StatusFetchFailed = "fetch_failed"
	StatusSaveFailed  = "save_failed"
)

// Run records one reconciliation cycle.
type Run struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	Status        string
	LocalCount    int
	RemoteCount   int
	NewCount      int
	KeptCount     int
	ExpiredCount  int
	NotifiedCount int
	NotifyFailed  int
	Error         string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	finished_at TIMESTAMP NOT NULL,
	status TEXT NOT NULL,
	local_count INTEGER NOT NULL,
	remote_count INTEGER NOT NULL,
	new_count INTEGER NOT NULL,
	kept_count INTEGER NOT NULL,
	expired_count INTEGER NOT NULL,
	notified_count INTEGER NOT NULL,
	notify_failed INTEGER NOT NULL,
	error TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`

// Store persists one row per reconciliation cycle to sqlite, giving the
// operator a queryable record of what each unattended run did.
type Store struct {
	db *sql.DB
}

// Open connects to the history database and applies the schema. The
// schema is a single idempotent statement set, so no migration runner is
// involved.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordRun inserts one cycle row.
func (s *Store) RecordRun(run *Run) error {
	query := `
		INSERT INTO runs (run_id, started_at, finished_at, status,
			local_count, remote_count, new_count, kept_count,
			expired_count, notified_count, notify_failed, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		run.RunID,
		run.StartedAt,
		run.FinishedAt,
		run.Status,
		run.LocalCount,
		run.RemoteCount,
		run.NewCount,
		run.KeptCount,
		run.ExpiredCount,
		run.NotifiedCount,
		run.NotifyFailed,
		run.Error,
	)

	return err
}

// ListRuns returns the most recent cycles, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, started_at, finished_at, status,
			local_count, remote_count, new_count, kept_count,
			expired_count, notified_count, notify_failed, error
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.RunID,
			&run.StartedAt,
			&run.FinishedAt,
			&run.Status,
			&run.LocalCount,
			&run.RemoteCount,
			&run.NewCount,
			&run.KeptCount,
			&run.ExpiredCount,
			&run.NotifiedCount,
			&run.NotifyFailed,
			&run.Error,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
