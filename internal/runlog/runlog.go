// Package runlog records generation runs in a local SQLite database so
// past runs and their row counts can be audited.
package runlog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Entry is one recorded generation run.
type Entry struct {
	ID          string
	Status      string
	StartedAt   time.Time
	CompletedAt *time.Time
	JapanRows   int
	ForeignRows int
	Error       string
}

// Log provides read/write access to the run log.
type Log struct {
	db *sql.DB
}

// Open opens (creating if needed) the run-log database at the given path
// and applies the schema.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "runlog: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "runlog: exec %s", pragma)
		}
	}

	const migration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	status       TEXT NOT NULL DEFAULT 'running',
	started_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	completed_at DATETIME,
	japan_rows   INTEGER NOT NULL DEFAULT 0,
	foreign_rows INTEGER NOT NULL DEFAULT 0,
	error        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`
	if _, err := db.Exec(migration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "runlog: migrate")
	}

	return &Log{db: db}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Start records the beginning of a run and returns its ID.
func (l *Log) Start(ctx context.Context) (string, error) {
	id := uuid.New().String()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (id, status, started_at) VALUES (?, 'running', datetime('now'))`,
		id,
	)
	if err != nil {
		return "", eris.Wrap(err, "runlog: start run")
	}
	return id, nil
}

// Complete marks a run as finished with its output row counts.
func (l *Log) Complete(ctx context.Context, id string, japanRows, foreignRows int) error {
	_, err := l.db.ExecContext(ctx,
		`UPDATE runs SET status = 'complete', completed_at = datetime('now'),
		 japan_rows = ?, foreign_rows = ? WHERE id = ?`,
		japanRows, foreignRows, id,
	)
	return eris.Wrapf(err, "runlog: complete run %s", id)
}

// Fail marks a run as failed with an error message.
func (l *Log) Fail(ctx context.Context, id string, errMsg string) error {
	_, err := l.db.ExecContext(ctx,
		`UPDATE runs SET status = 'failed', completed_at = datetime('now'), error = ?
		 WHERE id = ?`,
		errMsg, id,
	)
	return eris.Wrapf(err, "runlog: fail run %s", id)
}

// List returns all runs, most recent first.
func (l *Log) List(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, status, started_at, completed_at, japan_rows, foreign_rows, error
		 FROM runs ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "runlog: list")
	}
	defer rows.Close() //nolint:errcheck

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Status, &e.StartedAt, &e.CompletedAt, &e.JapanRows, &e.ForeignRows, &e.Error); err != nil {
			return nil, eris.Wrap(err, "runlog: scan entry")
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "runlog: iterate")
}
