// Package history keeps an append-only log of ingest/reconcile runs in a
// local sqlite database, for the reporting layer.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type DB struct {
	Pool *sql.DB
}

func Open(path string) (*DB, error) {
	// modernc sqlite DSN: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite wants a single writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	db := &DB{Pool: pool}
	if err := db.migrate(); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}

func (d *DB) migrate() error {
	tx, err := d.Pool.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  mode TEXT NOT NULL,
  started_at TEXT NOT NULL,
  summary TEXT NOT NULL DEFAULT '{}'
);
`); err != nil {
		return err
	}
	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_runs_started_at
ON runs(started_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// Run is one recorded batch execution. Summary is the raw counts JSON of
// whichever operation ran.
type Run struct {
	ID        string          `json:"id"`
	Mode      string          `json:"mode"`
	StartedAt time.Time       `json:"startedAt"`
	Summary   json.RawMessage `json:"summary"`
}

// RecordRun appends a run row and returns its id.
func (d *DB) RecordRun(ctx context.Context, mode string, startedAt time.Time, summary any) (string, error) {
	b, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("marshal run summary: %w", err)
	}
	id := uuid.NewString()
	_, err = d.Pool.ExecContext(ctx, `
INSERT INTO runs(id, mode, started_at, summary)
VALUES(?,?,?,?);`,
		id, mode, startedAt.UTC().Format(time.RFC3339), string(b))
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, mode, started_at, summary
FROM runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var startedStr, summaryStr string
		if err := rows.Scan(&r.ID, &r.Mode, &startedStr, &summaryStr); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, startedStr)
		r.Summary = json.RawMessage(summaryStr)
		out = append(out, r)
	}
	return out, rows.Err()
}
