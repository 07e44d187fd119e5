// Package history persists check and audit outcomes in a per-project
// SQLite database so score trends survive individual runs. Recording is
// opt-in; nothing here runs unless asked for.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Dir is the project-relative directory holding the database.
const Dir = ".govsync"

const dbFile = "history.db"

// Entry is one recorded run.
type Entry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Kind       string    `json:"kind"` // "check" | "audit"
	Score      int       `json:"score"`
	Grade      string    `json:"grade,omitempty"`
	Violations int       `json:"violations"`
}

type Store struct {
	db *sql.DB
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	kind TEXT NOT NULL,
	score INTEGER NOT NULL,
	grade TEXT NOT NULL DEFAULT '',
	violations INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS runs_timestamp ON runs (timestamp);
`

// Open creates or opens the project's history database under .govsync/.
func Open(ctx context.Context, root string) (*Store, error) {
	dir := filepath.Join(root, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFile))
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Record(ctx context.Context, e Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (timestamp, kind, score, grade, violations) VALUES (?, ?, ?, ?, ?)`,
		ts.UTC().Format(time.RFC3339), e.Kind, e.Score, e.Grade, e.Violations)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, kind, score, grade, violations FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Kind, &e.Score, &e.Grade, &e.Violations); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parse history timestamp %q: %w", ts, err)
		}
		e.Timestamp = parsed
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Close() error { return s.db.Close() }
