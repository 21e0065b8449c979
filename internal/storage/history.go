// Package storage persists the durable report invocation history.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// History records every audited report invocation in SQLite.
type History struct {
	db *sql.DB
}

type HistoryEntry struct {
	ID        int64
	Report    string
	Payload   string
	OK        bool
	CreatedAt time.Time
}

func NewHistory(dbPath string) (*History, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &History{db: db}, nil
}

func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Record appends one report outcome.
func (h *History) Record(ctx context.Context, report, payload string, ok bool) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO report_history (report, payload, ok, created_at) VALUES (?, ?, ?, ?)`,
		report, payload, ok, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT id, report, payload, ok, created_at FROM report_history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var created string
		if err := rows.Scan(&e.ID, &e.Report, &e.Payload, &e.OK, &created); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, e)
	}
	return out, rows.Err()
}
