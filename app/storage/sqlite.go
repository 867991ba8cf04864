package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02 15:04:05"

var _ Interface = &SQLiteStorage{}

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, errors.New("sqlite path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db at %s: %w", dbPath, err)
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS history (
            id INTEGER NOT NULL,
            run_id TEXT NOT NULL,
            step TEXT NOT NULL,
            role TEXT NOT NULL,
            content TEXT NOT NULL,
            tool TEXT NULL,
            parameters TEXT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (run_id, id)
        );
        CREATE INDEX IF NOT EXISTS idx_history_run_id ON history (run_id);
    `)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}

	log.Printf("📂 History database ready at %s", dbPath)
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) SaveHistory(ctx context.Context, record Record) error {
	var lastID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(id), 0) FROM history WHERE run_id = ?`, record.RunID,
	).Scan(&lastID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("last id for run %s: %w", record.RunID, err)
	}

	record.ID = lastID + 1
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO history (id, run_id, step, role, content, tool, parameters, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, datetime(?))`,
		record.ID, record.RunID, record.Step, record.Role, record.Content, record.Tool, record.Parameters,
		record.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save history for run %s: %w", record.RunID, err)
	}
	return nil
}

func (s *SQLiteStorage) GetHistoryByRunID(ctx context.Context, runID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, step, role, content, COALESCE(tool, ''), COALESCE(parameters, ''), created_at
		 FROM history
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []Record
	for rows.Next() {
		var r Record
		var createdAt any
		if err = rows.Scan(&r.ID, &r.RunID, &r.Step, &r.Role, &r.Content, &r.Tool, &r.Parameters, &createdAt); err != nil {
			log.Printf("⚠️ Error scanning history row for run %s: %v", runID, err)
			continue
		}
		r.CreatedAt = parseTimestamp(createdAt)
		history = append(history, r)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// parseTimestamp accepts both shapes the driver may hand back for a
// TIMESTAMP column.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		return parseTimestampString(t)
	case []byte:
		return parseTimestampString(string(t))
	}
	return time.Time{}
}

func parseTimestampString(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
