package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type Interface interface {
	SaveHistory(ctx context.Context, record Record) error
	GetHistoryByRunID(ctx context.Context, runID string) ([]Record, error)
	Close() error
}

// Record is one model exchange or tool call of a generation run.
type Record struct {
	ID         int64     `json:"id" db:"id"`
	RunID      string    `json:"run_id" db:"run_id"`
	Step       string    `json:"step" db:"step"`
	Role       string    `json:"role" db:"role"`
	Tool       string    `json:"tool" db:"tool"`
	Parameters string    `json:"parameters" db:"parameters"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// maxPreviewLen caps the content shown per record; full text stays in the database.
const maxPreviewLen = 80

func RecordListToString(records []Record) string {
	var b strings.Builder
	for _, entry := range records {
		fmt.Fprintf(&b, "\nStep: %s | Role: %s | Tool: %s | ID: %d | Content: %s",
			entry.Step, entry.Role, entry.Tool, entry.ID, preview(entry.Content))
	}
	return b.String()
}

func preview(s string) string {
	r := []rune(strings.Join(strings.Fields(s), " "))
	if len(r) <= maxPreviewLen {
		return string(r)
	}
	return string(r[:maxPreviewLen-3]) + "..."
}

var _ Interface = NopStorage{}

// NopStorage discards history. It is used when storage is disabled.
type NopStorage struct{}

func (NopStorage) SaveHistory(context.Context, Record) error { return nil }

func (NopStorage) GetHistoryByRunID(context.Context, string) ([]Record, error) { return nil, nil }

func (NopStorage) Close() error { return nil }
