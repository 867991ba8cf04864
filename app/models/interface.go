package models

import (
	"context"

	"ContractTestGen/app/tools"
)

type Interface interface {
	Think(ctx context.Context, settings Settings, messages []Message, runID string) (string, error)
	Process(ctx context.Context, settings Settings, messages []Message, toolkit map[string]tools.Tool, runID string) (string, error)
}

// Settings selects the model and sampling parameters of a single call.
// A zero MaxTokens leaves the limit to the service.
type Settings struct {
	Name        string
	Temperature float64
	MaxTokens   int
}

type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
}
