package clients

import (
	"context"
	"fmt"
)

// Config defines the configuration for a notification client.
type Config struct {
	Type    string            `yaml:"type" json:"type" validate:"required,oneof=discord"`
	Enabled bool              `yaml:"enabled" json:"enabled"`
	Config  map[string]string `yaml:"config,omitempty" json:"config,omitempty"`
}

type Interface interface {
	Name() string
	Notify(ctx context.Context, report Report) error
}

// Report summarizes one generation run.
type Report struct {
	RunID        string
	ContractPath string
	OutputPath   string
	TestCases    int
}

func (r Report) String() string {
	return fmt.Sprintf("🧪 Generated %d test cases for `%s` (run %s), saved to `%s`.",
		r.TestCases, r.ContractPath, r.RunID, r.OutputPath)
}
