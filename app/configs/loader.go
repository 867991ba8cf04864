package configs

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"ContractTestGen/app/clients"
	"ContractTestGen/app/runtime"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "gpt-3.5-turbo"
	defaultDBPath  = "data/history.db"
)

type Config struct {
	Provider   ProviderConfig   `yaml:"provider"`
	Completion ModelConfig      `yaml:"completion"`
	Agent      AgentConfig      `yaml:"agent"`
	OutputPath string           `yaml:"output_path" validate:"required"`
	LogsDir    string           `yaml:"logs_dir"`
	Storage    StorageConfig    `yaml:"storage"`
	Clients    []clients.Config `yaml:"clients,omitempty" validate:"dive"`
}

type ProviderConfig struct {
	BaseURL    string        `yaml:"base_url" validate:"required,url"`
	APIKey     string        `yaml:"api_key"`
	MaxRetries int           `yaml:"max_retries" validate:"gte=1,lte=10"`
	Timeout    time.Duration `yaml:"timeout" validate:"gte=0"`
}

type ModelConfig struct {
	Name        string  `yaml:"name" validate:"required"`
	Temperature float64 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens" validate:"gte=0"`
}

type AgentConfig struct {
	ModelConfig   `yaml:",inline"`
	Mode          string `yaml:"mode" validate:"oneof=agent local"`
	MaxIterations int    `yaml:"max_iterations" validate:"gte=1,lte=50"`
}

type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// Default uses gpt-3.5-turbo at temperature 0 for
// generation, 0.7 for the reformatting agent, output.json in the working
// directory. Credentials come from the environment.
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			BaseURL:    envOr("OPENAI_BASE_URL", defaultBaseURL),
			APIKey:     os.Getenv("OPENAI_API_KEY"),
			MaxRetries: 1,
		},
		Completion: ModelConfig{Name: defaultModel, Temperature: 0},
		Agent: AgentConfig{
			ModelConfig:   ModelConfig{Name: defaultModel, Temperature: 0.7},
			Mode:          runtime.ModeAgent,
			MaxIterations: 5,
		},
		OutputPath: "output.json",
		LogsDir:    "logs",
		Storage:    StorageConfig{Enabled: true, Path: envOr("DB_PATH", defaultDBPath)},
	}
}

// LoadConfig overlays the YAML file at path, if any, on Default and
// validates the result. Environment references in the file are expanded.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read configs file: %w", err)
		}

		expanded := os.ExpandEnv(string(data))
		if err = yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configs: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
