package configs

import (
	"ContractTestGen/app/models"
	"ContractTestGen/app/runtime"
)

func (mc ModelConfig) Settings() models.Settings {
	return models.Settings{
		Name:        mc.Name,
		Temperature: mc.Temperature,
		MaxTokens:   mc.MaxTokens,
	}
}

func (c *Config) ClientConfig() models.ClientConfig {
	return models.ClientConfig{
		BaseURL:       c.Provider.BaseURL,
		APIKey:        c.Provider.APIKey,
		MaxRetries:    c.Provider.MaxRetries,
		MaxIterations: c.Agent.MaxIterations,
		Timeout:       c.Provider.Timeout,
	}
}

func (c *Config) RuntimeSettings() runtime.Settings {
	return runtime.Settings{
		Completion: c.Completion.Settings(),
		Agent:      c.Agent.Settings(),
		Mode:       c.Agent.Mode,
		OutputPath: c.OutputPath,
		LogsDir:    c.LogsDir,
	}
}
