package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds everything read from the environment at startup.
type Config struct {
	DatabaseURL  string
	DatabaseName string
	Port         string

	// LLM provider selection, see internal/llm.
	LLMProvider string
	LLMModel    string
	LLMBaseURL  string
	LLMAPIKey   string
}

// Load reads configuration from the environment. The database settings are
// required; the process must not start without them.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),
		Port:         os.Getenv("PORT"),
		LLMProvider:  os.Getenv("LLM_PROVIDER"),
		LLMModel:     os.Getenv("LLM_MODEL"),
		LLMBaseURL:   os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:    os.Getenv("LLM_API_KEY"),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.DatabaseName == "" {
		missing = append(missing, "DATABASE_NAME")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "langchain"
	}

	return cfg, nil
}
