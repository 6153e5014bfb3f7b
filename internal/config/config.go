// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port       string
	CORSOrigin string
	SessionTTL time.Duration
	SLACSVPath string
	LM         LMConfig
}

// LMConfig points at the OpenAI-compatible completion endpoint used for
// extraction and summarization.
type LMConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:       getEnv("PORT", "4000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		SessionTTL: getEnvDuration("SESSION_TTL", 60*time.Minute),
		SLACSVPath: getEnv("SLA_CSV_PATH", "./data/data_sheet_sla_extracted.csv"),
		LM: LMConfig{
			BaseURL:     getEnv("LM_BASE_URL", "http://localhost:1234/v1"),
			APIKey:      getEnv("LM_API_KEY", "lm-studio"),
			Model:       getEnv("LM_MODEL", "google/gemma-3n-e4b"),
			Temperature: getEnvFloat("LM_TEMPERATURE", 0.8),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.LM.BaseURL == "" {
		return fmt.Errorf("LM_BASE_URL cannot be empty")
	}
	if c.LM.Model == "" {
		return fmt.Errorf("LM_MODEL cannot be empty")
	}
	if c.LM.Temperature < 0 || c.LM.Temperature > 2 {
		return fmt.Errorf("LM_TEMPERATURE must be within [0, 2]")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
