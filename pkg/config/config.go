// Package config loads triage configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string

	// HTTP server
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Ranking
	MaxBatchSize    int
	SuggestionLimit int
	DefaultStrategy string

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// A .env file is optional; variables from it never override the
	// process environment.
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:    getEnv("TRIAGE_ENV", "development"),
		LogLevel:  getEnv("TRIAGE_LOG_LEVEL", "info"),
		LogFormat: getEnv("TRIAGE_LOG_FORMAT", "text"),

		Addr:         getEnv("TRIAGE_ADDR", "0.0.0.0:8080"),
		ReadTimeout:  getDurationEnv("TRIAGE_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getDurationEnv("TRIAGE_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getDurationEnv("TRIAGE_IDLE_TIMEOUT", 60*time.Second),

		MaxBatchSize:    getIntEnv("TRIAGE_MAX_BATCH", 1000),
		SuggestionLimit: getIntEnv("TRIAGE_SUGGESTION_LIMIT", 3),
		DefaultStrategy: getEnv("TRIAGE_DEFAULT_STRATEGY", "smart_balance"),

		MCPAddr:      getEnv("TRIAGE_MCP_ADDR", "0.0.0.0:8082"),
		MCPAuthToken: getEnv("TRIAGE_MCP_AUTH_TOKEN", ""),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
