// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Genzet API
	APIBaseURL string

	// Valkey (Redis-compatible query cache). Optional: when Host is
	// empty the frontend uses its in-process cache.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// QueryTTL is the freshness window for cached API reads.
	QueryTTL time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "3000"),
		Env:  envOrDefault("APP_ENV", "development"),

		APIBaseURL: envOrDefault("GENZET_API_URL", "http://localhost:8000/api"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		QueryTTL: 30 * time.Second,
	}

	if v := os.Getenv("QUERY_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("QUERY_TTL_SECONDS must be a positive integer, got %q", v)
		}
		cfg.QueryTTL = time.Duration(secs) * time.Second
	}

	if cfg.Env == "production" {
		if os.Getenv("GENZET_API_URL") == "" {
			return nil, fmt.Errorf("GENZET_API_URL must be set in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UseValkey reports whether a shared Valkey query cache is configured.
func (c *Config) UseValkey() bool {
	return c.ValkeyHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
