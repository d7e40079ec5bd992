// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingToken is returned when no GitHub token is configured.
var ErrMissingToken = errors.New("GITHUB_TOKEN environment variable is not set")

type Config struct {
	GitHub      GitHubConfig
	Concurrency int
	HTTPTimeout time.Duration
	LogLevel    string
}

type GitHubConfig struct {
	Token string
	// APIURL is the base URL of a GitHub Enterprise host. Empty means github.com.
	APIURL string
}

// Load loads configuration from a .env file, if present, and environment variables.
// Variables already set in the environment win over the .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	concurrency, err := getEnvAsInt("GH_ACTIVITY_CONCURRENCY", 0)
	if err != nil {
		return nil, err
	}
	if concurrency < 0 {
		return nil, fmt.Errorf("GH_ACTIVITY_CONCURRENCY must not be negative, got %d", concurrency)
	}
	timeout, err := getEnvAsDuration("GH_ACTIVITY_HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GitHub: GitHubConfig{
			Token:  getEnv("GITHUB_TOKEN", ""),
			APIURL: getEnv("GITHUB_API_URL", ""),
		},
		Concurrency: concurrency,
		HTTPTimeout: timeout,
		LogLevel:    getEnv("LOG_LEVEL", ""),
	}
	if cfg.GitHub.Token == "" {
		return nil, ErrMissingToken
	}
	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
