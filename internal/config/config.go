// Package config loads the console configuration from
// ~/.prodline/config.json with environment overrides for the backend URL.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults applied when the config file is absent or a field is zero.
const (
	DefaultRequestTimeout = 180 * time.Second
	DefaultPollInterval   = 3 * time.Second
	DefaultPollAttempts   = 60
	DefaultWatchInterval  = 2 * time.Second
)

// EnvAPIBaseURL overrides the configured backend URL when set.
const EnvAPIBaseURL = "PRODLINE_API_URL"

// Config represents the flat console configuration
type Config struct {
	APIBaseURL         string   `json:"api_base_url"`
	Databases          []string `json:"databases,omitempty"`
	RequestTimeoutSecs int      `json:"request_timeout_secs,omitempty"`
	PollIntervalSecs   int      `json:"poll_interval_secs,omitempty"`
	PollAttempts       int      `json:"poll_attempts,omitempty"`
	WatchIntervalSecs  int      `json:"watch_interval_secs,omitempty"`
	LogLevel           string   `json:"log_level,omitempty"`
}

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSecs <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

// PollInterval returns the delay between job-status polls.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSecs <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSecs) * time.Second
}

// MaxPollAttempts returns the poll budget before a job is declared stuck.
func (c *Config) MaxPollAttempts() int {
	if c.PollAttempts <= 0 {
		return DefaultPollAttempts
	}
	return c.PollAttempts
}

// WatchInterval returns how often the session watcher polls the store.
func (c *Config) WatchInterval() time.Duration {
	if c.WatchIntervalSecs <= 0 {
		return DefaultWatchInterval
	}
	return time.Duration(c.WatchIntervalSecs) * time.Second
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".prodline", "config.json"), nil
}

// LoadConfig reads the config file. A missing file yields a default config;
// the PRODLINE_API_URL environment variable always wins for the backend URL.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if url := os.Getenv(EnvAPIBaseURL); url != "" {
		cfg.APIBaseURL = url
	}
	return cfg, nil
}

// SaveConfig writes the config file, creating ~/.prodline if needed.
func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create .prodline dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
