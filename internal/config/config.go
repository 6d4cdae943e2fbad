package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/example/contestwatch/internal/errlog"
	"github.com/example/contestwatch/internal/fetch"
	"github.com/example/contestwatch/internal/history"
	"github.com/example/contestwatch/internal/notify"
)

// Config represents the application configuration
type Config struct {
	State   StateConfig    `toml:"state"`
	ErrLog  ErrLogConfig   `toml:"errlog"`
	Fetch   fetch.Config   `toml:"fetch"`
	Notify  notify.Config  `toml:"notify"`
	History history.Config `toml:"history"`
	Logging LoggingConfig  `toml:"logging"`
}

// StateConfig holds the persisted snapshot location
type StateConfig struct {
	Dir      string `toml:"dir"`
	FileName string `toml:"file_name"`
}

// ErrLogConfig holds the bounded error log settings
type ErrLogConfig struct {
	FileName string `toml:"file_name"`
	MaxLines int    `toml:"max_lines"`
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		State: StateConfig{
			Dir:      defaultDataDir(),
			FileName: "contests.json",
		},
		ErrLog: ErrLogConfig{
			FileName: "error_log.txt",
			MaxLines: errlog.DefaultMaxLines,
		},
		Fetch:  fetch.DefaultConfig(),
		Notify: notify.DefaultConfig(),
		History: history.Config{
			Enabled: true,
			DSN:     filepath.Join(defaultDataDir(), "history.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// defaultDataDir places state under the user's local data directory,
// falling back to the working directory when no home is known.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "contestwatch")
}

// LoadFromFile loads configuration from a TOML file
func LoadFromFile(path string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// Parse TOML file
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// LoadConfig loads configuration with the following precedence:
// 1. Default values
// 2. Config file (if specified)
func LoadConfig(configPath string) (*Config, error) {
	// If no config file specified, return defaults
	if configPath == "" {
		return DefaultConfig(), nil
	}

	return LoadFromFile(configPath)
}

// StatePath returns the full path of the persisted contest snapshot.
func (c *Config) StatePath() string {
	return filepath.Join(c.State.Dir, c.State.FileName)
}

// ErrLogPath returns the full path of the bounded error log.
func (c *Config) ErrLogPath() string {
	return filepath.Join(c.State.Dir, c.ErrLog.FileName)
}

// EnsureDataDir creates the data directory if it does not exist yet.
func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.State.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// State validation
	if c.State.Dir == "" {
		return fmt.Errorf("state dir must be specified")
	}
	if c.State.FileName == "" {
		return fmt.Errorf("state file_name must be specified")
	}

	// Error log validation
	if c.ErrLog.FileName == "" {
		return fmt.Errorf("errlog file_name must be specified")
	}
	if c.ErrLog.MaxLines <= 0 {
		return fmt.Errorf("errlog max_lines must be positive")
	}

	// Fetch validation
	if c.Fetch.BaseURL == "" {
		return fmt.Errorf("fetch base_url must be specified")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}

	// Notify validation
	if c.Notify.Command == "" {
		return fmt.Errorf("notify command must be specified")
	}
	if c.Notify.LeadTime < 0 {
		return fmt.Errorf("notify lead_time must not be negative")
	}

	// History validation
	if c.History.Enabled && c.History.DSN == "" {
		return fmt.Errorf("history dsn must be specified when history is enabled")
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Logging.Format)
	}

	return nil
}
