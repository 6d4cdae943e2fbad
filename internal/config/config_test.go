package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that the defaults pass validation.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
	if cfg.State.FileName != "contests.json" {
		t.Errorf("expected default state file contests.json, got %s", cfg.State.FileName)
	}
	if cfg.ErrLog.MaxLines != 1000 {
		t.Errorf("expected default max_lines 1000, got %d", cfg.ErrLog.MaxLines)
	}
	if cfg.Notify.LeadTime != 30*time.Minute {
		t.Errorf("expected default lead time 30m, got %v", cfg.Notify.LeadTime)
	}
}

// TestLoadConfig_EmptyPathReturnsDefaults verifies flag-less startup.
func TestLoadConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Fetch.BaseURL != "https://codeforces.com/api" {
		t.Errorf("expected default base URL, got %s", cfg.Fetch.BaseURL)
	}
}

// TestLoadConfig_FileOverridesDefaults verifies TOML parsing layered on
// top of the defaults.
func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[state]
dir = "/var/lib/contestwatch"

[errlog]
max_lines = 2000

[fetch]
base_url = "https://mirror.example.com/api"

[notify]
command = "notify-send"

[history]
enabled = false

[logging]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.State.Dir != "/var/lib/contestwatch" {
		t.Errorf("expected overridden state dir, got %s", cfg.State.Dir)
	}
	if cfg.State.FileName != "contests.json" {
		t.Errorf("expected default file name preserved, got %s", cfg.State.FileName)
	}
	if cfg.ErrLog.MaxLines != 2000 {
		t.Errorf("expected overridden max_lines, got %d", cfg.ErrLog.MaxLines)
	}
	if cfg.Fetch.BaseURL != "https://mirror.example.com/api" {
		t.Errorf("expected overridden base URL, got %s", cfg.Fetch.BaseURL)
	}
	if cfg.Notify.Command != "notify-send" {
		t.Errorf("expected overridden notify command, got %s", cfg.Notify.Command)
	}
	if cfg.History.Enabled {
		t.Error("expected history disabled")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected json log format, got %s", cfg.Logging.Format)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected merged config to validate, got %v", err)
	}
}

// TestLoadConfig_MissingFile verifies that a named but absent file is an
// error, not a silent fallback to defaults.
func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestValidate covers the rejection paths.
func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty state dir", func(c *Config) { c.State.Dir = "" }},
		{"empty state file name", func(c *Config) { c.State.FileName = "" }},
		{"empty errlog file name", func(c *Config) { c.ErrLog.FileName = "" }},
		{"zero max lines", func(c *Config) { c.ErrLog.MaxLines = 0 }},
		{"empty base url", func(c *Config) { c.Fetch.BaseURL = "" }},
		{"zero fetch timeout", func(c *Config) { c.Fetch.Timeout = 0 }},
		{"empty notify command", func(c *Config) { c.Notify.Command = "" }},
		{"negative lead time", func(c *Config) { c.Notify.LeadTime = -time.Minute }},
		{"history enabled without dsn", func(c *Config) { c.History.Enabled = true; c.History.DSN = "" }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %s", tc.name)
			}
		})
	}
}

// TestPaths verifies the derived file paths.
func TestPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.State.Dir = "/data"

	if got := cfg.StatePath(); got != filepath.Join("/data", "contests.json") {
		t.Errorf("unexpected state path %s", got)
	}
	if got := cfg.ErrLogPath(); got != filepath.Join("/data", "error_log.txt") {
		t.Errorf("unexpected errlog path %s", got)
	}
}
