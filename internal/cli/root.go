package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/contestwatch/internal/config"
	"github.com/example/contestwatch/internal/version"
)

// RootCmd builds the contestwatch command tree.
func RootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "contestwatch",
		Short:         "Reconcile upcoming contests and schedule reminders",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `contestwatch keeps a local snapshot of upcoming programming contests in
sync with the remote contest list. Each run fetches the current upcoming
contests, creates one reminder per newly discovered contest, drops
contests that are no longer upcoming, and atomically persists the
updated snapshot. It is meant to be invoked unattended from cron or a
systemd timer.`,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (TOML)")

	cmd.AddCommand(RunCmd(&configPath))
	cmd.AddCommand(StatusCmd(&configPath))
	cmd.AddCommand(HistoryCmd(&configPath))

	return cmd
}

// loadConfig resolves and validates the configuration for a subcommand.
func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogger installs the default slog logger per the logging config.
func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
