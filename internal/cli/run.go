package cli

import (
	"context"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/example/contestwatch/internal/errlog"
	"github.com/example/contestwatch/internal/fetch"
	"github.com/example/contestwatch/internal/history"
	"github.com/example/contestwatch/internal/notify"
	"github.com/example/contestwatch/internal/orchestrator"
	"github.com/example/contestwatch/internal/store"
)

// RunCmd returns the run command, which executes one reconciliation
// cycle. The process exits 0 when the cycle completes (individual
// reminder failures included) and non-zero on a fatal load, fetch, or
// save failure.
func RunCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute one reconciliation cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := setupLogger(cfg)

			if err := cfg.EnsureDataDir(); err != nil {
				return err
			}

			// The error log sink lives for the whole run and is passed to
			// every component that reports failures.
			sink, err := errlog.Open(cfg.ErrLogPath(), cfg.ErrLog.MaxLines)
			if err != nil {
				return err
			}
			defer sink.Close()

			params := orchestrator.Params{
				Store:    store.New(cfg.StatePath()),
				Fetcher:  fetch.NewClient(cfg.Fetch),
				Notifier: notify.NewCommandNotifier(cfg.Notify.Command),
				ErrLog:   sink,
				LeadTime: cfg.Notify.LeadTime,
				Logger:   logger,
			}

			if cfg.History.Enabled {
				hist, err := history.Open(cfg.History.DSN)
				if err != nil {
					// History is diagnostic only; a broken history db must
					// not block the reconciliation itself.
					sink.Logf("Failed to open history db: %v", err)
					logger.Warn("failed to open history db, continuing without it", "error", err)
				} else {
					defer hist.Close()
					params.History = hist
				}
			}

			return orchestrator.New(params).Run(context.Background())
		},
	}
}
