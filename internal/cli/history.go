package cli

import (
	"fmt"

	"github.com/fatih/color"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/example/contestwatch/internal/history"
)

// HistoryCmd returns the history command, which lists recent
// reconciliation cycles from the sqlite history store.
func HistoryCmd(configPath *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent reconciliation cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("run history is disabled in the configuration")
			}

			hist, err := history.Open(cfg.History.DSN)
			if err != nil {
				return err
			}
			defer hist.Close()

			runs, err := hist.ListRuns(limit)
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("No recorded cycles.")
				return nil
			}

			for _, run := range runs {
				fmt.Printf("%s  %s  remote=%d new=%d kept=%d expired=%d notified=%d",
					run.StartedAt.Local().Format("02/01 15:04:05"),
					statusLabel(run.Status),
					run.RemoteCount, run.NewCount, run.KeptCount,
					run.ExpiredCount, run.NotifiedCount)
				if run.NotifyFailed > 0 {
					fmt.Printf(" notify_failed=%d", run.NotifyFailed)
				}
				fmt.Println()
				if run.Error != "" {
					fmt.Printf("    %s\n", run.Error)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of cycles to show")

	return cmd
}

func statusLabel(status string) string {
	if status == history.StatusOK {
		return color.New(color.FgGreen).Sprint("ok    ")
	}
	return color.New(color.FgRed).Sprintf("%-6s", status)
}
