package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/contestwatch/internal/contest"
	"github.com/example/contestwatch/internal/store"
)

// StatusCmd returns the status command, which prints the persisted
// snapshot without fetching anything remote.
func StatusCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the locally tracked upcoming contests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			set, err := store.New(cfg.StatePath()).Load()
			if err != nil {
				return err
			}

			if set.Len() == 0 {
				fmt.Println("No upcoming contests tracked.")
				fmt.Printf("State file: %s\n", cfg.StatePath())
				return nil
			}

			contests := set.Contests()
			// Soonest first; contests without a start time sink to the end.
			sort.SliceStable(contests, func(i, j int) bool {
				si, sj := contests[i].StartTimeSeconds, contests[j].StartTimeSeconds
				if si == nil {
					return false
				}
				if sj == nil {
					return true
				}
				return *si < *sj
			})

			fmt.Printf("Tracking %d upcoming contest(s):\n\n", len(contests))
			for _, c := range contests {
				fmt.Printf("  %s  %s\n", formatStart(c), c.Name)
				fmt.Printf("          id: %d\n", c.ID)
			}
			fmt.Printf("\nState file: %s\n", cfg.StatePath())
			return nil
		},
	}
}

func formatStart(c contest.Contest) string {
	if c.StartTimeSeconds == nil {
		return color.New(color.FgYellow).Sprint("(time TBA)      ")
	}
	start := time.Unix(*c.StartTimeSeconds, 0).Local()
	if start.Before(time.Now()) {
		return color.New(color.FgRed).Sprint(start.Format("02/01 15:04 MST"))
	}
	return color.New(color.FgGreen).Sprint(start.Format("02/01 15:04 MST"))
}
