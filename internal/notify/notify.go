package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/example/contestwatch/internal/contest"
)

// Notifier attempts to create one reminder for a contest. Failures are
// recoverable: the caller logs them and moves on to the next contest.
type Notifier interface {
	Notify(ctx context.Context, c contest.Contest) error
}

// ErrNoStartTime is returned for a contest without an announced start
// time. The orchestrator filters these out before dispatch; the sentinel
// guards direct callers.
var ErrNoStartTime = errors.New("contest has no start time")

// Config holds reminder dispatch settings.
type Config struct {
	// Command is the program invoked to create the reminder, osascript
	// on macOS.
	Command string `toml:"command"`
	// LeadTime is subtracted from each new contest's start time before
	// it reaches the dispatcher, so the reminder fires ahead of the
	// contest.
	LeadTime time.Duration `toml:"lead_time"`
}

// DefaultConfig returns the macOS Reminders defaults.
func DefaultConfig() Config {
	return Config{
		Command:  "osascript",
		LeadTime: 30 * time.Minute,
	}
}

// CommandNotifier creates reminders by running an external command with
// an AppleScript Reminders snippet, one invocation per contest.
type CommandNotifier struct {
	command string
}

// NewCommandNotifier creates a dispatcher running the given command.
func NewCommandNotifier(command string) *CommandNotifier {
	return &CommandNotifier{command: command}
}

// Notify creates one reminder due at the contest's (already adjusted)
// start time. A spawn failure or non-zero exit is returned as an error
// carrying the contest's id and name.
func (n *CommandNotifier) Notify(ctx context.Context, c contest.Contest) error {
	if c.StartTimeSeconds == nil {
		return fmt.Errorf("contest %d (%s): %w", c.ID, c.Name, ErrNoStartTime)
	}

	due := time.Unix(*c.StartTimeSeconds, 0).Local().Format("02/01/2006 15:04 MST")
	script := reminderScript(c, due)

	cmd := exec.CommandContext(ctx, n.command, "-e", script)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to create reminder for contest %d (%s): %w", c.ID, c.Name, err)
	}

	return nil
}

// reminderScript renders the AppleScript that adds one Reminders entry.
func reminderScript(c contest.Contest, due string) string {
	body := ""
	if c.Description != nil {
		body = *c.Description
	}
	return fmt.Sprintf(`tell application "Reminders"
	set newReminder to make new reminder with properties {name:%q, body:%q}
	set due date of newReminder to date %q
end tell`, fmt.Sprintf("%s, id: %d", c.Name, c.ID), body, due)
}
