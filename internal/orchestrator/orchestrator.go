package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/example/contestwatch/internal/contest"
	"github.com/example/contestwatch/internal/errlog"
	"github.com/example/contestwatch/internal/fetch"
	"github.com/example/contestwatch/internal/history"
	"github.com/example/contestwatch/internal/notify"
	"github.com/example/contestwatch/internal/reconcile"
)

// Stage identifies the cycle stage where a fatal error occurred.
type Stage string

const (
	StageLoad  Stage = "load"
	StageFetch Stage = "fetch"
	StageSave  Stage = "save"
)

// FatalError wraps a stage failure that must terminate the process.
// Components below the orchestrator only return errors; the orchestrator
// classifies them and the entry point alone decides exit codes.
type FatalError struct {
	Stage Stage
	Err   error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal %s failure: %v", e.Stage, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Store is the durable snapshot store the orchestrator drives.
type Store interface {
	Load() (contest.Set, error)
	Save(contest.Set) error
}

// Recorder persists one history row per completed cycle.
type Recorder interface {
	RecordRun(*history.Run) error
}

// Params collects the orchestrator's collaborators. The error log sink
// is an explicit resource owned by the caller, opened once at startup
// and closed on exit.
type Params struct {
	Store    Store
	Fetcher  fetch.Fetcher
	Notifier notify.Notifier
	ErrLog   *errlog.Sink
	History  Recorder
	LeadTime time.Duration
	Logger   *slog.Logger
}

// Orchestrator drives one reconciliation cycle:
// load -> fetch -> reconcile -> notify each new contest -> save.
// Load, fetch, and save failures are fatal; a failed reminder is logged
// and the cycle continues.
type Orchestrator struct {
	store    Store
	fetcher  fetch.Fetcher
	notifier notify.Notifier
	errlog   *errlog.Sink
	history  Recorder
	leadTime time.Duration
	logger   *slog.Logger
}

// New creates an orchestrator from its collaborators.
func New(p Params) *Orchestrator {
	return &Orchestrator{
		store:    p.Store,
		fetcher:  p.Fetcher,
		notifier: p.Notifier,
		errlog:   p.ErrLog,
		history:  p.History,
		leadTime: p.LeadTime,
		logger:   p.Logger,
	}
}

// Run executes one cycle. It returns nil when the cycle completed, even
// if individual reminders failed, and a *FatalError when a stage failure
// stopped the cycle. Every fatal path is written to the error log before
// returning, so unattended runs leave a trace.
func (o *Orchestrator) Run(ctx context.Context) error {
	run := &history.Run{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}

	o.logger.Info("starting reconciliation cycle", "run_id", run.RunID)

	local, err := o.store.Load()
	if err != nil {
		return o.fatal(run, history.StatusLoadFailed, StageLoad,
			fmt.Errorf("failed to load local contests: %w", err))
	}
	run.LocalCount = local.Len()

	remote, err := o.fetcher.FetchUpcoming(ctx)
	if err != nil {
		return o.fatal(run, history.StatusFetchFailed, StageFetch,
			fmt.Errorf("failed to fetch upcoming contests: %w", err))
	}
	run.RemoteCount = len(remote)

	result := reconcile.Reconcile(local, remote)
	run.NewCount = len(result.New)
	run.KeptCount = len(result.Kept)
	run.ExpiredCount = result.Expired

	o.logger.Info("reconciled contest sets",
		"run_id", run.RunID,
		"local", run.LocalCount,
		"remote", run.RemoteCount,
		"new", run.NewCount,
		"kept", run.KeptCount,
		"expired", run.ExpiredCount)

	if len(remote) == 0 && local.Len() > 0 {
		o.logger.Warn("remote returned no upcoming contests, expiring all local records",
			"run_id", run.RunID, "expired", result.Expired)
	}

	next := contest.NewSet(result.Kept...)
	for _, c := range reconcile.AdjustStartTimes(result.New, o.leadTime) {
		o.notifyContest(ctx, run, c)
		// Contests without a start time are still persisted as known,
		// so they are not re-reported every cycle.
		next.Add(c)
	}

	if err := o.store.Save(next); err != nil {
		return o.fatal(run, history.StatusSaveFailed, StageSave,
			fmt.Errorf("failed to save local contests atomically: %w", err))
	}

	run.Status = history.StatusOK
	o.recordRun(run)

	o.logger.Info("reconciliation cycle complete",
		"run_id", run.RunID,
		"persisted", next.Len(),
		"notified", run.NotifiedCount,
		"notify_failed", run.NotifyFailed)

	return nil
}

// notifyContest attempts one reminder. Missing start times and dispatch
// failures are recoverable: both are logged and the cycle moves on.
func (o *Orchestrator) notifyContest(ctx context.Context, run *history.Run, c contest.Contest) {
	if c.StartTimeSeconds == nil {
		o.errlog.Logf("Contest without start time: %d, %s", c.ID, c.Name)
		o.logger.Warn("contest has no start time, skipping reminder",
			"run_id", run.RunID, "contest_id", c.ID, "contest_name", c.Name)
		return
	}

	if err := o.notifier.Notify(ctx, c); err != nil {
		run.NotifyFailed++
		o.errlog.Logf("Failed to add reminder for contest %s, id: %d. Error: %v", c.Name, c.ID, err)
		o.logger.Error("failed to create reminder",
			"run_id", run.RunID, "contest_id", c.ID, "contest_name", c.Name, "error", err)
		return
	}

	run.NotifiedCount++
	o.logger.Info("created reminder",
		"run_id", run.RunID, "contest_id", c.ID, "contest_name", c.Name)
}

// fatal logs a stage failure to the error log, finalizes the history
// row, and returns the classified error for the entry point to map to an
// exit code.
func (o *Orchestrator) fatal(run *history.Run, status string, stage Stage, err error) error {
	o.errlog.Log(err.Error())
	o.logger.Error("reconciliation cycle failed",
		"run_id", run.RunID, "stage", string(stage), "error", err)

	run.Status = status
	run.Error = err.Error()
	o.recordRun(run)

	return &FatalError{Stage: stage, Err: err}
}

// recordRun finalizes and persists the history row. History failures are
// recoverable: the cycle outcome stands regardless.
func (o *Orchestrator) recordRun(run *history.Run) {
	run.FinishedAt = time.Now()
	if o.history == nil {
		return
	}
	if err := o.history.RecordRun(run); err != nil {
		o.logger.Warn("failed to record run history", "run_id", run.RunID, "error", err)
	}
}
