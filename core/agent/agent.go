// Package agent implements the run controller: one evaluation pass over the
// roster, optionally repeated on a fixed interval.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fleetyard/fleetagent/core/classify"
	"github.com/fleetyard/fleetagent/core/logger"
	"github.com/fleetyard/fleetagent/core/memory"
	"github.com/fleetyard/fleetagent/core/metrics"
	"github.com/fleetyard/fleetagent/core/notify"
	"github.com/fleetyard/fleetagent/core/report"
	"github.com/fleetyard/fleetagent/core/roster"
	"github.com/fleetyard/fleetagent/internal/eventbus"
)

// Loader produces the roster table for a pass. It is called once per tick so
// a repeating run always sees the current spreadsheet.
type Loader func() (roster.Table, error)

// Exporter persists the pass report, typically as CSV/JSON files.
type Exporter func(report.Pass) error

// Options wires an Agent. Loader, Classifier, Memory and Notifier are
// required; the rest default to no-ops.
type Options struct {
	Loader     Loader
	Classifier *classify.Classifier
	Memory     *memory.Memory
	Notifier   notify.Notifier
	Sink       metrics.PassSink
	Bus        *eventbus.Bus[report.Pass]
	Exporter   Exporter
	Log        logger.Logger
	Now        func() time.Time
	DryRun     bool
	Interval   time.Duration
	Loop       bool
}

// Agent orchestrates evaluation passes.
type Agent struct {
	opts Options
	now  func() time.Time
}

// New creates an Agent from the options.
func New(opts Options) (*Agent, error) {
	if opts.Loader == nil || opts.Classifier == nil || opts.Memory == nil || opts.Notifier == nil {
		return nil, fmt.Errorf("agent requires loader, classifier, memory and notifier")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Agent{opts: opts, now: now}, nil
}

// RunOnce executes a single pass: load, classify, gate through the memory,
// deliver, record. Every attempt is recorded regardless of delivery outcome.
// A memory failure aborts the pass; everything recorded so far stays
// recorded, so a restart can at most duplicate one send.
func (a *Agent) RunOnce(ctx context.Context) (report.Pass, error) {
	pass := report.Pass{RunID: uuid.NewString(), StartedAt: a.now()}

	tbl, err := a.opts.Loader()
	if err != nil {
		pass.FinishedAt = a.now()
		return pass, fmt.Errorf("load roster: %w", err)
	}
	pass.RosterRows = len(tbl.Rows())

	actions := a.opts.Classifier.Classify(tbl, pass.StartedAt)
	for _, act := range actions {
		ok, err := a.opts.Memory.ShouldSend(ctx, act, a.now())
		if err != nil {
			pass.FinishedAt = a.now()
			return pass, err
		}
		if !ok {
			pass.Entries = append(pass.Entries, report.Entry{Action: act, Outcome: report.OutcomeSuppressed})
			continue
		}

		entry := report.Entry{Action: act}
		switch sendErr := a.opts.Notifier.Send(ctx, notify.Compose(act)); {
		case sendErr != nil:
			entry.Outcome = report.OutcomeFailed
			entry.Error = sendErr.Error()
			a.errorf("delivery failed for %s %s: %v", act.Vehicle, act.Kind, sendErr)
		case a.opts.DryRun:
			entry.Outcome = report.OutcomeDryRun
		default:
			entry.Outcome = report.OutcomeSent
		}
		pass.Entries = append(pass.Entries, entry)

		if err := a.opts.Memory.Record(ctx, act, a.now()); err != nil {
			pass.FinishedAt = a.now()
			return pass, err
		}
	}
	pass.FinishedAt = a.now()

	a.finishPass(pass)
	return pass, nil
}

// Run executes passes until the context is cancelled. In single-shot mode it
// returns after one pass; in loop mode a failed pass is logged and the next
// tick runs regardless. Shutdown happens between passes, never inside one.
func (a *Agent) Run(ctx context.Context) error {
	for {
		if _, err := a.RunOnce(ctx); err != nil {
			if !a.opts.Loop {
				return err
			}
			a.errorf("pass failed: %v", err)
		}
		if !a.opts.Loop {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(a.opts.Interval):
		}
	}
}

func (a *Agent) finishPass(pass report.Pass) {
	if a.opts.Exporter != nil {
		if err := a.opts.Exporter(pass); err != nil {
			a.errorf("export report: %v", err)
		}
	}
	if a.opts.Sink != nil {
		if err := a.opts.Sink.RecordPass(pass); err != nil {
			a.errorf("metrics sink: %v", err)
		}
	}
	if a.opts.Bus != nil {
		a.opts.Bus.Publish(pass)
	}
	if a.opts.Log != nil {
		a.opts.Log.Debugw("pass complete", map[string]any{
			"run_id":     pass.RunID,
			"rows":       pass.RosterRows,
			"sent":       pass.Count(report.OutcomeSent),
			"dry_run":    pass.Count(report.OutcomeDryRun),
			"suppressed": pass.Count(report.OutcomeSuppressed),
			"failed":     pass.Count(report.OutcomeFailed),
		})
	}
}

func (a *Agent) errorf(format string, args ...any) {
	if a.opts.Log != nil {
		a.opts.Log.Errorf(format, args...)
	}
}
