// Package report captures the audit trail of one evaluation pass: every
// action considered, with its delivery outcome.
package report

import (
	"time"

	"github.com/fleetyard/fleetagent/core/model"
)

// Outcome describes what the run controller did with an action.
type Outcome string

const (
	// OutcomeSent means delivery succeeded.
	OutcomeSent Outcome = "sent"
	// OutcomeDryRun means the attempt was logged, not delivered.
	OutcomeDryRun Outcome = "dry-run"
	// OutcomeSuppressed means the dedup memory blocked a recent duplicate.
	OutcomeSuppressed Outcome = "suppressed"
	// OutcomeFailed means delivery was attempted and failed.
	OutcomeFailed Outcome = "failed"
)

// Entry is one considered action and its outcome.
type Entry struct {
	Action  model.Action `json:"action"`
	Outcome Outcome      `json:"outcome"`
	Error   string       `json:"error,omitempty"`
}

// Pass is the full audit record of one evaluation pass.
type Pass struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	RosterRows int       `json:"roster_rows"`
	Entries    []Entry   `json:"entries"`
}

// Count returns how many entries ended with the given outcome.
func (p Pass) Count(o Outcome) int {
	n := 0
	for _, e := range p.Entries {
		if e.Outcome == o {
			n++
		}
	}
	return n
}

// Actions returns the actions of every entry, in pass order.
func (p Pass) Actions() []model.Action {
	out := make([]model.Action, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Action)
	}
	return out
}
