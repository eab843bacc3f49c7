// Package memory implements the notification dedup memory: a durable record
// of every alert the agent has attempted, keyed by action fingerprint, used
// to suppress re-sends inside a configurable window.
package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetyard/fleetagent/core/model"
)

// SentRecord is the persisted trace of one notification attempt. Records are
// upserted on every attempt, delivery failures included, and never deleted by
// the engine; suppression is a read-time comparison, not a deletion policy.
type SentRecord struct {
	Fingerprint string
	Vehicle     string
	Kind        string
	Status      string
	Reason      string
	MOTExpiry   string
	Recipient   string
	SentAt      time.Time
}

// Store is the durable backend. The SQLite implementation lives in
// infra/memory.
type Store interface {
	// Lookup returns the record for the fingerprint, if any.
	Lookup(ctx context.Context, fingerprint string) (SentRecord, bool, error)
	// Upsert inserts or replaces the record for its fingerprint atomically.
	Upsert(ctx context.Context, rec SentRecord) error
	// List returns all records, most recent first.
	List(ctx context.Context) ([]SentRecord, error)
	// Clear removes every record, forcing resends on the next pass.
	Clear(ctx context.Context) error
	Close() error
}

// Memory gates notification frequency over a Store.
type Memory struct {
	store  Store
	window time.Duration
}

// New creates a Memory with the given suppression window. A zero or negative
// window disables suppression entirely.
func New(store Store, window time.Duration) *Memory {
	return &Memory{store: store, window: window}
}

// ShouldSend reports whether the action may be delivered at the given
// instant. It is false only when a record with the same fingerprint exists
// inside the suppression window. Store errors are fatal to the caller's pass.
func (m *Memory) ShouldSend(ctx context.Context, a model.Action, at time.Time) (bool, error) {
	if m.window <= 0 {
		return true, nil
	}
	rec, found, err := m.store.Lookup(ctx, Fingerprint(a))
	if err != nil {
		return false, fmt.Errorf("memory lookup: %w", err)
	}
	if !found {
		return true, nil
	}
	return at.Sub(rec.SentAt) >= m.window, nil
}

// Record upserts the action's SentRecord with the attempt timestamp. It is
// called unconditionally after every attempt, whether or not delivery
// succeeded: a broken recipient is "handled this tick" and must wait out the
// window rather than retry on every pass.
func (m *Memory) Record(ctx context.Context, a model.Action, at time.Time) error {
	rec := SentRecord{
		Fingerprint: Fingerprint(a),
		Vehicle:     a.Vehicle,
		Kind:        string(a.Kind),
		Status:      string(a.Status),
		Reason:      a.Reason,
		MOTExpiry:   a.MOTExpiryString(),
		Recipient:   a.Recipient,
		SentAt:      at,
	}
	if err := m.store.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("memory record: %w", err)
	}
	return nil
}
