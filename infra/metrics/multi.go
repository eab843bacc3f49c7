package metrics

import (
	"errors"

	coremetrics "github.com/fleetyard/fleetagent/core/metrics"
	"github.com/fleetyard/fleetagent/core/report"
)

// NopSink discards all pass records.
type NopSink struct{}

func (NopSink) RecordPass(report.Pass) error { return nil }

// MultiSink fans a pass out to several sinks, collecting every error.
type MultiSink struct {
	sinks []coremetrics.PassSink
}

// NewMultiSink creates a MultiSink.
func NewMultiSink(sinks ...coremetrics.PassSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordPass(p report.Pass) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordPass(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
