package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/fleetyard/fleetagent/core/metrics"
	"github.com/fleetyard/fleetagent/core/report"
)

// PromSink records pass outcomes in Prometheus metrics.
type PromSink struct {
	actions  *prometheus.CounterVec
	duration prometheus.Histogram
	roster   prometheus.Gauge
}

// NewPromSink registers pass metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.PassSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.PassSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_actions_total",
		Help: "Total number of maintenance actions considered",
	}, []string{"kind", "status", "outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fleet_pass_duration_seconds",
		Help:    "Duration of one evaluation pass",
		Buckets: prometheus.DefBuckets,
	})
	roster := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_roster_rows",
		Help: "Number of roster rows in the last evaluation pass",
	})

	if err := reg.Register(actions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			actions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(roster); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			roster = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{actions: actions, duration: duration, roster: roster}, nil
}

// RecordPass updates the counters for every entry of the pass.
func (s *PromSink) RecordPass(p report.Pass) error {
	for _, e := range p.Entries {
		s.actions.WithLabelValues(string(e.Action.Kind), string(e.Action.Status), string(e.Outcome)).Inc()
	}
	s.duration.Observe(p.FinishedAt.Sub(p.StartedAt).Seconds())
	s.roster.Set(float64(p.RosterRows))
	return nil
}
