// Package app wires the configuration into a runnable fleet agent service.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fleetyard/fleetagent/config"
	"github.com/fleetyard/fleetagent/core/agent"
	"github.com/fleetyard/fleetagent/core/classify"
	corememory "github.com/fleetyard/fleetagent/core/memory"
	coremetrics "github.com/fleetyard/fleetagent/core/metrics"
	"github.com/fleetyard/fleetagent/core/notify"
	"github.com/fleetyard/fleetagent/core/report"
	coreroster "github.com/fleetyard/fleetagent/core/roster"
	"github.com/fleetyard/fleetagent/infra/announce"
	"github.com/fleetyard/fleetagent/infra/logger"
	"github.com/fleetyard/fleetagent/infra/mail"
	inframemory "github.com/fleetyard/fleetagent/infra/memory"
	"github.com/fleetyard/fleetagent/infra/metrics"
	infraroster "github.com/fleetyard/fleetagent/infra/roster"
	"github.com/fleetyard/fleetagent/internal/eventbus"
	"github.com/fleetyard/fleetagent/pkg/export"
)

// Service orchestrates the agent and its collaborators.
type Service struct {
	Agent *agent.Agent

	store     corememory.Store
	bus       *eventbus.Bus[report.Pass]
	announcer *announce.MQTTAnnouncer
	log       logger.Logger

	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	store, err := inframemory.NewSQLiteStore(cfg.Memory.Path)
	if err != nil {
		return nil, fmt.Errorf("memory store: %w", err)
	}
	mem := corememory.New(store, time.Duration(cfg.Memory.SuppressDays)*24*time.Hour)

	var notifier notify.Notifier
	if cfg.Agent.Send {
		smtp, err := mail.NewSMTPNotifier(cfg.SMTP, logger.New("mail"))
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("smtp notifier: %w", err)
		}
		notifier = smtp
	} else {
		notifier = notify.NewLogNotifier(logger.New("notifier"))
	}

	var sinks []coremetrics.PassSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket))
	}
	var sink coremetrics.PassSink = metrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New[report.Pass]()
	var announcer *announce.MQTTAnnouncer
	if cfg.Announce.Enabled {
		announcer, err = announce.NewMQTTAnnouncer(cfg.Announce, logger.New("announce"))
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("announcer: %w", err)
		}
	}

	rosterCfg := cfg.Roster
	ag, err := agent.New(agent.Options{
		Loader:     func() (coreroster.Table, error) { return infraroster.Load(rosterCfg) },
		Classifier: classify.New(cfg.Rules, logger.New("classifier")),
		Memory:     mem,
		Notifier:   notifier,
		Sink:       sink,
		Bus:        bus,
		Exporter: func(p report.Pass) error {
			_, err := export.WriteFiles(rosterCfg.OutDir, p)
			return err
		},
		Log:      logger.New("agent"),
		DryRun:   !cfg.Agent.Send,
		Interval: time.Duration(cfg.Agent.IntervalMinutes) * time.Minute,
		Loop:     cfg.Agent.Loop,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Service{
		Agent:       ag,
		store:       store,
		bus:         bus,
		announcer:   announcer,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run starts the agent and blocks until it finishes or the context is
// cancelled. Pending pass announcements are drained before returning.
func (s *Service) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	if s.announcer != nil {
		sub := s.bus.Subscribe()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range sub {
				if err := s.announcer.Announce(p); err != nil {
					s.log.Errorf("announce pass: %v", err)
				}
			}
		}()
	}
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	err := s.Agent.Run(ctx)
	s.bus.Close()
	wg.Wait()
	return err
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.announcer != nil {
		s.announcer.Close()
	}
	return s.store.Close()
}
