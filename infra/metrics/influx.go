package metrics

import (
	"context"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/fleetyard/fleetagent/core/metrics"
	"github.com/fleetyard/fleetagent/core/report"
	"github.com/fleetyard/fleetagent/infra/logger"
)

// InfluxSink writes pass outcomes to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.PassSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return NopSink{}
	}
	return sink
}

// RecordPass writes one point per considered action plus a pass summary point.
func (s *InfluxSink) RecordPass(p report.Pass) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, e := range p.Entries {
		pt := write.NewPointWithMeasurement("fleet_action").
			AddTag("run_id", p.RunID).
			AddTag("vehicle", e.Action.Vehicle).
			AddTag("kind", string(e.Action.Kind)).
			AddTag("status", string(e.Action.Status)).
			AddTag("outcome", string(e.Outcome)).
			AddField("reason", e.Action.Reason).
			SetTime(p.FinishedAt)
		if err := s.writeAPI.WritePoint(ctx, pt); err != nil {
			return err
		}
	}
	summary := write.NewPointWithMeasurement("fleet_pass").
		AddTag("run_id", p.RunID).
		AddField("roster_rows", p.RosterRows).
		AddField("sent", p.Count(report.OutcomeSent)).
		AddField("suppressed", p.Count(report.OutcomeSuppressed)).
		AddField("failed", p.Count(report.OutcomeFailed)).
		AddField("duration_ms", p.FinishedAt.Sub(p.StartedAt).Milliseconds()).
		SetTime(p.FinishedAt)
	return s.writeAPI.WritePoint(ctx, summary)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
