// Package metrics defines the sink interface fed after every evaluation
// pass. Concrete sinks (Prometheus, InfluxDB) live in infra/metrics.
package metrics

import "github.com/fleetyard/fleetagent/core/report"

// PassSink records the outcome of one evaluation pass.
type PassSink interface {
	RecordPass(p report.Pass) error
}

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":9090"
	}
}
