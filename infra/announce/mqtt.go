// Package announce publishes pass reports to an MQTT broker so external
// dashboards can follow the agent without polling its output directory.
package announce

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/fleetyard/fleetagent/core/logger"
	"github.com/fleetyard/fleetagent/core/report"
)

// Config defines the broker connection and topic layout.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	// Topic receives the pass summary; per-action messages go to
	// Topic + "/actions/<vehicle>".
	Topic string `json:"topic"`
	QoS   byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "fleet-agent"
	}
	if c.Topic == "" {
		c.Topic = "fleet/passes"
	}
}

// Validate checks mandatory fields when enabled.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("announce broker is required")
	}
	return nil
}

// MQTTAnnouncer publishes pass reports over MQTT.
type MQTTAnnouncer struct {
	cli paho.Client
	cfg Config
	log logger.Logger
}

// NewMQTTAnnouncer connects to the broker.
func NewMQTTAnnouncer(cfg Config, log logger.Logger) (*MQTTAnnouncer, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(10 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := paho.NewClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout: %s", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTAnnouncer{cli: cli, cfg: cfg, log: log}, nil
}

// Announce publishes the pass summary and one message per considered action.
func (a *MQTTAnnouncer) Announce(p report.Pass) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := a.publish(a.cfg.Topic, payload); err != nil {
		return err
	}
	for _, e := range p.Entries {
		b, err := json.Marshal(e)
		if err != nil {
			return err
		}
		topic := fmt.Sprintf("%s/actions/%s", a.cfg.Topic, e.Action.Vehicle)
		if err := a.publish(topic, b); err != nil {
			return err
		}
	}
	a.log.Debugf("announced pass %s (%d actions)", p.RunID, len(p.Entries))
	return nil
}

func (a *MQTTAnnouncer) publish(topic string, payload []byte) error {
	tok := a.cli.Publish(topic, a.cfg.QoS, false, payload)
	if !tok.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("mqtt publish timeout: %s", topic)
	}
	return tok.Error()
}

// Close disconnects from the broker.
func (a *MQTTAnnouncer) Close() {
	a.cli.Disconnect(250)
}
