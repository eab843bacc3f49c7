package config

import "fmt"

// MemoryConfig locates the notification memory store.
type MemoryConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path"`
	// SuppressDays is the minimum gap before re-sending an identical action.
	SuppressDays int `json:"suppress_days"`
}

// SetDefaults applies sane defaults.
func (c *MemoryConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "fleet_agent_memory.sqlite"
	}
	if c.SuppressDays == 0 {
		c.SuppressDays = 7
	}
}

// Validate checks field sanity.
func (c MemoryConfig) Validate() error {
	if c.SuppressDays < 0 {
		return fmt.Errorf("suppress_days must not be negative")
	}
	return nil
}

// AgentConfig controls run mode and delivery.
type AgentConfig struct {
	// Loop repeats passes on a fixed interval instead of running once.
	Loop bool `json:"loop"`
	// IntervalMinutes is the sleep between passes in loop mode.
	IntervalMinutes int `json:"interval_minutes"`
	// Send enables real SMTP delivery; otherwise attempts are logged.
	Send bool `json:"send"`
}

// SetDefaults applies sane defaults.
func (c *AgentConfig) SetDefaults() {
	if c.IntervalMinutes == 0 {
		c.IntervalMinutes = 360
	}
}

// Validate checks field sanity.
func (c AgentConfig) Validate() error {
	if c.IntervalMinutes <= 0 {
		return fmt.Errorf("interval_minutes must be positive")
	}
	return nil
}
