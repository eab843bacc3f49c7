package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
roster:
  path: fleet.csv
rules:
  due_miles_threshold: 250
  default_recipient: fleet@example.com
memory:
  suppress_days: 14
smtp:
  host: smtp.example.com
  from_address: agent@example.com
agent:
  loop: true
  interval_minutes: 60
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fleet.csv", cfg.Roster.Path)
	assert.Equal(t, 250.0, cfg.Rules.DueMilesThreshold)
	assert.Equal(t, "fleet@example.com", cfg.Rules.DefaultRecipient)
	assert.Equal(t, 14, cfg.Memory.SuppressDays)
	assert.True(t, cfg.Agent.Loop)
	assert.Equal(t, 60, cfg.Agent.IntervalMinutes)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
roster:
  path: fleet.xlsx
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500.0, cfg.Rules.DueMilesThreshold)
	assert.Equal(t, 30, cfg.Rules.DueDaysThreshold)
	assert.Equal(t, "fleet_agent_memory.sqlite", cfg.Memory.Path)
	assert.Equal(t, 7, cfg.Memory.SuppressDays)
	assert.Equal(t, 360, cfg.Agent.IntervalMinutes)
	assert.Equal(t, ".", cfg.Roster.OutDir)
	assert.False(t, cfg.Agent.Send, "send must default to off")
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"roster":{"path":"fleet.csv"},"memory":{"suppress_days":3}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Memory.SuppressDays)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FLEET_RULES__DEFAULT_RECIPIENT", "override@example.com")
	path := writeConfig(t, "config.yaml", `
roster:
  path: fleet.csv
rules:
  default_recipient: file@example.com
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "override@example.com", cfg.Rules.DefaultRecipient)
}

func TestLoad_MissingRosterPath(t *testing.T) {
	path := writeConfig(t, "config.yaml", "agent:\n  loop: false\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "x = 1\n")
	_, err := Load(path)
	assert.Error(t, err)
}
