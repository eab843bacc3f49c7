// Package config loads the agent configuration from YAML or JSON files with
// environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fleetyard/fleetagent/core/classify"
	"github.com/fleetyard/fleetagent/core/metrics"
	"github.com/fleetyard/fleetagent/infra/announce"
	"github.com/fleetyard/fleetagent/infra/mail"
	"github.com/fleetyard/fleetagent/infra/roster"
)

type Config struct {
	Roster   roster.Config   `json:"roster"`
	Rules    classify.Config `json:"rules"`
	Memory   MemoryConfig    `json:"memory"`
	SMTP     mail.Config     `json:"smtp"`
	Metrics  metrics.Config  `json:"metrics"`
	Announce announce.Config `json:"announce"`
	Agent    AgentConfig     `json:"agent"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("FLEET_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fleet_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Roster.SetDefaults()
	cfg.Rules.SetDefaults()
	cfg.Memory.SetDefaults()
	cfg.SMTP.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Announce.SetDefaults()
	cfg.Agent.SetDefaults()
	if err := cfg.Roster.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Memory.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Announce.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Agent.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
