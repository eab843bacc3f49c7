// Package roster loads fleet spreadsheets from disk into the tabular
// structure the engine consumes. Headers are trimmed and lower-cased on
// load, mirroring how the rosters are maintained by hand.
package roster

import (
	"fmt"
	"path/filepath"
	"strings"

	coreroster "github.com/fleetyard/fleetagent/core/roster"
)

// Config locates the roster file.
type Config struct {
	// Path is the roster file; .csv, .xlsx and .xlsm are supported.
	Path string `json:"path"`
	// Sheet selects a worksheet for Excel files; empty means the first one.
	Sheet string `json:"sheet"`
	// OutDir receives the per-pass report files.
	OutDir string `json:"out_dir"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.OutDir == "" {
		c.OutDir = "."
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("roster path is required")
	}
	return nil
}

// Load reads the roster file selected by the extension.
func Load(cfg Config) (coreroster.Table, error) {
	switch strings.ToLower(filepath.Ext(cfg.Path)) {
	case ".csv":
		return LoadCSV(cfg.Path)
	case ".xlsx", ".xlsm":
		return LoadXLSX(cfg.Path, cfg.Sheet)
	default:
		return nil, fmt.Errorf("unsupported roster format: %s", cfg.Path)
	}
}

func normalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}
