// Package export writes pass reports as CSV and JSON for audit.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fleetyard/fleetagent/core/report"
)

// WriteJSON writes the pass report to w in JSON format.
func WriteJSON(w io.Writer, p report.Pass) error {
	enc := json.NewEncoder(w)
	return enc.Encode(p)
}

// WriteCSV writes the pass report to w, one row per considered action.
func WriteCSV(w io.Writer, p report.Pass) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"vehicle", "action", "status", "reason", "recipient", "mot_expiry", "outcome", "error"}); err != nil {
		return err
	}
	for _, e := range p.Entries {
		rec := []string{
			e.Action.Vehicle,
			string(e.Action.Kind),
			string(e.Action.Status),
			e.Action.Reason,
			e.Action.Recipient,
			e.Action.MOTExpiryString(),
			string(e.Outcome),
			e.Error,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFiles writes timestamped CSV and JSON report files into dir, creating
// it if needed, and returns the CSV path.
func WriteFiles(dir string, p report.Pass) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	stamp := p.StartedAt.Format("20060102_150405")
	csvPath := filepath.Join(dir, fmt.Sprintf("fleet_actions_%s.csv", stamp))
	jsonPath := filepath.Join(dir, fmt.Sprintf("fleet_actions_%s.json", stamp))

	cf, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	if err := WriteCSV(cf, p); err != nil {
		_ = cf.Close()
		return "", err
	}
	if err := cf.Close(); err != nil {
		return "", err
	}

	jf, err := os.Create(jsonPath)
	if err != nil {
		return "", err
	}
	if err := WriteJSON(jf, p); err != nil {
		_ = jf.Close()
		return "", err
	}
	return csvPath, jf.Close()
}
