package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fleetyard/fleetagent/core/model"
	"github.com/fleetyard/fleetagent/core/report"
)

func samplePass() report.Pass {
	expiry := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	return report.Pass{
		RunID:      "test-run",
		StartedAt:  time.Date(2026, 1, 20, 9, 30, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 1, 20, 9, 30, 2, 0, time.UTC),
		RosterRows: 3,
		Entries: []report.Entry{
			{
				Action: model.Action{
					Vehicle:   "AB12 CDE",
					Kind:      model.KindService,
					Status:    model.StatusDueSoon,
					Reason:    "Within 400 miles.",
					Recipient: "ops@example.com",
				},
				Outcome: report.OutcomeSent,
			},
			{
				Action: model.Action{
					Vehicle:   "XY99 ZZZ",
					Kind:      model.KindMOT,
					Status:    model.StatusOverdue,
					Reason:    "Expired 10 days ago on 15 Feb 2026.",
					MOTExpiry: &expiry,
					Recipient: "",
				},
				Outcome: report.OutcomeFailed,
				Error:   "delivery failed (missing recipient): no recipient resolved",
			},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, samplePass()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != "vehicle,action,status,reason,recipient,mot_expiry,outcome,error" {
		t.Fatalf("header: %s", got)
	}
	if rows[1][0] != "AB12 CDE" || rows[1][6] != "sent" {
		t.Fatalf("first row: %v", rows[1])
	}
	if rows[2][5] != "2026-02-15" || rows[2][6] != "failed" {
		t.Fatalf("second row: %v", rows[2])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, samplePass()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var p report.Pass
	if err := json.Unmarshal(buf.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.RunID != "test-run" || len(p.Entries) != 2 {
		t.Fatalf("roundtrip: %+v", p)
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	csvPath, err := WriteFiles(dir, samplePass())
	if err != nil {
		t.Fatalf("write files: %v", err)
	}
	if filepath.Base(csvPath) != "fleet_actions_20260120_093000.csv" {
		t.Fatalf("csv path: %s", csvPath)
	}
	jsonPath := strings.TrimSuffix(csvPath, ".csv") + ".json"
	for _, p := range []string{csvPath, jsonPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing report file %s: %v", p, err)
		}
	}
}
