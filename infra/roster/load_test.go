package roster

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fleetyard/fleetagent/core/classify"
	"github.com/fleetyard/fleetagent/core/model"
	coreroster "github.com/fleetyard/fleetagent/core/roster"
)

func writeRosterCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fleet.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeRosterCSV(t, " Reg ,Miles To Service,Email\nAB12 CDE,350,ops@example.com\nXY99 ZZZ,,\n")

	tbl, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cols := tbl.Columns()
	if len(cols) != 3 || cols[0] != "reg" || cols[1] != "miles to service" {
		t.Fatalf("headers not normalized: %v", cols)
	}
	rows := tbl.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["reg"] != "AB12 CDE" || rows[0]["miles to service"] != "350" {
		t.Fatalf("first row: %v", rows[0])
	}

	fm := coreroster.ResolveColumns(cols)
	if v, ok := fm.Lookup(rows[0], coreroster.FieldMilesToService); !ok || v != "350" {
		t.Fatalf("lookup miles: %v %v", v, ok)
	}
	if _, ok := fm.Lookup(rows[1], coreroster.FieldRecipient); ok {
		t.Fatal("blank email cell must not resolve")
	}
}

func TestLoadCSV_SerialDateCellClassifies(t *testing.T) {
	// Serial 44197 is 2021-01-01; the loader delivers it as text and the
	// classifier must still see an expired MOT.
	path := writeRosterCSV(t, "reg,mot expiry\nAB12 CDE,44197\n")

	tbl, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := classify.Config{}
	cfg.SetDefaults()
	now := time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC)
	actions := classify.New(cfg, nil).Classify(tbl, now)
	if len(actions) != 1 {
		t.Fatalf("expected 1 overdue MOT action from a serial cell, got %d", len(actions))
	}
	a := actions[0]
	if a.Kind != model.KindMOT || a.Status != model.StatusOverdue {
		t.Fatalf("unexpected action: %+v", a)
	}
	if a.MOTExpiry == nil || !a.MOTExpiry.Equal(time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expiry not decoded from serial: %v", a.MOTExpiry)
	}
}

func TestLoadCSV_RaggedRows(t *testing.T) {
	path := writeRosterCSV(t, "reg,miles to service,email\nAB12 CDE,350\n")

	tbl, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	row := tbl.Rows()[0]
	if _, present := row["email"]; present {
		t.Fatalf("short record must leave trailing cells absent: %v", row)
	}
}

func TestLoadCSV_Empty(t *testing.T) {
	path := writeRosterCSV(t, "")
	if _, err := LoadCSV(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestLoad_DispatchByExtension(t *testing.T) {
	path := writeRosterCSV(t, "reg\nAB12 CDE\n")
	cfg := Config{Path: path}
	cfg.SetDefaults()

	tbl, err := Load(cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tbl.Rows()) != 1 {
		t.Fatalf("rows: %d", len(tbl.Rows()))
	}

	if _, err := Load(Config{Path: "fleet.txt"}); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestConfigValidate(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing path")
	}
	if cfg.OutDir != "." {
		t.Fatalf("default out dir: %s", cfg.OutDir)
	}
}
