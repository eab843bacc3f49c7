package roster

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeRosterXLSX(t *testing.T, sheet string, records [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rec); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "fleet.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeRosterXLSX(t, "Sheet1", [][]any{
		{"Reg", "Miles To Service", "Email"},
		{"AB12 CDE", 350, "ops@example.com"},
	})

	tbl, err := LoadXLSX(path, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cols := tbl.Columns(); len(cols) != 3 || cols[1] != "miles to service" {
		t.Fatalf("headers: %v", cols)
	}
	rows := tbl.Rows()
	if len(rows) != 1 {
		t.Fatalf("rows: %d", len(rows))
	}
	if rows[0]["reg"] != "AB12 CDE" || rows[0]["miles to service"] != "350" {
		t.Fatalf("row: %v", rows[0])
	}
}

func TestLoadXLSX_NamedSheet(t *testing.T) {
	path := writeRosterXLSX(t, "Fleet", [][]any{
		{"reg"},
		{"XY99 ZZZ"},
	})

	tbl, err := LoadXLSX(path, "Fleet")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tbl.Rows()[0]["reg"] != "XY99 ZZZ" {
		t.Fatalf("row: %v", tbl.Rows()[0])
	}

	if _, err := LoadXLSX(path, "Missing"); err == nil {
		t.Fatal("expected error for unknown sheet")
	}
}
