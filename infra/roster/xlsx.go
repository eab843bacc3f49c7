package roster

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	coreroster "github.com/fleetyard/fleetagent/core/roster"
)

// LoadXLSX reads an Excel roster. An empty sheet name selects the first
// worksheet. Cells arrive as their formatted strings; serial dates survive as
// numeric text the normalizer recognises.
func LoadXLSX(path, sheet string) (coreroster.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty roster sheet: %s", sheet)
	}

	cols := normalizeHeaders(records[0])
	rows := make([]coreroster.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(coreroster.Row, len(cols))
		for i, col := range cols {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return coreroster.NewMemTable(cols, rows), nil
}
