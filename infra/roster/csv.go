package roster

import (
	"encoding/csv"
	"fmt"
	"os"

	coreroster "github.com/fleetyard/fleetagent/core/roster"
)

// LoadCSV reads a CSV roster. The first record is the header row; cells stay
// strings and the date normalizer sorts them out downstream.
func LoadCSV(path string) (coreroster.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty roster: %s", path)
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
