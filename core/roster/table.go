// Package roster models the fleet spreadsheet as an already-parsed table and
// provides tolerant column resolution and date normalization over it. File
// parsing lives in infra/roster.
package roster

// Row is one vehicle record keyed by header name. Cells hold whatever the
// loader produced: numbers, times or text. A missing key and a nil value both
// mean "no data".
type Row map[string]any

// Table is the engine's view of a parsed roster.
type Table interface {
	Columns() []string
	Rows() []Row
}

// MemTable is an in-memory Table used by the loaders and tests.
type MemTable struct {
	cols []string
	rows []Row
}

// NewMemTable builds a MemTable from a header list and rows.
func NewMemTable(cols []string, rows []Row) *MemTable {
	return &MemTable{cols: cols, rows: rows}
}

func (t *MemTable) Columns() []string { return t.cols }

func (t *MemTable) Rows() []Row { return t.rows }
