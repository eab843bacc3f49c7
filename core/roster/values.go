package roster

import (
	"fmt"
	"strconv"
	"strings"
)

// Number coerces a cell into a float64. Spreadsheet loaders deliver numbers
// as strings as often as not, so numeric text (with optional thousands
// separators) is accepted too.
func Number(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Text coerces a cell into a trimmed string; empty cells report ok=false.
func Text(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return "", false
	}
	return s, true
}
