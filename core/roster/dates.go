package roster

import (
	"strings"
	"time"
)

// serialEpoch is the legacy spreadsheet date epoch (1899-12-30). The two day
// offset from 1900-01-01 absorbs the historical leap-year-1900 quirk, so
// serial 44197 lands on 2021-01-01.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// serialFloor guards against treating plain small numbers (mileages,
// intervals) as date serials.
const serialFloor = 20000

// textLayouts are tried in order; day-before-month spellings come first
// because the rosters follow UK conventions.
var textLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"2 January 2006",
	"January 2, 2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
}

// NormalizeDate converts a raw cell into a point in time. It recognises, in
// order: native date values, spreadsheet serial numbers above serialFloor and
// free-text dates. Serials arrive as numeric text as often as native numbers,
// since the file loaders deliver cells as strings. Anything else reports
// ok=false, which downstream code treats as "unknown", never as an error.
func NormalizeDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if val.IsZero() {
			return time.Time{}, false
		}
		return val, true
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return *val, true
	case float64:
		return fromSerial(val)
	case float32:
		return fromSerial(float64(val))
	case int:
		return fromSerial(float64(val))
	case int64:
		return fromSerial(float64(val))
	case string:
		return parseText(val)
	default:
		return time.Time{}, false
	}
}

func fromSerial(days float64) (time.Time, bool) {
	if days <= serialFloor {
		return time.Time{}, false
	}
	return serialEpoch.Add(time.Duration(days * 24 * float64(time.Hour))), true
}

func parseText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// A cell that reads as a plain number is a serial or nothing; the text
	// layouts would never match it anyway.
	if f, ok := Number(s); ok {
		return fromSerial(f)
	}
	for _, layout := range textLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
