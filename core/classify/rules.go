package classify

import (
	"fmt"

	"github.com/fleetyard/fleetagent/core/roster"
)

// serviceRule is one attempt at computing the miles remaining to the next
// service. Rules are evaluated in order until one yields a value; each carries
// a detail fragment appended to the reason text so the alert names the inputs
// it was derived from.
type serviceRule struct {
	name string
	eval func(fm roster.FieldMap, row roster.Row) (miles float64, detail string, ok bool)
}

// serviceRules is the fallback chain, most direct source first.
var serviceRules = []serviceRule{
	{
		name: "miles_to_service",
		eval: func(fm roster.FieldMap, row roster.Row) (float64, string, bool) {
			v, ok := fm.Lookup(row, roster.FieldMilesToService)
			if !ok {
				return 0, "", false
			}
			m, ok := roster.Number(v)
			if !ok {
				return 0, "", false
			}
			return m, "", true
		},
	},
	{
		name: "due_at_minus_current",
		eval: func(fm roster.FieldMap, row roster.Row) (float64, string, bool) {
			dueRaw, ok := fm.Lookup(row, roster.FieldServiceDueAt)
			if !ok {
				return 0, "", false
			}
			curRaw, ok := fm.Lookup(row, roster.FieldCurrentMileage)
			if !ok {
				return 0, "", false
			}
			due, ok := roster.Number(dueRaw)
			if !ok {
				return 0, "", false
			}
			cur, ok := roster.Number(curRaw)
			if !ok {
				return 0, "", false
			}
			detail := fmt.Sprintf(" (due at %d, current %d)", int(due), int(cur))
			return due - cur, detail, true
		},
	},
	{
		name: "interval_since_last",
		eval: func(fm roster.FieldMap, row roster.Row) (float64, string, bool) {
			curRaw, ok := fm.Lookup(row, roster.FieldCurrentMileage)
			if !ok {
				return 0, "", false
			}
			lastRaw, ok := fm.Lookup(row, roster.FieldLastServiceMileage)
			if !ok {
				return 0, "", false
			}
			intRaw, ok := fm.Lookup(row, roster.FieldServiceInterval)
			if !ok {
				return 0, "", false
			}
			cur, ok := roster.Number(curRaw)
			if !ok {
				return 0, "", false
			}
			last, ok := roster.Number(lastRaw)
			if !ok {
				return 0, "", false
			}
			interval, ok := roster.Number(intRaw)
			if !ok {
				return 0, "", false
			}
			detail := fmt.Sprintf(" (interval %d, last at %d)", int(interval), int(last))
			return (last + interval) - cur, detail, true
		},
	},
}

// milesRemaining runs the fallback chain and reports which rule produced the
// value. ok=false means no rule had enough data, which the caller records as
// a diagnostic, not an alert.
func milesRemaining(fm roster.FieldMap, row roster.Row) (miles float64, detail, rule string, ok bool) {
	for _, r := range serviceRules {
		if m, d, ok := r.eval(fm, row); ok {
			return m, d, r.name, true
		}
	}
	return 0, "", "", false
}
