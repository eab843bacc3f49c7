// Package classify turns roster rows into maintenance Actions using the
// tiered service mileage rules and the MOT expiry rules.
package classify

import (
	"fmt"
	"math"
	"time"

	"github.com/fleetyard/fleetagent/core/logger"
	"github.com/fleetyard/fleetagent/core/model"
	"github.com/fleetyard/fleetagent/core/roster"
)

const reasonDateFormat = "02 Jan 2006"

// Classifier evaluates a roster against the configured thresholds.
type Classifier struct {
	cfg Config
	log logger.Logger
}

// New creates a Classifier. A nil logger is allowed for tests.
func New(cfg Config, log logger.Logger) *Classifier {
	return &Classifier{cfg: cfg, log: log}
}

// Classify resolves columns once, then evaluates every row in input order.
// Each row yields zero, one or two Actions: at most one Service and one MOT.
// A row that cannot be classified never stops the rest of the roster.
func (c *Classifier) Classify(tbl roster.Table, now time.Time) []model.Action {
	fm := roster.ResolveColumns(tbl.Columns())
	var actions []model.Action
	for i, row := range tbl.Rows() {
		actions = append(actions, c.classifyRow(fm, row, i, now)...)
	}
	return actions
}

func (c *Classifier) classifyRow(fm roster.FieldMap, row roster.Row, idx int, now time.Time) []model.Action {
	vehicle := c.vehicleID(fm, row, idx)
	recipient := c.recipient(fm, row)

	var actions []model.Action
	if a, ok := c.serviceAction(fm, row, vehicle, recipient); ok {
		actions = append(actions, a)
	}
	if a, ok := c.motAction(fm, row, vehicle, recipient, now); ok {
		actions = append(actions, a)
	}
	return actions
}

// serviceAction applies the mileage fallback chain and the due thresholds.
func (c *Classifier) serviceAction(fm roster.FieldMap, row roster.Row, vehicle, recipient string) (model.Action, bool) {
	miles, detail, rule, ok := milesRemaining(fm, row)
	if !ok {
		c.debugf("vehicle %s: missing or invalid service data", vehicle)
		return model.Action{}, false
	}
	c.debugf("vehicle %s: %s rule yields %d miles remaining", vehicle, rule, int(miles))
	a := model.Action{Vehicle: vehicle, Kind: model.KindService, Recipient: recipient}
	switch {
	case miles <= 0:
		a.Status = model.StatusDue
		a.Reason = fmt.Sprintf("Overdue by %d miles%s.", int(math.Abs(miles)), detail)
	case miles <= c.cfg.DueMilesThreshold:
		a.Status = model.StatusDueSoon
		if detail == "" {
			// The direct reading has no derivation inputs to cite.
			a.Reason = fmt.Sprintf("Within %d miles of service.", int(miles))
		} else {
			a.Reason = fmt.Sprintf("Within %d miles%s.", int(miles), detail)
		}
	default:
		return model.Action{}, false
	}
	return a, true
}

// motAction prefers an explicit expiry column and falls back to last MOT date
// plus one calendar year. No usable date means no action.
func (c *Classifier) motAction(fm roster.FieldMap, row roster.Row, vehicle, recipient string, now time.Time) (model.Action, bool) {
	expiry, ok := c.motExpiry(fm, row)
	if !ok {
		return model.Action{}, false
	}
	daysLeft := int(math.Floor(expiry.Sub(now).Hours() / 24))
	a := model.Action{Vehicle: vehicle, Kind: model.KindMOT, Recipient: recipient, MOTExpiry: &expiry}
	switch {
	case daysLeft < 0:
		a.Status = model.StatusOverdue
		a.Reason = fmt.Sprintf("Expired %d days ago on %s.", -daysLeft, expiry.Format(reasonDateFormat))
	case daysLeft <= c.cfg.DueDaysThreshold:
		a.Status = model.StatusDueSoon
		a.Reason = fmt.Sprintf("Expires in %d days on %s.", daysLeft, expiry.Format(reasonDateFormat))
	default:
		return model.Action{}, false
	}
	return a, true
}

func (c *Classifier) motExpiry(fm roster.FieldMap, row roster.Row) (time.Time, bool) {
	if v, ok := fm.Lookup(row, roster.FieldMOTExpiry); ok {
		if t, ok := roster.NormalizeDate(v); ok {
			return t, true
		}
	}
	if v, ok := fm.Lookup(row, roster.FieldLastMOTDate); ok {
		if last, ok := roster.NormalizeDate(v); ok {
			return last.AddDate(1, 0, 0), true
		}
	}
	return time.Time{}, false
}

func (c *Classifier) vehicleID(fm roster.FieldMap, row roster.Row, idx int) string {
	if v, ok := fm.Lookup(row, roster.FieldVehicle); ok {
		if s, ok := roster.Text(v); ok {
			return s
		}
	}
	return fmt.Sprintf("Vehicle %d", idx+1)
}

// recipient prefers the row's own contact and falls back to the configured
// default. The result may be empty: the Action is still produced and the
// missing recipient surfaces as a delivery failure, never here.
func (c *Classifier) recipient(fm roster.FieldMap, row roster.Row) string {
	if v, ok := fm.Lookup(row, roster.FieldRecipient); ok {
		if s, ok := roster.Text(v); ok {
			return s
		}
	}
	return c.cfg.DefaultRecipient
}

func (c *Classifier) debugf(format string, args ...any) {
	if c.log != nil {
		c.log.Debugf(format, args...)
	}
}
