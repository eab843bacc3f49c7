// Package model defines the domain types shared by the roster,
// classification and notification packages.
package model

import "time"

// ActionKind identifies the kind of maintenance a vehicle requires.
type ActionKind string

const (
	// KindService is scheduled maintenance tracked by mileage.
	KindService ActionKind = "Service"
	// KindMOT is the periodic statutory roadworthiness inspection.
	KindMOT ActionKind = "MOT"
)

// ActionStatus describes how urgent an action is.
type ActionStatus string

const (
	// StatusDue marks a service at or past its due mileage.
	StatusDue ActionStatus = "Due"
	// StatusDueSoon marks an action inside the warning threshold.
	StatusDueSoon ActionStatus = "Due soon"
	// StatusOverdue marks an MOT past its expiry date.
	StatusOverdue ActionStatus = "Overdue"
)

// Action is one required piece of maintenance for one vehicle. Actions are
// only constructed when a vehicle needs attention; a compliant vehicle never
// yields one.
type Action struct {
	Vehicle   string       `json:"vehicle"`
	Kind      ActionKind   `json:"kind"`
	Status    ActionStatus `json:"status"`
	Reason    string       `json:"reason"`
	MOTExpiry *time.Time   `json:"mot_expiry,omitempty"`
	Recipient string       `json:"recipient"`
}

// MOTExpiryString renders the expiry date for fingerprinting and persistence.
// Actions without an expiry return the empty string.
func (a Action) MOTExpiryString() string {
	if a.MOTExpiry == nil {
		return ""
	}
	return a.MOTExpiry.Format("2006-01-02")
}
