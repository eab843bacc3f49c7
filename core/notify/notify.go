// Package notify defines the delivery boundary for maintenance alerts and
// the failure taxonomy reported back to the run controller.
package notify

import (
	"context"
	"errors"
	"fmt"
)

// FailureKind classifies why a delivery attempt failed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureMissingRecipient means the action had nowhere to go.
	FailureMissingRecipient
	// FailureAuth means the transport rejected our credentials.
	FailureAuth
	// FailureNetwork means the transport could not be reached.
	FailureNetwork
	// FailureRejected means the transport refused the message itself.
	FailureRejected
)

func (k FailureKind) String() string {
	switch k {
	case FailureMissingRecipient:
		return "missing recipient"
	case FailureAuth:
		return "authentication"
	case FailureNetwork:
		return "network"
	case FailureRejected:
		return "rejected"
	default:
		return "none"
	}
}

// Error wraps a delivery failure with its kind.
type Error struct {
	Kind FailureKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("delivery failed: %s", e.Kind)
	}
	return fmt.Sprintf("delivery failed (%s): %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from a delivery error, or FailureNone for
// nil and unclassified errors.
func KindOf(err error) FailureKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return FailureNone
}

// Message is one alert ready for delivery. Attachment is an optional file
// path, typically the pass report.
type Message struct {
	Recipient  string
	Subject    string
	Body       string
	Attachment string
}

// Notifier performs a single best-effort delivery attempt. Retry policy
// belongs to the run controller: the next tick retries anything the memory
// no longer suppresses.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
