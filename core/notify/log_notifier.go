package notify

import (
	"context"
	"fmt"

	"github.com/fleetyard/fleetagent/core/logger"
)

// LogNotifier logs messages instead of delivering them. It backs dry runs,
// where attempts are still recorded in the memory but nothing leaves the
// process. A missing recipient still fails, so dry runs surface the same
// data problems a live run would.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Send logs the message and reports success.
func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	if msg.Recipient == "" {
		return &Error{Kind: FailureMissingRecipient, Err: fmt.Errorf("no recipient resolved")}
	}
	if n.log != nil {
		n.log.Infof("dry-run: would send %q to %s", msg.Subject, msg.Recipient)
	}
	return nil
}
