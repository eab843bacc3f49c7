package notify

import (
	"fmt"
	"strings"

	"github.com/fleetyard/fleetagent/core/model"
)

// Compose builds the alert message for an action.
func Compose(a model.Action) Message {
	subject := fmt.Sprintf("[Fleet] %s: %s %s", a.Vehicle, a.Kind, a.Status)
	lines := []string{
		"Hi team,",
		"",
		fmt.Sprintf("Vehicle: %s", a.Vehicle),
		fmt.Sprintf("Action: %s (%s)", a.Kind, a.Status),
		fmt.Sprintf("Reason: %s", a.Reason),
	}
	if a.Kind == model.KindMOT && a.MOTExpiry != nil {
		lines = append(lines, fmt.Sprintf("MOT expiry: %s", a.MOTExpiry.Format("02 Jan 2006")))
	}
	lines = append(lines,
		"",
		"Please schedule this and update the tracker once booked.",
		"",
		"Thanks,",
		"Fleet Agent",
	)
	return Message{
		Recipient: a.Recipient,
		Subject:   subject,
		Body:      strings.Join(lines, "\n"),
	}
}
