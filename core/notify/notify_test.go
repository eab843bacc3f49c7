package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fleetyard/fleetagent/core/model"
)

func TestCompose_Service(t *testing.T) {
	msg := Compose(model.Action{
		Vehicle:   "AB12 CDE",
		Kind:      model.KindService,
		Status:    model.StatusDueSoon,
		Reason:    "Within 400 miles (due at 10000, current 9600).",
		Recipient: "ops@example.com",
	})

	if msg.Recipient != "ops@example.com" {
		t.Fatalf("recipient: %s", msg.Recipient)
	}
	if msg.Subject != "[Fleet] AB12 CDE: Service Due soon" {
		t.Fatalf("subject: %s", msg.Subject)
	}
	for _, want := range []string{
		"Vehicle: AB12 CDE",
		"Action: Service (Due soon)",
		"Reason: Within 400 miles (due at 10000, current 9600).",
	} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q:\n%s", want, msg.Body)
		}
	}
	if strings.Contains(msg.Body, "MOT expiry") {
		t.Error("service message should not mention MOT expiry")
	}
}

func TestCompose_MOTIncludesExpiry(t *testing.T) {
	expiry := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	msg := Compose(model.Action{
		Vehicle:   "XY99 ZZZ",
		Kind:      model.KindMOT,
		Status:    model.StatusOverdue,
		Reason:    "Expired 10 days ago on 15 Feb 2026.",
		MOTExpiry: &expiry,
		Recipient: "ops@example.com",
	})

	if msg.Subject != "[Fleet] XY99 ZZZ: MOT Overdue" {
		t.Fatalf("subject: %s", msg.Subject)
	}
	if !strings.Contains(msg.Body, "MOT expiry: 15 Feb 2026") {
		t.Fatalf("body missing expiry line:\n%s", msg.Body)
	}
}

func TestLogNotifier_MissingRecipient(t *testing.T) {
	n := NewLogNotifier(nil)
	err := n.Send(context.Background(), Message{Subject: "[Fleet] AB12 CDE: Service Due"})
	if KindOf(err) != FailureMissingRecipient {
		t.Fatalf("expected missing recipient failure, got %v", err)
	}
}

func TestLogNotifier_Success(t *testing.T) {
	n := NewLogNotifier(nil)
	if err := n.Send(context.Background(), Message{Recipient: "ops@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want FailureKind
	}{
		{nil, FailureNone},
		{errors.New("plain"), FailureNone},
		{&Error{Kind: FailureAuth}, FailureAuth},
		{fmt.Errorf("send: %w", &Error{Kind: FailureNetwork, Err: errors.New("refused")}), FailureNetwork},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("KindOf(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
