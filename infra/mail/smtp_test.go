package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/fleetyard/fleetagent/core/notify"
)

func validConfig() Config {
	cfg := Config{Host: "smtp.example.com", FromAddress: "agent@example.com"}
	cfg.SetDefaults()
	return cfg
}

func TestNewSMTPNotifier_NilLogger(t *testing.T) {
	n, err := NewSMTPNotifier(validConfig(), nil)
	if err != nil {
		t.Fatalf("new notifier: %v", err)
	}
	// The nil logger must never panic on any Send path.
	sendErr := n.Send(context.Background(), notify.Message{Subject: "x"})
	if notify.KindOf(sendErr) != notify.FailureMissingRecipient {
		t.Fatalf("expected missing recipient, got %v", sendErr)
	}
}

func TestNewSMTPNotifier_InvalidConfig(t *testing.T) {
	if _, err := NewSMTPNotifier(Config{}, nil); err == nil {
		t.Fatal("expected validation error for empty config")
	}
	if _, err := NewSMTPNotifier(Config{Host: "smtp.example.com"}, nil); err == nil {
		t.Fatal("expected validation error for missing from address")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Host: "smtp.example.com", Username: "agent@example.com"}
	cfg.SetDefaults()
	if cfg.Port != 587 {
		t.Fatalf("default port: %d", cfg.Port)
	}
	if cfg.FromName != "Fleet Agent" {
		t.Fatalf("default from name: %q", cfg.FromName)
	}
	if cfg.FromAddress != "agent@example.com" {
		t.Fatalf("from address should fall back to username: %q", cfg.FromAddress)
	}
}

func TestClassifyFailure(t *testing.T) {
	cases := []struct {
		err  error
		want notify.FailureKind
	}{
		{errors.New("535 5.7.8 authentication credentials invalid"), notify.FailureAuth},
		{errors.New("SMTP authentication failed"), notify.FailureAuth},
		{errors.New("550 mailbox unavailable"), notify.FailureRejected},
	}
	for _, tc := range cases {
		if got := classify(tc.err); got != tc.want {
			t.Errorf("classify(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
