// Package mail implements the SMTP notifier on top of wneessen/go-mail.
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gomail "github.com/wneessen/go-mail"

	"github.com/fleetyard/fleetagent/core/logger"
	"github.com/fleetyard/fleetagent/core/notify"
)

// SMTPNotifier delivers alert messages over SMTP. One attempt per call, no
// internal retry.
type SMTPNotifier struct {
	cfg Config
	log logger.Logger
}

// NewSMTPNotifier validates the transport settings and creates the notifier.
func NewSMTPNotifier(cfg Config, log logger.Logger) (*SMTPNotifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SMTPNotifier{cfg: cfg, log: log}, nil
}

// Send performs a single best-effort delivery attempt.
func (n *SMTPNotifier) Send(ctx context.Context, msg notify.Message) error {
	if msg.Recipient == "" {
		return &notify.Error{Kind: notify.FailureMissingRecipient, Err: fmt.Errorf("no recipient resolved")}
	}

	m := gomail.NewMsg()
	if err := m.FromFormat(n.cfg.FromName, n.cfg.FromAddress); err != nil {
		return &notify.Error{Kind: notify.FailureRejected, Err: fmt.Errorf("from address: %w", err)}
	}
	if err := m.To(msg.Recipient); err != nil {
		return &notify.Error{Kind: notify.FailureRejected, Err: fmt.Errorf("to address: %w", err)}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	if msg.Attachment != "" {
		m.AttachFile(msg.Attachment)
	}

	opts := []gomail.Option{
		gomail.WithPort(n.cfg.Port),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(n.cfg.Username),
			gomail.WithPassword(n.cfg.Password),
		)
	}
	if n.cfg.UseTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return &notify.Error{Kind: notify.FailureNetwork, Err: fmt.Errorf("smtp client: %w", err)}
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return &notify.Error{Kind: classify(err), Err: err}
	}
	if n.log != nil {
		n.log.Infof("sent %q to %s", msg.Subject, msg.Recipient)
	}
	return nil
}

// classify maps a go-mail error onto the notifier failure taxonomy.
func classify(err error) notify.FailureKind {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "auth") || strings.Contains(msg, "535") {
		return notify.FailureAuth
	}
	var se *gomail.SendError
	if errors.As(err, &se) && se.Reason == gomail.ErrConnCheck {
		return notify.FailureNetwork
	}
	return notify.FailureRejected
}
