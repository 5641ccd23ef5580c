// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

/*
Package notify delivers out-of-band messages to users.

Its single production duty is carrying signup confirmation codes to the
address a user registered with. Delivery failures are surfaced to the
caller — a signup whose code was never sent must fail loudly, not succeed
silently with an unreachable account.
*/
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Notifier is the delivery contract injected into the auth service.
type Notifier interface {
	// SendConfirmationCode delivers a confirmation code to the given address.
	SendConfirmationCode(ctx context.Context, email, code string) error
}

// # SMTP Delivery

// SMTPNotifier sends confirmation codes via a plain SMTP relay.
type SMTPNotifier struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPNotifier creates an SMTP-backed notifier.
//
// # Parameters
//   - addr: host:port of the SMTP relay.
//   - from: envelope sender address.
//   - username, password: PLAIN auth credentials; both empty disables auth.
func NewSMTPNotifier(addr, from, username, password string) *SMTPNotifier {
	var auth smtp.Auth
	if username != "" || password != "" {
		host, _, found := strings.Cut(addr, ":")
		if !found {
			host = addr
		}
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPNotifier{addr: addr, from: from, auth: auth}
}

// SendConfirmationCode implements [Notifier] over SMTP.
func (notifier *SMTPNotifier) SendConfirmationCode(_ context.Context, email, code string) error {
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your Reviewly confirmation code\r\n\r\n"+
			"Your confirmation code is: %s\r\n",
		notifier.from, email, code,
	)

	if err := smtp.SendMail(notifier.addr, notifier.auth, notifier.from, []string{email}, []byte(message)); err != nil {
		return fmt.Errorf("notify_smtp_send_failed: %w", err)
	}

	return nil
}

// # Development Delivery

// LogNotifier writes confirmation codes to the structured log.
//
// # Warning
//
// Logging credentials is acceptable only in local development. The wiring in
// cmd/api selects this implementation solely when no SMTP relay is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier for development environments.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// SendConfirmationCode implements [Notifier] by logging the code.
func (notifier *LogNotifier) SendConfirmationCode(ctx context.Context, email, code string) error {
	notifier.logger.InfoContext(ctx, "confirmation_code_issued",
		slog.String("email", email),
		slog.String("code", code),
	)
	return nil
}
