// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package mailer delivers the confirmation email that proves a submitter
// controls their address.
package mailer

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/wneessen/go-mail"

	"github.com/dmarchetti/citazioni/cliparse"
)

// Sender delivers the confirmation email for a new submission. The core
// treats delivery as a black box: it either succeeds or fails, and a failure
// never rolls back the stored submission.
type Sender interface {
	SendConfirmation(to, name, token string) error
}

// SMTPSender sends over SMTP with STARTTLS, matching the transport the
// site has always used.
type SMTPSender struct {
	cfg     cliparse.SMTPConfig
	siteURL string
}

func NewSMTPSender(cfg cliparse.SMTPConfig, siteURL string) *SMTPSender {
	return &SMTPSender{cfg: cfg, siteURL: siteURL}
}

func (s *SMTPSender) SendConfirmation(to, name, token string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("Conferma la tua citazione")
	msg.SetBodyString(mail.TypeTextPlain, Body(name, ConfirmationURL(s.siteURL, token)))

	client, err := mail.NewClient(s.cfg.Host,
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(s.cfg.User),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation mail: %w", err)
	}
	return nil
}

// ConfirmationURL builds the link embedded in the email body.
func ConfirmationURL(siteURL, token string) string {
	return siteURL + "/conferma?token=" + url.QueryEscape(token)
}

// Body composes the confirmation mail text.
func Body(name, link string) string {
	return fmt.Sprintf(`Ciao %s,

grazie per aver inviato la tua citazione!

Per confermarla, clicca sul link qui sotto:

%s

Se non hai richiesto tu questa email, puoi ignorarla.
`, name, link)
}

// LogSender is the -no-mail implementation: it logs the link instead of
// sending, so the flow can be exercised without an SMTP account.
type LogSender struct {
	SiteURL string
}

func (l *LogSender) SendConfirmation(to, name, token string) error {
	slog.Info("confirmation mail suppressed (-no-mail)",
		"to", to,
		"name", name,
		"link", ConfirmationURL(l.SiteURL, token),
	)
	return nil
}
