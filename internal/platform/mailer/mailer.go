package mailer

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	"github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/platform/config"
)

// SMTPMailer sends moderation decision mail over plain SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

var _ services.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer builds a mailer from SMTP settings. The dialer connects
// lazily, so a bad password only surfaces on the first send.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword),
		from:   cfg.SMTPEmail,
	}
}

// SendListingDecision notifies the publisher of an approve/reject decision.
func (m *SMTPMailer) SendListingDecision(ctx context.Context, toEmail string, listing domain.Listing, reason string) error {
	title, _ := listing.Payload["title"].(string)
	if title == "" {
		title = listing.ListingID
	}

	var subject, body string
	switch listing.Status {
	case domain.StatusApproved:
		subject = fmt.Sprintf("Your listing %q has been approved", title)
		body = fmt.Sprintf("Good news! Your %s listing %q is now live on Unlock.", listing.Type, title)
	case domain.StatusRejected:
		subject = fmt.Sprintf("Your listing %q was not approved", title)
		body = fmt.Sprintf("Your %s listing %q was reviewed and not approved.\n\nReason: %s\n\nYou can edit the listing and resubmit it for review.", listing.Type, title, reason)
	default:
		return fmt.Errorf("no decision mail for listing status %q", listing.Status)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send decision mail to %s: %w", toEmail, err)
	}
	return nil
}
