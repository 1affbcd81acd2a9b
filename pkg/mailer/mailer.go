// Package mailer delivers transactional email through Resend.
//
// Delivery is best-effort by contract: callers fire notifications after their
// primary write has committed, and a failed send is logged but never rolls
// back or blocks the response.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/bmimportados/backoffice-backend/pkg/config"
	"github.com/bmimportados/backoffice-backend/pkg/logger"
)

// Message is a structured email handed to the delivery provider.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Notifier sends a message. Implementations may fail silently from the
// caller's perspective; errors are for logging only.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Client sends messages through the Resend API.
type Client struct {
	resend *resend.Client
	from   string
	logg   *logger.Logger
}

// NewClient builds a Resend-backed notifier.
func NewClient(cfg config.MailConfig, logg *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("mail from address is required")
	}
	return &Client{
		resend: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
		logg:   logg,
	}, nil
}

// Notify sends the message. The error return is informational; callers treat
// delivery as fire-and-forget.
func (c *Client) Notify(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("message has no recipients")
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	if _, err := c.resend.Emails.SendWithContext(ctx, params); err != nil {
		if c.logg != nil {
			ctx = c.logg.WithFields(ctx, map[string]any{
				"to":      strings.Join(msg.To, ","),
				"subject": msg.Subject,
			})
			c.logg.Error(ctx, "mail delivery failed", err)
		}
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
