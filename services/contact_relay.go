package services

import (
	"ainrion_site_go/config"
	"ainrion_site_go/models"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
)

// ErrInvalidSubmission is returned when a contact submission lacks a field
var ErrInvalidSubmission = errors.New("invalid contact submission")

// ContactEmailData contains data for the contact submission email template
type ContactEmailData struct {
	Name    string
	Email   string
	Message string
}

// BuildContactEmail composes the notification email for a contact submission.
// Visitor input is escaped in the HTML body; the subject is reduced to
// single-line plain text. Reply-To is the visitor's address when it parses.
func BuildContactEmail(cfg config.MailConfig, submission models.ContactSubmission) (*Email, error) {
	if missing := submission.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", ErrInvalidSubmission, missing)
	}

	htmlBody, textBody, err := loadTemplate("contact_submission", "en", ContactEmailData{
		Name:    submission.Name,
		Email:   submission.Email,
		Message: submission.Message,
	})
	if err != nil {
		return nil, err
	}

	email := &Email{
		From:     cfg.From,
		FromName: cfg.FromName,
		To:       []string{cfg.To},
		Subject:  "New message from " + SanitizeHeaderText(submission.Name),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}
	if addr, err := mail.ParseAddress(submission.Email); err == nil {
		email.ReplyTo = addr.Address
	}
	return email, nil
}

// ContactRelay turns contact submissions into notification emails
type ContactRelay struct {
	sender MailSender
	config config.MailConfig
	logger *slog.Logger
}

// NewContactRelay creates a relay dispatching through sender
func NewContactRelay(sender MailSender, cfg config.MailConfig, logger *slog.Logger) *ContactRelay {
	return &ContactRelay{sender: sender, config: cfg, logger: logger}
}

// Relay composes and dispatches one email for the submission and reports the
// outcome. It makes exactly one dispatch attempt and never panics: provider
// errors become MailFailed, anything else becomes ServerError.
func (r *ContactRelay) Relay(ctx context.Context, submission models.ContactSubmission) (result models.MailResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.ErrorContext(ctx, "panic while relaying contact message", slog.Any("panic", rec))
			result = models.ServerError()
		}
	}()

	email, err := BuildContactEmail(r.config, submission)
	if err != nil {
		r.logger.WarnContext(ctx, "contact message rejected", slog.String("error", err.Error()))
		return models.ServerError()
	}

	receipt, err := r.sender.Send(ctx, email)
	if err != nil {
		r.logger.ErrorContext(ctx, "error sending email",
			slog.String("error", err.Error()),
			slog.Bool("not_configured", errors.Is(err, ErrMailNotConfigured)),
		)
		return models.MailFailed()
	}

	attrs := []any{slog.String("subject", email.Subject)}
	if receipt != nil {
		attrs = append(attrs, slog.String("provider", receipt.Provider), slog.String("message_id", receipt.MessageID))
	}
	r.logger.InfoContext(ctx, "email sent successfully", attrs...)
	return models.MailSent()
}
