package services

import (
	"ainrion_site_go/config"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrMailNotConfigured is returned by a transport whose credentials or
	// addresses are missing. It surfaces at dispatch time, never at startup.
	ErrMailNotConfigured = errors.New("mail transport not configured")

	// ErrMailSendFailed wraps provider errors
	ErrMailSendFailed = errors.New("failed to send email")

	// ErrInvalidEmail is returned for an email that cannot be sent as built
	ErrInvalidEmail = errors.New("invalid email")
)

// Email represents a composed outbound email message
type Email struct {
	From     string
	FromName string
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// FromHeader formats the From address with its display name, if any
func (e *Email) FromHeader() string {
	if e.FromName == "" {
		return e.From
	}
	return (&mail.Address{Name: e.FromName, Address: e.From}).String()
}

// Validate checks the fields every transport needs
func (e *Email) Validate() error {
	if e.From == "" {
		return fmt.Errorf("%w: sender address not set", ErrMailNotConfigured)
	}
	if len(e.To) == 0 || strings.TrimSpace(e.To[0]) == "" {
		return fmt.Errorf("%w: recipient address not set", ErrMailNotConfigured)
	}
	if e.Subject == "" {
		return fmt.Errorf("%w: email must have a subject", ErrInvalidEmail)
	}
	if e.HTMLBody == "" && e.TextBody == "" {
		return fmt.Errorf("%w: email must have either HTMLBody or TextBody", ErrInvalidEmail)
	}
	return nil
}

// MailReceipt is the delivery acknowledgment returned by a transport
type MailReceipt struct {
	Provider  string
	MessageID string
}

// MailSender hands a composed email to a mail provider
type MailSender interface {
	Send(ctx context.Context, email *Email) (*MailReceipt, error)
}

// NewMailSender returns the transport selected by cfg.Provider.
// An unknown provider yields a sender that fails every dispatch, so a bad
// deployment still serves the site.
func NewMailSender(cfg config.MailConfig, logger *slog.Logger) MailSender {
	switch cfg.Provider {
	case config.MailProviderSMTP, "":
		return NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.Username,
			Password: cfg.Password,
			TLSMode:  cfg.SMTPTLSMode,
		})
	case config.MailProviderResend:
		return NewResendSender(cfg.ResendAPIKey)
	case config.MailProviderPostmark:
		return NewPostmarkSender(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	case config.MailProviderConsole:
		return NewConsoleSender(logger)
	default:
		logger.Warn("unknown mail provider, contact emails will fail", slog.String("provider", cfg.Provider))
		return unconfiguredSender{provider: cfg.Provider}
	}
}

type unconfiguredSender struct {
	provider string
}

func (s unconfiguredSender) Send(ctx context.Context, email *Email) (*MailReceipt, error) {
	return nil, fmt.Errorf("%w: unknown provider %q", ErrMailNotConfigured, s.provider)
}

// ConsoleSender logs emails instead of sending them (development mode)
type ConsoleSender struct {
	logger *slog.Logger
}

// NewConsoleSender creates a sender that writes emails to the log
func NewConsoleSender(logger *slog.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

func (s *ConsoleSender) Send(ctx context.Context, email *Email) (*MailReceipt, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	s.logger.InfoContext(ctx, "email logged (development mode - not actually sent)",
		slog.String("message_id", id),
		slog.String("from", email.FromHeader()),
		slog.Any("to", email.To),
		slog.String("reply_to", email.ReplyTo),
		slog.String("subject", email.Subject),
		slog.String("text_body", email.TextBody),
		slog.String("html_body", truncate(email.HTMLBody, 500)),
	)
	return &MailReceipt{Provider: config.MailProviderConsole, MessageID: id}, nil
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
