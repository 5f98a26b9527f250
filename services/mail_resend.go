package services

import (
	"ainrion_site_go/config"
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers email through the Resend API
type ResendSender struct {
	apiKey string
	client *resend.Client
}

// NewResendSender creates a Resend transport. An empty key fails on Send.
func NewResendSender(apiKey string) *ResendSender {
	s := &ResendSender{apiKey: apiKey}
	if apiKey != "" {
		s.client = resend.NewClient(apiKey)
	}
	return s
}

func (s *ResendSender) Send(ctx context.Context, email *Email) (*MailReceipt, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: RESEND_API_KEY not configured", ErrMailNotConfigured)
	}
	if err := email.Validate(); err != nil {
		return nil, err
	}

	params := &resend.SendEmailRequest{
		From:    email.FromHeader(),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
		ReplyTo: email.ReplyTo,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, errors.Join(ErrMailSendFailed, fmt.Errorf("resend: %w", err))
	}

	return &MailReceipt{Provider: config.MailProviderResend, MessageID: sent.Id}, nil
}
