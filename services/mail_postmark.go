package services

import (
	"ainrion_site_go/config"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

// PostmarkSender delivers email through Postmark's transactional API
type PostmarkSender struct {
	client *postmark.Client
}

// NewPostmarkSender creates a Postmark transport. Missing tokens fail on Send.
func NewPostmarkSender(serverToken, accountToken string) *PostmarkSender {
	s := &PostmarkSender{}
	if serverToken != "" {
		s.client = postmark.NewClient(serverToken, accountToken)
	}
	return s
}

func (s *PostmarkSender) Send(ctx context.Context, email *Email) (*MailReceipt, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN not configured", ErrMailNotConfigured)
	}
	if err := email.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     email.FromHeader(),
		To:       strings.Join(email.To, ","),
		ReplyTo:  email.ReplyTo,
		Subject:  email.Subject,
		Tag:      "contact-form",
		HTMLBody: email.HTMLBody,
		TextBody: email.TextBody,
	})
	if err != nil {
		return nil, errors.Join(ErrMailSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return nil, errors.Join(
			ErrMailSendFailed,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}

	return &MailReceipt{Provider: config.MailProviderPostmark, MessageID: resp.MessageID}, nil
}
