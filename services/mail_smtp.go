package services

import (
	"ainrion_site_go/config"
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SMTP TLS modes
const (
	SMTPTLSModeStartTLS = "starttls"
	SMTPTLSModeTLS      = "tls"
	SMTPTLSModePlain    = "plain"
)

// SMTPConfig holds the SMTP submission settings. The defaults point at Gmail.
// Plain mode is meant for a local relay: it sends without encryption and
// skips authentication when no credentials are set.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	TLSMode  string
}

// SMTPSender delivers email through an SMTP submission server.
// Safe for concurrent use: each Send opens its own connection.
type SMTPSender struct {
	config SMTPConfig
	dialer net.Dialer
}

// NewSMTPSender creates an SMTP transport. Configuration is validated on Send.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{config: cfg}
}

func (s *SMTPSender) validate() error {
	if s.config.Host == "" {
		return fmt.Errorf("%w: SMTP host is required", ErrMailNotConfigured)
	}
	if s.config.Port <= 0 || s.config.Port > 65535 {
		return fmt.Errorf("%w: SMTP port must be between 1 and 65535", ErrMailNotConfigured)
	}
	switch s.config.TLSMode {
	case SMTPTLSModeStartTLS, SMTPTLSModeTLS, SMTPTLSModePlain:
	default:
		return fmt.Errorf("%w: SMTP TLS mode must be starttls, tls, or plain", ErrMailNotConfigured)
	}
	// A local relay in plain mode may accept mail without AUTH
	if s.config.TLSMode == SMTPTLSModePlain && s.config.Username == "" && s.config.Password == "" {
		return nil
	}
	if !s.hasCredentials() {
		return fmt.Errorf("%w: GMAIL_USER and GMAIL_APP_PASSWORD are required", ErrMailNotConfigured)
	}
	return nil
}

func (s *SMTPSender) hasCredentials() bool {
	return s.config.Username != "" && s.config.Password != ""
}

// Send implements MailSender. The context bounds dialing and, when it carries
// a deadline, the whole SMTP transaction.
func (s *SMTPSender) Send(ctx context.Context, email *Email) (*MailReceipt, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if err := email.Validate(); err != nil {
		return nil, err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.config.Host)
	message, err := buildMIMEMessage(email, messageID, time.Now())
	if err != nil {
		return nil, errors.Join(ErrMailSendFailed, err)
	}

	client, err := s.connect(ctx)
	if err != nil {
		return nil, errors.Join(ErrMailSendFailed, err)
	}
	defer func() { _ = client.Close() }()

	if err := s.transact(client, email, message); err != nil {
		return nil, errors.Join(ErrMailSendFailed, err)
	}

	return &MailReceipt{Provider: config.MailProviderSMTP, MessageID: messageID}, nil
}

// connect dials the server and negotiates TLS according to the configured mode
func (s *SMTPSender) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	tlsConfig := &tls.Config{ServerName: s.config.Host}

	var (
		conn net.Conn
		err  error
	)
	if s.config.TLSMode == SMTPTLSModeTLS {
		d := tls.Dialer{NetDialer: &s.dialer, Config: tlsConfig}
		conn, err = d.DialContext(ctx, "tcp", addr)
	} else {
		conn, err = s.dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if s.config.TLSMode == SMTPTLSModeStartTLS {
		if err := client.StartTLS(tlsConfig); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	return client, nil
}

func (s *SMTPSender) transact(client *smtp.Client, email *Email, message []byte) error {
	if s.hasCredentials() {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}

	if err := client.Mail(email.From); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range email.To {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	// The message is accepted once DATA closes; some servers hang up before QUIT
	_ = client.Quit()
	return nil
}

// buildMIMEMessage renders a multipart/alternative message with text and HTML parts
func buildMIMEMessage(email *Email, messageID string, now time.Time) ([]byte, error) {
	var buf bytes.Buffer

	header := func(key, value string) {
		buf.WriteString(key + ": " + value + "\r\n")
	}

	header("From", email.FromHeader())
	header("To", strings.Join(email.To, ", "))
	if email.ReplyTo != "" {
		header("Reply-To", email.ReplyTo)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", messageID)
	header("MIME-Version", "1.0")

	mw := multipart.NewWriter(&buf)
	header("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()))
	buf.WriteString("\r\n")

	parts := []struct {
		contentType string
		body        string
	}{
		{"text/plain; charset=UTF-8", email.TextBody},
		{"text/html; charset=UTF-8", email.HTMLBody},
	}
	for _, p := range parts {
		if p.body == "" {
			continue
		}
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := qp.Write([]byte(p.body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
