package services

import (
	"ainrion_site_go/config"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplate(t *testing.T) {
	oldTemplates := emailTemplates
	defer func() { emailTemplates = oldTemplates }()

	emailTemplates = fstest.MapFS{
		"test_template.html":    {Data: []byte("<html><body>Hello {{.UserName}}</body></html>")},
		"test_template.txt":     {Data: []byte("Hello {{.UserName}}")},
		"test_template_es.html": {Data: []byte("<html><body>Hola {{.UserName}}</body></html>")},
		"test_template_es.txt":  {Data: []byte("Hola {{.UserName}}")},
	}

	type data struct {
		UserName string
	}
	tplData := data{UserName: "John & <Jane>"}

	t.Run("Load Base Template", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", "en", tplData)
		assert.NoError(t, err)
		assert.Contains(t, html, "Hello John &amp; &lt;Jane&gt;")
		assert.Equal(t, "Hello John & <Jane>", text)
	})

	t.Run("Load Localized Template", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", "es", tplData)
		assert.NoError(t, err)
		assert.Contains(t, html, "Hola John")
		assert.Contains(t, text, "Hola John")
	})

	t.Run("Fallback to Base when Localized Missing", func(t *testing.T) {
		html, text, err := loadTemplate("test_template", "fr", tplData)
		assert.NoError(t, err)
		assert.Contains(t, html, "Hello John")
		assert.Contains(t, text, "Hello John")
	})

	t.Run("Template Not Found", func(t *testing.T) {
		_, _, err := loadTemplate("non_existent", "en", tplData)
		assert.Error(t, err)
	})
}

func TestEmbeddedContactTemplateExists(t *testing.T) {
	html, text, err := loadTemplate("contact_submission", "en", ContactEmailData{Name: "A", Email: "a@b.c", Message: "m"})
	require.NoError(t, err)
	assert.Contains(t, html, "New Contact Form Submission")
	assert.Contains(t, text, "New Contact Form Submission")
}

func TestEmail_Validate(t *testing.T) {
	valid := func() *Email {
		return &Email{
			From:     "sender@example.com",
			To:       []string{"inbox@example.com"},
			Subject:  "Test",
			HTMLBody: "Body",
		}
	}

	assert.NoError(t, valid().Validate())

	e := valid()
	e.From = ""
	assert.ErrorIs(t, e.Validate(), ErrMailNotConfigured)

	e = valid()
	e.To = []string{""}
	assert.ErrorIs(t, e.Validate(), ErrMailNotConfigured)

	e = valid()
	e.Subject = ""
	assert.ErrorIs(t, e.Validate(), ErrInvalidEmail)

	e = valid()
	e.HTMLBody = ""
	err := e.Validate()
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Contains(t, err.Error(), "email must have either HTMLBody or TextBody")
}

func TestEmail_FromHeader(t *testing.T) {
	e := &Email{From: "sender@example.com"}
	assert.Equal(t, "sender@example.com", e.FromHeader())

	e.FromName = "Ainrion Website"
	assert.Equal(t, `"Ainrion Website" <sender@example.com>`, e.FromHeader())
}

func TestNewMailSender(t *testing.T) {
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.IsType(t, &SMTPSender{}, NewMailSender(config.MailConfig{Provider: config.MailProviderSMTP}, log))
	assert.IsType(t, &ResendSender{}, NewMailSender(config.MailConfig{Provider: config.MailProviderResend}, log))
	assert.IsType(t, &PostmarkSender{}, NewMailSender(config.MailConfig{Provider: config.MailProviderPostmark}, log))
	assert.IsType(t, &ConsoleSender{}, NewMailSender(config.MailConfig{Provider: config.MailProviderConsole}, log))

	unknown := NewMailSender(config.MailConfig{Provider: "carrier-pigeon"}, log)
	_, err := unknown.Send(context.Background(), &Email{})
	assert.ErrorIs(t, err, ErrMailNotConfigured)
}

func TestConsoleSender_Send(t *testing.T) {
	var buf bytes.Buffer
	sender := NewConsoleSender(slog.New(slog.NewJSONHandler(&buf, nil)))

	receipt, err := sender.Send(context.Background(), &Email{
		From:     "sender@example.com",
		To:       []string{"inbox@example.com"},
		Subject:  "New message from Bob",
		TextBody: "Hello",
	})
	require.NoError(t, err)
	assert.Equal(t, config.MailProviderConsole, receipt.Provider)
	assert.NotEmpty(t, receipt.MessageID)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "New message from Bob", rec["subject"])
	assert.Equal(t, receipt.MessageID, rec["message_id"])
}

func TestResendSender_NoApiKey(t *testing.T) {
	sender := NewResendSender("")
	_, err := sender.Send(context.Background(), &Email{
		From:     "sender@example.com",
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	})
	assert.ErrorIs(t, err, ErrMailNotConfigured)
	assert.Contains(t, err.Error(), "RESEND_API_KEY not configured")
}

func TestResendSender_NoBody(t *testing.T) {
	sender := NewResendSender("key")
	_, err := sender.Send(context.Background(), &Email{
		From:    "sender@example.com",
		To:      []string{"test@example.com"},
		Subject: "Test",
	})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestPostmarkSender_NoToken(t *testing.T) {
	sender := NewPostmarkSender("", "")
	_, err := sender.Send(context.Background(), &Email{
		From:     "sender@example.com",
		To:       []string{"test@example.com"},
		Subject:  "Test",
		HTMLBody: "Body",
	})
	assert.ErrorIs(t, err, ErrMailNotConfigured)
	assert.Contains(t, err.Error(), "POSTMARK_SERVER_TOKEN not configured")
}

func TestTruncate(t *testing.T) {
	s := "Hello World"
	assert.Equal(t, "Hello", truncate(s, 5))
	assert.Equal(t, "Hello World", truncate(s, 20))
}
