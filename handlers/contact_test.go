package handlers

import (
	"ainrion_site_go/logger"
	"ainrion_site_go/services"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bobPayload = `{"name":"Bob","email":"b@example.com","message":"Hello\nWorld"}`

func TestSendEmailHandler(t *testing.T) {
	t.Run("Rejects non-POST methods", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
			sender := &recordingSender{}
			_, c, rec := setupEcho(method, SendEmailPath, nil)

			err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
			require.NoError(t, err)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "POST", rec.Header().Get("Allow"))
			assert.Equal(t, fmt.Sprintf("Method %s Not Allowed", method), rec.Body.String())
			assert.Empty(t, sender.sent())
		}
	})

	t.Run("Relays a valid submission", func(t *testing.T) {
		sender := &recordingSender{}
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(bobPayload))

		err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"message":"Email sent successfully"}`, rec.Body.String())

		sent := sender.sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "New message from Bob", sent[0].Subject)
		assert.Equal(t, []string{"inbox@ainrion.com"}, sent[0].To)
		assert.Equal(t, "site@ainrion.com", sent[0].From)
		assert.Equal(t, "b@example.com", sent[0].ReplyTo)
		assert.Contains(t, sent[0].HTMLBody, "Hello<br>World")
	})

	t.Run("Dispatch failure", func(t *testing.T) {
		sender := &recordingSender{err: errors.New("535 authentication failed for secret-user")}
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(bobPayload))

		err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Failed to send email"}`, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "secret-user")
		assert.Len(t, sender.sent(), 1)
	})

	t.Run("Missing mail configuration is a dispatch failure", func(t *testing.T) {
		sender := services.NewSMTPSender(services.SMTPConfig{Host: "smtp.gmail.com", Port: 587, TLSMode: "starttls"})
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(bobPayload))

		err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Failed to send email"}`, rec.Body.String())
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		sender := &recordingSender{}
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(`{"name":`))

		err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Server error"}`, rec.Body.String())
		assert.Empty(t, sender.sent())
	})

	t.Run("Oversized body", func(t *testing.T) {
		sender := &recordingSender{}
		payload := `{"name":"Bob","email":"b@example.com","message":"` + strings.Repeat("x", MaxContactBodyBytes) + `"}`
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(payload))

		err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Server error"}`, rec.Body.String())
		assert.Empty(t, sender.sent())
	})

	t.Run("Body just under the cap", func(t *testing.T) {
		sender := &recordingSender{}
		payload := `{"name":"Bob","email":"b@example.com","message":"` + strings.Repeat("x", MaxContactBodyBytes-100) + `"}`
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(payload))

		err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, sender.sent(), 1)
	})

	t.Run("Missing field", func(t *testing.T) {
		sender := &recordingSender{}
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(`{"name":"Bob","email":"b@example.com","message":"  "}`))

		err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Server error"}`, rec.Body.String())
		assert.Empty(t, sender.sent())
	})

	t.Run("Panicking transport", func(t *testing.T) {
		sender := &recordingSender{panic: true}
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(bobPayload))

		err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Server error"}`, rec.Body.String())
	})

	t.Run("Nil relay panic is recovered", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(bobPayload))

		err := SendEmailHandler(nil, logger.NewNope())(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"success":false,"message":"Server error"}`, rec.Body.String())
	})

	t.Run("Dispatch survives client disconnect", func(t *testing.T) {
		sender := &recordingSender{}
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(bobPayload))
		ctx, cancel := context.WithCancel(c.Request().Context())
		cancel()
		c.SetRequest(c.Request().WithContext(ctx))

		err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, sender.ctxErr, 1)
		assert.NoError(t, sender.ctxErr[0])
	})

	t.Run("Escapes markup in the notification", func(t *testing.T) {
		sender := &recordingSender{}
		payload := `{"name":"<b>Eve</b>","email":"e@example.com","message":"<script>x()</script>"}`
		_, c, rec := setupEcho(http.MethodPost, SendEmailPath, strings.NewReader(payload))

		err := SendEmailHandler(newTestRelay(sender), logger.NewNope())(c)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		sent := sender.sent()
		require.Len(t, sent, 1)
		assert.NotContains(t, sent[0].HTMLBody, "<script>")
		assert.Contains(t, sent[0].HTMLBody, "&lt;script&gt;")
		assert.Equal(t, "New message from Eve", sent[0].Subject)
	})
}

func TestContactPageHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/contact", nil)
	c.Set("locale", "en")

	err := ContactPageHandler(c)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "id=\"contact-form\"")
	assert.Contains(t, body, "action=\"/api/send-email\"")
	assert.Contains(t, body, "<link rel=\"canonical\" href=\"https://ainrion.com/contact\">")
}
