package main

import (
	"ainrion_site_go/config"
	"ainrion_site_go/logger"
	"ainrion_site_go/services"
	"ainrion_site_go/services/i18n"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := i18n.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type countingSender struct {
	calls atomic.Int32
	err   error
}

func (s *countingSender) Send(ctx context.Context, email *services.Email) (*services.MailReceipt, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &services.MailReceipt{Provider: "test", MessageID: "msg-1"}, nil
}

func setupServer(t *testing.T) (*echo.Echo, *countingSender) {
	t.Helper()
	cfg := config.Defaults()
	cfg.AllowedOrigins = []string{"https://ainrion.com"}
	cfg.Mail.From = "site@ainrion.com"
	cfg.Mail.To = "inbox@ainrion.com"

	sender := &countingSender{}
	relay := services.NewContactRelay(sender, cfg.Mail, logger.NewNope())
	return newServer(cfg, relay, logger.NewNope()), sender
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_SendEmailMethodNotAllowed(t *testing.T) {
	e, sender := setupServer(t)

	tests := []struct {
		method string
		origin string
	}{
		{http.MethodGet, ""},
		{http.MethodOptions, ""},
		{http.MethodOptions, "https://evil.example"},
		{http.MethodOptions, "https://ainrion.com"},
		{http.MethodPut, "https://ainrion.com"},
		{http.MethodDelete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.origin, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/send-email", nil)
			if tt.origin != "" {
				req.Header.Set(echo.HeaderOrigin, tt.origin)
				req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
			}

			rec := serve(e, req)

			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, "POST", rec.Header().Get(echo.HeaderAllow))
			assert.Equal(t, fmt.Sprintf("Method %s Not Allowed", tt.method), rec.Body.String())
		})
	}
	assert.Equal(t, int32(0), sender.calls.Load())
}

func TestServer_SendEmail(t *testing.T) {
	e, sender := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/send-email",
		strings.NewReader(`{"name":"Bob","email":"b@example.com","message":"Hello\nWorld"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := serve(e, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Email sent successfully"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, int32(1), sender.calls.Load())
}

func TestServer_SendEmailOversizedBody(t *testing.T) {
	e, sender := setupServer(t)

	body, err := json.Marshal(map[string]string{
		"name":    "Bob",
		"email":   "b@example.com",
		"message": strings.Repeat("x", 70000),
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := serve(e, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Server error"}`, rec.Body.String())
	assert.Equal(t, int32(0), sender.calls.Load())
}

func TestServer_OtherRoutesKeepMiddleware(t *testing.T) {
	e, _ := setupServer(t)

	t.Run("CORS preflight on subscribe", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/subscribe", nil)
		req.Header.Set(echo.HeaderOrigin, "https://ainrion.com")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)

		rec := serve(e, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://ainrion.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("Body limit on subscribe", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/subscribe",
			strings.NewReader(`{"email":"`+strings.Repeat("a", 70000)+`@example.com"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := serve(e, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("Pages carry CSP and locale", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/contact?lang=es", nil)

		rec := serve(e, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "script-src 'self' 'nonce-")
		assert.Contains(t, rec.Body.String(), "Enviar Mensaje")
		assert.Equal(t, "DENY", rec.Header().Get(echo.HeaderXFrameOptions))
	})

	t.Run("Health", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})
}
