package handlers

import (
	"ainrion_site_go/logger"
	"ainrion_site_go/services/i18n"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandingHandler(t *testing.T) {
	now = func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	t.Run("English", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/", nil)
		c.Set("locale", "en")
		c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), "en")))

		require.NoError(t, LandingHandler(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "Ainrion is Coming Soon")
		assert.Contains(t, body, "© 2031 Ainrion. All rights reserved.")
		assert.Contains(t, body, "href=\"/contact\"")
		assert.Contains(t, body, "<title>Ainrion | Coming Soon</title>")
	})

	t.Run("Spanish", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/", nil)
		c.Set("locale", "es")
		c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), "es")))

		require.NoError(t, LandingHandler(c))

		body := rec.Body.String()
		assert.Contains(t, body, "Ainrion Llega Muy Pronto")
		assert.Contains(t, body, "hreflang=\"en\" href=\"https://ainrion.com/?lang=en\"")
	})
}

func TestSubscribeHandler(t *testing.T) {
	t.Run("Valid address", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/subscribe", strings.NewReader(`{"email":"fan@example.com"}`))
		require.NoError(t, SubscribeHandler(logger.NewNope())(c))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("Invalid address", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/subscribe", strings.NewReader(`{"email":"not-an-email"}`))
		require.NoError(t, SubscribeHandler(logger.NewNope())(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Malformed body", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodPost, "/subscribe", strings.NewReader(`{`))
		require.NoError(t, SubscribeHandler(logger.NewNope())(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/healthz", nil)
	require.NoError(t, HealthHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetSEO(t *testing.T) {
	_, c, _ := setupEcho(http.MethodGet, "/contact", nil)
	c.Set("locale", "es")

	seo := getSEO(c, "contact")

	assert.Equal(t, "Contáctanos | Ainrion", seo.Title)
	assert.Equal(t, "https://ainrion.com/contact", seo.Canonical)
	assert.Equal(t, "es", seo.Locale)
	assert.Equal(t, []string{"en"}, seo.AltLocales)
}
