package middleware

import (
	"ainrion_site_go/config"
	"ainrion_site_go/logger"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	e := echo.New()

	t.Run("GeneratesID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var ctxID string
		err := RequestID()(func(c echo.Context) error {
			ctxID = logger.RequestID(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})(c)

		assert.NoError(t, err)
		assert.NotEmpty(t, ctxID)
		assert.Equal(t, ctxID, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("ReusesIncomingID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "req-123")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var ctxID string
		err := RequestID()(func(c echo.Context) error {
			ctxID = logger.RequestID(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})(c)

		assert.NoError(t, err)
		assert.Equal(t, "req-123", ctxID)
		assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
	})
}

func TestInjectConfig(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{Environment: "test"}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := InjectConfig(cfg)(func(c echo.Context) error {
		assert.Same(t, cfg, c.Get("config"))
		return nil
	})(c)
	assert.NoError(t, err)
}
