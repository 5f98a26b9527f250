package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler is the liveness probe
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
