package handlers

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"
)

type subscribeRequest struct {
	Email string `json:"email" form:"email"`
}

// SubscribeHandler accepts a newsletter signup. Signups are not stored yet;
// the address is only logged.
func SubscribeHandler(logger *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req subscribeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		}

		addr, err := mail.ParseAddress(strings.TrimSpace(req.Email))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid email address"})
		}

		logger.InfoContext(c.Request().Context(), "newsletter signup", slog.String("email", addr.Address))
		return c.NoContent(http.StatusNoContent)
	}
}
