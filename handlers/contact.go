package handlers

import (
	"ainrion_site_go/models"
	"ainrion_site_go/services"
	"ainrion_site_go/templates/pages"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// SendEmailPath is the route of the mail relay endpoint
	SendEmailPath = "/api/send-email"

	// MaxContactBodyBytes caps the relay request body. Larger bodies get the
	// generic server error like any other unreadable request.
	MaxContactBodyBytes = 64 << 10
)

// ContactPageHandler renders the contact form
func ContactPageHandler(c echo.Context) error {
	component := pages.Contact(pages.ContactPageData{
		PageData: pages.PageData{
			SEO:  getSEO(c, "contact"),
			Year: now().Year(),
		},
		Endpoint: SendEmailPath,
	})
	return render(c, http.StatusOK, component)
}

// SendEmailHandler relays a contact submission to the configured inbox.
// It is registered for every method and answers anything but POST with 405.
// Every failure becomes a generic JSON result; details stay in the log.
func SendEmailHandler(relay *services.ContactRelay, logger *slog.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		req := c.Request()
		if req.Method != http.MethodPost {
			c.Response().Header().Set(echo.HeaderAllow, http.MethodPost)
			return c.String(http.StatusMethodNotAllowed, fmt.Sprintf("Method %s Not Allowed", req.Method))
		}

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(req.Context(), "panic in send-email handler", slog.Any("panic", rec))
				err = c.JSON(http.StatusInternalServerError, models.ServerError())
			}
		}()

		req.Body = http.MaxBytesReader(c.Response(), req.Body, MaxContactBodyBytes)

		var submission models.ContactSubmission
		if err := c.Bind(&submission); err != nil {
			logger.WarnContext(req.Context(), "invalid contact request body", slog.String("error", err.Error()))
			return c.JSON(http.StatusInternalServerError, models.ServerError())
		}

		// A visitor closing the tab must not abort an accepted dispatch
		ctx := context.WithoutCancel(req.Context())
		result := relay.Relay(ctx, submission)

		status := http.StatusOK
		if !result.Success {
			status = http.StatusInternalServerError
		}
		return c.JSON(status, result)
	}
}
