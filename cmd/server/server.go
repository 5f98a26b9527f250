package main

import (
	"ainrion_site_go/config"
	"ainrion_site_go/handlers"
	"ainrion_site_go/middleware"
	"ainrion_site_go/services"
	"ainrion_site_go/static"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// newServer builds the echo instance with the full middleware stack and
// every route.
func newServer(cfg *config.Config, relay *services.ContactRelay, appLogger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// The relay answers every method and every failure with its own result,
	// so middleware that short-circuits requests leaves it alone
	skipRelay := func(c echo.Context) bool {
		return c.Path() == handlers.SendEmailPath
	}

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(appLogger))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "0",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         hstsMaxAge(cfg),
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		Skipper:      skipRelay,
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(echomiddleware.BodyLimitWithConfig(echomiddleware.BodyLimitConfig{
		Skipper: skipRelay,
		Limit:   "64K",
	}))
	e.Use(middleware.InjectConfig(cfg))

	// Static files
	assets := e.Group("/static", middleware.StaticCacheControl())
	assets.StaticFS("/", static.FS)

	e.GET("/healthz", handlers.HealthHandler)

	// Pages
	pages := e.Group("", middleware.CSPNonce(appLogger), middleware.Locale(cfg))
	pages.GET("/", handlers.LandingHandler)
	pages.GET("/contact", handlers.ContactPageHandler)

	// API
	e.POST("/subscribe", handlers.SubscribeHandler(appLogger))
	e.Any(handlers.SendEmailPath, handlers.SendEmailHandler(relay, appLogger))

	return e
}

func hstsMaxAge(cfg *config.Config) int {
	if cfg.IsProduction() {
		return 31536000
	}
	return 0
}
