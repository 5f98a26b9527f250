package main

import (
	"ainrion_site_go/config"
	"ainrion_site_go/logger"
	"ainrion_site_go/middleware"
	"ainrion_site_go/services"
	"ainrion_site_go/services/i18n"
	"ainrion_site_go/static"
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	appLogger := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		SentryDSN:   cfg.SentryDSN,
		Environment: cfg.Environment,
	})
	defer sentry.Flush(2 * time.Second)

	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}
	middleware.InitAssetVersions(static.FS, appLogger)

	// Mail transport problems are reported per message, never at startup
	sender := services.NewMailSender(cfg.Mail, appLogger)
	relay := services.NewContactRelay(sender, cfg.Mail, appLogger)

	e := newServer(cfg, relay, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("server starting",
			slog.String("port", cfg.ServerPort),
			slog.String("environment", cfg.Environment),
			slog.String("mail_provider", cfg.Mail.Provider),
		)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
}
