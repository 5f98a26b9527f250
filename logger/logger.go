// Package logger builds the application's structured slog logger.
//
// Records are written as JSON to stdout. When a Sentry DSN is configured,
// warnings and errors are also forwarded to Sentry; errors become issues.
// Request-scoped values (the request ID) are injected from the context on
// every call, so handlers should log with the *Context variants.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// Options configures New
type Options struct {
	Level       string
	SentryDSN   string
	Environment string
	// Output defaults to os.Stdout
	Output io.Writer
}

// New creates a JSON logger with the request ID extractor installed.
// If SentryDSN is empty, or Sentry fails to initialize, only stdout is used.
func New(opts Options, extractors ...ContextExtractor) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	stdoutHandler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	})

	extractors = append([]ContextExtractor{RequestIDExtractor}, extractors...)

	if opts.SentryDSN == "" {
		return slog.New(NewLogHandlerDecorator(stdoutHandler, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         opts.SentryDSN,
		Environment: opts.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(stdoutHandler, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(newMultiHandler(stdoutHandler, sentryHandler), extractors...))
}

// NewNope creates a logger that discards all output. Used as a default in
// services and tests.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
