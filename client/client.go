// Package client submits contact messages to the site's mail relay endpoint.
//
// A Form mirrors the browser contact form: every field is required, only one
// submission runs at a time, and the outcome is reported as a transient
// notification through a Notifier. Fields are cleared after a successful
// submission and kept after a failure so the visitor can retry.
package client

import (
	"ainrion_site_go/logger"
	"ainrion_site_go/models"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

var (
	// ErrFieldRequired is returned without sending a request when a field is blank
	ErrFieldRequired = errors.New("field is required")

	// ErrSubmitInFlight is returned when Submit is called while a request runs
	ErrSubmitInFlight = errors.New("submission already in progress")

	// ErrSubmitFailed is returned after a negative notification
	ErrSubmitFailed = errors.New("failed to send message")
)

// DefaultTimeout bounds a submission when the caller's context has no deadline
const DefaultTimeout = 30 * time.Second

// Form holds the contact fields and submits them to the relay endpoint.
// Fields must not be modified while Submitting reports true.
type Form struct {
	Name    string
	Email   string
	Message string

	endpoint   string
	httpClient *http.Client
	notifier   Notifier
	logger     *slog.Logger
	submitting atomic.Bool
}

// Option configures a Form
type Option func(*Form)

// WithHTTPClient sets the HTTP client used for submissions
func WithHTTPClient(c *http.Client) Option {
	return func(f *Form) {
		if c != nil {
			f.httpClient = c
		}
	}
}

// WithLogger sets the logger used for failure details
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewForm creates an empty form posting to endpoint, e.g.
// "https://ainrion.com/api/send-email".
func NewForm(endpoint string, notifier Notifier, opts ...Option) *Form {
	f := &Form{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		notifier:   notifier,
		logger:     logger.NewNope(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.notifier == nil {
		f.notifier = NotifierFunc(func(Toast) {})
	}
	return f
}

// Submitting reports whether a submission is in flight. A UI disables its
// submit control while this is true.
func (f *Form) Submitting() bool {
	return f.submitting.Load()
}

// Submit sends the form as one JSON request and notifies the outcome.
// It returns ErrFieldRequired or ErrSubmitInFlight without sending anything,
// ErrSubmitFailed after a negative notification, and nil after a positive one.
func (f *Form) Submit(ctx context.Context) error {
	if !f.submitting.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	defer f.submitting.Store(false)

	submission := models.ContactSubmission{Name: f.Name, Email: f.Email, Message: f.Message}
	if missing := submission.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrFieldRequired, missing[0])
	}

	result, err := f.post(ctx, submission)
	if err != nil {
		f.logger.ErrorContext(ctx, "error sending message", slog.String("error", err.Error()))
		f.notifier.Notify(FailureToast)
		return errors.Join(ErrSubmitFailed, err)
	}
	if !result.Success {
		f.logger.ErrorContext(ctx, "error sending message", slog.String("message", result.Message))
		f.notifier.Notify(FailureToast)
		return fmt.Errorf("%w: %s", ErrSubmitFailed, result.Message)
	}

	f.Name, f.Email, f.Message = "", "", ""
	f.notifier.Notify(SuccessToast)
	return nil
}

// post performs the HTTP exchange. The status code is not consulted: the
// relay reports its outcome in the JSON body.
func (f *Form) post(ctx context.Context, submission models.ContactSubmission) (*models.MailResult, error) {
	body, err := json.Marshal(submission)
	if err != nil {
		return nil, fmt.Errorf("failed to encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var result models.MailResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return &result, nil
}

// EndpointURL joins a site base URL and the relay path
func EndpointURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/api/send-email"
}
