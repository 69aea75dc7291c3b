package reporting

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/staynest/booking-api/internal/core/domain"
)

// SentrySink forwards reports to Sentry.
type SentrySink struct {
	hub *sentry.Hub
}

// NewSentrySink builds a dedicated client so the global hub stays untouched.
func NewSentrySink(opts sentry.ClientOptions) (*SentrySink, error) {
	opts.AttachStacktrace = true
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("sentry client: %w", err)
	}
	return &SentrySink{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (s *SentrySink) Report(_ context.Context, r domain.ErrorReport) error {
	hub := s.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("report_id", r.ID)
		scope.SetTag("method", r.Method)
		scope.SetTag("path", r.Path)
		if r.RequestID != "" {
			scope.SetTag("request_id", r.RequestID)
		}
		if r.UserID != 0 {
			scope.SetUser(sentry.User{ID: strconv.FormatInt(r.UserID, 10)})
		}
		hub.CaptureException(r.Err)
	})
	return nil
}

// Flush waits for buffered events to be sent.
func (s *SentrySink) Flush(timeout time.Duration) bool {
	return s.hub.Flush(timeout)
}

func (s *SentrySink) Name() string { return "sentry" }
