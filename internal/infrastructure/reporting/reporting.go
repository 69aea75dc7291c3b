// Package reporting delivers unexpected failures to telemetry sinks.
package reporting

import (
	"context"
	"errors"

	"github.com/staynest/booking-api/internal/api/metrics"
	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"
)

// Sink is an ErrorReporter with a stable name for logs and metrics.
type Sink interface {
	ports.ErrorReporter
	Name() string
}

// Fanout delivers every report to all sinks, continuing past failures.
type Fanout struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Report(ctx context.Context, report domain.ErrorReport) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Report(ctx, report); err != nil {
			metrics.ErrorReportsTotal.WithLabelValues(s.Name(), "error").Inc()
			errs = append(errs, err)
			continue
		}
		metrics.ErrorReportsTotal.WithLabelValues(s.Name(), "ok").Inc()
	}
	return errors.Join(errs...)
}
