package ports

import (
	"context"
	"time"

	"github.com/staynest/booking-api/internal/core/domain"
)

// ErrorReporter is the telemetry sink for unexpected failures.
type ErrorReporter interface {
	Report(ctx context.Context, report domain.ErrorReport) error
}

// LoginLimiter tracks failed logins per client key (usually the remote IP).
type LoginLimiter interface {
	// Locked returns how long the key stays locked, zero when it may try again.
	Locked(ctx context.Context, key string) (time.Duration, error)
	// Fail records a failed attempt and returns the attempts left before a lock.
	Fail(ctx context.Context, key string) (int, error)
	Reset(ctx context.Context, key string) error
}
