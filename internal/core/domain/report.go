package domain

import "time"

// ErrorReport is one unexpected failure handed to the telemetry sink.
type ErrorReport struct {
	ID         string
	Err        error
	Method     string
	Path       string
	RequestID  string
	UserID     int64
	OccurredAt time.Time
}
