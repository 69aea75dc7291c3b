package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"
)

const serverErrorMessage = "Server error"

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain errors
// to status codes and renders {"message": "..."}. Anything it does not
// recognise is logged, handed to the reporter and answered with a generic 500.
// reporter may be nil.
func NewHTTPErrorHandler(log zerolog.Logger, reporter ports.ErrorReporter) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, known := resolveError(err)
		if !known {
			reportUnexpected(err, c, log, reporter)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusForbidden, "Token is required", true
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusForbidden, "Invalid or expired token", true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access forbidden", true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials", true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User already exists", true
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many login attempts", true
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, "Booking not found", true
	case errors.Is(err, domain.ErrInvalidReference):
		return http.StatusBadRequest, "Referenced user or property does not exist", true
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error(), true
	}

	// Echo's own errors (router 404/405, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return http.StatusInternalServerError, serverErrorMessage, false
		}
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}

	return http.StatusInternalServerError, serverErrorMessage, false
}

func reportUnexpected(err error, c echo.Context, log zerolog.Logger, reporter ports.ErrorReporter) {
	report := domain.ErrorReport{
		ID:         uuid.NewString(),
		Err:        err,
		Method:     c.Request().Method,
		Path:       c.Path(),
		RequestID:  c.Response().Header().Get(echo.HeaderXRequestID),
		OccurredAt: time.Now().UTC(),
	}
	if id, ok := c.Get("identity").(domain.Identity); ok {
		report.UserID = id.UserID
	}

	log.Error().
		Err(err).
		Str("report_id", report.ID).
		Str("method", report.Method).
		Str("path", report.Path).
		Str("request_id", report.RequestID).
		Int64("user_id", report.UserID).
		Msg("unhandled error")

	if reporter == nil {
		return
	}
	if rerr := reporter.Report(c.Request().Context(), report); rerr != nil {
		log.Warn().Err(rerr).Str("report_id", report.ID).Msg("error report not delivered")
	}
}
