package middleware

import (
	"errors"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/staynest/booking-api/internal/api/metrics"
	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"
)

// LoginThrottle locks out client IPs that keep failing to log in.
// A nil limiter disables throttling. Limiter outages are logged and the
// request goes through.
func LoginThrottle(limiter ports.LoginLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limiter == nil {
			return next
		}

		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := c.RealIP()

			wait, err := limiter.Locked(ctx, key)
			if err != nil {
				log.Warn().Err(err).Str("ip", key).Msg("login limiter unavailable")
			}
			if wait > 0 {
				metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return domain.ErrTooManyAttempts
			}

			err = next(c)
			switch {
			case err == nil:
				if rerr := limiter.Reset(ctx, key); rerr != nil {
					log.Warn().Err(rerr).Str("ip", key).Msg("login limiter reset failed")
				}
			case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUserNotFound):
				left, ferr := limiter.Fail(ctx, key)
				if ferr != nil {
					log.Warn().Err(ferr).Str("ip", key).Msg("login limiter record failed")
				} else if left == 0 {
					log.Warn().Str("ip", key).Msg("login locked after repeated failures")
				}
			}
			return err
		}
	}
}
