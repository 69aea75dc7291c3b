package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/staynest/booking-api/internal/api/metrics"
	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"
)

// Auth is the access gate for protected routes. It expects
// "Authorization: Bearer <token>", verifies the token and stores the decoded
// identity under "identity", "user_id" and "role".
// A missing or malformed header yields domain.ErrMissingToken; a bad
// signature or an expired token yields domain.ErrInvalidToken.
func Auth(tokens ports.TokenCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingToken
			}

			id, err := tokens.Verify(raw)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return domain.ErrInvalidToken
			}

			c.Set("identity", id)
			c.Set("user_id", id.UserID)
			c.Set("role", id.Role)

			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
