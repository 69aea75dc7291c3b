package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/staynest/booking-api/internal/core/domain"
)

// RBAC lets the request through only when the role set by Auth is allowed.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(domain.Role)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
