package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/staynest/booking-api/internal/core/domain"
)

// ctxIdentity returns the identity the Auth middleware attached to the request.
// A missing identity means the route was mounted without the gate.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := c.Get("identity").(domain.Identity)
	if !ok || id.UserID == 0 {
		return domain.Identity{}, domain.ErrMissingToken
	}
	return id, nil
}
