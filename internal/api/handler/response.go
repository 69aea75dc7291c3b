package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/staynest/booking-api/internal/core/domain"
)

// messageResponse is the error envelope rendered by the central error handler.
type messageResponse struct {
	Message string `json:"message"`
}

var errInvalidPayload = fmt.Errorf("%w: invalid payload", domain.ErrValidation)

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	return id, nil
}
