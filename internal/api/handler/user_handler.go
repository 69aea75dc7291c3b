package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staynest/booking-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns every registered user without password material.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
