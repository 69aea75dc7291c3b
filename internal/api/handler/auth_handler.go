package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staynest/booking-api/internal/api/metrics"
	"github.com/staynest/booking-api/internal/core/domain"
	"github.com/staynest/booking-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Role     string `json:"role"     validate:"omitempty,oneof=guest host admin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /users [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

// Login exchanges an email and password for a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginAttemptsTotal.WithLabelValues(loginResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_password"
	default:
		return "error"
	}
}
