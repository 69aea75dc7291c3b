package domain

import "errors"

// Access gate.
var (
	ErrMissingToken = errors.New("token is required")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrForbidden    = errors.New("access forbidden")
)

// Credential verification and registration.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Bookings.
var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidReference = errors.New("referenced user or property does not exist")
)

// ErrValidation marks malformed or incomplete input. Wrap it to carry the detail:
//
//	fmt.Errorf("%w: email is required", domain.ErrValidation)
var ErrValidation = errors.New("validation failed")
