package ports

import (
	"context"

	"github.com/staynest/booking-api/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// AuthService registers accounts and exchanges credentials for session tokens.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// UserService lists registered accounts.
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Issue(id domain.Identity) (string, error)
	// Verify returns domain.ErrInvalidToken for any signature, format or expiry failure.
	Verify(token string) (domain.Identity, error)
}

// PasswordHasher is a one-way hash with constant-time verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}
