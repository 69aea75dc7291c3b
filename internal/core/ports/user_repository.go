package ports

import (
	"context"

	"github.com/staynest/booking-api/internal/core/domain"
)

// UserRepository defines user persistence.
type UserRepository interface {
	// Create inserts the user and fills in its ID. Returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) error
	// FindByEmail matches the email exactly. Returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
