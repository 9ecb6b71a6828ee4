package ports

import (
	"context"

	"github.com/westem/event-registration/internal/core/domain"
)

// AuthRepository defines the interface for user identity persistence.
type AuthRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when the email is unknown.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts a new user and returns it with its assigned id.
	// A unique-violation on email surfaces as domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
