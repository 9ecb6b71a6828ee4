package ports

import (
	"context"

	"github.com/westem/event-registration/internal/core/domain"
)

// RegisterInput carries the registration form fields. Field rules are
// validated collect-all: every violation is reported, not just the first.
type RegisterInput struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,userpassword"`
	FirstName string `validate:"required,personname"`
	LastName  string `validate:"required,personname"`
	Phone     string `validate:"required,phonedigits"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and issues a signed session token.
	// Unknown email and wrong password both return ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the session token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
