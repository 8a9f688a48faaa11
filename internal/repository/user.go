package repository

import (
	"context"

	"github.com/taskhub/taskhub/internal/domain"
)

// UseCase depends on interface, not concrete implementation.
// This way we get: 1) can swap DB later without touching usecase 2) We can pass a mock implementation of interface in tests
type UserRepository interface {
	// Create persists a new user. The email must already be normalized and
	// the password already hashed; a uniqueness violation on the email is
	// reported as domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindActiveByEmail and FindActiveByID exclude deactivated accounts.
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	FindActiveByID(ctx context.Context, id string) (*domain.User, error)
}
