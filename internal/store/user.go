package store

import (
	"context"

	"github.com/phrazzld/marketplace-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and assigns its ID.
	// The user must already carry a HashedPassword; the plaintext Password is never stored.
	// Returns ErrEmailExists or ErrUsernameExists on uniqueness violations.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist or the ID is malformed.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their (lowercased) email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetUsernames resolves user IDs to usernames in one round trip.
	// Unknown or malformed IDs are omitted from the result.
	GetUsernames(ctx context.Context, ids []string) (map[string]string, error)
}
