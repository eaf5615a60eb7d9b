package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/greenrise/greenrise-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. The user must already carry a HashedPassword.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by normalized email.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]*domain.User, error)

	// Update replaces the stored profile with the given user, including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist and ErrEmailExists
	// when the new email belongs to someone else.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user. Returns ErrUserNotFound if nothing was deleted.
	// Plantings owned by the user are left in place.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}
