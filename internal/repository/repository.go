package repository

import (
	"context"

	"microsvc/internal/domain"
)

// LinkRepository defines the contract for short link storage.
// All implementations must be safe for concurrent access.
type LinkRepository interface {
	// SaveIfNotExists atomically saves the link only if its code
	// isn't taken yet. Returns domain.ErrCodeExists if taken.
	SaveIfNotExists(ctx context.Context, link *domain.ShortLink) error

	// FindByShortCode retrieves a link by its code.
	// Returns domain.ErrNotFound if the code doesn't exist.
	FindByShortCode(ctx context.Context, code string) (*domain.ShortLink, error)

	// IncrementClickCount atomically adds one click and returns the new count.
	// Returns domain.ErrNotFound if the code doesn't exist.
	IncrementClickCount(ctx context.Context, code string) (int64, error)
}

// UserRepository defines the contract for the users table.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)

	// FindByID returns domain.ErrNotFound if no row has the id.
	FindByID(ctx context.Context, id int64) (*domain.User, error)

	// FindByEmail returns domain.ErrNotFound if no row has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// SearchByName returns users whose name contains the fragment.
	SearchByName(ctx context.Context, fragment string) ([]domain.User, error)

	// Create inserts the user and fills in its ID.
	// Returns domain.ErrDuplicateEmail on a unique violation.
	Create(ctx context.Context, user *domain.User) error

	// Update sets name and email on the row with the given id.
	// A missing row is not an error.
	Update(ctx context.Context, id int64, name, email string) error

	// Delete removes the row with the given id. A missing row is not an error.
	Delete(ctx context.Context, id int64) error
}
