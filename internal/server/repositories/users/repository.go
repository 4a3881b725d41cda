// Package users declares the server-side repository contract for account
// rows and provides PostgreSQL and SQLite implementations.
package users

import (
	"context"
	"time"

	"github.com/rosterhq/roster/internal/server/models"
)

// Repository defines persistence operations on users. Soft-deleted rows are
// invisible to every method; reads of an absent or soft-deleted user return
// common.ErrNotFound.
type Repository interface {
	// Create inserts a new user row. The caller supplies the ID and timestamps.
	Create(ctx context.Context, user *models.User) error

	// GetByID returns the live user with the given ID.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail returns the live user with the given email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns all live users in insertion order.
	List(ctx context.Context) ([]models.User, error)

	// Update overwrites the mutable columns of the live row with user's values.
	Update(ctx context.Context, user *models.User) error

	// SoftDelete marks the live row deleted at the given time and deactivates it.
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
