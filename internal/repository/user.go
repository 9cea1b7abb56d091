package repository

import (
	"context"

	"vaultapi/internal/model"
)

// UserRepository defines data access for user accounts using SQL queries only.
// No business logic here — strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user row. The unique index on the case-folded
	// email is the sole duplicate guard; a violation is returned as
	// ErrDuplicate so registration is an atomic insert, not check-then-act.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByEmail returns the user with the given case-folded email,
	// including the password hash.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns a user by id.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// UpdateTier sets the subscription tier.
	UpdateTier(ctx context.Context, id string, tier model.Tier) error
}
