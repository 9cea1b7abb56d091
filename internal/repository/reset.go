package repository

import (
	"context"
	"time"
)

// ResetTokenRepository stores single-use password reset tokens. Only the
// SHA-256 of a token is persisted; the clear value travels once, to the
// account owner's mailbox.
type ResetTokenRepository interface {
	// Create stores a token hash for the user with its expiry.
	Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error

	// Consume atomically deletes the token row and returns the owning user id.
	// It fails if the hash is unknown or the token has expired; a consumed
	// token can never be replayed.
	Consume(ctx context.Context, tokenHash string, now time.Time) (string, error)
}
