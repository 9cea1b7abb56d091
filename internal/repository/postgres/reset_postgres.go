package postgres

import (
	"context"
	"database/sql"
	"time"

	"vaultapi/internal/repository"
)

// ResetTokenPostgres is a PostgreSQL implementation of repository.ResetTokenRepository.
type ResetTokenPostgres struct {
	db *sql.DB
}

// NewResetTokenPostgres creates a new ResetTokenPostgres repository.
func NewResetTokenPostgres(db *sql.DB) *ResetTokenPostgres {
	return &ResetTokenPostgres{db: db}
}

var _ repository.ResetTokenRepository = (*ResetTokenPostgres)(nil)

// Create stores a token hash for the user with its expiry. Any previous token
// for the same user is replaced; only the most recently issued token works.
func (r *ResetTokenPostgres) Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	const q = `
		INSERT INTO password_resets (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET token_hash = $2, expires_at = $3
	`
	_, err := r.db.ExecContext(ctx, q, userID, tokenHash, expiresAt)
	return err
}

// Consume deletes the token row and returns the owning user id. The DELETE is
// the single-use guarantee: a second call with the same hash finds no row.
func (r *ResetTokenPostgres) Consume(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	const q = `
		DELETE FROM password_resets
		WHERE token_hash = $1 AND expires_at > $2
		RETURNING user_id
	`
	var userID string
	if err := r.db.QueryRowContext(ctx, q, tokenHash, now).Scan(&userID); err != nil {
		return "", err
	}
	return userID, nil
}
