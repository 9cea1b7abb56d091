package postgres

import (
	"context"
	"database/sql"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, name, email, password_hash, tier, card_number, card_expiry, card_cvc, is_paid, is_verified, created_at`

// Create inserts a new user row. The unique index on email is the only
// duplicate guard; violations surface as repository.ErrDuplicate.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, name, email, password_hash, tier, card_number, card_expiry, card_cvc, is_paid, is_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Tier,
		u.CardNumber,
		u.CardExpiry,
		u.CardCVC,
		u.IsPaid,
		u.IsVerified,
		u.CreatedAt,
	)
	out, err := scanUser(row)
	if err != nil {
		return nil, translateError(err)
	}
	return out, nil
}

// FindByEmail fetches a user by case-folded email, password hash included.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

// FindByID fetches a user by id.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

// UpdatePassword replaces the stored password hash.
func (r *UserPostgres) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const q = `UPDATE users SET password_hash = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, passwordHash)
	return err
}

// UpdateTier sets the subscription tier.
func (r *UserPostgres) UpdateTier(ctx context.Context, id string, tier model.Tier) error {
	const q = `UPDATE users SET tier = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, tier)
	return err
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Tier,
		&u.CardNumber,
		&u.CardExpiry,
		&u.CardCVC,
		&u.IsPaid,
		&u.IsVerified,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
