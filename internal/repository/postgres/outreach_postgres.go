package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

// OutreachPostgres is a PostgreSQL implementation of repository.OutreachRepository.
type OutreachPostgres struct {
	db *sql.DB
}

// NewOutreachPostgres creates a new OutreachPostgres repository.
func NewOutreachPostgres(db *sql.DB) *OutreachPostgres {
	return &OutreachPostgres{db: db}
}

var _ repository.OutreachRepository = (*OutreachPostgres)(nil)

// CreateContact stores one contact form submission.
func (r *OutreachPostgres) CreateContact(ctx context.Context, msg *model.ContactMessage) error {
	const q = `
		INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, q,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
		msg.CreatedAt,
	)
	return err
}

// CreateSubscriber stores a newsletter subscriber; duplicates surface as
// repository.ErrDuplicate.
func (r *OutreachPostgres) CreateSubscriber(ctx context.Context, email string) error {
	const q = `
		INSERT INTO subscribers (id, email, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, q, uuid.NewString(), email, time.Now().UTC())
	if err != nil {
		return translateError(err)
	}
	return nil
}
