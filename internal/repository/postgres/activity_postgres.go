package postgres

import (
	"context"
	"database/sql"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

// ActivityPostgres is a PostgreSQL implementation of repository.ActivityRepository.
type ActivityPostgres struct {
	db *sql.DB
}

// NewActivityPostgres creates a new ActivityPostgres repository.
func NewActivityPostgres(db *sql.DB) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

var _ repository.ActivityRepository = (*ActivityPostgres)(nil)

// Insert appends one activity record.
func (r *ActivityPostgres) Insert(ctx context.Context, rec *model.ActivityRecord) error {
	const q = `
		INSERT INTO activities (id, user_id, action, details, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, q,
		rec.ID,
		rec.UserID,
		rec.Action,
		rec.Details,
		rec.IPAddress,
		rec.CreatedAt,
	)
	return err
}

// Recent returns up to limit records for the user, newest first.
func (r *ActivityPostgres) Recent(ctx context.Context, userID string, limit int) ([]model.ActivityRecord, error) {
	const q = `
		SELECT id, user_id, action, details, ip_address, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := make([]model.ActivityRecord, 0)
	for rows.Next() {
		var rec model.ActivityRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Action,
			&rec.Details,
			&rec.IPAddress,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
