package repository

import (
	"context"

	"vaultapi/internal/model"
)

// ActivityRepository defines data access for the append-only audit trail.
// Records are only ever inserted and read newest-first; there is no update or
// delete path.
type ActivityRepository interface {
	// Insert appends one activity record.
	Insert(ctx context.Context, rec *model.ActivityRecord) error

	// Recent returns up to limit records for the user, newest first.
	Recent(ctx context.Context, userID string, limit int) ([]model.ActivityRecord, error)
}
