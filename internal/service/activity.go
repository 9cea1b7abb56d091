package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

// DefaultLogLimit caps the activity feed returned to clients.
const DefaultLogLimit = 10

// ActivityRecorder is the append-only audit trail. Record is fire-and-forget:
// a failed write is logged server-side but never propagated, so auditing can
// not break the feature it is auditing. Recent degrades to an empty feed on
// query failure for the same reason.
type ActivityRecorder interface {
	Record(ctx context.Context, userID, action, details, ip string)
	Recent(ctx context.Context, userID string, limit int) []model.ActivityRecord
}

type activityRecorder struct {
	repo repository.ActivityRepository
}

// NewActivityRecorder constructs an ActivityRecorder over the given repository.
func NewActivityRecorder(repo repository.ActivityRepository) ActivityRecorder {
	return &activityRecorder{repo: repo}
}

func (a *activityRecorder) Record(ctx context.Context, userID, action, details, ip string) {
	rec := &model.ActivityRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		IPAddress: ip,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.repo.Insert(ctx, rec); err != nil {
		logJSON(map[string]any{
			"level":   "error",
			"msg":     "activity_write_failed",
			"action":  action,
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

func (a *activityRecorder) Recent(ctx context.Context, userID string, limit int) []model.ActivityRecord {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	recs, err := a.repo.Recent(ctx, userID, limit)
	if err != nil {
		logJSON(map[string]any{
			"level":   "error",
			"msg":     "activity_query_failed",
			"user_id": userID,
			"error":   err.Error(),
		})
		return []model.ActivityRecord{}
	}
	return recs
}
