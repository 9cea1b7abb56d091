package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vaultapi/internal/model"
	repoMocks "vaultapi/internal/repository/mocks"
)

func TestActivityRecorder_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the event", func(t *testing.T) {
		repo := new(repoMocks.MockActivityRepository)
		repo.On("Insert", ctx, mock.MatchedBy(func(rec *model.ActivityRecord) bool {
			return rec.UserID == "u1" &&
				rec.Action == model.ActionUpload &&
				rec.Details == "Uploaded file: report.pdf" &&
				rec.IPAddress == "203.0.113.7" &&
				rec.ID != "" &&
				!rec.CreatedAt.IsZero()
		})).Return(nil)

		NewActivityRecorder(repo).Record(ctx, "u1", model.ActionUpload, "Uploaded file: report.pdf", "203.0.113.7")
		repo.AssertExpectations(t)
	})

	t.Run("write failure is swallowed", func(t *testing.T) {
		repo := new(repoMocks.MockActivityRepository)
		repo.On("Insert", ctx, mock.Anything).Return(errors.New("connection reset"))

		// must not panic or surface the error
		NewActivityRecorder(repo).Record(ctx, "u1", model.ActionLogin, "User signed in", "")
		repo.AssertExpectations(t)
	})
}

func TestActivityRecorder_Recent(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults the limit", func(t *testing.T) {
		repo := new(repoMocks.MockActivityRepository)
		repo.On("Recent", ctx, "u1", DefaultLogLimit).
			Return([]model.ActivityRecord{{ID: "a1", Action: model.ActionLogin}}, nil)

		got := NewActivityRecorder(repo).Recent(ctx, "u1", 0)
		assert.Len(t, got, 1)
		repo.AssertExpectations(t)
	})

	t.Run("query failure degrades to empty feed", func(t *testing.T) {
		repo := new(repoMocks.MockActivityRepository)
		repo.On("Recent", ctx, "u1", 5).Return(nil, errors.New("timeout"))

		got := NewActivityRecorder(repo).Recent(ctx, "u1", 5)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
