package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
	repoMocks "vaultapi/internal/repository/mocks"
)

func TestOutreachService_SubmitContact(t *testing.T) {
	ctx := context.Background()

	t.Run("stores trimmed, normalized message", func(t *testing.T) {
		repo := new(repoMocks.MockOutreachRepository)
		repo.On("CreateContact", ctx, mock.MatchedBy(func(msg *model.ContactMessage) bool {
			return msg.Name == "Ada" && msg.Email == "ada@example.com" && msg.Subject == "Billing"
		})).Return(nil)
		svc := NewOutreachService(repo)

		require.NoError(t, svc.SubmitContact(ctx, " Ada ", "Ada@Example.com", " Billing ", "Please help."))
		repo.AssertExpectations(t)
	})

	t.Run("blank field", func(t *testing.T) {
		svc := NewOutreachService(new(repoMocks.MockOutreachRepository))
		err := svc.SubmitContact(ctx, "Ada", "ada@example.com", "  ", "Please help.")
		assert.ErrorIs(t, err, ErrFieldsRequired)
	})
}

func TestOutreachService_Subscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(repoMocks.MockOutreachRepository)
		repo.On("CreateSubscriber", ctx, "ada@example.com").Return(nil)
		svc := NewOutreachService(repo)

		require.NoError(t, svc.Subscribe(ctx, "Ada@Example.com"))
		repo.AssertExpectations(t)
	})

	t.Run("duplicate", func(t *testing.T) {
		repo := new(repoMocks.MockOutreachRepository)
		repo.On("CreateSubscriber", ctx, "ada@example.com").Return(repository.ErrDuplicate)
		svc := NewOutreachService(repo)

		assert.ErrorIs(t, svc.Subscribe(ctx, "ada@example.com"), ErrAlreadySubscribed)
	})
}
