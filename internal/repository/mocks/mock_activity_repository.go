package mocks

import (
	"context"
	"time"

	"vaultapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Insert(ctx context.Context, rec *model.ActivityRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockActivityRepository) Recent(ctx context.Context, userID string, limit int) ([]model.ActivityRecord, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ActivityRecord), args.Error(1)
}

type MockResetTokenRepository struct {
	mock.Mock
}

func (m *MockResetTokenRepository) Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockResetTokenRepository) Consume(ctx context.Context, tokenHash string, now time.Time) (string, error) {
	args := m.Called(ctx, tokenHash, now)
	return args.String(0), args.Error(1)
}

type MockOutreachRepository struct {
	mock.Mock
}

func (m *MockOutreachRepository) CreateContact(ctx context.Context, msg *model.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockOutreachRepository) CreateSubscriber(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
