package mocks

import (
	"context"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *model.VaultItem) (*model.VaultItem, error) {
	args := m.Called(ctx, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VaultItem), args.Error(1)
}

func (m *MockItemRepository) FindByID(ctx context.Context, userID, id string) (*model.VaultItem, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VaultItem), args.Error(1)
}

func (m *MockItemRepository) ListByUser(ctx context.Context, userID string) ([]model.VaultItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VaultItem), args.Error(1)
}

func (m *MockItemRepository) SearchByName(ctx context.Context, userID, query string, limit int) ([]model.VaultItem, error) {
	args := m.Called(ctx, userID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VaultItem), args.Error(1)
}

func (m *MockItemRepository) ListChildren(ctx context.Context, userID, parentID string) ([]model.VaultItem, error) {
	args := m.Called(ctx, userID, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VaultItem), args.Error(1)
}

func (m *MockItemRepository) UpdateParent(ctx context.Context, userID, id, parentID string) (int64, error) {
	args := m.Called(ctx, userID, id, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) UpdateName(ctx context.Context, userID, id, name string) (int64, error) {
	args := m.Called(ctx, userID, id, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	args := m.Called(ctx, userID, ids)
	return args.Error(0)
}

func (m *MockItemRepository) Usage(ctx context.Context, userID string) (repository.VaultUsage, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(repository.VaultUsage), args.Error(1)
}
