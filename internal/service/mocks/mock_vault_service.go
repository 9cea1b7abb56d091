package mocks

import (
	"context"
	"io"

	"vaultapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockVaultService struct {
	mock.Mock
}

func (m *MockVaultService) List(ctx context.Context, userID string) ([]model.VaultItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VaultItem), args.Error(1)
}

func (m *MockVaultService) Search(ctx context.Context, userID, query string) ([]model.VaultItem, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VaultItem), args.Error(1)
}

func (m *MockVaultService) CreateFolder(ctx context.Context, userID, name, parentID string) (*model.VaultItem, error) {
	args := m.Called(ctx, userID, name, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VaultItem), args.Error(1)
}

func (m *MockVaultService) Upload(ctx context.Context, userID, parentID string, r io.Reader, filename, contentType string, size int64) (*model.VaultItem, error) {
	args := m.Called(ctx, userID, parentID, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VaultItem), args.Error(1)
}

func (m *MockVaultService) Move(ctx context.Context, userID, itemID, targetFolderID string) (*model.VaultItem, error) {
	args := m.Called(ctx, userID, itemID, targetFolderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VaultItem), args.Error(1)
}

func (m *MockVaultService) Rename(ctx context.Context, userID, itemID, newName string) (*model.VaultItem, error) {
	args := m.Called(ctx, userID, itemID, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VaultItem), args.Error(1)
}

func (m *MockVaultService) Delete(ctx context.Context, userID, itemID string) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockVaultService) Logs(ctx context.Context, userID string) []model.ActivityRecord {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return []model.ActivityRecord{}
	}
	return args.Get(0).([]model.ActivityRecord)
}
