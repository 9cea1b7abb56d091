package repository

import (
	"context"

	"vaultapi/internal/model"
)

// VaultUsage is the aggregate a quota computation needs: how many files a user
// owns and their combined exact size.
type VaultUsage struct {
	FileCount  int
	TotalBytes int64
}

// ItemRepository defines data access for vault items (files and folders).
// Every query is scoped by the owning user id; ownership is part of the key,
// not an afterthought.
type ItemRepository interface {
	// Create inserts a new item row and returns the stored record.
	Create(ctx context.Context, item *model.VaultItem) (*model.VaultItem, error)

	// FindByID returns the item with the given id owned by userID.
	FindByID(ctx context.Context, userID, id string) (*model.VaultItem, error)

	// ListByUser returns all of a user's items, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.VaultItem, error)

	// SearchByName returns up to limit items whose name contains the query,
	// case-insensitively.
	SearchByName(ctx context.Context, userID, query string, limit int) ([]model.VaultItem, error)

	// ListChildren returns the direct children of the given parent id.
	ListChildren(ctx context.Context, userID, parentID string) ([]model.VaultItem, error)

	// UpdateParent rewrites an item's parent reference. Returns the number of
	// rows affected (zero when the item does not exist or is not owned).
	UpdateParent(ctx context.Context, userID, id, parentID string) (int64, error)

	// UpdateName rewrites an item's name only.
	UpdateName(ctx context.Context, userID, id, name string) (int64, error)

	// DeleteByIDs removes the given item rows owned by userID.
	DeleteByIDs(ctx context.Context, userID string, ids []string) error

	// Usage returns the file count and summed exact byte size of the user's
	// non-folder items.
	Usage(ctx context.Context, userID string) (VaultUsage, error)
}
