package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
	"vaultapi/internal/storage"
)

var (
	ErrNotFound      = errors.New("item not found")
	ErrReaderNil     = errors.New("reader is nil")
	ErrInvalidParent = errors.New("parent is not a folder")
	ErrInvalidTarget = errors.New("cannot move an item into its own subtree")
)

// SearchLimit caps name search results.
const SearchLimit = 10

// presignExpiry is how long a stored file URL stays fetchable. MinIO caps
// presigned URLs at seven days; clients re-list to refresh.
const presignExpiry = 7 * 24 * time.Hour

// VaultService defines the use cases over a user's hierarchical namespace of
// files and folders. Every operation is scoped to the calling user; an item
// owned by someone else behaves exactly like a missing one.
type VaultService interface {
	// List returns all of the caller's items, newest first.
	List(ctx context.Context, userID string) ([]model.VaultItem, error)

	// Search returns up to SearchLimit items whose name contains the query,
	// case-insensitively. An empty query yields an empty result set.
	Search(ctx context.Context, userID, query string) ([]model.VaultItem, error)

	// CreateFolder creates a folder node with empty storage refs.
	CreateFolder(ctx context.Context, userID, name, parentID string) (*model.VaultItem, error)

	// Upload streams the content to object storage, records the item, and
	// rolls the object back if the record cannot be saved.
	Upload(ctx context.Context, userID, parentID string, r io.Reader, filename, contentType string, size int64) (*model.VaultItem, error)

	// Move rewrites an item's parent reference only.
	Move(ctx context.Context, userID, itemID, targetFolderID string) (*model.VaultItem, error)

	// Rename rewrites an item's name only.
	Rename(ctx context.Context, userID, itemID, newName string) (*model.VaultItem, error)

	// Delete removes the item and, for folders, every descendant at any
	// depth, releasing each file's backing object.
	Delete(ctx context.Context, userID, itemID string) error

	// Logs returns the caller's recent activity, newest first.
	Logs(ctx context.Context, userID string) []model.ActivityRecord
}

type vaultService struct {
	store    storage.Gateway
	items    repository.ItemRepository
	recorder ActivityRecorder
}

// NewVaultService constructs a VaultService.
func NewVaultService(store storage.Gateway, items repository.ItemRepository, recorder ActivityRecorder) VaultService {
	return &vaultService{store: store, items: items, recorder: recorder}
}

func (s *vaultService) List(ctx context.Context, userID string) ([]model.VaultItem, error) {
	return s.items.ListByUser(ctx, userID)
}

func (s *vaultService) Search(ctx context.Context, userID, query string) ([]model.VaultItem, error) {
	if strings.TrimSpace(query) == "" {
		return []model.VaultItem{}, nil
	}
	return s.items.SearchByName(ctx, userID, query, SearchLimit)
}

func (s *vaultService) CreateFolder(ctx context.Context, userID, name, parentID string) (*model.VaultItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	parentID, err := s.resolveParent(ctx, userID, parentID)
	if err != nil {
		return nil, err
	}

	folder, err := s.items.Create(ctx, &model.VaultItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		IsFolder:  true,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}

	s.recorder.Record(ctx, userID, model.ActionCreateFolder,
		fmt.Sprintf("Created folder: %s", folder.Name), "")
	return folder, nil
}

func (s *vaultService) Upload(ctx context.Context, userID, parentID string, r io.Reader, filename, contentType string, size int64) (*model.VaultItem, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	parentID, err := s.resolveParent(ctx, userID, parentID)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Object keys are UUID-based; the user-facing name lives only in the
	// item row. Images and documents land under separate prefixes.
	key := objectKey(filename, contentType)

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	fileURL, err := s.store.PresignGet(ctx, key, presignExpiry)
	if err != nil {
		fileURL = ""
		logJSON(map[string]any{
			"level": "error",
			"msg":   "presign_failed",
			"key":   key,
			"error": err.Error(),
		})
	}

	item, err := s.items.Create(ctx, &model.VaultItem{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        filename,
		FileURL:     fileURL,
		PublicID:    objInfo.Key,
		ContentType: contentType,
		SizeBytes:   objInfo.Size,
		ParentID:    parentID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.recorder.Record(ctx, userID, model.ActionUpload,
		fmt.Sprintf("Uploaded file: %s", item.Name), "")
	return item, nil
}

func (s *vaultService) Move(ctx context.Context, userID, itemID, targetFolderID string) (*model.VaultItem, error) {
	if targetFolderID == itemID {
		return nil, ErrInvalidTarget
	}
	targetFolderID, err := s.resolveParent(ctx, userID, targetFolderID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotDescendant(ctx, userID, itemID, targetFolderID); err != nil {
		return nil, err
	}

	affected, err := s.items.UpdateParent(ctx, userID, itemID, targetFolderID)
	if err != nil {
		return nil, fmt.Errorf("move item: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	item, err := s.items.FindByID(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("reload item: %w", err)
	}

	s.recorder.Record(ctx, userID, model.ActionMove,
		fmt.Sprintf("Moved item: %s", item.Name), "")
	return item, nil
}

func (s *vaultService) Rename(ctx context.Context, userID, itemID, newName string) (*model.VaultItem, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrNameRequired
	}

	affected, err := s.items.UpdateName(ctx, userID, itemID, newName)
	if err != nil {
		return nil, fmt.Errorf("rename item: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.items.FindByID(ctx, userID, itemID)
}

// Delete removes an item. For folders the whole subtree is collected with a
// worklist over parent ids before anything is touched, so arbitrarily deep
// nesting is fully reclaimed; each file's backing object is released
// best-effort, then all rows go in one statement.
func (s *vaultService) Delete(ctx context.Context, userID, itemID string) error {
	target, err := s.items.FindByID(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("find item: %w", err)
	}

	s.recorder.Record(ctx, userID, model.ActionDelete,
		fmt.Sprintf("Purged item: %s", target.Name), "")

	ids := []string{target.ID}
	var keys []string
	if !target.IsFolder && target.PublicID != "" {
		keys = append(keys, target.PublicID)
	}

	if target.IsFolder {
		// seen guards the traversal against a parent cycle already in the
		// table; each folder is expanded at most once.
		seen := map[string]bool{target.ID: true}
		worklist := []string{target.ID}
		for len(worklist) > 0 {
			parentID := worklist[0]
			worklist = worklist[1:]

			children, err := s.items.ListChildren(ctx, userID, parentID)
			if err != nil {
				return fmt.Errorf("list children of %s: %w", parentID, err)
			}
			for _, child := range children {
				if seen[child.ID] {
					continue
				}
				seen[child.ID] = true
				ids = append(ids, child.ID)
				if child.IsFolder {
					worklist = append(worklist, child.ID)
				} else if child.PublicID != "" {
					keys = append(keys, child.PublicID)
				}
			}
		}
	}

	// Release objects first; a failed release is logged and the purge
	// continues, so a flaky storage backend cannot wedge the vault.
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			logJSON(map[string]any{
				"level": "error",
				"msg":   "object_release_failed",
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	if err := s.items.DeleteByIDs(ctx, userID, ids); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	return nil
}

func (s *vaultService) Logs(ctx context.Context, userID string) []model.ActivityRecord {
	return s.recorder.Recent(ctx, userID, DefaultLogLimit)
}

// resolveParent validates that parentID names one of the caller's folders, or
// is (or defaults to) the virtual root.
func (s *vaultService) resolveParent(ctx context.Context, userID, parentID string) (string, error) {
	if parentID == "" || parentID == model.RootFolderID {
		return model.RootFolderID, nil
	}
	parent, err := s.items.FindByID(ctx, userID, parentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidParent
		}
		return "", fmt.Errorf("find parent: %w", err)
	}
	if !parent.IsFolder {
		return "", ErrInvalidParent
	}
	return parent.ID, nil
}

// ensureNotDescendant rejects a move whose target folder sits inside the moved
// item's own subtree, which would detach the subtree into a parent cycle. It
// walks the target's ancestor chain toward the root; a repeated ancestor
// (pre-existing bad data) also fails the move.
func (s *vaultService) ensureNotDescendant(ctx context.Context, userID, itemID, targetFolderID string) error {
	seen := map[string]bool{}
	for cur := targetFolderID; cur != model.RootFolderID && cur != ""; {
		if cur == itemID || seen[cur] {
			return ErrInvalidTarget
		}
		seen[cur] = true

		ancestor, err := s.items.FindByID(ctx, userID, cur)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInvalidParent
			}
			return fmt.Errorf("walk ancestors: %w", err)
		}
		cur = ancestor.ParentID
	}
	return nil
}

// objectKey builds the storage key for an upload: images and everything else
// land under distinct prefixes, and the basename is a UUID plus the original
// extension.
func objectKey(filename, contentType string) string {
	prefix := "documents"
	if strings.HasPrefix(contentType, "image/") {
		prefix = "images"
	}
	return prefix + "/" + uuid.NewString() + filepath.Ext(filename)
}
