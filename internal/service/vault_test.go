package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vaultapi/internal/model"
	repoMocks "vaultapi/internal/repository/mocks"
	"vaultapi/internal/storage"
	storageMocks "vaultapi/internal/storage/mocks"
)

func TestVaultService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query short-circuits", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})

		got, err := svc.Search(ctx, "u1", "   ")
		require.NoError(t, err)
		assert.Empty(t, got)
		items.AssertNotCalled(t, "SearchByName", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delegates with result cap", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("SearchByName", ctx, "u1", "report", SearchLimit).
			Return([]model.VaultItem{{ID: "f1", Name: "report.pdf"}}, nil)
		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})

		got, err := svc.Search(ctx, "u1", "report")
		require.NoError(t, err)
		assert.Len(t, got, 1)
		items.AssertExpectations(t)
	})
}

func TestVaultService_CreateFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to root parent", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("Create", ctx, mock.MatchedBy(func(it *model.VaultItem) bool {
			return it.IsFolder && it.ParentID == model.RootFolderID && it.Name == "Taxes"
		})).Return(&model.VaultItem{ID: "d1", Name: "Taxes", IsFolder: true, ParentID: model.RootFolderID}, nil)
		rec := &recorderStub{}
		svc := NewVaultService(new(storageMocks.MockGateway), items, rec)

		folder, err := svc.CreateFolder(ctx, "u1", "  Taxes  ", "")
		require.NoError(t, err)
		assert.True(t, folder.IsFolder)
		assert.Equal(t, []string{model.ActionCreateFolder}, rec.actions)
		items.AssertExpectations(t)
	})

	t.Run("rejects file as parent", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "file9").
			Return(&model.VaultItem{ID: "file9", IsFolder: false}, nil)
		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})

		_, err := svc.CreateFolder(ctx, "u1", "Taxes", "file9")
		assert.ErrorIs(t, err, ErrInvalidParent)
	})

	t.Run("rejects foreign parent", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "other-users-folder").Return(nil, sql.ErrNoRows)
		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})

		_, err := svc.CreateFolder(ctx, "u1", "Taxes", "other-users-folder")
		assert.ErrorIs(t, err, ErrInvalidParent)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc := NewVaultService(new(storageMocks.MockGateway), new(repoMocks.MockItemRepository), &recorderStub{})
		_, err := svc.CreateFolder(ctx, "u1", "   ", "")
		assert.ErrorIs(t, err, ErrNameRequired)
	})
}

func TestVaultService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path records exact stored size", func(t *testing.T) {
		store := new(storageMocks.MockGateway)
		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "application/pdf" && opt.Size == 11
		})).Return(storage.ObjectInfo{Key: "documents/abc.pdf", Size: 11}, nil)
		store.On("PresignGet", ctx, "documents/abc.pdf", presignExpiry).
			Return("https://minio.local/documents/abc.pdf?sig=x", nil)

		items := new(repoMocks.MockItemRepository)
		items.On("Create", ctx, mock.MatchedBy(func(it *model.VaultItem) bool {
			return it.UserID == "u1" &&
				it.Name == "report.pdf" &&
				it.PublicID == "documents/abc.pdf" &&
				it.SizeBytes == 11 &&
				!it.IsFolder &&
				it.ParentID == model.RootFolderID
		})).Return(&model.VaultItem{ID: "f1", Name: "report.pdf", SizeBytes: 11}, nil)

		rec := &recorderStub{}
		svc := NewVaultService(store, items, rec)

		item, err := svc.Upload(ctx, "u1", "", strings.NewReader("hello world"), "report.pdf", "application/pdf", 11)
		require.NoError(t, err)
		assert.Equal(t, int64(11), item.SizeBytes)
		assert.Equal(t, []string{model.ActionUpload}, rec.actions)
		store.AssertExpectations(t)
		items.AssertExpectations(t)
	})

	t.Run("images land under their own prefix", func(t *testing.T) {
		store := new(storageMocks.MockGateway)
		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "images/") && strings.HasSuffix(key, ".png")
		}), mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "images/abc.png", Size: 4}, nil)
		store.On("PresignGet", ctx, "images/abc.png", presignExpiry).Return("https://minio.local/x", nil)

		items := new(repoMocks.MockItemRepository)
		items.On("Create", ctx, mock.Anything).
			Return(&model.VaultItem{ID: "f2", Name: "pic.png"}, nil)

		svc := NewVaultService(store, items, &recorderStub{})
		_, err := svc.Upload(ctx, "u1", "", strings.NewReader("data"), "pic.png", "image/png", 4)
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("rolls the object back when the row cannot be saved", func(t *testing.T) {
		var putKey string
		store := new(storageMocks.MockGateway)
		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			putKey = key
			return true
		}), mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{Key: "documents/abc.pdf", Size: 3}, nil)
		store.On("PresignGet", ctx, mock.Anything, presignExpiry).Return("url", nil)
		store.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
			return key == putKey
		})).Return(nil)

		items := new(repoMocks.MockItemRepository)
		items.On("Create", ctx, mock.Anything).Return(nil, errors.New("connection reset"))

		rec := &recorderStub{}
		svc := NewVaultService(store, items, rec)

		_, err := svc.Upload(ctx, "u1", "", strings.NewReader("abc"), "report.pdf", "application/pdf", 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db save failed")
		assert.Empty(t, rec.actions)
		store.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		svc := NewVaultService(new(storageMocks.MockGateway), new(repoMocks.MockItemRepository), &recorderStub{})
		_, err := svc.Upload(ctx, "u1", "", nil, "report.pdf", "application/pdf", 0)
		assert.ErrorIs(t, err, ErrReaderNil)
	})
}

func TestVaultService_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "dst").
			Return(&model.VaultItem{ID: "dst", IsFolder: true}, nil)
		items.On("UpdateParent", ctx, "u1", "f1", "dst").Return(int64(1), nil)
		items.On("FindByID", ctx, "u1", "f1").
			Return(&model.VaultItem{ID: "f1", Name: "report.pdf", ParentID: "dst"}, nil)
		rec := &recorderStub{}
		svc := NewVaultService(new(storageMocks.MockGateway), items, rec)

		moved, err := svc.Move(ctx, "u1", "f1", "dst")
		require.NoError(t, err)
		assert.Equal(t, "dst", moved.ParentID)
		assert.Equal(t, []string{model.ActionMove}, rec.actions)
	})

	t.Run("item into itself", func(t *testing.T) {
		svc := NewVaultService(new(storageMocks.MockGateway), new(repoMocks.MockItemRepository), &recorderStub{})
		_, err := svc.Move(ctx, "u1", "f1", "f1")
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("folder into its own child", func(t *testing.T) {
		// tree: A -> B; re-parenting A under B would detach both into a cycle
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "B").
			Return(&model.VaultItem{ID: "B", IsFolder: true, ParentID: "A"}, nil)
		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})

		_, err := svc.Move(ctx, "u1", "A", "B")
		assert.ErrorIs(t, err, ErrInvalidTarget)
		items.AssertNotCalled(t, "UpdateParent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("folder into a deeper descendant", func(t *testing.T) {
		// tree: A -> B -> C; the ancestor walk from C must reach A and refuse
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "C").
			Return(&model.VaultItem{ID: "C", IsFolder: true, ParentID: "B"}, nil)
		items.On("FindByID", ctx, "u1", "B").
			Return(&model.VaultItem{ID: "B", IsFolder: true, ParentID: "A"}, nil)
		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})

		_, err := svc.Move(ctx, "u1", "A", "C")
		assert.ErrorIs(t, err, ErrInvalidTarget)
		items.AssertNotCalled(t, "UpdateParent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("corrupt ancestor chain refuses the move", func(t *testing.T) {
		// folders X and Y already point at each other; the walk must not spin
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "X").
			Return(&model.VaultItem{ID: "X", IsFolder: true, ParentID: "Y"}, nil)
		items.On("FindByID", ctx, "u1", "Y").
			Return(&model.VaultItem{ID: "Y", IsFolder: true, ParentID: "X"}, nil)
		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})

		_, err := svc.Move(ctx, "u1", "f1", "X")
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("foreign item behaves as missing", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("UpdateParent", ctx, "u1", "not-mine", model.RootFolderID).Return(int64(0), nil)
		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})

		_, err := svc.Move(ctx, "u1", "not-mine", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVaultService_Rename(t *testing.T) {
	ctx := context.Background()

	t.Run("success writes no activity", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("UpdateName", ctx, "u1", "f1", "renamed.pdf").Return(int64(1), nil)
		items.On("FindByID", ctx, "u1", "f1").
			Return(&model.VaultItem{ID: "f1", Name: "renamed.pdf"}, nil)
		rec := &recorderStub{}
		svc := NewVaultService(new(storageMocks.MockGateway), items, rec)

		got, err := svc.Rename(ctx, "u1", "f1", "renamed.pdf")
		require.NoError(t, err)
		assert.Equal(t, "renamed.pdf", got.Name)
		assert.Empty(t, rec.actions)
	})

	t.Run("missing item", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("UpdateName", ctx, "u1", "ghost", "x").Return(int64(0), nil)
		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})

		_, err := svc.Rename(ctx, "u1", "ghost", "x")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestVaultService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("single file releases its object once", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "f1").
			Return(&model.VaultItem{ID: "f1", Name: "report.pdf", PublicID: "documents/abc.pdf"}, nil)
		items.On("DeleteByIDs", ctx, "u1", []string{"f1"}).Return(nil)

		store := new(storageMocks.MockGateway)
		store.On("Delete", ctx, "documents/abc.pdf").Return(nil).Once()

		rec := &recorderStub{}
		svc := NewVaultService(store, items, rec)

		require.NoError(t, svc.Delete(ctx, "u1", "f1"))
		assert.Equal(t, []string{model.ActionDelete}, rec.actions)
		store.AssertExpectations(t)
		items.AssertExpectations(t)
	})

	t.Run("folder cascade reclaims grandchildren", func(t *testing.T) {
		// root folder d1 -> [file a, folder d2], d2 -> [file b]
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "d1").
			Return(&model.VaultItem{ID: "d1", Name: "Taxes", IsFolder: true}, nil)
		items.On("ListChildren", ctx, "u1", "d1").Return([]model.VaultItem{
			{ID: "a", PublicID: "documents/a.pdf"},
			{ID: "d2", IsFolder: true},
		}, nil)
		items.On("ListChildren", ctx, "u1", "d2").Return([]model.VaultItem{
			{ID: "b", PublicID: "images/b.png"},
		}, nil)
		items.On("DeleteByIDs", ctx, "u1", []string{"d1", "a", "d2", "b"}).Return(nil)

		store := new(storageMocks.MockGateway)
		store.On("Delete", ctx, "documents/a.pdf").Return(nil).Once()
		store.On("Delete", ctx, "images/b.png").Return(nil).Once()

		svc := NewVaultService(store, items, &recorderStub{})
		require.NoError(t, svc.Delete(ctx, "u1", "d1"))
		store.AssertExpectations(t)
		items.AssertExpectations(t)
	})

	t.Run("pre-existing parent cycle still terminates", func(t *testing.T) {
		// corrupt rows: folders A and B each list the other as a child
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "A").
			Return(&model.VaultItem{ID: "A", Name: "A", IsFolder: true, ParentID: "B"}, nil)
		items.On("ListChildren", ctx, "u1", "A").Return([]model.VaultItem{
			{ID: "B", IsFolder: true, ParentID: "A"},
		}, nil)
		items.On("ListChildren", ctx, "u1", "B").Return([]model.VaultItem{
			{ID: "A", IsFolder: true, ParentID: "B"},
		}, nil)
		items.On("DeleteByIDs", ctx, "u1", []string{"A", "B"}).Return(nil)

		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})
		require.NoError(t, svc.Delete(ctx, "u1", "A"))
		items.AssertExpectations(t)
	})

	t.Run("flaky storage does not block the purge", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "f1").
			Return(&model.VaultItem{ID: "f1", Name: "report.pdf", PublicID: "documents/abc.pdf"}, nil)
		items.On("DeleteByIDs", ctx, "u1", []string{"f1"}).Return(nil)

		store := new(storageMocks.MockGateway)
		store.On("Delete", ctx, "documents/abc.pdf").Return(errors.New("backend down"))

		svc := NewVaultService(store, items, &recorderStub{})
		require.NoError(t, svc.Delete(ctx, "u1", "f1"))
		items.AssertExpectations(t)
	})

	t.Run("missing item", func(t *testing.T) {
		items := new(repoMocks.MockItemRepository)
		items.On("FindByID", ctx, "u1", "ghost").Return(nil, sql.ErrNoRows)
		svc := NewVaultService(new(storageMocks.MockGateway), items, &recorderStub{})

		assert.ErrorIs(t, svc.Delete(ctx, "u1", "ghost"), ErrNotFound)
	})
}
