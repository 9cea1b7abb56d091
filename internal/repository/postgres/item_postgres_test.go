package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"vaultapi/internal/model"
)

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "name", "file_url", "public_id", "content_type",
		"size_bytes", "is_folder", "parent_id", "created_at",
	})
}

func TestItemPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewItemPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	item := &model.VaultItem{
		ID:          "item-uuid",
		UserID:      "u1",
		Name:        "report.pdf",
		FileURL:     "https://minio.local/documents/abc.pdf",
		PublicID:    "documents/abc.pdf",
		ContentType: "application/pdf",
		SizeBytes:   1289748,
		ParentID:    model.RootFolderID,
		CreatedAt:   now,
	}

	rows := itemRows().AddRow(item.ID, item.UserID, item.Name, item.FileURL, item.PublicID,
		item.ContentType, item.SizeBytes, item.IsFolder, item.ParentID, item.CreatedAt)

	mock.ExpectQuery("INSERT INTO vault_items").
		WithArgs(item.ID, item.UserID, item.Name, item.FileURL, item.PublicID,
			item.ContentType, item.SizeBytes, item.IsFolder, item.ParentID, item.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, item)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, int64(1289748), result.SizeBytes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewItemPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := itemRows().AddRow("item-1", "u1", "report.pdf", "", "documents/abc.pdf",
			"application/pdf", 100, false, "root", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM vault_items WHERE id = (.+) AND user_id =").
			WithArgs("item-1", "u1").
			WillReturnRows(rows)

		item, err := repo.FindByID(ctx, "u1", "item-1")

		assert.NoError(t, err)
		assert.NotNil(t, item)
		assert.Equal(t, "item-1", item.ID)
	})

	t.Run("wrong owner reads as missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM vault_items WHERE id = (.+) AND user_id =").
			WithArgs("item-1", "u2").
			WillReturnError(sql.ErrNoRows)

		item, err := repo.FindByID(ctx, "u2", "item-1")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, item)
	})
}

func TestItemPostgres_SearchByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewItemPostgres(db)
	ctx := context.Background()

	t.Run("escapes pattern metacharacters", func(t *testing.T) {
		rows := itemRows().AddRow("item-1", "u1", "100%_done.pdf", "", "documents/x.pdf",
			"application/pdf", 10, false, "root", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM vault_items WHERE user_id = (.+) AND name ILIKE").
			WithArgs("u1", `100\%\_done`, 10).
			WillReturnRows(rows)

		items, err := repo.SearchByName(ctx, "u1", "100%_done", 10)

		assert.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM vault_items WHERE user_id = (.+) AND name ILIKE").
			WithArgs("u1", "ghost", 10).
			WillReturnRows(itemRows())

		items, err := repo.SearchByName(ctx, "u1", "ghost", 10)

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestItemPostgres_ListChildren(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewItemPostgres(db)
	ctx := context.Background()

	t.Run("returns direct children only", func(t *testing.T) {
		rows := itemRows().
			AddRow("d2", "u1", "Receipts", "", "", "", 0, true, "d1", time.Now()).
			AddRow("a", "u1", "a.pdf", "", "documents/a.pdf", "application/pdf", 100, false, "d1", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM vault_items WHERE user_id = (.+) AND parent_id =").
			WithArgs("u1", "d1").
			WillReturnRows(rows)

		items, err := repo.ListChildren(ctx, "u1", "d1")

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "d2", items[0].ID)
		assert.True(t, items[0].IsFolder)
	})

	t.Run("leaf folder yields empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM vault_items WHERE user_id = (.+) AND parent_id =").
			WithArgs("u1", "d2").
			WillReturnRows(itemRows())

		items, err := repo.ListChildren(ctx, "u1", "d2")

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

// idSliceConverter teaches the stub driver to bind the []string passed to
// id = ANY($2); the real pgx driver encodes string slices natively.
type idSliceConverter struct{}

func (idSliceConverter) ConvertValue(v any) (driver.Value, error) {
	if ids, ok := v.([]string); ok {
		return strings.Join(ids, ","), nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func TestItemPostgres_DeleteByIDs(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(idSliceConverter{}))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewItemPostgres(db)
	ctx := context.Background()

	t.Run("removes all listed rows in one statement", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM vault_items WHERE user_id = (.+) AND id = ANY").
			WithArgs("u1", "d1,a,d2,b").
			WillReturnResult(sqlmock.NewResult(0, 4))

		err := repo.DeleteByIDs(ctx, "u1", []string{"d1", "a", "d2", "b"})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty id set skips the round trip", func(t *testing.T) {
		assert.NoError(t, repo.DeleteByIDs(ctx, "u1", nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItemPostgres_UpdateParent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewItemPostgres(db)
	ctx := context.Background()

	t.Run("owned row moves", func(t *testing.T) {
		mock.ExpectExec("UPDATE vault_items SET parent_id =").
			WithArgs("item-1", "u1", "folder-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		affected, err := repo.UpdateParent(ctx, "u1", "item-1", "folder-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("foreign row touches nothing", func(t *testing.T) {
		mock.ExpectExec("UPDATE vault_items SET parent_id =").
			WithArgs("item-1", "u2", "folder-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		affected, err := repo.UpdateParent(ctx, "u2", "item-1", "folder-1")

		assert.NoError(t, err)
		assert.Zero(t, affected)
	})
}

func TestItemPostgres_Usage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewItemPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(size_bytes\), 0\)`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count", "sum"}).AddRow(3, 2097152))

	usage, err := repo.Usage(ctx, "u1")

	assert.NoError(t, err)
	assert.Equal(t, 3, usage.FileCount)
	assert.Equal(t, int64(2097152), usage.TotalBytes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
