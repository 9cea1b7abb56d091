package postgres

import (
	"context"
	"database/sql"
	"strings"

	"vaultapi/internal/model"
	"vaultapi/internal/repository"
)

// ItemPostgres is a PostgreSQL implementation of repository.ItemRepository.
// Every statement filters on user_id so one user can never reach another's rows.
type ItemPostgres struct {
	db *sql.DB
}

// NewItemPostgres creates a new ItemPostgres repository.
func NewItemPostgres(db *sql.DB) *ItemPostgres {
	return &ItemPostgres{db: db}
}

var _ repository.ItemRepository = (*ItemPostgres)(nil)

const itemColumns = `id, user_id, name, file_url, public_id, content_type, size_bytes, is_folder, parent_id, created_at`

// Create inserts a new item row and returns the stored record.
func (r *ItemPostgres) Create(ctx context.Context, item *model.VaultItem) (*model.VaultItem, error) {
	const q = `
		INSERT INTO vault_items (id, user_id, name, file_url, public_id, content_type, size_bytes, is_folder, parent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + itemColumns
	row := r.db.QueryRowContext(ctx, q,
		item.ID,
		item.UserID,
		item.Name,
		item.FileURL,
		item.PublicID,
		item.ContentType,
		item.SizeBytes,
		item.IsFolder,
		item.ParentID,
		item.CreatedAt,
	)
	return scanItem(row)
}

// FindByID fetches a single item owned by userID.
func (r *ItemPostgres) FindByID(ctx context.Context, userID, id string) (*model.VaultItem, error) {
	const q = `SELECT ` + itemColumns + ` FROM vault_items WHERE id = $1 AND user_id = $2`
	return scanItem(r.db.QueryRowContext(ctx, q, id, userID))
}

// ListByUser returns all of a user's items, newest first.
func (r *ItemPostgres) ListByUser(ctx context.Context, userID string) ([]model.VaultItem, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM vault_items
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.queryItems(ctx, q, userID)
}

// SearchByName returns up to limit items whose name contains the query,
// case-insensitively. Pattern metacharacters in the query are escaped so they
// match literally.
func (r *ItemPostgres) SearchByName(ctx context.Context, userID, query string, limit int) ([]model.VaultItem, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM vault_items
		WHERE user_id = $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return r.queryItems(ctx, q, userID, escaped, limit)
}

// ListChildren returns the direct children of the given parent id.
func (r *ItemPostgres) ListChildren(ctx context.Context, userID, parentID string) ([]model.VaultItem, error) {
	const q = `
		SELECT ` + itemColumns + `
		FROM vault_items
		WHERE user_id = $1 AND parent_id = $2
		ORDER BY created_at DESC, id DESC
	`
	return r.queryItems(ctx, q, userID, parentID)
}

// UpdateParent rewrites an item's parent reference only.
func (r *ItemPostgres) UpdateParent(ctx context.Context, userID, id, parentID string) (int64, error) {
	const q = `UPDATE vault_items SET parent_id = $3 WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, userID, parentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateName rewrites an item's name only.
func (r *ItemPostgres) UpdateName(ctx context.Context, userID, id, name string) (int64, error) {
	const q = `UPDATE vault_items SET name = $3 WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, userID, name)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByIDs removes the given item rows owned by userID.
func (r *ItemPostgres) DeleteByIDs(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	const q = `DELETE FROM vault_items WHERE user_id = $1 AND id = ANY($2)`
	_, err := r.db.ExecContext(ctx, q, userID, ids)
	return err
}

// Usage returns the file count and summed byte size of the user's non-folder items.
func (r *ItemPostgres) Usage(ctx context.Context, userID string) (repository.VaultUsage, error) {
	const q = `
		SELECT COUNT(*), COALESCE(SUM(size_bytes), 0)
		FROM vault_items
		WHERE user_id = $1 AND is_folder = FALSE
	`
	var u repository.VaultUsage
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&u.FileCount, &u.TotalBytes); err != nil {
		return repository.VaultUsage{}, err
	}
	return u, nil
}

func (r *ItemPostgres) queryItems(ctx context.Context, q string, args ...any) ([]model.VaultItem, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.VaultItem, 0)
	for rows.Next() {
		var it model.VaultItem
		if err := rows.Scan(
			&it.ID,
			&it.UserID,
			&it.Name,
			&it.FileURL,
			&it.PublicID,
			&it.ContentType,
			&it.SizeBytes,
			&it.IsFolder,
			&it.ParentID,
			&it.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanItem(row *sql.Row) (*model.VaultItem, error) {
	var it model.VaultItem
	if err := row.Scan(
		&it.ID,
		&it.UserID,
		&it.Name,
		&it.FileURL,
		&it.PublicID,
		&it.ContentType,
		&it.SizeBytes,
		&it.IsFolder,
		&it.ParentID,
		&it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}
