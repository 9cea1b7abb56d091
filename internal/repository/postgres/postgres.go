package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"vaultapi/internal/repository"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

// translateError maps driver-specific errors onto repository sentinels so the
// service layer stays free of pgx imports.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}
