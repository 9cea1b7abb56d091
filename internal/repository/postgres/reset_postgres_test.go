package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestResetTokenPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewResetTokenPostgres(db)
	ctx := context.Background()

	expiry := time.Now().UTC().Add(15 * time.Minute)

	mock.ExpectExec("INSERT INTO password_resets").
		WithArgs("u1", "deadbeef", expiry).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(ctx, "u1", "deadbeef", expiry)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetTokenPostgres_Consume(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewResetTokenPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("live token yields its owner", func(t *testing.T) {
		mock.ExpectQuery("DELETE FROM password_resets").
			WithArgs("deadbeef", now).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u1"))

		userID, err := repo.Consume(ctx, "deadbeef", now)

		assert.NoError(t, err)
		assert.Equal(t, "u1", userID)
	})

	t.Run("expired or spent token yields nothing", func(t *testing.T) {
		mock.ExpectQuery("DELETE FROM password_resets").
			WithArgs("deadbeef", now).
			WillReturnError(sql.ErrNoRows)

		userID, err := repo.Consume(ctx, "deadbeef", now)

		assert.Error(t, err)
		assert.Empty(t, userID)
	})
}
