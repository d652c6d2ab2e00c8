package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomstack/infras/postgres"
	"roomstack/shared/failure"
)

func newConnection(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := sqlx.NewDb(mockDB, "postgres")
	t.Cleanup(func() { _ = db.Close() })

	return &postgres.Connection{Read: db, Write: db}, mock
}

func TestConnection_WithTransaction(t *testing.T) {
	t.Run("commits when the unit of work succeeds", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE rooms").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := conn.WithTransaction(context.Background(), func(tx *sqlx.Tx) error {
			_, err := tx.Exec("UPDATE rooms SET status = 'occupied'")

			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and returns the original failure", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		conflict := failure.Conflict("room is already booked for the requested dates")

		err := conn.WithTransaction(context.Background(), func(_ *sqlx.Tx) error {
			return conflict
		})

		assert.Same(t, conflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports begin errors", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		called := false
		err := conn.WithTransaction(context.Background(), func(_ *sqlx.Tx) error {
			called = true

			return nil
		})

		assert.Error(t, err)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports commit errors", func(t *testing.T) {
		conn, mock := newConnection(t)

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		err := conn.WithTransaction(context.Background(), func(_ *sqlx.Tx) error {
			return nil
		})

		assert.ErrorContains(t, err, "failed to commit transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
