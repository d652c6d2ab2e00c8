package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomstack/infras/otel/mocks"
	"roomstack/infras/postgres"
	"roomstack/internal/domains/bill/model"
	"roomstack/internal/domains/bill/repository"
	"roomstack/shared"
)

func TestBillRepository_InsertTx(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := sqlx.NewDb(mockDB, "postgres")
	defer db.Close()

	repo := repository.New(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel())

	bill := model.New("booking-1", model.Charge{
		Nights:     1,
		RoomCharge: decimal.RequireFromString("100.00"),
		TaxAmount:  decimal.RequireFromString("10.00"),
		Total:      decimal.RequireFromString("110.00"),
	}, "system")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO bills (id, booking_id, room_charge, tax_amount, total_amount, payment_status, payment_date, created_at, modified_at, created_by, modified_by)",
	)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)

	require.NoError(t, repo.InsertTx(context.Background(), tx, bill))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBillRepository_Get(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db := sqlx.NewDb(mockDB, "postgres")
	defer db.Close()

	repo := repository.New(&postgres.Connection{Read: db, Write: db}, mocks.NewOtel())
	now := time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC)

	mock.ExpectPrepare(regexp.QuoteMeta("WHERE (bills.booking_id = $1)")).
		ExpectQuery().
		WithArgs("booking-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_id", "room_charge", "tax_amount", "total_amount", "payment_status", "payment_date",
			"created_at", "modified_at", "created_by", "modified_by",
		}).AddRow("bill-1", "booking-1", "100.00", "10.00", "110.00", "paid", now, now, now, "system", "system"))

	bill, err := repo.Get(context.Background(), shared.FilterByID("booking-1", model.FieldBookingID, model.TableName))

	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, bill.PaymentStatus)
	require.NotNil(t, bill.PaymentDate)
	assert.True(t, now.Equal(*bill.PaymentDate))
	assert.Equal(t, "110.00", bill.TotalAmount.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
