package model_test

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"roomstack/internal/domains/bill/model"
	"roomstack/shared/failure"
)

func TestParsePaymentStatus(t *testing.T) {
	for _, status := range model.PaymentStatuses {
		parsed, err := model.ParsePaymentStatus(string(status))
		assert.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := model.ParsePaymentStatus("refunded")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestPaymentStatus_Label(t *testing.T) {
	assert.Equal(t, "Pending", model.PaymentStatusPending.Label())
	assert.Equal(t, "Partially Paid", model.PaymentStatusPartial.Label())
	assert.Equal(t, "Fully Paid", model.PaymentStatusPaid.Label())
}

func TestNew(t *testing.T) {
	charge := model.Charge{
		Nights:     1,
		RoomCharge: decimal.RequireFromString("100.00"),
		TaxAmount:  decimal.RequireFromString("10.00"),
		Total:      decimal.RequireFromString("110.00"),
	}

	bill := model.New("booking-1", charge, "front-desk")

	assert.NotEmpty(t, bill.ID)
	assert.Equal(t, "booking-1", bill.BookingID)
	assert.Equal(t, model.PaymentStatusPending, bill.PaymentStatus)
	assert.Nil(t, bill.PaymentDate)
	assert.True(t, charge.Total.Equal(bill.TotalAmount))
	assert.Equal(t, "front-desk", bill.CreatedBy)
}
