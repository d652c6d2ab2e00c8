package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"roomstack/internal/domains/bill/model"
	"roomstack/shared/timezone"
)

func at(value string) time.Time {
	t, err := timezone.Parse("2006-01-02T15:04", value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		checkIn    string
		checkOut   string
		rate       string
		nights     int64
		roomCharge string
		tax        string
		total      string
	}{
		{
			name:       "overnight stay counts calendar dates",
			checkIn:    "2024-01-01T14:00",
			checkOut:   "2024-01-02T11:00",
			rate:       "100.00",
			nights:     1,
			roomCharge: "100.00",
			tax:        "10.00",
			total:      "110.00",
		},
		{
			name:       "same day stay is billed as one night",
			checkIn:    "2024-01-01T09:00",
			checkOut:   "2024-01-01T18:00",
			rate:       "100.00",
			nights:     1,
			roomCharge: "100.00",
			tax:        "10.00",
			total:      "110.00",
		},
		{
			name:       "multi night stay",
			checkIn:    "2024-03-10T15:00",
			checkOut:   "2024-03-14T10:00",
			rate:       "89.99",
			nights:     4,
			roomCharge: "359.96",
			tax:        "36.00",
			total:      "395.96",
		},
		{
			name:       "tax rounds half up",
			checkIn:    "2024-01-01T14:00",
			checkOut:   "2024-01-02T11:00",
			rate:       "0.05",
			nights:     1,
			roomCharge: "0.05",
			tax:        "0.01",
			total:      "0.06",
		},
		{
			name:       "free room",
			checkIn:    "2024-01-01T14:00",
			checkOut:   "2024-01-03T11:00",
			rate:       "0",
			nights:     2,
			roomCharge: "0.00",
			tax:        "0.00",
			total:      "0.00",
		},
		{
			name:       "month boundary",
			checkIn:    "2024-02-28T14:00",
			checkOut:   "2024-03-01T11:00",
			rate:       "120.50",
			nights:     2,
			roomCharge: "241.00",
			tax:        "24.10",
			total:      "265.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charge := model.Calculate(at(tt.checkIn), at(tt.checkOut), decimal.RequireFromString(tt.rate))

			assert.Equal(t, tt.nights, charge.Nights)
			assert.Equal(t, tt.roomCharge, charge.RoomCharge.StringFixed(2))
			assert.Equal(t, tt.tax, charge.TaxAmount.StringFixed(2))
			assert.Equal(t, tt.total, charge.Total.StringFixed(2))
			assert.True(t, charge.Total.Equal(charge.RoomCharge.Add(charge.TaxAmount)))
		})
	}
}

func TestCalculate_IsDeterministic(t *testing.T) {
	checkIn := at("2024-05-01T14:00")
	checkOut := at("2024-05-08T11:00")
	rate := decimal.RequireFromString("149.95")

	first := model.Calculate(checkIn, checkOut, rate)
	second := model.Calculate(checkIn, checkOut, rate)

	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, int64(7), first.Nights)
}
