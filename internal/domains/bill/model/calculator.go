package model

import (
	"time"

	"github.com/shopspring/decimal"

	"roomstack/shared/constant"
	"roomstack/shared/timezone"
)

// TaxRate is the flat tax applied to every room charge.
var TaxRate = decimal.RequireFromString("0.10")

type Charge struct {
	Nights     int64
	RoomCharge decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
}

// Calculate prices a stay. Nights are counted between calendar dates in the application
// timezone and a same-day stay is billed as one night. Amounts are rounded half away from
// zero to cents, so for non-negative rates this is half-up.
func Calculate(checkIn, checkOut time.Time, nightlyRate decimal.Decimal) Charge {
	nights := max(timezone.DaysBetween(checkIn, checkOut), 1)

	roomCharge := nightlyRate.Mul(decimal.NewFromInt(nights)).Round(constant.MoneyScale)
	tax := roomCharge.Mul(TaxRate).Round(constant.MoneyScale)

	return Charge{
		Nights:     nights,
		RoomCharge: roomCharge,
		TaxAmount:  tax,
		Total:      roomCharge.Add(tax),
	}
}
