package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"roomstack/shared/failure"
	"roomstack/shared/model"
	"roomstack/shared/timezone"
)

const (
	TableName  = "bills"
	EntityName = "bill"

	FieldID            = "id"
	FieldBookingID     = "booking_id"
	FieldRoomCharge    = "room_charge"
	FieldTaxAmount     = "tax_amount"
	FieldTotalAmount   = "total_amount"
	FieldPaymentStatus = "payment_status"
	FieldPaymentDate   = "payment_date"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

var PaymentStatuses = []PaymentStatus{PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid}

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid:
		return true
	default:
		return false
	}
}

func (p PaymentStatus) Label() string {
	switch p {
	case PaymentStatusPending:
		return "Pending"
	case PaymentStatusPartial:
		return "Partially Paid"
	case PaymentStatusPaid:
		return "Fully Paid"
	default:
		return string(p)
	}
}

// ParsePaymentStatus rejects anything outside the closed set with a bad request failure.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	status := PaymentStatus(value)
	if !status.Valid() {
		return status, failure.BadRequestFromString(fmt.Sprintf("invalid payment status %q", value)) // nolint:wrapcheck
	}

	return status, nil
}

type Bill struct {
	ID            string          `db:"id"`
	BookingID     string          `db:"booking_id"`
	RoomCharge    decimal.Decimal `db:"room_charge"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	PaymentStatus PaymentStatus   `db:"payment_status"`
	PaymentDate   *time.Time      `db:"payment_date"`
	model.Metadata
}

// New returns the pending bill issued for a booking.
func New(bookingID string, charge Charge, user string) Bill {
	return Bill{
		ID:            uuid.NewString(),
		BookingID:     bookingID,
		RoomCharge:    charge.RoomCharge,
		TaxAmount:     charge.TaxAmount,
		TotalAmount:   charge.Total,
		PaymentStatus: PaymentStatusPending,
		Metadata:      model.NewMetadata(timezone.Now(), user),
	}
}

// PaymentEvent is published when a bill's payment status changes.
type PaymentEvent struct {
	Event          string     `json:"event"`
	BillID         string     `json:"bill_id"`
	BookingID      string     `json:"booking_id"`
	PaymentStatus  string     `json:"payment_status"`
	PreviousStatus string     `json:"previous_status"`
	TotalAmount    string     `json:"total_amount"`
	PaymentDate    *time.Time `json:"payment_date,omitempty"`
	Actor          string     `json:"actor"`
	OccurredAt     time.Time  `json:"occurred_at"`
}
