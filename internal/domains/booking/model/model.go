package model

import (
	"fmt"
	"time"

	"roomstack/shared/failure"
	"roomstack/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldRoomID          = "room_id"
	FieldCustomerID      = "customer_id"
	FieldCheckIn         = "check_in"
	FieldCheckOut        = "check_out"
	FieldAdults          = "adults"
	FieldChildren        = "children"
	FieldSpecialRequests = "special_requests"
	FieldStatus          = "status"
)

type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
)

var Statuses = []Status{StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled}

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return true
	default:
		return false
	}
}

// Active reports whether a booking in this status is holding its room.
func (s Status) Active() bool {
	switch s {
	case StatusConfirmed, StatusCheckedIn:
		return true
	case StatusCheckedOut, StatusCancelled:
		return false
	default:
		return false
	}
}

func (s Status) Label() string {
	switch s {
	case StatusConfirmed:
		return "Confirmed"
	case StatusCheckedIn:
		return "Checked In"
	case StatusCheckedOut:
		return "Checked Out"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if !status.Valid() {
		return status, failure.BadRequestFromString(fmt.Sprintf("invalid booking status %q", value)) // nolint:wrapcheck
	}

	return status, nil
}

type Booking struct {
	ID              string    `db:"id"`
	RoomID          string    `db:"room_id"`
	CustomerID      string    `db:"customer_id"`
	CheckIn         time.Time `db:"check_in"`
	CheckOut        time.Time `db:"check_out"`
	Adults          int       `db:"adults"`
	Children        int       `db:"children"`
	SpecialRequests string    `db:"special_requests"`
	Status          Status    `db:"status"`
	model.Metadata
}
