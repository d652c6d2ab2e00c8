package model

import (
	"time"

	roomModel "roomstack/internal/domains/room/model"
)

// LifecycleEvent is published after a booking is created, changes status or is deleted.
type LifecycleEvent struct {
	Event          string           `json:"event"`
	BookingID      string           `json:"booking_id"`
	RoomID         string           `json:"room_id"`
	CustomerID     string           `json:"customer_id"`
	Status         Status           `json:"status,omitempty"`
	PreviousStatus Status           `json:"previous_status,omitempty"`
	RoomStatus     roomModel.Status `json:"room_status"`
	CheckIn        time.Time        `json:"check_in"`
	CheckOut       time.Time        `json:"check_out"`
	Actor          string           `json:"actor"`
	OccurredAt     time.Time        `json:"occurred_at"`
}

func NewLifecycleEvent(event string, booking Booking, previous Status, roomStatus roomModel.Status, actor string, at time.Time) LifecycleEvent {
	return LifecycleEvent{
		Event:          event,
		BookingID:      booking.ID,
		RoomID:         booking.RoomID,
		CustomerID:     booking.CustomerID,
		Status:         booking.Status,
		PreviousStatus: previous,
		RoomStatus:     roomStatus,
		CheckIn:        booking.CheckIn,
		CheckOut:       booking.CheckOut,
		Actor:          actor,
		OccurredAt:     at,
	}
}
