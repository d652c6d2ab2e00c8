package model

import (
	roomModel "roomstack/internal/domains/room/model"
)

type Trigger int

const (
	TriggerCreate Trigger = iota + 1
	TriggerSetStatus
	TriggerDelete
)

func (t Trigger) String() string {
	switch t {
	case TriggerCreate:
		return "create"
	case TriggerSetStatus:
		return "set_status"
	case TriggerDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Transition describes one step of a booking's life. From is the status before the step and To
// the status after it; To is unused for deletes.
type Transition struct {
	Trigger Trigger
	From    Status
	To      Status
}

func Created() Transition {
	return Transition{Trigger: TriggerCreate, To: StatusConfirmed}
}

func StatusSet(from, to Status) Transition {
	return Transition{Trigger: TriggerSetStatus, From: from, To: to}
}

func Deleted(from Status) Transition {
	return Transition{Trigger: TriggerDelete, From: from}
}

// RoomStatusAfter returns the status the booked room must hold once the transition is applied.
// A new booking occupies its room straight away even though the booking itself starts out
// confirmed; moving an existing booking back to confirmed only reserves the room.
func RoomStatusAfter(current roomModel.Status, t Transition) roomModel.Status {
	switch t.Trigger {
	case TriggerCreate:
		return roomModel.StatusOccupied
	case TriggerSetStatus:
		switch t.To {
		case StatusConfirmed:
			return roomModel.StatusReserved
		case StatusCheckedIn:
			return roomModel.StatusOccupied
		case StatusCheckedOut, StatusCancelled:
			return roomModel.StatusAvailable
		default:
			return current
		}
	case TriggerDelete:
		if t.From.Active() {
			return roomModel.StatusAvailable
		}

		return current
	default:
		return current
	}
}
