package model

import (
	"time"

	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
)

const (
	argCandidateCheckIn  = "candidate_check_in"
	argCandidateCheckOut = "candidate_check_out"
	argExcludedStatus    = "excluded_status"
	argExcludeID         = "exclude_id"
)

// Overlaps reports whether the stay [checkIn, checkOut] collides with an existing stay
// [existingIn, existingOut]. Endpoints are inclusive, so a stay starting on the day another
// ends still overlaps it.
func Overlaps(existingIn, existingOut, checkIn, checkOut time.Time) bool {
	within := func(t, from, to time.Time) bool {
		return !t.Before(from) && !t.After(to)
	}

	return within(checkIn, existingIn, existingOut) ||
		within(checkOut, existingIn, existingOut) ||
		within(existingIn, checkIn, checkOut)
}

// OverlapFilter selects the non-cancelled bookings of roomID that overlap [checkIn, checkOut]
// with the same rules as Overlaps. excludeID, when set, leaves one booking out.
func OverlapFilter(roomID string, checkIn, checkOut time.Time, excludeID string) gDto.FilterGroup {
	within := func(arg string, value time.Time) gDto.FilterGroup {
		return gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd,
			gDto.Filter{Field: FieldCheckIn, Value: value, Operator: gDto.FilterOperatorLessEq, Table: TableName, ArgName: arg},
			gDto.Filter{Field: FieldCheckOut, Value: value, Operator: gDto.FilterOperatorGreaterEq, Table: TableName, ArgName: arg},
		)
	}

	startsInside := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd,
		gDto.Filter{Field: FieldCheckIn, Value: checkIn, Operator: gDto.FilterOperatorGreaterEq, Table: TableName, ArgName: argCandidateCheckIn},
		gDto.Filter{Field: FieldCheckIn, Value: checkOut, Operator: gDto.FilterOperatorLessEq, Table: TableName, ArgName: argCandidateCheckOut},
	)

	filter := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd,
		gDto.Filter{Field: FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: TableName},
		gDto.Filter{Field: FieldStatus, Value: StatusCancelled, Operator: gDto.FilterOperatorNotEq, Table: TableName, ArgName: argExcludedStatus},
	)

	if excludeID != constant.Empty {
		filter.Add(gDto.Filter{Field: FieldID, Value: excludeID, Operator: gDto.FilterOperatorNotEq, Table: TableName, ArgName: argExcludeID})
	}

	filter.Add(gDto.NewFilterGroup(gDto.FilterGroupOperatorOr,
		within(argCandidateCheckIn, checkIn),
		within(argCandidateCheckOut, checkOut),
		startsInside,
	))

	return filter
}
