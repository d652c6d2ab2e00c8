package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomstack/internal/domains/booking/model"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 14, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	existingIn, existingOut := day(1), day(5)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"starts inside", day(3), day(7), true},
		{"ends inside", day(-2), day(2), true},
		{"contains the existing stay", day(-1), day(9), true},
		{"inside the existing stay", day(2), day(4), true},
		{"identical", day(1), day(5), true},
		{"starts on the existing check-out", day(5), day(6), true},
		{"ends on the existing check-in", day(-1), day(1), true},
		{"entirely after", day(6), day(8), false},
		{"entirely before", day(-3), time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Overlaps(existingIn, existingOut, tt.checkIn, tt.checkOut))
			assert.Equal(t, tt.want, model.Overlaps(tt.checkIn, tt.checkOut, existingIn, existingOut), "symmetric")
		})
	}
}

func TestOverlapFilter(t *testing.T) {
	filter := model.OverlapFilter("room-1", day(3), day(7), "")
	where, args := filter.GetWhereClause()

	assert.Equal(t,
		"(bookings.room_id = :room_id AND bookings.status != :excluded_status AND ("+
			"(bookings.check_in <= :candidate_check_in AND bookings.check_out >= :candidate_check_in) OR "+
			"(bookings.check_in <= :candidate_check_out AND bookings.check_out >= :candidate_check_out) OR "+
			"(bookings.check_in >= :candidate_check_in AND bookings.check_in <= :candidate_check_out)))",
		where)
	assert.Equal(t, "room-1", args["room_id"])
	assert.Equal(t, model.StatusCancelled, args["excluded_status"])
	assert.Equal(t, day(3), args["candidate_check_in"])
	assert.Equal(t, day(7), args["candidate_check_out"])
	assert.NotContains(t, args, "exclude_id")
}

func TestOverlapFilter_ExcludesBooking(t *testing.T) {
	filter := model.OverlapFilter("room-1", day(3), day(7), "booking-1")
	where, args := filter.GetWhereClause()

	require.Contains(t, where, "bookings.id != :exclude_id")
	assert.Equal(t, "booking-1", args["exclude_id"])
}
