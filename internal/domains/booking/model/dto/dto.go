package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	billDto "roomstack/internal/domains/bill/model/dto"
	"roomstack/internal/domains/booking/model"
	"roomstack/shared"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
	"roomstack/shared/failure"
	gModel "roomstack/shared/model"
	"roomstack/shared/timezone"
)

const msgCheckInAfterCheckOut = "check_in must be before check_out"

// ParseStay reads a check-in and check-out pair, accepting RFC3339 or a local timestamp in the
// application timezone.
func ParseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := timezone.ParseAny(checkIn, time.RFC3339, constant.LocalDateFormat)
	if err != nil {
		return in, time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid check_in %q", checkIn)) // nolint:wrapcheck
	}

	out, err := timezone.ParseAny(checkOut, time.RFC3339, constant.LocalDateFormat)
	if err != nil {
		return in, out, failure.BadRequestFromString(fmt.Sprintf("invalid check_out %q", checkOut)) // nolint:wrapcheck
	}

	if !in.Before(out) {
		return in, out, failure.BadRequestFromString(msgCheckInAfterCheckOut) // nolint:wrapcheck
	}

	return in, out, nil
}

type CreateBookingRequest struct {
	CheckIn         string `json:"check_in"         validate:"required"`
	CheckOut        string `json:"check_out"        validate:"required"`
	Adults          int    `json:"adults"           validate:"required,min=1"`
	Children        int    `json:"children"         validate:"min=0"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) ToModel(user, roomID, customerID string) (model.Booking, error) {
	checkIn, checkOut, err := ParseStay(c.CheckIn, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:              uuid.NewString(),
		RoomID:          roomID,
		CustomerID:      customerID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Adults:          c.Adults,
		Children:        c.Children,
		SpecialRequests: c.SpecialRequests,
		Status:          model.StatusConfirmed,
		Metadata:        gModel.NewMetadata(timezone.Now(), user),
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
}

// ListFilter combines the optional status, room and customer filters with AND. An unknown
// status or a malformed id is rejected rather than silently matching nothing.
func ListFilter(status, roomID, customerID string) (gDto.FilterGroup, error) {
	filter := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd)

	for name, id := range map[string]string{model.FieldRoomID: roomID, model.FieldCustomerID: customerID} {
		if id != constant.Empty && !shared.IsID(id) {
			return filter, failure.BadRequestFromString(name + " must be a valid id") //nolint:wrapcheck
		}
	}

	if status != constant.Empty {
		parsed, err := model.ParseStatus(status)
		if err != nil {
			return filter, err
		}

		filter.Add(gDto.Filter{Field: model.FieldStatus, Value: parsed, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if roomID != constant.Empty {
		filter.Add(gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	if customerID != constant.Empty {
		filter.Add(gDto.Filter{Field: model.FieldCustomerID, Value: customerID, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return filter, nil
}

type BookingResponse struct {
	ID              string                `json:"id"`
	RoomID          string                `json:"room_id"`
	CustomerID      string                `json:"customer_id"`
	CheckIn         string                `json:"check_in"`
	CheckOut        string                `json:"check_out"`
	Adults          int                   `json:"adults"`
	Children        int                   `json:"children"`
	SpecialRequests string                `json:"special_requests"`
	Status          string                `json:"status"`
	StatusLabel     string                `json:"status_label"`
	Bill            *billDto.BillResponse `json:"bill,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.CustomerID = model.CustomerID
	r.CheckIn = timezone.Format(model.CheckIn, constant.DateFormat)
	r.CheckOut = timezone.Format(model.CheckOut, constant.DateFormat)
	r.Adults = model.Adults
	r.Children = model.Children
	r.SpecialRequests = model.SpecialRequests
	r.Status = string(model.Status)
	r.StatusLabel = model.Status.Label()
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type StatusesResponse map[string]string

func NewStatusesResponse() StatusesResponse {
	res := StatusesResponse{}
	for _, status := range model.Statuses {
		res[string(status)] = status.Label()
	}

	return res
}
