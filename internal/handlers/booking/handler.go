package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roomstack/infras/otel"
	"roomstack/internal/domains/booking/model"
	"roomstack/internal/domains/booking/model/dto"
	"roomstack/internal/domains/booking/service"
	"roomstack/shared"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
	"roomstack/shared/failure"
	"roomstack/shared/timezone"
	"roomstack/shared/validator"
	"roomstack/transport/http/response"
)

const (
	paramRoomID     = "room_id"
	paramCustomerID = "customer_id"
	paramCheckIn    = "check_in"
	paramCheckOut   = "check_out"

	roomEntity     = "room"
	customerEntity = "customer"

	msgRoomUnavailable = "room is not available for the selected dates"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/statuses", handler.GetStatuses)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBooking books a room for a customer and issues the bill.
// @Summary Create a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param room_id query string true "Room ID"
// @Param customer_id query string true "Customer ID"
// @Param request body dto.CreateBookingRequest true "Stay details"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error "Room or customer not found"
// @Failure 409 {object} response.Error "Room is not available"
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	roomID := r.URL.Query().Get(paramRoomID)
	customerID := r.URL.Query().Get(paramCustomerID)

	var req dto.CreateBookingRequest

	err := requireParams(map[string]string{paramRoomID: roomID, paramCustomerID: customerID})
	if err == nil {
		roomID, err = shared.ParseID(roomID, roomEntity)
	}

	if err == nil {
		customerID, err = shared.ParseID(customerID, customerEntity)
	}

	if err == nil {
		err = validator.Validate(r.Body, &req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	checkIn, checkOut, err := dto.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	available, err := handler.service.IsAvailable(ctx, roomID, checkIn, checkOut, constant.Empty)
	if err == nil && !available {
		err = failure.Conflict(msgRoomUnavailable)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", roomID).Msg("failed to reserve room")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req, roomID, customerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking created successfully by " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings lists bookings filtered by status, room and customer.
// @Summary Get all bookings
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param room_id query string false "Filter by room"
// @Param customer_id query string false "Filter by customer"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sortable(model.TableName, model.FieldCheckIn, model.FieldCheckOut, model.FieldStatus, constant.FieldCreatedAt)

	query := r.URL.Query()

	filterGroup, err := dto.ListFilter(query.Get(model.FieldStatus), query.Get(paramRoomID), query.Get(paramCustomerID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetStatuses returns the label of every booking status.
// @Summary Booking statuses
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.StatusesResponse]
// @Router /v1/bookings/statuses [get]
func (handler *Handler) GetStatuses(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, handler.service.Statuses())
}

// CheckAvailability reports whether a room is free for the given stay.
// @Summary Check room availability
// @Tags Booking
// @Produce json
// @Param room_id query string true "Room ID"
// @Param check_in query string true "Check-in timestamp"
// @Param check_out query string true "Check-out timestamp"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Router /v1/bookings/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	query := r.URL.Query()
	roomID := query.Get(paramRoomID)

	err := requireParams(map[string]string{
		paramRoomID:   roomID,
		paramCheckIn:  query.Get(paramCheckIn),
		paramCheckOut: query.Get(paramCheckOut),
	})
	if err == nil {
		roomID, err = shared.ParseID(roomID, roomEntity)
	}

	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	checkIn, checkOut, err := dto.ParseStay(query.Get(paramCheckIn), query.Get(paramCheckOut))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	available, err := handler.service.IsAvailable(ctx, roomID, checkIn, checkOut, constant.Empty)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.AvailabilityResponse{
		RoomID:    roomID,
		CheckIn:   timezone.Format(checkIn, constant.DateFormat),
		CheckOut:  timezone.Format(checkOut, constant.DateFormat),
		Available: available,
	})
}

// GetBookingByID retrieves a booking with its bill.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID), model.EntityName)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid booking id")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdateBookingStatus moves a booking through its lifecycle and updates the room accordingly.
// @Summary Update booking status
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Room taken while the booking was cancelled"
// @Router /v1/bookings/{id}/status [patch]
func (handler *Handler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID), model.EntityName)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid booking id")

		response.WithError(w, err)

		return
	}

	var req dto.UpdateStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking moved to " + booking.Status + " by " + shared.Actor(ctx))

	response.WithJSON(w, http.StatusOK, booking)
}

// DeleteBooking removes a booking and its bill, releasing the room when it was held.
// @Summary Delete a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [delete]
func (handler *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID), model.EntityName)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid booking id")

		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking deleted successfully by " + shared.Actor(ctx))

	response.WithMessage(w, http.StatusOK, "Booking deleted successfully")
}

func requireParams(params map[string]string) error {
	for _, name := range []string{paramRoomID, paramCustomerID, paramCheckIn, paramCheckOut} {
		value, ok := params[name]
		if ok && value == constant.Empty {
			return failure.BadRequestFromString(name + " is required") //nolint:wrapcheck
		}
	}

	return nil
}
