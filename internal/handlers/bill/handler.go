package bill

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"roomstack/infras/otel"
	"roomstack/internal/domains/bill/model"
	"roomstack/internal/domains/bill/model/dto"
	"roomstack/internal/domains/bill/service"
	"roomstack/shared"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
	"roomstack/shared/validator"
	"roomstack/transport/http/response"
)

const bookingEntity = "booking"

type Handler struct {
	service service.Bill
	otel    otel.Otel
}

func New(service service.Bill, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bills", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBills)
		routerGroup.Get("/payment-statuses", handler.GetPaymentStatuses)
		routerGroup.Get("/booking/{id}", handler.GetBillByBooking)
		routerGroup.Get("/{id}", handler.GetBillByID)
		routerGroup.Patch("/{id}/payment-status", handler.UpdatePaymentStatus)
	})
}

// GetBills lists bills.
// @Summary Get all bills
// @Tags Bill
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param payment_status query string false "Filter by payment status"
// @Success 200 {object} response.Data[dto.GetBillsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/bills [get]
func (handler *Handler) GetBills(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBills")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.Sortable(model.TableName, model.FieldTotalAmount, model.FieldPaymentDate, constant.FieldCreatedAt)

	filterGroup := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd)

	if status := r.URL.Query().Get(model.FieldPaymentStatus); status != constant.Empty {
		parsed, err := model.ParsePaymentStatus(status)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		filterGroup.Add(gDto.Filter{
			Field:    model.FieldPaymentStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    parsed,
			Table:    model.TableName,
		})
	}

	bills, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bills")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bills)
}

// GetPaymentStatuses returns the label of every payment status.
// @Summary Payment statuses
// @Tags Bill
// @Produce json
// @Success 200 {object} response.Data[dto.PaymentStatusesResponse]
// @Router /v1/bills/payment-statuses [get]
func (handler *Handler) GetPaymentStatuses(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, handler.service.PaymentStatuses())
}

// GetBillByID retrieves a bill by its ID.
// @Summary Get a bill by ID
// @Tags Bill
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} response.Data[dto.BillResponse]
// @Failure 404 {object} response.Error
// @Router /v1/bills/{id} [get]
func (handler *Handler) GetBillByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID), model.EntityName)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid bill id")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bill by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bill)
}

// GetBillByBooking retrieves the bill issued for a booking.
// @Summary Get the bill of a booking
// @Tags Bill
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BillResponse]
// @Failure 404 {object} response.Error
// @Router /v1/bills/booking/{id} [get]
func (handler *Handler) GetBillByBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBillByBooking")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID), bookingEntity)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid booking id")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.GetByBooking(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bill by booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bill)
}

// UpdatePaymentStatus records a payment against a bill.
// @Summary Update bill payment status
// @Tags Bill
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body dto.UpdatePaymentStatusRequest true "New payment status"
// @Success 200 {object} response.Data[dto.BillResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bills/{id}/payment-status [patch]
func (handler *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePaymentStatus")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID), model.EntityName)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid bill id")

		response.WithError(w, err)

		return
	}

	var req dto.UpdatePaymentStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	bill, err := handler.service.UpdatePaymentStatus(ctx, id, req.PaymentStatus)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update payment status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bill marked " + bill.PaymentStatus)

	response.WithJSON(w, http.StatusOK, bill)
}
