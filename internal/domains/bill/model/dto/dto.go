package dto

import (
	"roomstack/internal/domains/bill/model"
	"roomstack/shared"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
	"roomstack/shared/timezone"
)

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

type BillResponse struct {
	ID                 string  `json:"id"`
	BookingID          string  `json:"booking_id"`
	RoomCharge         string  `json:"room_charge"`
	TaxAmount          string  `json:"tax_amount"`
	TotalAmount        string  `json:"total_amount"`
	PaymentStatus      string  `json:"payment_status"`
	PaymentStatusLabel string  `json:"payment_status_label"`
	PaymentDate        *string `json:"payment_date"`
	gDto.Metadata
}

func (r *BillResponse) FromModel(model model.Bill) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.RoomCharge = model.RoomCharge.StringFixed(constant.MoneyScale)
	r.TaxAmount = model.TaxAmount.StringFixed(constant.MoneyScale)
	r.TotalAmount = model.TotalAmount.StringFixed(constant.MoneyScale)
	r.PaymentStatus = string(model.PaymentStatus)
	r.PaymentStatusLabel = model.PaymentStatus.Label()
	r.PaymentDate = nil
	r.Metadata.FromModel(model.Metadata)

	if model.PaymentDate != nil {
		paidAt := timezone.Format(*model.PaymentDate, constant.DateFormat)
		r.PaymentDate = &paidAt
	}
}

type GetBillsResponse struct {
	Bills     []BillResponse `json:"bills"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetBillsResponse) FromModels(models []model.Bill, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bills = make([]BillResponse, len(models))
	for i, mod := range models {
		r.Bills[i].FromModel(mod)
	}
}

// PaymentStatusesResponse maps each payment status to its display label.
type PaymentStatusesResponse map[string]string

func NewPaymentStatusesResponse() PaymentStatusesResponse {
	res := PaymentStatusesResponse{}
	for _, status := range model.PaymentStatuses {
		res[string(status)] = status.Label()
	}

	return res
}
