package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roomstack/config"
	"roomstack/infras/kafka"
	"roomstack/infras/otel"
	"roomstack/internal/domains/bill/model"
	"roomstack/internal/domains/bill/model/dto"
	"roomstack/internal/domains/bill/repository"
	"roomstack/shared"
	"roomstack/shared/cache"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
	"roomstack/shared/failure"
	"roomstack/shared/timezone"
)

const msgBillNotFound = "bill not found"

type Bill interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBillsResponse, error)
	Get(ctx context.Context, id string) (dto.BillResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.BillResponse, error)
	UpdatePaymentStatus(ctx context.Context, id, status string) (dto.BillResponse, error)
	PaymentStatuses() dto.PaymentStatusesResponse
}

type serviceImpl struct {
	repo  repository.Bill
	cfg   *config.Config
	cache cache.RedisCache
	kafka kafka.Client
	otel  otel.Otel
}

func New(repo repository.Bill, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otel otel.Otel) Bill {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		kafka: kafka,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBillsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bill.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bills")

		return res, fmt.Errorf("failed to count bills: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bills")

		return res, fmt.Errorf("failed to get bills: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bill.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bill, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(bill)

	return res, nil
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bill.GetByBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bill, err := s.find(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(bill)

	return res, nil
}

// UpdatePaymentStatus records a payment status change. Moving to paid stamps the payment date;
// other statuses leave it as it was.
func (s *serviceImpl) UpdatePaymentStatus(ctx context.Context, id, status string) (res dto.BillResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Bill.UpdatePaymentStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	next, err := model.ParsePaymentStatus(status)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	bill, err := s.find(ctx, filter)
	if err != nil {
		return res, err
	}

	previous := bill.PaymentStatus
	user := shared.Actor(ctx)
	now := timezone.Now()

	fields := map[string]any{model.FieldPaymentStatus: next}
	if next == model.PaymentStatusPaid {
		fields[model.FieldPaymentDate] = now
		bill.PaymentDate = &now
	}

	fields = shared.StampModified(fields, user)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update bill payment status")

		return res, fmt.Errorf("failed to update bill payment status: %w", err)
	}

	bill.PaymentStatus = next
	bill.ModifiedBy = user
	bill.ModifiedAt = now

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheKeyBookingGet, bill.BookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}()

	s.publish(ctx, bill, previous)

	res.FromModel(bill)

	return res, nil
}

func (s *serviceImpl) PaymentStatuses() dto.PaymentStatusesResponse {
	return dto.NewPaymentStatusesResponse()
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Bill, error) {
	bill, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bill")

		return bill, fmt.Errorf("failed to get bill: %w", err)
	}

	if bill.ID == constant.Empty {
		return bill, failure.NotFound(msgBillNotFound) // nolint:wrapcheck
	}

	return bill, nil
}

func (s *serviceImpl) publish(ctx context.Context, bill model.Bill, previous model.PaymentStatus) {
	event := model.PaymentEvent{
		Event:          constant.EventBillPaymentUpdated,
		BillID:         bill.ID,
		BookingID:      bill.BookingID,
		PaymentStatus:  string(bill.PaymentStatus),
		PreviousStatus: string(previous),
		TotalAmount:    bill.TotalAmount.StringFixed(constant.MoneyScale),
		PaymentDate:    bill.PaymentDate,
		Actor:          bill.ModifiedBy,
		OccurredAt:     bill.ModifiedAt,
	}

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic, kafka.Message{Key: bill.BookingID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("bill", bill.ID).Msg("failed to publish payment event")
	}
}
