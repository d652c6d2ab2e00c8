package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roomstack/infras/otel"
	"roomstack/internal/domains/customer/model"
	"roomstack/internal/domains/customer/model/dto"
	"roomstack/internal/domains/customer/repository"
	"roomstack/shared"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
	"roomstack/shared/failure"
)

const (
	msgCustomerNotFound     = "customer not found"
	msgCustomerEmailExists  = "customer email already exists"
	msgCustomerHasBookings  = "customer has bookings and cannot be deleted"
	msgCustomerNothingToSet = "no fields to update"
)

type Customer interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (dto.CustomerResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCustomersResponse, error)
	Get(ctx context.Context, id string) (dto.CustomerResponse, error)
	Update(ctx context.Context, req dto.UpdateCustomerRequest, id string) (dto.CustomerResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo repository.Customer
	otel otel.Otel
}

func New(repo repository.Customer, otel otel.Otel) Customer {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCustomerRequest) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Customer.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	customer := req.ToModel(shared.Actor(ctx))

	taken, err := s.emailTaken(ctx, customer.Email, constant.Empty)
	if err != nil {
		return res, err
	}

	if taken {
		return res, failure.Conflict(msgCustomerEmailExists) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, customer); err != nil {
		log.Error().Err(err).Msg("failed to create customer")

		if fail := failure.FromStorage(err, msgCustomerEmailExists); failure.IsFailure(fail) {
			return res, fail // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create customer: %w", err)
	}

	res.FromModel(customer)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Customer.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Customer.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	customer, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(customer)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCustomerRequest, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Customer.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString(msgCustomerNothingToSet) // nolint:wrapcheck
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	req.Email = dto.NormalizeEmail(req.Email)

	if req.Email != constant.Empty && req.Email != current.Email {
		taken, err := s.emailTaken(ctx, req.Email, id)
		if err != nil {
			return res, err
		}

		if taken {
			return res, failure.Conflict(msgCustomerEmailExists) // nolint:wrapcheck
		}
	}

	fields := shared.TransformFields(req, shared.Actor(ctx))

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update customer")

		if fail := failure.FromStorage(err, msgCustomerEmailExists); failure.IsFailure(fail) {
			return res, fail // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to update customer: %w", err)
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Customer.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return failure.NotFound(msgCustomerNotFound) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete customer")

		if fail := failure.FromStorage(err, msgCustomerHasBookings); failure.IsFailure(fail) {
			return fail // nolint:wrapcheck
		}

		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Customer, error) {
	customer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return customer, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return customer, failure.NotFound(msgCustomerNotFound) // nolint:wrapcheck
	}

	return customer, nil
}

func (s *serviceImpl) emailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	filter := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd, gDto.Filter{
		Field:    model.FieldEmail,
		Value:    email,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	if excludeID != constant.Empty {
		filter.Add(gDto.Filter{
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check customer email")

		return false, fmt.Errorf("failed to check customer email: %w", err)
	}

	return exist, nil
}
