package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"roomstack/config"
	"roomstack/infras/kafka"
	"roomstack/infras/otel"
	"roomstack/infras/postgres"
	billModel "roomstack/internal/domains/bill/model"
	billDto "roomstack/internal/domains/bill/model/dto"
	billRepo "roomstack/internal/domains/bill/repository"
	"roomstack/internal/domains/booking/model"
	"roomstack/internal/domains/booking/model/dto"
	"roomstack/internal/domains/booking/repository"
	customerModel "roomstack/internal/domains/customer/model"
	customerRepo "roomstack/internal/domains/customer/repository"
	roomModel "roomstack/internal/domains/room/model"
	roomRepo "roomstack/internal/domains/room/repository"
	"roomstack/shared"
	"roomstack/shared/cache"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
	"roomstack/shared/failure"
	"roomstack/shared/timezone"
)

const (
	msgBookingNotFound  = "booking not found"
	msgRoomNotFound     = "room not found"
	msgCustomerNotFound = "customer not found"
	msgRoomUnavailable  = "room is not available for the selected dates"
	msgInvalidStay      = "check_in must be before check_out"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, roomID, customerID string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error)
	Statuses() dto.StatusesResponse
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	billRepo     billRepo.Bill
	db           postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	customerRepo customerRepo.Customer,
	billRepo billRepo.Bill,
	db postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		billRepo:     billRepo,
		db:           db,
		cfg:          cfg,
		cache:        cache,
		kafka:        kafka,
		otel:         otel,
	}
}

// Create books roomID for customerID. The room row stays locked from the availability check
// until the booking and its bill are written, so two overlapping requests cannot both succeed.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, roomID, customerID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.Actor(ctx)

	booking, err := req.ToModel(user, roomID, customerID)
	if err != nil {
		return res, err
	}

	exist, err := s.customerRepo.Exist(ctx, shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return res, fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(msgCustomerNotFound) // nolint:wrapcheck
	}

	var (
		bill       billModel.Bill
		roomStatus roomModel.Status
	)

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		room, err := s.lockRoom(ctx, tx, roomID)
		if err != nil {
			return err
		}

		overlap, err := s.repo.HasOverlapTx(ctx, tx, roomID, booking.CheckIn, booking.CheckOut, constant.Empty)
		if err != nil {
			log.Error().Err(err).Msg("failed to check room availability")

			return fmt.Errorf("failed to check room availability: %w", err)
		}

		if overlap {
			return failure.Conflict(msgRoomUnavailable) // nolint:wrapcheck
		}

		if roomStatus, err = s.moveRoom(ctx, tx, room, model.Created(), user); err != nil {
			return err
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			log.Error().Err(err).Msg("failed to create booking")

			// The room row is locked, so a dangling reference can only be the customer.
			if failure.StorageCode(err) == constant.PqErrorCodeFkViolation {
				return failure.NotFound(msgCustomerNotFound) // nolint:wrapcheck
			}

			if fail := failure.FromStorage(err, msgRoomUnavailable); failure.IsFailure(fail) {
				return fail // nolint:wrapcheck
			}

			return fmt.Errorf("failed to create booking: %w", err)
		}

		bill = billModel.New(booking.ID, billModel.Calculate(booking.CheckIn, booking.CheckOut, room.NightlyRate), user)

		if err := s.billRepo.InsertTx(ctx, tx, bill); err != nil {
			log.Error().Err(err).Msg("failed to create bill")

			return fmt.Errorf("failed to create bill: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	s.invalidate(ctx, constant.Empty, roomID)
	s.publish(ctx, model.NewLifecycleEvent(constant.EventBookingCreated, booking, constant.Empty, roomStatus, user, booking.CreatedAt))

	res.FromModel(booking)
	res.Bill = toBillResponse(bill)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheKeyBookingAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheKeyBookingCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// Get returns the booking together with its bill.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheKeyBookingGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	bill, err := s.billRepo.Get(ctx, shared.FilterByID(id, billModel.FieldBookingID, billModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking bill")

		return res, fmt.Errorf("failed to get booking bill: %w", err)
	}

	res.FromModel(booking)
	res.Bill = toBillResponse(bill)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// UpdateStatus moves a booking to status and pushes the matching room status in the same
// transaction. Reviving a cancelled booking re-checks that its dates are still free.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id, status string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	next, err := model.ParseStatus(status)
	if err != nil {
		return res, err
	}

	user := shared.Actor(ctx)

	var (
		booking    model.Booking
		previous   model.Status
		roomStatus roomModel.Status
	)

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		room, err := s.lockRoom(ctx, tx, current.RoomID)
		if err != nil {
			return err
		}

		if current.Status == model.StatusCancelled && next != model.StatusCancelled {
			overlap, err := s.repo.HasOverlapTx(ctx, tx, current.RoomID, current.CheckIn, current.CheckOut, current.ID)
			if err != nil {
				log.Error().Err(err).Msg("failed to check room availability")

				return fmt.Errorf("failed to check room availability: %w", err)
			}

			if overlap {
				return failure.Conflict(msgRoomUnavailable) // nolint:wrapcheck
			}
		}

		fields := shared.StampModified(map[string]any{model.FieldStatus: next}, user)

		if err := s.repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update booking status")

			return fmt.Errorf("failed to update booking status: %w", err)
		}

		if roomStatus, err = s.moveRoom(ctx, tx, room, model.StatusSet(current.Status, next), user); err != nil {
			return err
		}

		previous = current.Status
		booking = current
		booking.Status = next
		booking.ModifiedBy = user
		booking.ModifiedAt, _ = fields[constant.FieldModifiedAt].(time.Time)

		return nil
	})
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	s.invalidate(ctx, id, booking.RoomID)
	s.publish(ctx, model.NewLifecycleEvent(constant.EventBookingStatusChanged, booking, previous, roomStatus, user, booking.ModifiedAt))

	res.FromModel(booking)

	// The status change is committed at this point, so a failed bill read only drops the bill.
	bill, err := s.billRepo.Get(ctx, shared.FilterByID(id, billModel.FieldBookingID, billModel.TableName))
	if err != nil {
		log.Warn().Err(err).Str("booking", id).Msg("failed to get booking bill")

		return res, nil
	}

	res.Bill = toBillResponse(bill)

	return res, nil
}

// Delete removes a booking and its bill. An active booking releases its room first.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.Actor(ctx)

	var (
		booking    model.Booking
		roomStatus roomModel.Status
	)

	err = s.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		room, err := s.lockRoom(ctx, tx, current.RoomID)
		if err != nil {
			return err
		}

		if roomStatus, err = s.moveRoom(ctx, tx, room, model.Deleted(current.Status), user); err != nil {
			return err
		}

		if err := s.repo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking")

			return fmt.Errorf("failed to delete booking: %w", err)
		}

		booking = current

		return nil
	})
	if err != nil {
		return err // nolint:wrapcheck
	}

	s.invalidate(ctx, id, booking.RoomID)
	s.publish(ctx, model.NewLifecycleEvent(constant.EventBookingDeleted, booking, booking.Status, roomStatus, user, timezone.Now()))

	return nil
}

// IsAvailable reports whether no non-cancelled booking other than excludeID holds roomID at any
// point of [checkIn, checkOut].
func (s *serviceImpl) IsAvailable(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.IsAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !checkIn.Before(checkOut) {
		return false, failure.BadRequestFromString(msgInvalidStay) // nolint:wrapcheck
	}

	overlap, err := s.repo.HasOverlap(ctx, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return false, fmt.Errorf("failed to check room availability: %w", err)
	}

	return !overlap, nil
}

func (s *serviceImpl) Statuses() dto.StatusesResponse {
	return dto.NewStatusesResponse()
}

func (s *serviceImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) lockRoom(ctx context.Context, tx *sqlx.Tx, id string) (roomModel.Room, error) {
	room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	return room, nil
}

// moveRoom applies the room side of a booking transition and returns the room's new status.
// The row is only written when the status actually changes.
func (s *serviceImpl) moveRoom(ctx context.Context, tx *sqlx.Tx, room roomModel.Room, t model.Transition, user string) (roomModel.Status, error) {
	next := model.RoomStatusAfter(room.Status, t)
	if next == room.Status {
		return next, nil
	}

	fields := shared.StampModified(map[string]any{roomModel.FieldStatus: next}, user)

	if err := s.roomRepo.UpdateTx(ctx, tx, fields, shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName)); err != nil {
		log.Error().Err(err).Str("room", room.ID).Msg("failed to update room status")

		return room.Status, fmt.Errorf("failed to update room status: %w", err)
	}

	log.Info().
		Str("room", room.ID).
		Str("trigger", t.Trigger.String()).
		Str("from", string(room.Status)).
		Str("to", string(next)).
		Msg("room status changed")

	return next, nil
}

func (s *serviceImpl) publish(ctx context.Context, event model.LifecycleEvent) {
	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topic, kafka.Message{Key: event.BookingID, Value: event})
	if err != nil {
		log.Error().Err(err).Str("booking", event.BookingID).Str("event", event.Event).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, bookingID, roomID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		keys := []string{shared.BuildCacheKey(constant.CacheKeyRoomGet, roomID)}
		if bookingID != constant.Empty {
			keys = append(keys, shared.BuildCacheKey(constant.CacheKeyBookingGet, bookingID))
		}

		for _, key := range keys {
			if err := s.cache.Delete(c, key); err != nil {
				log.Error().Err(err).Str("cacheKey", key).Msg("failed to delete from cache")
			}
		}

		for _, prefix := range []string{
			constant.CacheKeyBookingAll,
			constant.CacheKeyBookingCount,
			constant.CacheKeyRoomGetAll,
			constant.CacheKeyRoomCount,
		} {
			shared.InvalidateCaches(c, s.cache, prefix)
		}
	}()
}

func toBillResponse(bill billModel.Bill) *billDto.BillResponse {
	if bill.ID == constant.Empty {
		return nil
	}

	var res billDto.BillResponse
	res.FromModel(bill)

	return &res
}
