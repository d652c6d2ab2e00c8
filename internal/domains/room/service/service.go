package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"roomstack/config"
	"roomstack/infras/otel"
	"roomstack/infras/s3"
	"roomstack/internal/domains/room/model"
	"roomstack/internal/domains/room/model/dto"
	"roomstack/internal/domains/room/repository"
	"roomstack/shared"
	"roomstack/shared/cache"
	"roomstack/shared/constant"
	gDto "roomstack/shared/dto"
	"roomstack/shared/failure"
)

const (
	msgRoomNotFound     = "room not found"
	msgRoomNumberExists = "room number already exists"
	msgRoomHasBookings  = "room has bookings and cannot be deleted"
	msgNothingToUpdate  = "no fields to update"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (dto.RoomResponse, error)
	Delete(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, id string) (dto.RoomResponse, error)
	Statuses() dto.StatusesResponse
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	taken, err := s.numberTaken(ctx, req.Number, constant.Empty)
	if err != nil {
		return res, err
	}

	if taken {
		return res, failure.Conflict(msgRoomNumberExists) // nolint:wrapcheck
	}

	room := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		if fail := failure.FromStorage(err, msgRoomNumberExists); failure.IsFailure(fail) {
			return res, fail // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheKeyRoomGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheKeyRoomCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheKeyRoomGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return res, failure.BadRequestFromString(msgNothingToUpdate) // nolint:wrapcheck
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Number != nil && *req.Number != current.Number {
		taken, err := s.numberTaken(ctx, *req.Number, id)
		if err != nil {
			return res, err
		}

		if taken {
			return res, failure.Conflict(msgRoomNumberExists) // nolint:wrapcheck
		}
	}

	fields := shared.StampModified(req.Fields(), shared.Actor(ctx))
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		if fail := failure.FromStorage(err, msgRoomNumberExists); failure.IsFailure(fail) {
			return res, fail // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	s.invalidate(ctx, id)

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		if fail := failure.FromStorage(err, msgRoomHasBookings); failure.IsFailure(fail) {
			return fail // nolint:wrapcheck
		}

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.removePhoto(ctx, room.PhotoURL)
	s.invalidate(ctx, id)

	return nil
}

// UploadPhoto stores the photo and points the room at it. The previous photo is removed only
// after the room row references the new one.
func (s *serviceImpl) UploadPhoto(ctx context.Context, req dto.UploadPhotoRequest, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.UploadPhoto")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	url, err := s.s3.UploadFile(ctx, model.PhotoDir, req.ObjectName(id), req.ContentType, req.Data)
	if err != nil {
		log.Error().Err(err).Str("room", id).Msg("failed to upload room photo")

		return res, fmt.Errorf("failed to upload room photo: %w", err)
	}

	fields := shared.StampModified(map[string]any{model.FieldPhotoURL: url}, shared.Actor(ctx))

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room photo")
		s.removePhoto(ctx, url)

		return res, fmt.Errorf("failed to update room photo: %w", err)
	}

	s.removePhoto(ctx, room.PhotoURL)
	s.invalidate(ctx, id)

	room.PhotoURL = url
	room.ModifiedBy, _ = fields[constant.FieldModifiedBy].(string)
	room.ModifiedAt, _ = fields[constant.FieldModifiedAt].(time.Time)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Statuses() dto.StatusesResponse {
	return dto.NewStatusesResponse()
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound(msgRoomNotFound) // nolint:wrapcheck
	}

	return room, nil
}

// numberTaken reports whether another room, other than excludeID, already uses number.
func (s *serviceImpl) numberTaken(ctx context.Context, number, excludeID string) (bool, error) {
	filter := gDto.NewFilterGroup(gDto.FilterGroupOperatorAnd, gDto.Filter{
		Field:    model.FieldNumber,
		Value:    number,
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
		log.Error().Err(err).Msg("failed to check room number")

		return false, fmt.Errorf("failed to check room number: %w", err)
	}

	return exist, nil
}

func (s *serviceImpl) removePhoto(ctx context.Context, url string) {
	if url == constant.Empty {
		return
	}

	key := s.s3.ObjectKeyFromURL(url)
	if key == constant.Empty {
		log.Warn().Str("url", url).Msg("room photo is not stored in the configured bucket")

		return
	}

	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete room photo")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheKeyRoomGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete room from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, constant.CacheKeyRoomGetAll)
		shared.InvalidateCaches(c, s.cache, constant.CacheKeyRoomCount)
	}()
}
