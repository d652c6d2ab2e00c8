//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"roomstack/config"
	"roomstack/infras/kafka"
	"roomstack/infras/otel"
	"roomstack/infras/postgres"
	"roomstack/infras/redis"
	"roomstack/infras/s3"
	"roomstack/shared/cache"
	"roomstack/transport/http"
	"roomstack/transport/http/middleware"
	"roomstack/transport/http/router"

	billRepository "roomstack/internal/domains/bill/repository"
	billService "roomstack/internal/domains/bill/service"
	bookingRepository "roomstack/internal/domains/booking/repository"
	bookingService "roomstack/internal/domains/booking/service"
	customerRepository "roomstack/internal/domains/customer/repository"
	customerService "roomstack/internal/domains/customer/service"
	roomRepository "roomstack/internal/domains/room/repository"
	roomService "roomstack/internal/domains/room/service"

	billHandler "roomstack/internal/handlers/bill"
	bookingHandler "roomstack/internal/handlers/booking"
	customerHandler "roomstack/internal/handlers/customer"
	roomHandler "roomstack/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var billDomain = wire.NewSet(
	billRepository.New,
	billService.New,
)

var domains = wire.NewSet(
	roomDomain,
	customerDomain,
	bookingDomain,
	billDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	customerHandler.New,
	bookingHandler.New,
	billHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
