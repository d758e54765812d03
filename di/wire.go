//go:build wireinject
// +build wireinject

package di

import (
	"bizdesk/config"
	"bizdesk/infras/jwt"
	"bizdesk/infras/kafka"
	"bizdesk/infras/otel"
	"bizdesk/infras/postgres"
	"bizdesk/infras/redis"
	"bizdesk/permissions"
	"bizdesk/shared/cache"
	"bizdesk/shared/clock"
	"bizdesk/transport/http"
	"bizdesk/transport/http/middleware"
	"bizdesk/transport/http/router"

	catalogHandler "bizdesk/internal/handlers/catalog"
	customerHandler "bizdesk/internal/handlers/customer"
	employeeHandler "bizdesk/internal/handlers/employee"
	scheduleHandler "bizdesk/internal/handlers/schedule"

	catalogRepository "bizdesk/internal/domains/catalog/repository"
	catalogService "bizdesk/internal/domains/catalog/service"
	customerRepository "bizdesk/internal/domains/customer/repository"
	customerService "bizdesk/internal/domains/customer/service"
	employeeRepository "bizdesk/internal/domains/employee/repository"
	employeeService "bizdesk/internal/domains/employee/service"
	scheduleEvent "bizdesk/internal/domains/schedule/event"
	scheduleRepository "bizdesk/internal/domains/schedule/repository"
	scheduleService "bizdesk/internal/domains/schedule/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.New,
)

var catalogDomain = wire.NewSet(
	catalogRepository.New,
	catalogService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var employeeDomain = wire.NewSet(
	employeeRepository.New,
	employeeService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleEvent.NewPublisher,
	scheduleService.New,
)

var domains = wire.NewSet(
	catalogDomain,
	customerDomain,
	employeeDomain,
	scheduleDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	catalogHandler.New,
	customerHandler.New,
	employeeHandler.New,
	scheduleHandler.New,
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
