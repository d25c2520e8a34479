//go:build wireinject
// +build wireinject

package di

import (
	"hotelier/config"
	"hotelier/infras/jwt"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/postgres"
	"hotelier/infras/redis"
	"hotelier/infras/s3"
	"hotelier/permissions"
	"hotelier/shared/cache"
	"hotelier/transport/http"
	"hotelier/transport/http/middleware"
	"hotelier/transport/http/router"

	"github.com/google/wire"

	archiveRepository "hotelier/internal/domains/archive/repository"
	archiveService "hotelier/internal/domains/archive/service"
	authService "hotelier/internal/domains/auth/service"
	catalogService "hotelier/internal/domains/catalog/service"
	bookingRepository "hotelier/internal/domains/booking/repository"
	bookingService "hotelier/internal/domains/booking/service"
	calendarService "hotelier/internal/domains/calendar/service"
	checkoutService "hotelier/internal/domains/checkout/service"
	couponRepository "hotelier/internal/domains/coupon/repository"
	couponService "hotelier/internal/domains/coupon/service"
	guestRepository "hotelier/internal/domains/guest/repository"
	guestService "hotelier/internal/domains/guest/service"
	occupancyRepository "hotelier/internal/domains/occupancy/repository"
	occupancyService "hotelier/internal/domains/occupancy/service"
	paymentRepository "hotelier/internal/domains/payment/repository"
	paymentService "hotelier/internal/domains/payment/service"
	pricingRepository "hotelier/internal/domains/pricing/repository"
	pricingService "hotelier/internal/domains/pricing/service"
	resourceRepository "hotelier/internal/domains/resource/repository"
	resourceService "hotelier/internal/domains/resource/service"
	sellerRepository "hotelier/internal/domains/seller/repository"
	sellerService "hotelier/internal/domains/seller/service"
	settingsRepository "hotelier/internal/domains/settings/repository"
	settingsService "hotelier/internal/domains/settings/service"
	userRepository "hotelier/internal/domains/user/repository"
	userService "hotelier/internal/domains/user/service"

	archiveHandler "hotelier/internal/handlers/archive"
	authHandler "hotelier/internal/handlers/auth"
	bookingHandler "hotelier/internal/handlers/booking"
	calendarHandler "hotelier/internal/handlers/calendar"
	catalogHandler "hotelier/internal/handlers/catalog"
	couponHandler "hotelier/internal/handlers/coupon"
	guestHandler "hotelier/internal/handlers/guest"
	occupancyHandler "hotelier/internal/handlers/occupancy"
	pricingHandler "hotelier/internal/handlers/pricing"
	resourceHandler "hotelier/internal/handlers/resource"
	sellerHandler "hotelier/internal/handlers/seller"
	settingsHandler "hotelier/internal/handlers/settings"
	userHandler "hotelier/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Bind(new(middleware.TokenRevocation), new(authService.Auth)),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var inventoryDomain = wire.NewSet(
	resourceRepository.NewRoom,
	resourceRepository.NewHall,
	resourceRepository.NewRegistry,
	resourceService.New,
	guestRepository.New,
	guestService.New,
	catalogService.NewRegistry,
)

var occupancyDomain = wire.NewSet(
	occupancyRepository.NewBookedRoom,
	occupancyRepository.NewBookedHall,
	occupancyRepository.NewRegistry,
	occupancyService.NewAssignment,
	occupancyService.NewAvailability,
	calendarService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	paymentRepository.New,
	paymentService.New,
	checkoutService.New,
	archiveRepository.New,
	archiveRepository.NewEntry,
	archiveService.New,
)

var commercialDomain = wire.NewSet(
	pricingRepository.New,
	pricingService.New,
	couponRepository.New,
	couponService.New,
	sellerRepository.New,
	sellerService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	settingsRepository.New,
	settingsService.New,
	authService.New,
)

var domains = wire.NewSet(
	inventoryDomain,
	occupancyDomain,
	bookingDomain,
	commercialDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	resourceHandler.New,
	guestHandler.New,
	catalogHandler.New,
	bookingHandler.New,
	occupancyHandler.New,
	calendarHandler.New,
	archiveHandler.New,
	pricingHandler.New,
	couponHandler.New,
	sellerHandler.New,
	settingsHandler.New,
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
