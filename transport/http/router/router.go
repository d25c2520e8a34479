package router

import (
	"hotelier/internal/handlers/archive"
	"hotelier/internal/handlers/auth"
	"hotelier/internal/handlers/booking"
	"hotelier/internal/handlers/calendar"
	"hotelier/internal/handlers/catalog"
	"hotelier/internal/handlers/coupon"
	"hotelier/internal/handlers/guest"
	"hotelier/internal/handlers/occupancy"
	"hotelier/internal/handlers/pricing"
	"hotelier/internal/handlers/resource"
	"hotelier/internal/handlers/seller"
	"hotelier/internal/handlers/settings"
	"hotelier/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	User      user.Handler
	Resource  resource.Handler
	Guest     guest.Handler
	Catalog   catalog.Handler
	Booking   booking.Handler
	Occupancy occupancy.Handler
	Calendar  calendar.Handler
	Archive   archive.Handler
	Pricing   pricing.Handler
	Coupon    coupon.Handler
	Seller    seller.Handler
	Settings  settings.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Resource.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Occupancy.Router(routerGroup)
		r.DomainHandlers.Calendar.Router(routerGroup)
		r.DomainHandlers.Archive.Router(routerGroup)
		r.DomainHandlers.Pricing.Router(routerGroup)
		r.DomainHandlers.Coupon.Router(routerGroup)
		r.DomainHandlers.Seller.Router(routerGroup)
		r.DomainHandlers.Settings.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
