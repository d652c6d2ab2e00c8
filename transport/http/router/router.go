package router

import (
	"github.com/go-chi/chi/v5"

	"roomstack/internal/handlers/bill"
	"roomstack/internal/handlers/booking"
	"roomstack/internal/handlers/customer"
	"roomstack/internal/handlers/room"
)

type DomainHandlers struct {
	Room     room.Handler
	Customer customer.Handler
	Booking  booking.Handler
	Bill     bill.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Bill.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
