package router

import (
	"bizdesk/internal/handlers/catalog"
	"bizdesk/internal/handlers/customer"
	"bizdesk/internal/handlers/employee"
	"bizdesk/internal/handlers/schedule"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Catalog  catalog.Handler
	Customer customer.Handler
	Employee employee.Handler
	Schedule schedule.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Employee.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
