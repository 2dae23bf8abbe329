// Package handler is the HTTP layer: it binds and validates requests through
// the generic Handle pipeline, calls the service layer and writes responses.
package handler

import (
	"github.com/deppfellow/booking/internal/repository"
	"github.com/deppfellow/booking/internal/server"
	"github.com/deppfellow/booking/internal/service"
)

type Handlers struct {
	Health      *HealthHandler
	OpenAPI     *OpenAPIHandler
	Catalog     *CatalogHandler
	Appointment *AppointmentHandler
	Business    *BusinessHandler
	Admin       *AdminHandler
}

func NewHandlers(s *server.Server, repos *repository.Repositories, services *service.Services) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(s, repos.Dataset),
		OpenAPI:     NewOpenAPIHandler(s),
		Catalog:     NewCatalogHandler(s, services.Catalog),
		Appointment: NewAppointmentHandler(s, services.Appointment),
		Business:    NewBusinessHandler(s, services.Business),
		Admin:       NewAdminHandler(s, services.Admin),
	}
}
