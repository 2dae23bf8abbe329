// Package service holds the booking rules.
//
// Handlers pass it validated payloads; it loads the dataset through the
// repository Mutator, applies the change and lets the Mutator persist it.
// Failures are reported as *storeerr.Error values.
package service

import (
	"github.com/deppfellow/booking/internal/repository"
	"github.com/deppfellow/booking/internal/server"
)

// Collection names used in storeerr entities.
const (
	entityServices     = "services"
	entityAppointments = "appointments"
	entityBusiness     = "businessData"
)

type Services struct {
	Catalog     *CatalogService
	Appointment *AppointmentService
	Business    *BusinessService
	Admin       *AdminService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier BookingNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Catalog:     NewCatalogService(s, repos.Dataset),
		Appointment: NewAppointmentService(s, repos.Dataset, notifier),
		Business:    NewBusinessService(s, repos.Dataset),
		Admin:       NewAdminService(s, repos.Dataset),
	}, nil
}
