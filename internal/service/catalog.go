package service

import (
	"context"

	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/repository"
	"github.com/deppfellow/booking/internal/server"
	"github.com/deppfellow/booking/internal/storeerr"
)

const (
	msgMissingFields        = "Missing fields"
	msgServiceNameTaken     = "Service with this name already exists"
	msgServiceNotFound      = "Service not found"
	msgNegativeCost         = "Cost must not be negative"
	msgAppointmentNotFound  = "Appointment not found"
	msgTimeSlotTaken        = "Time slot already taken"
	msgInvalidCredentials   = "Invalid credentials"
	msgOldPasswordIncorrect = "Old password incorrect"
	msgPasswordsRequired    = "oldPassword and newPassword are required"
)

// CatalogService manages the services the business offers.
type CatalogService struct {
	server  *server.Server
	dataset *repository.Mutator
}

func NewCatalogService(s *server.Server, dataset *repository.Mutator) *CatalogService {
	return &CatalogService{server: s, dataset: dataset}
}

// List returns every service in insertion order.
func (s *CatalogService) List(ctx context.Context) ([]model.Service, error) {
	data, err := s.dataset.Load(ctx)
	if err != nil {
		return nil, err
	}
	return data.Services, nil
}

// Create adds a service under the next free id. Every field must be set and
// the cost must be positive; names are unique.
func (s *CatalogService) Create(ctx context.Context, payload *model.CreateServicePayload) (*model.Service, error) {
	if missing := missingFields(
		field{"name", payload.Name == ""},
		field{"description", payload.Description == ""},
		field{"cost", payload.Cost == 0},
	); len(missing) > 0 {
		return nil, storeerr.NewRequired(entityServices, msgMissingFields, missing...)
	}
	if payload.Cost < 0 {
		return nil, storeerr.NewInvalid(entityServices, "cost", msgNegativeCost)
	}

	var created model.Service
	err := s.dataset.Update(ctx, func(data *model.Dataset) error {
		if data.ServiceNameTaken(payload.Name, 0) {
			return storeerr.NewUniqueViolation(entityServices, "name", msgServiceNameTaken)
		}

		created = model.Service{
			ID:          data.NextServiceID(),
			Name:        payload.Name,
			Description: payload.Description,
			Cost:        payload.Cost.Float64(),
		}
		data.Services = append(data.Services, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Update applies the non-nil fields of payload to service id.
func (s *CatalogService) Update(ctx context.Context, id int, payload *model.UpdateServicePayload) (*model.Service, error) {
	if payload.Cost != nil && *payload.Cost < 0 {
		return nil, storeerr.NewInvalid(entityServices, "cost", msgNegativeCost)
	}

	var updated model.Service
	err := s.dataset.Update(ctx, func(data *model.Dataset) error {
		i := data.ServiceIndex(id)
		if i == -1 {
			return storeerr.NewNotFound(entityServices, msgServiceNotFound)
		}

		if payload.Name != nil && *payload.Name != "" && data.ServiceNameTaken(*payload.Name, id) {
			return storeerr.NewUniqueViolation(entityServices, "name", msgServiceNameTaken)
		}

		svc := &data.Services[i]
		if payload.Name != nil {
			svc.Name = *payload.Name
		}
		if payload.Description != nil {
			svc.Description = *payload.Description
		}
		if payload.Cost != nil {
			svc.Cost = payload.Cost.Float64()
		}

		updated = *svc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// Delete removes service id. Appointments that reference it are kept.
func (s *CatalogService) Delete(ctx context.Context, id int) error {
	return s.dataset.Update(ctx, func(data *model.Dataset) error {
		i := data.ServiceIndex(id)
		if i == -1 {
			return storeerr.NewNotFound(entityServices, msgServiceNotFound)
		}
		data.Services = append(data.Services[:i], data.Services[i+1:]...)
		return nil
	})
}

type field struct {
	name    string
	missing bool
}

func missingFields(fields ...field) []string {
	var missing []string
	for _, f := range fields {
		if f.missing {
			missing = append(missing, f.name)
		}
	}
	return missing
}
