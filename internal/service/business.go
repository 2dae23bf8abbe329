package service

import (
	"context"

	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/repository"
	"github.com/deppfellow/booking/internal/server"
	"github.com/deppfellow/booking/internal/storeerr"
)

// BusinessService reads and replaces the business profile.
type BusinessService struct {
	server  *server.Server
	dataset *repository.Mutator
}

func NewBusinessService(s *server.Server, dataset *repository.Mutator) *BusinessService {
	return &BusinessService{server: s, dataset: dataset}
}

func (s *BusinessService) Get(ctx context.Context) (*model.BusinessProfile, error) {
	data, err := s.dataset.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &data.BusinessData, nil
}

// Replace overwrites the whole profile; all four fields are required.
func (s *BusinessService) Replace(ctx context.Context, payload *model.BusinessProfilePayload) (*model.BusinessProfile, error) {
	if missing := missingFields(
		field{"name", payload.Name == ""},
		field{"address", payload.Address == ""},
		field{"phone", payload.Phone == ""},
		field{"email", payload.Email == ""},
	); len(missing) > 0 {
		return nil, storeerr.NewRequired(entityBusiness, msgMissingFields, missing...)
	}

	profile := model.BusinessProfile{
		Name:    payload.Name,
		Address: payload.Address,
		Phone:   payload.Phone,
		Email:   payload.Email,
	}

	err := s.dataset.Update(ctx, func(data *model.Dataset) error {
		data.BusinessData = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
