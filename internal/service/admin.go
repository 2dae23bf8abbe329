package service

import (
	"context"

	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/repository"
	"github.com/deppfellow/booking/internal/server"
	"github.com/deppfellow/booking/internal/storeerr"
)

// AdminService checks and changes the single admin's credentials.
// Passwords are stored and compared as plain text.
type AdminService struct {
	server  *server.Server
	dataset *repository.Mutator
}

func NewAdminService(s *server.Server, dataset *repository.Mutator) *AdminService {
	return &AdminService{server: s, dataset: dataset}
}

// Login succeeds when password is the stored password sent as a string and
// name is either empty or the stored username.
func (s *AdminService) Login(ctx context.Context, payload *model.LoginPayload) (*model.AdminUser, error) {
	data, err := s.dataset.Load(ctx)
	if err != nil {
		return nil, err
	}

	admin := data.Admin
	nameOK := payload.Name.IsZero() || payload.Name.Matches(admin.Username)
	if !nameOK || !payload.Password.Matches(admin.Password) {
		return nil, storeerr.NewUnauthorized(msgInvalidCredentials)
	}

	return &model.AdminUser{Role: model.RoleAdmin, Name: admin.Username}, nil
}

// ChangePassword replaces the password when oldPassword matches. The new
// password is stored in its text form.
func (s *AdminService) ChangePassword(ctx context.Context, payload *model.ChangePasswordPayload) error {
	if missing := missingFields(
		field{"oldPassword", payload.OldPassword.IsZero()},
		field{"newPassword", payload.NewPassword.IsZero()},
	); len(missing) > 0 {
		return storeerr.NewRequired("admin", msgPasswordsRequired, missing...)
	}

	return s.dataset.Update(ctx, func(data *model.Dataset) error {
		if !payload.OldPassword.Matches(data.Admin.Password) {
			return storeerr.NewUnauthorized(msgOldPasswordIncorrect)
		}
		data.Admin.Password = payload.NewPassword.String()
		return nil
	})
}
