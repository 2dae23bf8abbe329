package handler

import (
	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/server"
	"github.com/deppfellow/booking/internal/service"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves /login and /admin/password. Neither issues a session;
// a successful login only confirms the credentials.
type AdminHandler struct {
	Handler
	admin *service.AdminService
}

func NewAdminHandler(s *server.Server, admin *service.AdminService) *AdminHandler {
	return &AdminHandler{
		Handler: NewHandler(s),
		admin:   admin,
	}
}

func (h *AdminHandler) Login(c echo.Context, payload *model.LoginPayload) (*model.LoginResponse, error) {
	user, err := h.admin.Login(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{OK: true, User: *user}, nil
}

func (h *AdminHandler) ChangePassword(c echo.Context, payload *model.ChangePasswordPayload) (*model.OKResponse, error) {
	if err := h.admin.ChangePassword(c.Request().Context(), payload); err != nil {
		return nil, err
	}
	return &model.OKResponse{OK: true}, nil
}
