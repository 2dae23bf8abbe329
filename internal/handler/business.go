package handler

import (
	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/server"
	"github.com/deppfellow/booking/internal/service"
	"github.com/labstack/echo/v4"
)

type BusinessHandler struct {
	Handler
	business *service.BusinessService
}

func NewBusinessHandler(s *server.Server, business *service.BusinessService) *BusinessHandler {
	return &BusinessHandler{
		Handler:  NewHandler(s),
		business: business,
	}
}

func (h *BusinessHandler) GetBusinessData(c echo.Context, _ *model.EmptyPayload) (*model.BusinessProfile, error) {
	return h.business.Get(c.Request().Context())
}

func (h *BusinessHandler) ReplaceBusinessData(c echo.Context, payload *model.BusinessProfilePayload) (*model.BusinessProfileResponse, error) {
	profile, err := h.business.Replace(c.Request().Context(), payload)
	if err != nil {
		return nil, err
	}
	return &model.BusinessProfileResponse{OK: true, BusinessData: *profile}, nil
}
