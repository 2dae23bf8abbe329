package handler

import (
	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/server"
	"github.com/deppfellow/booking/internal/service"
	"github.com/labstack/echo/v4"
)

// CatalogHandler serves /services and /service.
type CatalogHandler struct {
	Handler
	catalog *service.CatalogService
}

func NewCatalogHandler(s *server.Server, catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		Handler: NewHandler(s),
		catalog: catalog,
	}
}

func (h *CatalogHandler) ListServices(c echo.Context, _ *model.EmptyPayload) ([]model.Service, error) {
	return h.catalog.List(c.Request().Context())
}

func (h *CatalogHandler) CreateService(c echo.Context, payload *model.CreateServicePayload) (*model.Service, error) {
	return h.catalog.Create(c.Request().Context(), payload)
}

func (h *CatalogHandler) UpdateService(c echo.Context, payload *model.UpdateServicePayload) (*model.Service, error) {
	id, err := parseID(payload.ID, "services", "Service not found")
	if err != nil {
		return nil, err
	}
	return h.catalog.Update(c.Request().Context(), id, payload)
}

func (h *CatalogHandler) DeleteService(c echo.Context, payload *model.IDPayload) error {
	id, err := parseID(payload.ID, "services", "Service not found")
	if err != nil {
		return err
	}
	return h.catalog.Delete(c.Request().Context(), id)
}
