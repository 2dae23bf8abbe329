package router

import (
	"net/http"

	"github.com/deppfellow/booking/internal/handler"
	"github.com/deppfellow/booking/internal/middleware"
	"github.com/deppfellow/booking/internal/model"
	"github.com/labstack/echo/v4"
)

func registerBookingRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	catalog := h.Catalog
	r.GET("/services", handler.Handle(catalog.Handler, catalog.ListServices, http.StatusOK, &model.EmptyPayload{}))
	r.POST("/service", handler.Handle(catalog.Handler, catalog.CreateService, http.StatusCreated, &model.CreateServicePayload{}))
	r.PUT("/service/:id", handler.Handle(catalog.Handler, catalog.UpdateService, http.StatusOK, &model.UpdateServicePayload{}))
	r.DELETE("/service/:id", handler.HandleNoContent(catalog.Handler, catalog.DeleteService, http.StatusNoContent, &model.IDPayload{}))

	appointments := h.Appointment
	r.GET("/appointments", handler.Handle(appointments.Handler, appointments.ListAppointments, http.StatusOK, &model.EmptyPayload{}))
	r.POST("/appointment", handler.Handle(appointments.Handler, appointments.CreateAppointment, http.StatusCreated, &model.CreateAppointmentPayload{}))
	r.PUT("/appointment/:id", handler.Handle(appointments.Handler, appointments.UpdateAppointment, http.StatusOK, &model.UpdateAppointmentPayload{}))
	r.DELETE("/appointment/:id", handler.HandleNoContent(appointments.Handler, appointments.DeleteAppointment, http.StatusNoContent, &model.IDPayload{}))

	business := h.Business
	r.GET("/businessData", handler.Handle(business.Handler, business.GetBusinessData, http.StatusOK, &model.EmptyPayload{}))
	r.POST("/businessData", handler.Handle(business.Handler, business.ReplaceBusinessData, http.StatusOK, &model.BusinessProfilePayload{}))

	// Credential checks get their own limiter each.
	admin := h.Admin
	r.POST("/login", handler.Handle(admin.Handler, admin.Login, http.StatusOK, &model.LoginPayload{}), mw.RateLimit.Limit())
	r.POST("/admin/password", handler.Handle(admin.Handler, admin.ChangePassword, http.StatusOK, &model.ChangePasswordPayload{}), mw.RateLimit.Limit())
}
