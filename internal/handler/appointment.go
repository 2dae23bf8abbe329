package handler

import (
	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/server"
	"github.com/deppfellow/booking/internal/service"
	"github.com/labstack/echo/v4"
)

// AppointmentHandler serves /appointments and /appointment.
type AppointmentHandler struct {
	Handler
	appointments *service.AppointmentService
}

func NewAppointmentHandler(s *server.Server, appointments *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		Handler:      NewHandler(s),
		appointments: appointments,
	}
}

func (h *AppointmentHandler) ListAppointments(c echo.Context, _ *model.EmptyPayload) ([]model.Appointment, error) {
	return h.appointments.List(c.Request().Context())
}

func (h *AppointmentHandler) CreateAppointment(c echo.Context, payload *model.CreateAppointmentPayload) (*model.Appointment, error) {
	return h.appointments.Create(c.Request().Context(), payload)
}

func (h *AppointmentHandler) UpdateAppointment(c echo.Context, payload *model.UpdateAppointmentPayload) (*model.Appointment, error) {
	id, err := parseID(payload.ID, "appointments", "Appointment not found")
	if err != nil {
		return nil, err
	}
	return h.appointments.Update(c.Request().Context(), id, payload)
}

func (h *AppointmentHandler) DeleteAppointment(c echo.Context, payload *model.IDPayload) error {
	id, err := parseID(payload.ID, "appointments", "Appointment not found")
	if err != nil {
		return err
	}
	return h.appointments.Delete(c.Request().Context(), id)
}
