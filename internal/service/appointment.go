package service

import (
	"context"
	"strconv"

	"github.com/deppfellow/booking/internal/lib/job"
	"github.com/deppfellow/booking/internal/middleware"
	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/repository"
	"github.com/deppfellow/booking/internal/server"
	"github.com/deppfellow/booking/internal/storeerr"
)

// BookingNotifier queues the "new appointment" notification.
type BookingNotifier interface {
	EnqueueAppointmentBooked(ctx context.Context, p job.AppointmentBookedPayload) error
}

// AppointmentService manages booked time slots.
type AppointmentService struct {
	server   *server.Server
	dataset  *repository.Mutator
	notifier BookingNotifier
}

// NewAppointmentService builds the service. notifier may be nil, in which
// case no notifications are sent.
func NewAppointmentService(s *server.Server, dataset *repository.Mutator, notifier BookingNotifier) *AppointmentService {
	return &AppointmentService{server: s, dataset: dataset, notifier: notifier}
}

func (s *AppointmentService) List(ctx context.Context) ([]model.Appointment, error) {
	data, err := s.dataset.Load(ctx)
	if err != nil {
		return nil, err
	}
	return data.Appointments, nil
}

// Create books a slot. A dateTime already held by another appointment is a
// conflict. Once the booking is stored a notification is queued; a failure
// to queue it is logged and does not fail the request.
func (s *AppointmentService) Create(ctx context.Context, payload *model.CreateAppointmentPayload) (*model.Appointment, error) {
	if missing := missingFields(
		field{"service", payload.Service.IsZero()},
		field{"dateTime", payload.DateTime == ""},
		field{"name", payload.Name == ""},
		field{"phone", payload.Phone == ""},
	); len(missing) > 0 {
		return nil, storeerr.NewRequired(entityAppointments, msgMissingFields, missing...)
	}

	var created model.Appointment
	var notification job.AppointmentBookedPayload
	err := s.dataset.Update(ctx, func(data *model.Dataset) error {
		if data.SlotTaken(payload.DateTime, 0) {
			return storeerr.NewConflict(entityAppointments, "dateTime", msgTimeSlotTaken)
		}

		created = model.Appointment{
			ID:       data.NextAppointmentID(),
			Service:  payload.Service,
			DateTime: payload.DateTime,
			Name:     payload.Name,
			Phone:    payload.Phone,
		}
		data.Appointments = append(data.Appointments, created)

		notification = job.AppointmentBookedPayload{
			To:            data.BusinessData.Email,
			BusinessName:  data.BusinessData.Name,
			AppointmentID: created.ID,
			Service:       serviceLabel(data, created.Service),
			DateTime:      created.DateTime,
			CustomerName:  created.Name,
			CustomerPhone: created.Phone,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, notification)

	return &created, nil
}

// Update applies the non-nil fields of payload to appointment id.
func (s *AppointmentService) Update(ctx context.Context, id int, payload *model.UpdateAppointmentPayload) (*model.Appointment, error) {
	var updated model.Appointment
	err := s.dataset.Update(ctx, func(data *model.Dataset) error {
		i := data.AppointmentIndex(id)
		if i == -1 {
			return storeerr.NewNotFound(entityAppointments, msgAppointmentNotFound)
		}

		appt := &data.Appointments[i]
		if payload.DateTime != nil {
			if data.SlotTaken(*payload.DateTime, id) {
				return storeerr.NewConflict(entityAppointments, "dateTime", msgTimeSlotTaken)
			}
			appt.DateTime = *payload.DateTime
		}
		if payload.Service != nil {
			appt.Service = *payload.Service
		}
		if payload.Name != nil {
			appt.Name = *payload.Name
		}
		if payload.Phone != nil {
			appt.Phone = *payload.Phone
		}

		updated = *appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *AppointmentService) Delete(ctx context.Context, id int) error {
	return s.dataset.Update(ctx, func(data *model.Dataset) error {
		i := data.AppointmentIndex(id)
		if i == -1 {
			return storeerr.NewNotFound(entityAppointments, msgAppointmentNotFound)
		}
		data.Appointments = append(data.Appointments[:i], data.Appointments[i+1:]...)
		return nil
	})
}

func (s *AppointmentService) notify(ctx context.Context, p job.AppointmentBookedPayload) {
	if s.notifier == nil {
		return
	}

	logger := middleware.LoggerFromContext(ctx, s.server.Logger)

	if p.To == "" {
		logger.Warn().Int("appointment_id", p.AppointmentID).Msg("business has no email, skipping booking notification")
		return
	}

	if err := s.notifier.EnqueueAppointmentBooked(ctx, p); err != nil {
		logger.Error().
			Err(err).
			Int("appointment_id", p.AppointmentID).
			Msg("failed to enqueue booking notification")
	}
}

// serviceLabel names the booked service for humans: the catalog name when
// ref is the id of a known service, otherwise ref as given.
func serviceLabel(data *model.Dataset, ref model.ServiceRef) string {
	if !ref.IsName() {
		if id, err := strconv.Atoi(ref.String()); err == nil {
			if i := data.ServiceIndex(id); i != -1 {
				return data.Services[i].Name
			}
		}
	}
	return ref.String()
}
