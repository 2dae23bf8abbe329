package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/booking/internal/lib/email"
	"github.com/hibiken/asynq"
)

// notifier is what the appointment handler needs from the email client.
type notifier interface {
	SendAppointmentBookedEmail(to string, data email.AppointmentBookedData) error
}

func (j *JobService) handleAppointmentBookedTask(ctx context.Context, t *asynq.Task) error {
	var p AppointmentBookedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal appointment booked payload: %w", err)
	}

	j.logger.Info().
		Str("type", TaskAppointmentBooked).
		Int("appointment_id", p.AppointmentID).
		Str("to", p.To).
		Msg("Processing booking notification")

	err := j.emails.SendAppointmentBookedEmail(p.To, email.AppointmentBookedData{
		BusinessName:  p.BusinessName,
		AppointmentID: p.AppointmentID,
		Service:       p.Service,
		DateTime:      p.DateTime,
		CustomerName:  p.CustomerName,
		CustomerPhone: p.CustomerPhone,
	})
	if err != nil {
		j.logger.Error().
			Str("type", TaskAppointmentBooked).
			Int("appointment_id", p.AppointmentID).
			Err(err).
			Msg("Failed to send booking notification")
		return err
	}

	j.logger.Info().
		Str("type", TaskAppointmentBooked).
		Int("appointment_id", p.AppointmentID).
		Msg("Sent booking notification")

	return nil
}
