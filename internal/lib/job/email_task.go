package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskAppointmentBooked notifies the business about a new appointment.
	TaskAppointmentBooked = "appointment:booked"
)

// AppointmentBookedPayload is stored in Redis with the task.
type AppointmentBookedPayload struct {
	To            string `json:"to"`
	BusinessName  string `json:"business_name"`
	AppointmentID int    `json:"appointment_id"`
	Service       string `json:"service"`
	DateTime      string `json:"date_time"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// NewAppointmentBookedTask builds the notification task. It is retried three
// times and given 30 seconds per attempt.
func NewAppointmentBookedTask(p AppointmentBookedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskAppointmentBooked,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
