package email

import "fmt"

// AppointmentBookedData fills the appointment_booked template.
type AppointmentBookedData struct {
	BusinessName  string
	AppointmentID int
	Service       string
	DateTime      string
	CustomerName  string
	CustomerPhone string
}

// SendAppointmentBookedEmail tells the business about a new appointment.
func (c *Client) SendAppointmentBookedEmail(to string, data AppointmentBookedData) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("New booking: %s", data.DateTime),
		TemplateAppointmentBooked,
		data,
	)
}
