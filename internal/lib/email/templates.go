package email

// Template names a file under templates/ without its extension.
type Template string

const (
	// TemplateAppointmentBooked is sent to the business when a slot is booked.
	TemplateAppointmentBooked Template = "appointment_booked"
)
