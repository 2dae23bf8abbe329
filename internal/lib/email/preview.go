package email

// PreviewData holds sample values for rendering each template locally.
var PreviewData = map[Template]any{
	TemplateAppointmentBooked: AppointmentBookedData{
		BusinessName:  "Rom Rental Center",
		AppointmentID: 1,
		Service:       "1",
		DateTime:      "2025-01-01T10:00",
		CustomerName:  "Dana",
		CustomerPhone: "050-0000000",
	},
}
