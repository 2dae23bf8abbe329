// Package model defines the records persisted in the dataset document and
// the request/response payloads exchanged over HTTP.
//
// The whole dataset is a single JSON object:
//
//	{ "services": [...], "appointments": [...], "businessData": {...}, "admin": {...} }
//
// It is always read and written as one unit.
package model

// Service is a bookable offering of the business (a room, a hall, ...).
type Service struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

// Appointment is a booking of one time slot.
//
// DateTime is compared as an opaque string; two appointments never share
// the exact same value.
type Appointment struct {
	ID       int        `json:"id"`
	Service  ServiceRef `json:"service"`
	DateTime string     `json:"dateTime"`
	Name     string     `json:"name"`
	Phone    string     `json:"phone"`
}

// BusinessProfile holds the contact details of the business.
type BusinessProfile struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Admin is the single administrator account.
//
// The password is stored and compared as plain text.
type Admin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Dataset is the whole persisted document.
type Dataset struct {
	Services     []Service       `json:"services"`
	Appointments []Appointment   `json:"appointments"`
	BusinessData BusinessProfile `json:"businessData"`
	Admin        Admin           `json:"admin"`
}

// Normalize replaces nil collections with empty ones so they encode as [].
func (d *Dataset) Normalize() {
	if d.Services == nil {
		d.Services = []Service{}
	}
	if d.Appointments == nil {
		d.Appointments = []Appointment{}
	}
}

// NextServiceID returns max(service id)+1, or 1 when there are no services.
func (d *Dataset) NextServiceID() int {
	next := 1
	for _, s := range d.Services {
		if s.ID >= next {
			next = s.ID + 1
		}
	}
	return next
}

// NextAppointmentID returns max(appointment id)+1, or 1 when there are none.
func (d *Dataset) NextAppointmentID() int {
	next := 1
	for _, a := range d.Appointments {
		if a.ID >= next {
			next = a.ID + 1
		}
	}
	return next
}

// ServiceIndex returns the position of the service with the given id, or -1.
func (d *Dataset) ServiceIndex(id int) int {
	for i, s := range d.Services {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// AppointmentIndex returns the position of the appointment with the given id, or -1.
func (d *Dataset) AppointmentIndex(id int) int {
	for i, a := range d.Appointments {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// ServiceNameTaken reports whether a service other than exceptID already uses name.
// Pass 0 as exceptID to check against every service.
func (d *Dataset) ServiceNameTaken(name string, exceptID int) bool {
	for _, s := range d.Services {
		if s.Name == name && s.ID != exceptID {
			return true
		}
	}
	return false
}

// SlotTaken reports whether an appointment other than exceptID holds dateTime.
// Pass 0 as exceptID to check against every appointment.
func (d *Dataset) SlotTaken(dateTime string, exceptID int) bool {
	for _, a := range d.Appointments {
		if a.DateTime == dateTime && a.ID != exceptID {
			return true
		}
	}
	return false
}
