package model

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every payload. It is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// A ServiceRef validates as its underlying value so `required` rejects
	// null, "" and 0 the same way it does for plain fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		ref, ok := field.Interface().(ServiceRef)
		if !ok || ref.IsZero() {
			return nil
		}
		return ref.String()
	}, ServiceRef{})

	// Likewise a Credential: `required` rejects the values that count as empty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		cred, ok := field.Interface().(Credential)
		if !ok || cred.IsZero() {
			return nil
		}
		return cred.String()
	}, Credential{})

	return v
}

// ----------------------------------------------------------------------------
// Shared

// EmptyPayload is used by routes that take no input.
type EmptyPayload struct{}

func (p *EmptyPayload) Validate() error { return nil }

// IDPayload carries the :id path parameter. The raw value is kept as a string
// so a malformed id surfaces as "not found" rather than a bind error.
type IDPayload struct {
	ID string `param:"id" json:"-"`
}

func (p *IDPayload) Validate() error { return nil }

// OKResponse is the `{ "ok": true }` acknowledgement.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ----------------------------------------------------------------------------
// Services

type CreateServicePayload struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Cost        Amount `json:"cost" validate:"required,gte=0"`
}

func (p *CreateServicePayload) Validate() error {
	return validate.Struct(p)
}

// UpdateServicePayload is a partial update. A nil field (absent or null in
// the request) leaves the stored value unchanged.
type UpdateServicePayload struct {
	ID          string  `param:"id" json:"-"`
	Name        *string `json:"name" validate:"omitnil,min=1"`
	Description *string `json:"description" validate:"omitnil,min=1"`
	Cost        *Amount `json:"cost" validate:"omitnil,gte=0"`
}

func (p *UpdateServicePayload) Validate() error {
	return validate.Struct(p)
}

// ----------------------------------------------------------------------------
// Appointments

type CreateAppointmentPayload struct {
	Service  ServiceRef `json:"service" validate:"required"`
	DateTime string     `json:"dateTime" validate:"required"`
	Name     string     `json:"name" validate:"required"`
	Phone    string     `json:"phone" validate:"required"`
}

func (p *CreateAppointmentPayload) Validate() error {
	return validate.Struct(p)
}

// UpdateAppointmentPayload is a partial update. A nil field (absent or null
// in the request) leaves the stored value unchanged; an empty string is applied.
type UpdateAppointmentPayload struct {
	ID       string      `param:"id" json:"-"`
	Service  *ServiceRef `json:"service"`
	DateTime *string     `json:"dateTime"`
	Name     *string     `json:"name"`
	Phone    *string     `json:"phone"`
}

func (p *UpdateAppointmentPayload) Validate() error {
	return nil
}

// ----------------------------------------------------------------------------
// Business profile

type BusinessProfilePayload struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required"`
}

func (p *BusinessProfilePayload) Validate() error {
	return validate.Struct(p)
}

type BusinessProfileResponse struct {
	OK           bool            `json:"ok"`
	BusinessData BusinessProfile `json:"businessData"`
}

// ----------------------------------------------------------------------------
// Admin

// RoleAdmin is the only role the backend knows about.
const RoleAdmin = "admin"

// LoginPayload has no validation rules: a missing or non-string password is
// a failed login (401), not a malformed request.
type LoginPayload struct {
	Name     Credential `json:"name"`
	Password Credential `json:"password"`
}

func (p *LoginPayload) Validate() error { return nil }

type AdminUser struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

type LoginResponse struct {
	OK   bool      `json:"ok"`
	User AdminUser `json:"user"`
}

// ChangePasswordPayload accepts any scalar. The new password is stored as
// its text form, so 5678 becomes "5678".
type ChangePasswordPayload struct {
	OldPassword Credential `json:"oldPassword" validate:"required"`
	NewPassword Credential `json:"newPassword" validate:"required"`
}

func (p *ChangePasswordPayload) Validate() error {
	return validate.Struct(p)
}

// ValidationMessage replaces the generic top-level validation message.
func (p *ChangePasswordPayload) ValidationMessage() string {
	return "oldPassword and newPassword are required"
}
