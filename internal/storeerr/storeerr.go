// Package storeerr classifies failures of the dataset layer.
//
// Services report what went wrong (unknown id, duplicate name, booked slot,
// unreadable document, ...) as an *Error. HandleError turns those, and raw
// driver errors from the storage backends, into errs.HTTPError values.
package storeerr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Code is the category of a dataset failure.
type Code string

const (
	Other           Code = "other"
	NotFound        Code = "not_found"
	UniqueViolation Code = "unique_violation"
	Conflict        Code = "conflict"
	Required        Code = "required"
	Invalid         Code = "invalid"
	Unauthorized    Code = "unauthorized"
	Unavailable     Code = "unavailable"
)

// Error is a classified dataset failure.
//
// Entity is the collection name ("services", "appointments", ...); Fields
// names the offending fields when there are any. Message, when set, is sent
// to clients unchanged.
type Error struct {
	Code    Code
	Entity  string
	Fields  []string
	Message string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.describe(), e.cause)
	}
	return e.describe()
}

func (e *Error) describe() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Entity, strings.ReplaceAll(string(e.Code), "_", " "))
}

func (e *Error) Unwrap() error {
	return e.cause
}

// ErrCode reports the Code of err, or Other when err is not an *Error.
func ErrCode(err error) Code {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Code
	}
	return Other
}

// NewNotFound reports an unknown id.
func NewNotFound(entity, message string) *Error {
	return &Error{Code: NotFound, Entity: entity, Fields: []string{"id"}, Message: message}
}

// NewUniqueViolation reports a value that must be unique and is already used.
func NewUniqueViolation(entity, field, message string) *Error {
	return &Error{Code: UniqueViolation, Entity: entity, Fields: []string{field}, Message: message}
}

// NewConflict reports a resource that is already held by another record.
// Unlike UniqueViolation it maps to 409.
func NewConflict(entity, field, message string) *Error {
	return &Error{Code: Conflict, Entity: entity, Fields: []string{field}, Message: message}
}

// NewRequired reports missing input.
func NewRequired(entity, message string, fields ...string) *Error {
	return &Error{Code: Required, Entity: entity, Fields: fields, Message: message}
}

// NewInvalid reports input that is present but malformed.
func NewInvalid(entity, field, message string) *Error {
	return &Error{Code: Invalid, Entity: entity, Fields: []string{field}, Message: message}
}

// NewUnauthorized reports rejected credentials.
func NewUnauthorized(message string) *Error {
	return &Error{Code: Unauthorized, Entity: "admin", Message: message}
}

// NewUnavailable wraps a failure to read or write the dataset document.
func NewUnavailable(cause error, message string) *Error {
	return &Error{Code: Unavailable, Entity: "dataset", Message: message, cause: cause}
}
