// Package validation binds request payloads and turns validation failures
// into errs.HTTPError values with per-field details.
package validation

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/booking/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	// MessageMissingFields is used when every failing rule is `required`.
	MessageMissingFields = "Missing fields"
	// MessageValidationFailed is used for any other rule violation.
	MessageValidationFailed = "Validation failed"
)

// Validatable is implemented by every request payload.
type Validatable interface {
	Validate() error
}

// MessageOverrider lets a payload choose the top-level message sent when
// its validation fails.
type MessageOverrider interface {
	ValidationMessage() string
}

// CustomValidationError is a rule that struct tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors may be returned from Validate.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return MessageValidationFailed
}

// BindAndValidate fills payload from path parameters and the request body,
// then validates it. Both failures come back as 400 errors.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(bindErrorMessage(err), true, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		if overrider, ok := payload.(MessageOverrider); ok {
			msg = overrider.ValidationMessage()
		}
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindErrorMessage extracts the client-facing message from a bind failure.
// Errors returned by a payload's UnmarshalJSON surface here verbatim.
func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
		return http.StatusText(echoErr.Code)
	}
	return "Invalid request body"
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return MessageValidationFailed, fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return MessageValidationFailed, []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	onlyRequired := true
	for _, err := range validationErrors {
		if err.Tag() != "required" {
			onlyRequired = false
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: jsonFieldName(err.Field()),
			Error: describe(err),
		})
	}

	if onlyRequired {
		return MessageMissingFields, fieldErrors
	}
	return MessageValidationFailed, fieldErrors
}

func describe(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"

	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "email":
		return "must be a valid email address"

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s:%s", err.Tag(), err.Param())
		}
		return err.Tag()
	}
}

// jsonFieldName lower-cases the first letter of a Go field name, which
// matches the payloads' json tags (DateTime -> dateTime).
func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
