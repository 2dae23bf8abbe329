package storeerr

import (
	"fmt"
	"strings"

	"github.com/deppfellow/booking/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// generateErrorCode builds a machine code of the form <DOMAIN>_<ACTION>,
// e.g. services + UniqueViolation -> SERVICE_ALREADY_EXISTS.
func generateErrorCode(entity string, code Code) string {
	if entity == "" {
		entity = "record"
	}

	domain := strings.ToUpper(singular(toSnake(entity)))

	action := "ERROR"
	switch code {
	case NotFound:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case Conflict:
		action = "TAKEN"
	case Required:
		action = "REQUIRED"
	case Invalid:
		action = "INVALID"
	case Unauthorized:
		action = "UNAUTHORIZED"
	case Unavailable:
		action = "UNAVAILABLE"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage returns the explicit message when one was given,
// otherwise a generic sentence built from the entity and field names.
func formatUserFriendlyMessage(e *Error) string {
	if e.Message != "" {
		return e.Message
	}

	entityName := humanizeText(singular(toSnake(e.Entity)))
	if entityName == "" {
		entityName = "Record"
	}

	fieldName := "field"
	if len(e.Fields) > 0 {
		fieldName = strings.ToLower(humanizeText(toSnake(e.Fields[0])))
	}

	switch e.Code {
	case NotFound:
		return fmt.Sprintf("%s not found", entityName)
	case UniqueViolation:
		return fmt.Sprintf("%s with this %s already exists", entityName, fieldName)
	case Conflict:
		return fmt.Sprintf("The %s is already taken", fieldName)
	case Required:
		return "Missing fields"
	case Invalid:
		return fmt.Sprintf("Invalid %s", fieldName)
	case Unauthorized:
		return "Invalid credentials"
	default:
		return "An error occurred while processing your request"
	}
}

// singular drops one trailing "s": "services" -> "service".
func singular(s string) string {
	if strings.HasSuffix(s, "s") && len(s) > 1 {
		return s[:len(s)-1]
	}
	return s
}

// toSnake converts camelCase to snake_case: "dateTime" -> "date_time".
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// humanizeText converts snake_case into Title Case: "business_data" -> "Business Data".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

func fieldErrors(fields []string, message string) []errs.FieldError {
	if len(fields) == 0 {
		return nil
	}
	out := make([]errs.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, errs.FieldError{Field: f, Error: message})
	}
	return out
}

// HandleError converts a failure from the service or repository layer into
// an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - *Error: mapped by Code (404, 400, 409, 401 or 500)
//   - pgx.ErrNoRows / redis.Nil: 404
//   - anything else, including *pgconn.PgError: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var serr *Error
	if errors.As(err, &serr) {
		code := generateErrorCode(serr.Entity, serr.Code)
		message := formatUserFriendlyMessage(serr)

		switch serr.Code {
		case NotFound:
			return errs.NewNotFoundError(message, true, &code)

		case UniqueViolation:
			return errs.NewBadRequestError(message, true, &code, fieldErrors(serr.Fields, "already exists"), nil)

		case Conflict:
			return errs.NewConflictError(message, true, &code)

		case Required:
			return errs.NewBadRequestError(message, true, &code, fieldErrors(serr.Fields, "is required"), nil)

		case Invalid:
			return errs.NewBadRequestError(message, true, &code, fieldErrors(serr.Fields, "is invalid"), nil)

		case Unauthorized:
			return errs.NewUnauthorizedError(message, true)

		default:
			return errs.NewInternalServerError()
		}
	}

	var pgerr *pgconn.PgError
	switch {
	case errors.As(err, &pgerr):
		return errs.NewInternalServerError()
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, redis.Nil):
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
