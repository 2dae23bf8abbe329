package errs

import "strings"

// FieldError is a per-field validation failure, for example a booking
// request without a phone number:
//
//	{ "field": "phone", "error": "is required" }
type FieldError struct {
	// Field is the JSON name of the offending field ("dateTime", not "DateTime").
	Field string `json:"field"`

	// Error describes the rule that failed.
	Error string `json:"error"`
}

// ActionType tells the client what to do next.
type ActionType string

const (
	// ActionTypeRedirect asks the client to navigate to Value.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional instruction for the client. No booking route sets
// one today; the field stays in the body so clients can rely on its shape.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error shape every failed request is answered with.
//
//   - Code: machine-friendly code (e.g. "SERVICE_NOT_FOUND", "APPOINTMENT_TAKEN").
//   - Message: human-friendly message; the booking UI shows this one.
//   - Status: HTTP status code, repeated in the body.
//   - Override: the message is safe to show to end users verbatim. False
//     for 500s, whose real cause only goes to the logs.
//   - Errors: per-field validation errors.
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors is empty unless a payload failed validation.
	Errors []FieldError `json:"errors"`

	Action *Action `json:"action"`
}

// Error returns Message, so logging the error shows what the client saw.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError regardless of its code or status: it answers
// "has this failure already been shaped for the client?", not "is it this one?".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// MakeUpperCaseWithUnderscores turns "Too Many Requests" into
// "TOO_MANY_REQUESTS", the default code for a status.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
