package validation_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/booking/internal/errs"
	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, body string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestBindAndValidate_Valid(t *testing.T) {
	payload := &model.CreateServicePayload{}
	err := validation.BindAndValidate(newContext(t, `{"name":"Room B","description":"d","cost":"80"}`), payload)

	require.NoError(t, err)
	assert.Equal(t, "Room B", payload.Name)
	assert.Equal(t, 80.0, payload.Cost.Float64())
}

func TestBindAndValidate_MissingFields(t *testing.T) {
	err := validation.BindAndValidate(newContext(t, `{"name":"Room B","cost":0}`), &model.CreateServicePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, validation.MessageMissingFields, httpErr.Message)

	fields := make([]string, 0, len(httpErr.Errors))
	for _, fe := range httpErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"description", "cost"}, fields)
}

func TestBindAndValidate_NegativeCost(t *testing.T) {
	err := validation.BindAndValidate(newContext(t, `{"name":"a","description":"b","cost":-5}`), &model.CreateServicePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, validation.MessageValidationFailed, httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "cost", httpErr.Errors[0].Field)
}

func TestBindAndValidate_InvalidCost(t *testing.T) {
	err := validation.BindAndValidate(newContext(t, `{"cost":"abc"}`), &model.UpdateServicePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Invalid cost", httpErr.Message)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	err := validation.BindAndValidate(newContext(t, `{"name":`), &model.CreateServicePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_MessageOverride(t *testing.T) {
	err := validation.BindAndValidate(newContext(t, `{"oldPassword":"1234"}`), &model.ChangePasswordPayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, "oldPassword and newPassword are required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "newPassword", httpErr.Errors[0].Field)
}

type customPayload struct{}

func (customPayload) Validate() error {
	return validation.CustomValidationErrors{{Field: "when", Message: "must be in the future"}}
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	err := validation.BindAndValidate(newContext(t, `{}`), &customPayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, validation.MessageValidationFailed, httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "when", Error: "must be in the future"}}, httpErr.Errors)
}
