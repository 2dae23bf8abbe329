package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/booking/internal/errs"
	"github.com/deppfellow/booking/internal/storeerr"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithRequestID(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	var seen string
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	return rec, seen
}

func TestRequestID(t *testing.T) {
	t.Run("reuses caller id", func(t *testing.T) {
		rec, seen := serveWithRequestID(t, "booking-abc-123")
		assert.Equal(t, "booking-abc-123", seen)
		assert.Equal(t, "booking-abc-123", rec.Header().Get(RequestIDHeader))
	})

	t.Run("generates when absent", func(t *testing.T) {
		rec, seen := serveWithRequestID(t, "")
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		_, seen := serveWithRequestID(t, strings.Repeat("a", maxRequestIDLength+1))
		assert.Len(t, seen, 36)
	})

	t.Run("replaces id with spaces", func(t *testing.T) {
		_, seen := serveWithRequestID(t, "two words")
		assert.NotEqual(t, "two words", seen)
	})
}

func TestGetRequestIDOutsideMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusFromError(nil, http.StatusOK))
	assert.Equal(t, http.StatusTooManyRequests, statusFromError(errs.NewTooManyRequestsError("x"), http.StatusOK))
	assert.Equal(t, http.StatusMethodNotAllowed, statusFromError(echo.ErrMethodNotAllowed, http.StatusOK))
	assert.Equal(t, http.StatusConflict, statusFromError(storeerr.NewConflict("appointments", "dateTime", "Time slot already taken"), http.StatusOK))
	assert.Equal(t, http.StatusInternalServerError, statusFromError(errors.New("boom"), http.StatusOK))
}
