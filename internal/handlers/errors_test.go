package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   map[string]interface{}
	}{
		{
			name:   "domain error",
			err:    errs.NotFound("Blog not found"),
			status: http.StatusNotFound,
			body:   map[string]interface{}{"message": "Blog not found"},
		},
		{
			name:   "validation fields",
			err:    errs.Validation("Validation failed, Enter valid inputs", map[string]string{"title": "is required"}),
			status: http.StatusUnprocessableEntity,
			body: map[string]interface{}{
				"message": "Validation failed, Enter valid inputs",
				"errors":  map[string]interface{}{"title": "is required"},
			},
		},
		{
			name:   "internal hides cause",
			err:    errs.Internal(errors.New("connection refused")),
			status: http.StatusInternalServerError,
			body:   map[string]interface{}{"message": "Server error"},
		},
		{
			name:   "echo error keeps status",
			err:    echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			status: http.StatusMethodNotAllowed,
			body:   map[string]interface{}{"message": "Method Not Allowed"},
		},
		{
			name:   "unknown error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   map[string]interface{}{"message": "Server error"},
		},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestHealthCheckReportsStore(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, HealthCheck(func(context.Context) error {
		return errors.New("dial tcp 10.0.0.5:27017: connection refused user=admin")
	})(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{
		"status":  "unhealthy",
		"service": "folio-api",
		"store":   "unavailable",
	}, body)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
