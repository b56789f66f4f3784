package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
		is     error
	}{
		{"validation", Validation("bad", nil), http.StatusUnprocessableEntity, ErrValidation},
		{"conflict", Conflict("dup"), http.StatusConflict, ErrConflict},
		{"conflict as 400", ConflictBadRequest("dup"), http.StatusBadRequest, ErrConflict},
		{"unauthorized", Unauthorized("no"), http.StatusUnauthorized, ErrUnauthorized},
		{"not found", NotFound("gone"), http.StatusNotFound, ErrNotFound},
		{"bad request", BadRequest("bad id"), http.StatusBadRequest, ErrBadRequest},
		{"unsupported media", UnsupportedMedia("no image"), http.StatusUnsupportedMediaType, ErrUnsupportedMedia},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError, ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.ErrorIs(t, tt.err, tt.is)
		})
	}
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NotFound("Blog not found"))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Blog not found", e.Message)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrConflict))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	e := Internal(cause)

	assert.ErrorIs(t, e, cause)
	assert.Equal(t, "Server error", e.Message)
	assert.Contains(t, e.Error(), "connection reset")
}
