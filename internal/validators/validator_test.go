package validators

import (
	"testing"

	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/anonto42/folio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSignup(t *testing.T) {
	v := NewValidator()

	ok := models.SignupRequest{Email: "ada@example.com", Name: "Ada", Password: "longenough", DOB: "1815-12-10"}
	assert.NoError(t, v.Validate(ok))

	bad := models.SignupRequest{Email: "not-an-email", Name: "Al", Password: "short"}
	err := v.Validate(bad)
	require.Error(t, err)

	e, isErr := errs.As(err)
	require.True(t, isErr)
	assert.Equal(t, 422, e.Status)
	assert.Equal(t, ValidationMessage, e.Message)
	assert.Contains(t, e.Fields, "email")
	assert.Contains(t, e.Fields, "name")
	assert.Contains(t, e.Fields, "password")
	assert.Equal(t, "is required", e.Fields["dob"])
}

func TestValidateBlogMinLength(t *testing.T) {
	v := NewValidator()

	err := v.Validate(models.BlogRequest{Title: "abcd", Description: "long enough"})
	require.Error(t, err)
	e, _ := errs.As(err)
	assert.Equal(t, "must be at least 5 characters", e.Fields["title"])
	assert.NotContains(t, e.Fields, "description")
}
