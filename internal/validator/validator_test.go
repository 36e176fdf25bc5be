package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,is-user-role"`
}

func TestValidateOK(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Name: "Alice", Email: "alice@example.com", Role: "user"})
	assert.NoError(t, err)

	// пустая роль проходит при omitempty
	err = v.Validate(&sampleRequest{Name: "Alice", Email: "alice@example.com"})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Name: "", Email: "not-an-email"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	assert.Equal(t, "This field is required", vErr.Errors["name"])
	assert.Equal(t, "Must be a valid email address", vErr.Errors["email"])
}

func TestValidateMinLength(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Name: "A", Email: "a@example.com"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors["name"], "at least 2")
}

func TestCustomRoleRule(t *testing.T) {
	v := New()

	for _, role := range []string{"user", "company", "admin"} {
		err := v.Validate(&sampleRequest{Name: "Alice", Email: "a@example.com", Role: role})
		assert.NoError(t, err, "role %q", role)
	}

	err := v.Validate(&sampleRequest{Name: "Alice", Email: "a@example.com", Role: "superadmin"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Must be a valid user role", vErr.Errors["role"])
}

func TestValidationErrorMessage(t *testing.T) {
	vErr := &ValidationError{Errors: map[string]string{"email": "Must be a valid email address"}}
	assert.Contains(t, vErr.Error(), "field 'email'")
}
