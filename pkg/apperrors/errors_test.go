package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDatabaseError, "Database unavailable", http.StatusInternalServerError)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "DATABASE_ERROR")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(ErrUserNotFound)
	require.True(t, ok)
	assert.Equal(t, CodeUserNotFound, appErr.Code)

	// AppError достается и из цепочки
	wrapped := fmt.Errorf("while handling request: %w", ErrUserNotFound)
	appErr, ok = AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeUserNotFound, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestWithDetailsDoesNotMutateSentinel(t *testing.T) {
	detailed := ErrVerificationRequired.WithDetails(map[string]string{"email": "user@example.com"})

	assert.NotNil(t, detailed.Details)
	assert.Nil(t, ErrVerificationRequired.Details)
	assert.Equal(t, ErrVerificationRequired.Code, detailed.Code)
	assert.Equal(t, ErrVerificationRequired.HTTPCode, detailed.HTTPCode)

	// копия сопоставима с исходной ошибкой
	assert.ErrorIs(t, detailed, ErrVerificationRequired)
	assert.NotErrorIs(t, detailed, ErrUserInactive)
}

func TestMarshalJSONHidesInternals(t *testing.T) {
	cause := errors.New("pq: duplicate key value")
	err := Wrap(cause, CodeInternalError, "Internal server error", http.StatusInternalServerError)

	data, mErr := json.Marshal(err)
	require.NoError(t, mErr)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "INTERNAL_ERROR", decoded["code"])
	assert.Equal(t, "Internal server error", decoded["message"])
	assert.NotContains(t, string(data), "duplicate key")
	assert.NotContains(t, string(data), "HTTPCode")
}

func TestVerificationFailuresLookIdentical(t *testing.T) {
	// четыре разных причины отказа различимы только по identity,
	// наружу уходит один и тот же ответ
	reasons := []*AppError{ErrOTPNotFound, ErrOTPExpired, ErrOTPMismatch, ErrOTPAlreadyUsed}

	first, err := json.Marshal(reasons[0])
	require.NoError(t, err)
	for _, reason := range reasons[1:] {
		data, err := json.Marshal(reason)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(data))
	}

	// но для логики это разные ошибки
	assert.False(t, errors.Is(ErrOTPExpired, ErrOTPMismatch))
	assert.False(t, errors.Is(ErrOTPNotFound, ErrOTPAlreadyUsed))
}

func TestInternalError(t *testing.T) {
	cause := errors.New("boom")
	err := InternalError(cause)

	assert.Equal(t, CodeInternalError, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
	assert.ErrorIs(t, err, cause)
}

func TestValidationError(t *testing.T) {
	err := ValidationError(map[string]string{"email": "Must be a valid email address"})

	assert.Equal(t, CodeValidationFailed, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPCode)
	assert.NotNil(t, err.Details)
}
