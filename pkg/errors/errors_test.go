package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"not found", errors.New("inspection workflow not found"), CodeNotFound, http.StatusNotFound},
		{"already exists", errors.New("inspection workflow already exists"), CodeConflict, http.StatusConflict},
		{"not eligible", errors.New("inspection report not eligible: complete the checklist first"), CodeConflict, http.StatusConflict},
		{"unknown item", errors.New("unknown checklist item"), CodeValidationError, http.StatusBadRequest},
		{"invalid", errors.New("invalid discrepancy"), CodeValidationError, http.StatusBadRequest},
		{"required", errors.New("inspector is required before recording inspection work"), CodeValidationError, http.StatusBadRequest},
		{"timeout", errors.New("operation timeout"), CodeTimeout, http.StatusGatewayTimeout},
		{"unclassified", errors.New("disk full"), CodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := MapDomainError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestMapDomainError_PassesThroughAppError(t *testing.T) {
	original := ErrConflict("already processed")
	mapped := MapDomainError(original)
	assert.Same(t, original, mapped)
}

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := ErrServiceUnavailable("mongodb").Wrap(cause)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "connection refused")

	unwrapped, ok := AsAppError(appErr)
	require.True(t, ok)
	assert.Equal(t, CodeServiceUnavailable, unwrapped.Code)
}

func TestWithDetails(t *testing.T) {
	appErr := ErrValidation("validation failed").WithDetail("item", "unknown checklist item")
	require.NotNil(t, appErr.Details)
	assert.Equal(t, "unknown checklist item", appErr.Details["item"])
}
