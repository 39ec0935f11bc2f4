package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "stockcount/internal/errors"
)

func TestMapToHTTPStatus_TypedErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"validation", apperror.NewValidationError("x"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid state", apperror.NewInvalidStateError("x"), http.StatusBadRequest, "INVALID_STATE"},
		{"unauthorized", apperror.NewUnauthorizedError("x"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", apperror.NewForbiddenError("x"), http.StatusForbidden, "FORBIDDEN"},
		{"not found", apperror.NewNotFoundError("x"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperror.NewConflictError("x"), http.StatusConflict, "CONFLICT"},
		{"internal", apperror.NewInternalError("x", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, category, message := apperror.MapToHTTPStatus(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.category, category)
			assert.Equal(t, tc.err.Error(), message)
		})
	}
}

func TestMapToHTTPStatus_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("camada de serviço: %w", apperror.NewNotFoundError("Contagem 7"))

	status, category, _ := apperror.MapToHTTPStatus(wrapped)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", category)
	assert.True(t, apperror.IsNotFound(wrapped))
}

func TestMapToHTTPStatus_UntypedError(t *testing.T) {
	status, category, message := apperror.MapToHTTPStatus(fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "UNKNOWN_ERROR", category)
	assert.Equal(t, "Ocorreu um erro inesperado.", message)
}

func TestNewDBError_UnwrapsDriverError(t *testing.T) {
	driverErr := fmt.Errorf("connection reset")
	err := apperror.NewDBError("Falha ao buscar contagem", driverErr)

	assert.ErrorIs(t, err, driverErr)
	assert.Contains(t, err.Error(), "connection reset")
}
