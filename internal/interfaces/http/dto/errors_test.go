package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeUnknown, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeStorage, http.StatusServiceUnavailable},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeBusinessRule, http.StatusUnprocessableEntity},
		{ErrCodeInsufficientBalance, http.StatusUnprocessableEntity},
		// Unknown code falls back to 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		expected string
	}{
		{"not found", "NOT_FOUND", ErrCodeNotFound},
		{"concurrency conflict", "CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
		{"validation", "VALIDATION_ERROR", ErrCodeValidation},
		{"insufficient balance", "INSUFFICIENT_BALANCE", ErrCodeInsufficientBalance},
		{"customer required", "CUSTOMER_REQUIRED", ErrCodeBusinessRule},
		{"storage", "STORAGE_ERROR", ErrCodeStorage},
		{"invalid amount", "INVALID_AMOUNT", ErrCodeInvalidInput},
		{"empty ticket", "EMPTY_TICKET", ErrCodeInvalidInput},
		{"already normalized", ErrCodeNotFound, ErrCodeNotFound},
		{"unmapped passes through", "SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.domain))
		})
	}
}
