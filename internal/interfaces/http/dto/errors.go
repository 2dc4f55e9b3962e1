package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeStorage is used when the embedded store fails; retrying is safe
	ErrCodeStorage = "ERR_STORAGE"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeInsufficientBalance is used when an advance balance is insufficient
	ErrCodeInsufficientBalance = "ERR_INSUFFICIENT_BALANCE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,
	ErrCodeStorage:  http.StatusServiceUnavailable,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:        http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:        http.StatusUnprocessableEntity,
	ErrCodeInsufficientBalance: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the wire format
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INVALID_STATE":        ErrCodeInvalidState,
	"INSUFFICIENT_BALANCE": ErrCodeInsufficientBalance,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"CUSTOMER_REQUIRED":    ErrCodeBusinessRule,
	"STORAGE_ERROR":        ErrCodeStorage,

	"INVALID_INPUT":            ErrCodeInvalidInput,
	"INVALID_AMOUNT":           ErrCodeInvalidInput,
	"INVALID_PAYMENT_METHOD":   ErrCodeInvalidInput,
	"INVALID_CATEGORY":         ErrCodeInvalidInput,
	"INVALID_DESCRIPTION":      ErrCodeInvalidInput,
	"INVALID_DATE":             ErrCodeInvalidInput,
	"INVALID_CUSTOMER":         ErrCodeInvalidInput,
	"INVALID_CUSTOMER_NAME":    ErrCodeInvalidInput,
	"INVALID_PHONE":            ErrCodeInvalidInput,
	"INVALID_BILL_NUMBER":      ErrCodeInvalidInput,
	"INVALID_RECEIPT_NUMBER":   ErrCodeInvalidInput,
	"INVALID_VOUCHER_NUMBER":   ErrCodeInvalidInput,
	"INVALID_TICKET_NUMBER":    ErrCodeInvalidInput,
	"INVALID_TICKET_ITEM":      ErrCodeInvalidInput,
	"INVALID_BUSINESS_DATE":    ErrCodeInvalidInput,
	"INVALID_TRANSACTION_TYPE": ErrCodeInvalidInput,
	"INVALID_SCOPE":            ErrCodeInvalidInput,
	"INVALID_FAMILY":           ErrCodeInvalidInput,
	"EMPTY_TICKET":             ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// If the code is already in the new format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
