package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a domain error for rejected user input.
// Validation errors are reported to the caller and never retried automatically.
func NewValidationError(message string) *DomainError {
	return NewDomainError("VALIDATION_ERROR", message)
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInsufficientBalance = NewDomainError("INSUFFICIENT_BALANCE", "Insufficient advance balance available")
)

// StorageError indicates that the persistence layer failed while executing an
// operation. The failed operation leaves no partial state behind, so a retry
// is always safe.
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps a persistence failure
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
