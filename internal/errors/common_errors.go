package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeInvalidInput     ErrorType = "INVALID_INPUT"
	ErrTypeInsufficientData ErrorType = "INSUFFICIENT_DATA"
	ErrTypeColumnNotFound   ErrorType = "COLUMN_NOT_FOUND"
	ErrTypeParsing          ErrorType = "PARSING"
	ErrTypeStorage          ErrorType = "STORAGE"
	ErrTypeValidation       ErrorType = "VALIDATION"
	ErrTypeConfig           ErrorType = "CONFIG"
)

// Sentinel errors for errors.Is checks. Any AppError of the same type matches.
var (
	ErrInvalidInput     = &AppError{Type: ErrTypeInvalidInput, Message: "invalid input"}
	ErrInsufficientData = &AppError{Type: ErrTypeInsufficientData, Message: "insufficient data"}
	ErrColumnNotFound   = &AppError{Type: ErrTypeColumnNotFound, Message: "column not found"}
	ErrParsing          = &AppError{Type: ErrTypeParsing, Message: "parsing failed"}
	ErrStorage          = &AppError{Type: ErrTypeStorage, Message: "storage failure"}
	ErrValidation       = &AppError{Type: ErrTypeValidation, Message: "validation failed"}
	ErrConfig           = &AppError{Type: ErrTypeConfig, Message: "invalid configuration"}
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t == nil {
		return false
	}
	return e.Type == t.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewInvalidInputError creates an error for empty or non-numeric samples and bad arguments
func NewInvalidInputError(message string) *AppError {
	return NewAppError(ErrTypeInvalidInput, message, nil)
}

// NewInsufficientDataError creates an error for samples too small for quartile estimation
func NewInsufficientDataError(observed, required int) *AppError {
	return NewAppError(ErrTypeInsufficientData,
		fmt.Sprintf("need at least %d observed values, got %d", required, observed), nil).
		WithContext("observed", observed).
		WithContext("required", required)
}

// NewColumnNotFoundError creates an error for a column absent from a table
func NewColumnNotFoundError(column string) *AppError {
	return NewAppError(ErrTypeColumnNotFound, fmt.Sprintf("column %q not found", column), nil).
		WithContext("column", column)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates an error for a file or directory that fails
// a pre-flight check
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err is, or wraps, an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	return stderrors.Is(err, &AppError{Type: errType})
}
