package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of client-side request failure.
type ErrorCode string

const (
	// ErrCodeNetwork indicates the request never reached the server.
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeAuthExpired indicates the server rejected the credential (HTTP 401).
	ErrCodeAuthExpired ErrorCode = "auth_expired"
	// ErrCodeForbidden indicates the caller lacks permission (HTTP 403).
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeNotFound indicates the resource does not exist (HTTP 404).
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates the server rejected the request payload
	// or reported a business-rule failure (other 4xx/5xx with a message).
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnknown indicates a malformed or unclassifiable failure.
	ErrCodeUnknown ErrorCode = "unknown"
)

// AppError is a structured request failure with a code, a human-readable
// message, and an optional cause. It supports errors.Is and errors.As.
type AppError struct {
	// Code categorizes the failure.
	Code ErrorCode
	// Message is a human-readable message, server-provided where available.
	Message string
	// StatusCode is the HTTP status that produced this error, 0 for
	// transport-level failures.
	StatusCode int
	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Network creates a transport-level failure.
func Network(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: "network unreachable",
		Cause:   cause,
	}
}

// AuthExpired creates a credential-rejected failure.
func AuthExpired(message string) *AppError {
	return &AppError{
		Code:       ErrCodeAuthExpired,
		Message:    message,
		StatusCode: 401,
	}
}

// Forbidden creates a permission-denied failure.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:       ErrCodeForbidden,
		Message:    message,
		StatusCode: 403,
	}
}

// NotFound creates a missing-resource failure.
func NotFound(message string) *AppError {
	return &AppError{
		Code:       ErrCodeNotFound,
		Message:    message,
		StatusCode: 404,
	}
}

// Validation creates a server-reported payload or business failure.
func Validation(message string, status int) *AppError {
	return &AppError{
		Code:       ErrCodeValidation,
		Message:    message,
		StatusCode: status,
	}
}

// Validationf creates a Validation error with a formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// Unknown creates an unclassifiable failure.
func Unknown(message string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeUnknown,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf extracts the ErrorCode from err, unwrapping as needed.
// Returns ErrCodeUnknown for non-AppError values and "" for nil.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
