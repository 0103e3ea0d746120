package apperrors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error. The gateway maps
// every failed exchange onto exactly one code so callers can branch on
// kind without string matching.
type ErrorCode string

const (
	// ErrCodeAuthRejected indicates the backend no longer accepts the held
	// credential (HTTP 401). Observing it forces a logout.
	ErrCodeAuthRejected ErrorCode = "auth_rejected"
	// ErrCodeForbidden indicates the authenticated role is insufficient
	// for the operation (HTTP 403). Surfaced, not fatal to the session.
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates the backend rejected the request payload.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnreachable indicates no usable response could be obtained
	// (network failure). Retryable by the caller.
	ErrCodeUnreachable ErrorCode = "unreachable"
	// ErrCodeMalformedResponse indicates a 2xx response whose body could
	// not be decoded. Treated as an unusable exchange, like unreachable.
	ErrCodeMalformedResponse ErrorCode = "malformed_response"
	// ErrCodeInternal indicates a backend-side failure (HTTP 5xx).
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeCanceled indicates the operation was superseded before it
	// could commit (e.g. a login abandoned by a logout).
	ErrCodeCanceled ErrorCode = "canceled"
)

// FieldError carries a structured field-level rejection from the backend.
type FieldError struct {
	Field   string
	Message string
}

// AppError is a structured application error with a machine-checkable
// code, a human-readable message, and an optional cause. It supports
// errors.Is and errors.As through Unwrap.
type AppError struct {
	// Code categorizes the error.
	Code ErrorCode
	// Message is a human-readable error message, safe to display.
	Message string
	// Cause is the underlying error, if any.
	Cause error
	// Status is the HTTP status the backend answered with, 0 when no
	// response was obtained.
	Status int
	// Fields holds structured field errors for validation rejections.
	Fields []FieldError
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

// AuthRejected creates a credential-rejection error.
func AuthRejected(message string) *AppError {
	return &AppError{Code: ErrCodeAuthRejected, Message: message, Status: 401}
}

// Forbidden creates an insufficient-role error.
func Forbidden(message string) *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: message, Status: 403}
}

// NotFound creates a missing-resource error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message, Status: 404}
}

// Validation creates a request-rejection error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Unreachable wraps a network-level failure.
func Unreachable(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeUnreachable, Message: message, Cause: cause}
}

// MalformedResponse wraps an undecodable success response.
func MalformedResponse(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeMalformedResponse, Message: message, Cause: cause}
}

// Internal creates a backend-failure error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Internalf creates a backend-failure error with a formatted message.
func Internalf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Canceled creates a superseded-operation error.
func Canceled(message string) *AppError {
	return &AppError{Code: ErrCodeCanceled, Message: message}
}

// isCode checks whether an error carries a specific code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsAuthRejected checks for a credential-rejection error.
func IsAuthRejected(err error) bool { return isCode(err, ErrCodeAuthRejected) }

// IsForbidden checks for an insufficient-role error.
func IsForbidden(err error) bool { return isCode(err, ErrCodeForbidden) }

// IsNotFound checks for a missing-resource error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsValidation checks for a request-rejection error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsUnreachable checks for a network-level failure.
func IsUnreachable(err error) bool { return isCode(err, ErrCodeUnreachable) }

// IsMalformedResponse checks for an undecodable success response.
func IsMalformedResponse(err error) bool { return isCode(err, ErrCodeMalformedResponse) }

// IsInternal checks for a backend-side failure.
func IsInternal(err error) bool { return isCode(err, ErrCodeInternal) }

// IsCanceled checks for a superseded operation.
func IsCanceled(err error) bool { return isCode(err, ErrCodeCanceled) }

// GetCode returns the ErrorCode from an error, or empty string when the
// error is not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// UserMessage extracts the display message from an error. Non-AppError
// values fall back to their Error string.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
