package errors

import (
	"fmt"
	"net/http"
)

// Core error kinds layered onto the existing ErrorType taxonomy in errors.go.
// NotSupported, BackendUnavailable
// and ExecutionError have no equivalent among the pre-existing types;
// ValidationError, NotFound, Conflict and Timeout reuse the matching
// types already defined in errors.go.
const (
	ErrorTypeNotSupported        ErrorType = "NOT_SUPPORTED"
	ErrorTypeBackendUnavailable  ErrorType = "BACKEND_UNAVAILABLE"
	ErrorTypeExecutionError      ErrorType = "EXECUTION_ERROR"
)

// NewNotSupportedError creates a NotSupported error (HTTP 501): the
// operation is not available on the selected backend.
func NewNotSupportedError(operation string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotSupported,
		Message:    fmt.Sprintf("operation '%s' is not supported by this backend", operation),
		HTTPStatus: http.StatusNotImplemented,
		StackTrace: captureStackTrace(),
	}
}

// NewBackendUnavailableError creates a BackendUnavailable error (HTTP 503):
// a health check failed or a transport error occurred.
func NewBackendUnavailableError(backend string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeBackendUnavailable,
		Message:    fmt.Sprintf("backend '%s' is unavailable", backend),
		Cause:      cause,
		HTTPStatus: http.StatusServiceUnavailable,
		StackTrace: captureStackTrace(),
	}
}

// NewCoreTimeoutError creates a Timeout error (HTTP 504): an operation
// deadline was exceeded. Distinct from NewTimeoutError (408), which marks
// an inbound HTTP request timeout rather than a core operation deadline.
func NewCoreTimeoutError(operation string) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    fmt.Sprintf("operation '%s' exceeded its deadline", operation),
		HTTPStatus: http.StatusGatewayTimeout,
		StackTrace: captureStackTrace(),
	}
}

// NewExecutionError creates an ExecutionError (HTTP 500): a proposal
// failed to execute. Recorded on the proposal's Reasoning field and
// reported, never propagated to sibling proposals.
func NewExecutionError(proposalID string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExecutionError,
		Message:    fmt.Sprintf("proposal '%s' failed to execute", proposalID),
		Cause:      cause,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// IsNotSupported reports whether err is a NotSupported error.
func IsNotSupported(err error) bool { return IsType(err, ErrorTypeNotSupported) }

// IsBackendUnavailable reports whether err is a BackendUnavailable error.
func IsBackendUnavailable(err error) bool { return IsType(err, ErrorTypeBackendUnavailable) }

// IsTimeout reports whether err is a Timeout error.
func IsTimeout(err error) bool { return IsType(err, ErrorTypeTimeout) }

// IsExecutionError reports whether err is an ExecutionError.
func IsExecutionError(err error) bool { return IsType(err, ErrorTypeExecutionError) }
