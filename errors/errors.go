package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an error with a code, a message fit for a build log or an
// API client, and optional structured details.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the wrapped error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// LaunchFailed reports that binary could not be started.
func LaunchFailed(binary string, cause error) *AppError {
	return New(ErrCodeLaunchFailed, fmt.Sprintf("Unable to start %s.", binary)).
		WithDetail("binary", binary).WithCause(cause)
}

// Interrupted reports that waiting for binary was interrupted by the caller.
func Interrupted(binary string, cause error) *AppError {
	return New(ErrCodeInterrupted, fmt.Sprintf("Waiting for %s was interrupted.", binary)).
		WithDetail("binary", binary).WithCause(cause)
}

// NonZeroExit reports that binary finished with a nonzero exit code.
func NonZeroExit(binary string, exitCode int) *AppError {
	return New(ErrCodeNonZeroExit, fmt.Sprintf("%s exited with code %d.", binary, exitCode)).
		WithDetail("binary", binary).WithDetail("exit_code", exitCode)
}

// InvalidInput rejects field for reason. An empty field names no field.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation carries an already formatted list of field problems.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, "Missing required field: "+field).WithDetail("field", field)
}

// NotFound reports an unknown resource, such as an unregistered step type.
func NotFound(resource, id string) *AppError {
	e := New(ErrCodeNotFound, fmt.Sprintf("The requested %s was not found.", resource)).WithDetail("resource", resource)
	if id != "" {
		e.WithDetail("id", id)
	}
	return e
}

func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return New(ErrCodeUnauthorized, reason)
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}

// IsCode reports whether err is, or wraps, an AppError carrying code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
