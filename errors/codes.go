package errors

import "net/http"

// ErrorCode is the machine-readable kind of an AppError.
type ErrorCode string

// Outcomes of launching and waiting for the test runner process.
const (
	ErrCodeLaunchFailed ErrorCode = "LAUNCH_FAILED"
	ErrCodeInterrupted  ErrorCode = "INTERRUPTED"
	ErrCodeNonZeroExit  ErrorCode = "NON_ZERO_EXIT"
)

// Rejected forms, job files and config sections.
const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Host and admin API errors.
const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

var statusByCode = map[ErrorCode]int{
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeMissingField: http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeUnauthorized: http.StatusUnauthorized,
}

// HTTPStatus is the status the admin API answers with for code. Process
// outcomes and unknown codes map to 500.
func HTTPStatus(code ErrorCode) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
