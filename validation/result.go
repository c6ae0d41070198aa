package validation

import (
	"fmt"

	"github.com/kbukum/jasmine-step/errors"
)

// Kind is the severity of an advisory Result.
type Kind string

const (
	KindOK      Kind = "ok"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Result is the outcome of a form check. Only KindError is blocking.
type Result struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message,omitempty"`
}

// OK returns a passing Result.
func OK() Result {
	return Result{Kind: KindOK}
}

// Warning returns a non-blocking Result.
func Warning(format string, args ...any) Result {
	return Result{Kind: KindWarning, Message: fmt.Sprintf(format, args...)}
}

// Error returns a blocking Result.
func Error(format string, args ...any) Result {
	return Result{Kind: KindError, Message: fmt.Sprintf(format, args...)}
}

// IsOK reports whether the check passed without remarks.
func (r Result) IsOK() bool {
	return r.Kind == KindOK || r.Kind == ""
}

// Err converts a blocking Result to an AppError. Warnings yield nil.
func (r Result) Err(field string) error {
	if r.Kind != KindError {
		return nil
	}
	return errors.InvalidInput(field, r.Message)
}

// String renders the result the way the CLI prints it.
func (r Result) String() string {
	if r.IsOK() {
		return string(KindOK)
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}
