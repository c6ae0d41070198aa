package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/jasmine-step/errors"
)

// FieldError is one rejected field of a form or config section.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Checker accumulates field problems of a submitted form. Methods chain.
type Checker struct {
	problems []FieldError
}

// New returns an empty Checker.
func New() *Checker {
	return &Checker{}
}

// Fail records a problem for field.
func (c *Checker) Fail(field, format string, args ...any) *Checker {
	c.problems = append(c.problems, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	return c
}

// Required rejects blank values.
func (c *Checker) Required(field, value string) *Checker {
	if strings.TrimSpace(value) == "" {
		c.Fail(field, "is required")
	}
	return c
}

// Custom records message for field unless ok holds.
func (c *Checker) Custom(ok bool, field, message string) *Checker {
	if !ok {
		c.Fail(field, "%s", message)
	}
	return c
}

// Result records a blocking Result. OK and Warning results pass.
func (c *Checker) Result(field string, r Result) *Checker {
	if r.Kind == KindError {
		c.Fail(field, "%s", r.Message)
	}
	return c
}

// Problems returns the recorded problems in order.
func (c *Checker) Problems() []FieldError {
	return c.problems
}

// Validate returns nil when nothing was recorded, otherwise an INVALID_INPUT
// AppError listing every field.
func (c *Checker) Validate() *errors.AppError {
	if len(c.problems) == 0 {
		return nil
	}
	return fieldsError(c.problems)
}

func fieldsError(problems []FieldError) *errors.AppError {
	messages := make([]string, len(problems))
	for i, p := range problems {
		messages[i] = p.Field + ": " + p.Message
	}
	return errors.Validation(strings.Join(messages, "; ")).WithDetail("fields", problems)
}
