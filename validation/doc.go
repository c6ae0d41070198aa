// Package validation provides input validation for the step runner.
//
// Three styles are supported:
//
// # Struct Tag Validation
//
//	type AdminConfig struct {
//	    Addr string `validate:"required,hostname_port"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	c := validation.New()
//	c.Required("steps[0].type", step.Type)
//	err := c.Validate()
//
// # Advisory Results
//
// Form checks that must not block saving return a Result instead of an
// error. A Warning is shown to the administrator but the value is kept.
//
//	res := validation.Warning("File does not exist: %s", path)
package validation
