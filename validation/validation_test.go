package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/jasmine-step/errors"
)

func TestCheckerRules(t *testing.T) {
	tests := []struct {
		name  string
		check func(c *Checker)
		want  int
	}{
		{"required present", func(c *Checker) { c.Required("type", "jasmine-node") }, 0},
		{"required empty", func(c *Checker) { c.Required("type", "") }, 1},
		{"required blank", func(c *Checker) { c.Required("type", "   ") }, 1},
		{"custom holds", func(c *Checker) { c.Custom(true, "steps", "bad") }, 0},
		{"custom fails", func(c *Checker) { c.Custom(false, "steps", "bad") }, 1},
		{"ok result", func(c *Checker) { c.Result("applicationExecPath", OK()) }, 0},
		{"warning result", func(c *Checker) { c.Result("applicationExecPath", Warning("File does not exist: %s", "/x")) }, 0},
		{"error result", func(c *Checker) { c.Result("applicationExecPath", Error("not executable")) }, 1},
		{"chained", func(c *Checker) { c.Required("a", "").Fail("b", "%d is too small", 3) }, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.check(c)
			if got := len(c.Problems()); got != tt.want {
				t.Errorf("expected %d problems, got %d: %v", tt.want, got, c.Problems())
			}
		})
	}
}

func TestCheckerValidate(t *testing.T) {
	if New().Validate() != nil {
		t.Error("expected nil for no errors")
	}

	v := New()
	v.Required("steps[0].type", "")
	v.Required("steps[1].type", "")
	appErr := v.Validate()
	if appErr == nil {
		t.Fatal("expected AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "steps[0].type: is required; steps[1].type: is required") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected 2 field errors in details, got %v", appErr.Details["fields"])
	}
}

type adminConfig struct {
	Addr   string `mapstructure:"addr" validate:"required,hostname_port"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json console"`
}

type wrapper struct {
	Admin adminConfig `mapstructure:"admin"`
}

func TestValidateStruct(t *testing.T) {
	if err := Validate(wrapper{Admin: adminConfig{Addr: "127.0.0.1:8089"}}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	err := Validate(wrapper{Admin: adminConfig{Addr: "", Format: "xml"}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "admin.addr: is required") {
		t.Errorf("expected admin.addr message, got %q", msg)
	}
	if !strings.Contains(msg, "admin.format: must be one of: json console") {
		t.Errorf("expected admin.format message, got %q", msg)
	}
}

func TestValidateStructBadAddr(t *testing.T) {
	err := Validate(wrapper{Admin: adminConfig{Addr: "not an address"}})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "must be a host:port address") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestResult(t *testing.T) {
	ok := OK()
	if !ok.IsOK() || ok.String() != "ok" {
		t.Errorf("unexpected OK result %+v", ok)
	}
	if ok.Err("f") != nil {
		t.Error("OK must not produce an error")
	}

	warn := Warning("File does not exist: %s", "/nope")
	if warn.IsOK() {
		t.Error("warning is not OK")
	}
	if warn.Err("applicationExecPath") != nil {
		t.Error("warnings are advisory and must not produce an error")
	}
	if warn.String() != "warning: File does not exist: /nope" {
		t.Errorf("unexpected string %q", warn.String())
	}

	bad := Error("must be absolute")
	err := bad.Err("applicationExecPath")
	if !errors.IsCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	if got := toSnakeCase("ServiceConfig"); got != "service_config" {
		t.Errorf("expected service_config, got %q", got)
	}
}
