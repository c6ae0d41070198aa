package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/jasmine-step/component"
	"github.com/kbukum/jasmine-step/config"
	"github.com/kbukum/jasmine-step/logger"
)

type testConfig struct {
	config.ServiceConfig
}

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   component.Health
	started  bool
	stopped  bool
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(context.Context) error {
	m.started = true
	return m.startErr
}
func (m *mockComponent) Stop(context.Context) error {
	m.stopped = true
	return m.stopErr
}
func (m *mockComponent) Health(context.Context) component.Health {
	if m.health.Status == "" {
		return component.Health{Name: m.name, Status: component.StatusHealthy}
	}
	return m.health
}

func newTestConfig() *testConfig {
	return &testConfig{ServiceConfig: config.ServiceConfig{Name: "jasmine-step", Version: "1.0.0"}}
}

func newTestApp(t *testing.T) *App[*testConfig] {
	t.Helper()
	app, err := NewApp(newTestConfig(), WithLogger(logger.NewDefault("test")))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(newTestConfig(), WithLogOutput(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "jasmine-step" || app.Version != "1.0.0" {
		t.Errorf("unexpected name/version %q/%q", app.Name, app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("defaults not applied: environment %q", app.Cfg.Environment)
	}
	if app.Components == nil || app.Logger == nil {
		t.Error("expected registry and logger")
	}
}

func TestNewAppValidation(t *testing.T) {
	cfg := &testConfig{}
	if _, err := NewApp(cfg); err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestWithLogOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := newTestConfig()
	cfg.Logging = logger.Config{Level: "debug", Format: "json"}

	prev := logger.GetGlobalLogger()
	t.Cleanup(func() { logger.SetGlobalLogger(prev) })
	app, err := NewApp(cfg, WithLogOutput(&buf))
	if err != nil {
		t.Fatal(err)
	}

	app.Logger.Info("hello")
	if !strings.Contains(buf.String(), `"message":"hello"`) {
		t.Errorf("expected JSON log in buffer, got %q", buf.String())
	}
}

func TestRunTaskLifecycle(t *testing.T) {
	app := newTestApp(t)
	settings := &mockComponent{name: "settings"}
	admin := &mockComponent{name: "admin"}
	_ = app.RegisterComponent(settings)
	_ = app.RegisterComponent(admin)

	var order []string
	app.OnStart(func(context.Context) error { order = append(order, "start-hook"); return nil })
	app.OnStop(func(context.Context) error { order = append(order, "stop-hook"); return nil })

	err := app.RunTask(context.Background(), func(context.Context) error {
		order = append(order, "task")
		if !settings.started || !admin.started {
			t.Error("components must be started before the task")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}
	if want := "start-hook,task,stop-hook"; strings.Join(order, ",") != want {
		t.Errorf("order = %v, want %s", order, want)
	}
	if !settings.stopped || !admin.stopped {
		t.Error("components must be stopped after the task")
	}
}

func TestRunTaskErrorPrecedence(t *testing.T) {
	app := newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "settings", stopErr: fmt.Errorf("flush failed")})

	taskErr := fmt.Errorf("step failed")
	if err := app.RunTask(context.Background(), func(context.Context) error { return taskErr }); err != taskErr {
		t.Errorf("RunTask error = %v, want the task error", err)
	}

	app = newTestApp(t)
	_ = app.RegisterComponent(&mockComponent{name: "settings", stopErr: fmt.Errorf("flush failed")})
	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err == nil {
		t.Error("expected the shutdown error when the task succeeds")
	}
}

func TestRunTaskCancellation(t *testing.T) {
	app := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := app.RunTask(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err != context.Canceled {
		t.Errorf("RunTask error = %v, want context.Canceled", err)
	}
}

func TestStartupFailureStopsStartedComponents(t *testing.T) {
	app := newTestApp(t)
	first := &mockComponent{name: "settings"}
	broken := &mockComponent{name: "admin", startErr: fmt.Errorf("bind: address in use")}
	_ = app.RegisterComponent(first)
	_ = app.RegisterComponent(broken)

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
	if err == nil || !strings.Contains(err.Error(), "address in use") {
		t.Fatalf("RunTask error = %v", err)
	}
	if ran {
		t.Error("task must not run when startup fails")
	}
	if !first.stopped {
		t.Error("started component must be stopped after a startup failure")
	}
}

func TestStartHookError(t *testing.T) {
	app := newTestApp(t)
	app.OnStart(func(context.Context) error { return fmt.Errorf("boom") })

	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "onStart hook failed") {
		t.Errorf("RunTask error = %v", err)
	}
}

func TestReadyCheck(t *testing.T) {
	tests := []struct {
		name    string
		health  component.Health
		wantErr bool
	}{
		{"healthy", component.Healthy("settings"), false},
		{"unhealthy", component.Unhealthy("settings", "malformed"), true},
		{"degraded", component.Degraded("telemetry", "exporter unreachable"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			_ = app.RegisterComponent(&mockComponent{name: tt.health.Name, health: tt.health})
			err := app.ReadyCheck(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadyCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app := newTestApp(t)
	c := &mockComponent{name: "admin"}
	_ = app.RegisterComponent(c)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := app.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !c.started || !c.stopped {
		t.Error("Run must start and stop components")
	}
}

func TestGracefulTimeout(t *testing.T) {
	app, err := NewApp(newTestConfig(), WithLogger(logger.NewDefault("test")), WithGracefulTimeout(2*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if app.gracefulTimeout != 2*time.Second {
		t.Errorf("gracefulTimeout = %v", app.gracefulTimeout)
	}
}
