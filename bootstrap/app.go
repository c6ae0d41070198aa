package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/jasmine-step/component"
	"github.com/kbukum/jasmine-step/logger"
)

// App ties a validated config, a logger and the host components together.
// C is the binary's config type.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration
	onStart         []Hook
	onStop          []Hook
	signals         []os.Signal
}

// NewApp applies defaults, validates cfg and sets up logging.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)
	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		Logger:          o.logger,
		gracefulTimeout: 15 * time.Second,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	if app.Logger == nil {
		logCfg := base.Logging
		if o.logOutput != nil {
			app.Logger = logger.NewWithWriter(&logCfg, base.Name, o.logOutput)
		} else {
			app.Logger = logger.New(&logCfg, base.Name)
		}
		logger.SetGlobalLogger(app.Logger)
	}
	app.Components.SetLogger(app.Logger.WithComponent("lifecycle"))
	return app, nil
}

// RegisterComponent adds a component. Components start in registration order.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// ReadyCheck returns an error naming every component that is not healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var bad []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		entry := h.Name + "=" + string(h.Status)
		if h.Message != "" {
			entry += " (" + h.Message + ")"
		}
		bad = append(bad, entry)
	}
	if len(bad) > 0 {
		return fmt.Errorf("components not ready: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Run starts the components and blocks until a shutdown signal arrives or
// ctx is done, then shuts down.
func (a *App[C]) Run(ctx context.Context) error {
	return a.RunTask(ctx, func(ctx context.Context) error {
		a.Logger.Info("Application ready, waiting for shutdown signal", logger.Fields("name", a.Name))
		<-ctx.Done()
		a.Logger.Info("Shutting down")
		return nil
	})
}

// RunTask starts the components, runs task and shuts down. The task's
// context is cancelled on a shutdown signal. A task error takes precedence
// over a shutdown error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, stopSignals := signal.NotifyContext(ctx, a.signals...)
	taskErr := task(taskCtx)
	if taskCtx.Err() != nil && ctx.Err() == nil {
		a.Logger.Info("Received shutdown signal")
	}
	stopSignals()

	if stopErr := a.stop(); taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App[C]) startup(ctx context.Context) error {
	begin := time.Now()
	a.Logger.Debug("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		_ = a.stop()
		return fmt.Errorf("failed to start components: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		_ = a.stop()
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.Fields(logger.FieldError, err.Error()))
	}
	a.Logger.Debug("Application started", logger.DurationFields("startup", time.Since(begin)))
	return nil
}

// Shutdown runs the stop hooks and stops the components. Use it when
// managing the lifecycle without Run or RunTask.
func (a *App[C]) Shutdown() error {
	return a.stop()
}

func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	hookErr := runHooks(ctx, a.onStop)
	if hookErr != nil {
		a.Logger.Error("OnStop hook error", logger.Fields(logger.FieldError, hookErr.Error()))
	}
	stopErr := a.Components.StopAll(ctx)
	if stopErr != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields(logger.FieldError, stopErr.Error()))
	}
	a.Logger.Debug("Application shutdown complete")
	if hookErr != nil {
		return hookErr
	}
	return stopErr
}
