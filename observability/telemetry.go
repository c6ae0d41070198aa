package observability

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/kbukum/jasmine-step/component"
	"github.com/kbukum/jasmine-step/logger"
)

// ShutdownFunc flushes and stops the installed providers.
type ShutdownFunc func(ctx context.Context) error

// Init installs the trace and metric providers. When cfg is disabled it
// installs nothing and returns a no-op shutdown.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	cfg.ApplyDefaults()

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp, err := initTracer(ctx, cfg, res)
	if err != nil {
		return nil, err
	}
	mp, err := initMeter(ctx, cfg, res)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	logger.Info("Telemetry initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
		"interval", cfg.Interval.String(),
	))

	return func(ctx context.Context) error {
		return stderrors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

// Telemetry runs Init as a lifecycle component.
type Telemetry struct {
	cfg Config

	mu       sync.Mutex
	shutdown ShutdownFunc
}

var _ component.Component = (*Telemetry)(nil)

// NewTelemetry creates the telemetry component.
func NewTelemetry(cfg Config) *Telemetry {
	return &Telemetry{cfg: cfg}
}

func (t *Telemetry) Name() string { return "telemetry" }

func (t *Telemetry) Start(ctx context.Context) error {
	shutdown, err := Init(ctx, t.cfg)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.shutdown = shutdown
	t.mu.Unlock()
	return nil
}

func (t *Telemetry) Stop(ctx context.Context) error {
	t.mu.Lock()
	shutdown := t.shutdown
	t.shutdown = nil
	t.mu.Unlock()
	if shutdown == nil {
		return nil
	}
	return shutdown(ctx)
}

func (t *Telemetry) Health(_ context.Context) component.Health {
	h := component.Healthy(t.Name())
	if !t.cfg.Enabled {
		h.Message = "disabled"
	}
	return h
}
