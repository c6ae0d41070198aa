package component

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/kbukum/jasmine-step/logger"
)

// StopTimeout bounds how long a single component may take to stop.
const StopTimeout = 10 * time.Second

// Registry starts components in registration order and stops the started
// ones in reverse.
type Registry struct {
	mu      sync.RWMutex
	order   []Component
	started map[string]bool
	log     *logger.Logger
}

// NewRegistry creates an empty registry logging through the global logger.
func NewRegistry() *Registry {
	return &Registry{started: make(map[string]bool)}
}

func (r *Registry) lifecycleLog() *logger.Logger {
	if r.log == nil {
		return logger.WithComponent("lifecycle")
	}
	return r.log
}

// SetLogger routes lifecycle logs to l.
func (r *Registry) SetLogger(l *logger.Logger) {
	r.mu.Lock()
	r.log = l
	r.mu.Unlock()
}

// Register appends c. Names must be unique.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if r.indexOf(name) >= 0 {
		return fmt.Errorf("component %s already registered", name)
	}
	r.order = append(r.order, c)
	r.lifecycleLog().Debug("Component registered", logger.Fields(logger.FieldComponent, name))
	return nil
}

func (r *Registry) indexOf(name string) int {
	return slices.IndexFunc(r.order, func(c Component) bool { return c.Name() == name })
}

// StartAll starts the components that are not running yet. It stops at the
// first failure; components already started stay started until StopAll.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.order {
		name := c.Name()
		if r.started[name] {
			continue
		}
		begin := time.Now()
		if err := c.Start(ctx); err != nil {
			r.lifecycleLog().Error("Component start failed", logger.ErrorFields("start "+name, err))
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		r.started[name] = true
		r.lifecycleLog().Debug("Component started", logger.DurationFields("start "+name, time.Since(begin)))
	}
	return nil
}

// StopAll stops started components in reverse order, each bounded by
// StopTimeout, and joins every failure.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for _, c := range slices.Backward(r.order) {
		name := c.Name()
		if !r.started[name] {
			continue
		}
		if err := r.stopOne(ctx, c); err != nil {
			r.lifecycleLog().Error("Component stop failed", logger.ErrorFields("stop "+name, err))
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
		}
		delete(r.started, name)
	}
	return stderrors.Join(errs...)
}

func (r *Registry) stopOne(ctx context.Context, c Component) error {
	ctx, cancel := context.WithTimeout(ctx, StopTimeout)
	defer cancel()
	return c.Stop(ctx)
}

// HealthAll reports every registered component in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, len(r.order))
	for i, c := range r.order {
		out[i] = c.Health(ctx)
	}
	return out
}

// Get returns the component registered as name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(name); i >= 0 {
		return r.order[i]
	}
	return nil
}
