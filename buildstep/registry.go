package buildstep

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/jasmine-step/errors"
)

// Builder is a configured build step.
type Builder interface {
	// Type returns the step type name the builder was created for.
	Type() string
	// Perform runs the step and reports whether it succeeded. Failures are
	// reported through the build's listener, never returned.
	Perform(ctx context.Context, build Build) bool
}

// Factory binds a submitted form to a Builder.
type Factory func(form map[string]any) (Builder, error)

// Descriptor registers a step type with the host.
type Descriptor struct {
	Type        string
	DisplayName string
	Factory     Factory
	// Applicable reports whether the step can be added to a project of the
	// given kind. Nil means every kind.
	Applicable func(projectKind string) bool
}

// IsApplicable reports whether the step type applies to projectKind.
func (d Descriptor) IsApplicable(projectKind string) bool {
	return d.Applicable == nil || d.Applicable(projectKind)
}

// Registry maps step type names to descriptors.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

// Register adds a descriptor. Types must be unique and carry a factory.
func (r *Registry) Register(d Descriptor) error {
	if d.Type == "" {
		return errors.MissingField("type")
	}
	if d.Factory == nil {
		return errors.MissingField("factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[d.Type]; exists {
		return errors.InvalidInput("type", fmt.Sprintf("step type %q already registered", d.Type))
	}
	r.descriptors[d.Type] = d
	return nil
}

// Create binds form to a new Builder of the named type.
func (r *Registry) Create(stepType string, form map[string]any) (Builder, error) {
	d, ok := r.Descriptor(stepType)
	if !ok {
		return nil, errors.NotFound("step type", stepType)
	}
	return d.Factory(form)
}

// Descriptor returns the descriptor registered for stepType.
func (r *Registry) Descriptor(stepType string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[stepType]
	return d, ok
}

// List returns the descriptors sorted by type name.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Type < list[j].Type })
	return list
}
