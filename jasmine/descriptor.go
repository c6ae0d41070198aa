package jasmine

import (
	"github.com/kbukum/jasmine-step/buildstep"
	"github.com/kbukum/jasmine-step/settings"
)

const (
	// TypeName is the registered step type.
	TypeName = "jasmine-node"
	// DisplayName is shown when picking a step type.
	DisplayName = "run jasmine specs using jasmine-node"
)

// Register adds the jasmine-node step type to reg. Every builder it creates
// shares store.
func Register(reg *buildstep.Registry, store *settings.Store, opts ...BuilderOption) error {
	return reg.Register(buildstep.Descriptor{
		Type:        TypeName,
		DisplayName: DisplayName,
		Factory: func(form map[string]any) (buildstep.Builder, error) {
			cfg, err := DecodeForm(form)
			if err != nil {
				return nil, err
			}
			return NewBuilder(cfg, store, opts...), nil
		},
	})
}
