package buildstep

import (
	"maps"

	"github.com/google/uuid"

	"github.com/kbukum/jasmine-step/buildlog"
)

// Build is the context a step runs in.
type Build interface {
	// ID identifies the build in host logs.
	ID() string
	// Environment is the complete environment for processes the step
	// launches. It is not merged with the host's own environment.
	Environment() map[string]string
	// ModuleRoot is the working directory for launched processes.
	ModuleRoot() string
	// Listener receives process output and fatal entries.
	Listener() buildlog.Listener
}

// LocalBuild is a Build over a local workspace directory.
type LocalBuild struct {
	id       string
	env      map[string]string
	root     string
	listener buildlog.Listener
}

var _ Build = (*LocalBuild)(nil)

// NewLocalBuild returns a build with a fresh ID. env is copied.
func NewLocalBuild(root string, env map[string]string, listener buildlog.Listener) *LocalBuild {
	return &LocalBuild{
		id:       uuid.NewString(),
		env:      maps.Clone(env),
		root:     root,
		listener: listener,
	}
}

func (b *LocalBuild) ID() string { return b.id }

// Environment returns a copy of the build environment.
func (b *LocalBuild) Environment() map[string]string { return maps.Clone(b.env) }

func (b *LocalBuild) ModuleRoot() string { return b.root }

func (b *LocalBuild) Listener() buildlog.Listener { return b.listener }
