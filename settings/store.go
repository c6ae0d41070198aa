package settings

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/kbukum/jasmine-step/component"
	"github.com/kbukum/jasmine-step/errors"
	"github.com/kbukum/jasmine-step/logger"
	"github.com/kbukum/jasmine-step/validation"
)

// Config locates the settings file.
type Config struct {
	File string `yaml:"file" mapstructure:"file" validate:"required"`
}

// DefaultFile returns $HOME/.jasmine-step/settings.yml, or a relative path if
// the home directory cannot be determined.
func DefaultFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".jasmine-step", "settings.yml")
	}
	return filepath.Join(home, ".jasmine-step", "settings.yml")
}

// Store is the single-instance holder of Settings.
type Store struct {
	fs   afero.Fs
	file string
	log  *logger.Logger

	// writeMu serializes Load, Set and Save so memory and file agree.
	writeMu sync.Mutex
	mu      sync.RWMutex
	current Settings
	lastErr error
}

var _ component.Component = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for settings changes.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore creates a store over file on fs. Nothing is read until Load.
func NewStore(fs afero.Fs, file string, opts ...Option) *Store {
	s := &Store{fs: fs, file: file}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.WithComponent("settings")
	}
	return s
}

// File returns the path the store persists to.
func (s *Store) File() string { return s.file }

// Fs returns the filesystem the store and path checks use.
func (s *Store) Fs() afero.Fs { return s.fs }

// Load reads the settings file. A missing file leaves the defaults in place.
func (s *Store) Load() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := afero.ReadFile(s.fs, s.file)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			s.setState(Settings{}, nil)
			s.log.Debug("No settings file, using defaults", logger.Fields(logger.FieldPath, s.file))
			return nil
		}
		err = errors.Internal(err).WithDetail("file", s.file)
		s.setState(s.Get(), err)
		return err
	}

	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		appErr := errors.InvalidInput("settings", fmt.Sprintf("malformed settings file %s", s.file)).WithCause(err)
		s.setState(s.Get(), appErr)
		return appErr
	}

	s.setState(loaded, nil)
	s.log.Debug("Settings loaded", logger.Fields(logger.FieldPath, s.file))
	return nil
}

// Save writes the current settings to the file.
func (s *Store) Save() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	s.mu.RLock()
	data, err := yaml.Marshal(s.current)
	s.mu.RUnlock()
	if err != nil {
		return errors.Internal(err)
	}

	if dir := filepath.Dir(s.file); dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return s.saveFailed(err)
		}
	}
	if err := afero.WriteFile(s.fs, s.file, data, 0o644); err != nil {
		return s.saveFailed(err)
	}

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Get returns a snapshot of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set stores a new executable path and persists it. The path is checked with
// CheckExecPath first, but the value is stored whatever the result; the
// returned Result only informs the administrator.
func (s *Store) Set(path string) (validation.Result, error) {
	result := CheckExecPath(s.fs, path)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.current.ExecutablePath = path
	s.mu.Unlock()

	if result.IsOK() {
		s.log.Info("Executable path updated", logger.Fields(logger.FieldPath, path))
	} else {
		s.log.Warn("Executable path stored with warning", logger.Fields(
			logger.FieldPath, path,
			"message", result.Message,
		))
	}

	return result, s.save()
}

// Name implements component.Component.
func (s *Store) Name() string { return "settings" }

// Start implements component.Component by loading the settings file.
func (s *Store) Start(_ context.Context) error { return s.Load() }

// Stop implements component.Component. Every Set is already persisted.
func (s *Store) Stop(_ context.Context) error { return nil }

// Health implements component.Component.
func (s *Store) Health(_ context.Context) component.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastErr != nil {
		return component.Unhealthy(s.Name(), s.lastErr.Error())
	}
	return component.Healthy(s.Name())
}

func (s *Store) setState(current Settings, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = current
	s.lastErr = err
}

func (s *Store) saveFailed(err error) error {
	appErr := errors.Internal(err).WithDetail("file", s.file)
	s.mu.Lock()
	s.lastErr = appErr
	s.mu.Unlock()
	s.log.Error("Saving settings failed", logger.ErrorFields("save", err))
	return appErr
}
