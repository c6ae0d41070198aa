package settings

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/kbukum/jasmine-step/component"
	"github.com/kbukum/jasmine-step/errors"
	"github.com/kbukum/jasmine-step/validation"
)

const testFile = "/etc/jasmine-step/settings.yml"

func TestExecutable(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want string
	}{
		{"default", Settings{}, DefaultExecutable},
		{"override", Settings{ExecutablePath: "/opt/node/bin/jasmine-node"}, "/opt/node/bin/jasmine-node"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Executable(); got != tt.want {
				t.Errorf("Executable() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckExecPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/usr/bin/jasmine-node", []byte("#!/bin/sh\n"), 0o755)

	tests := []struct {
		name     string
		path     string
		wantKind validation.Kind
		wantMsg  string
	}{
		{"empty", "", validation.KindOK, ""},
		{"exists", "/usr/bin/jasmine-node", validation.KindOK, ""},
		{"missing", "/nonexistent/jasmine-node", validation.KindWarning, "File does not exist: /nonexistent/jasmine-node"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckExecPath(fs, tt.path)
			if got.Kind != tt.wantKind || got.Message != tt.wantMsg {
				t.Errorf("CheckExecPath(%q) = %+v, want %s %q", tt.path, got, tt.wantKind, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), testFile)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := s.Get().Executable(); got != DefaultExecutable {
		t.Errorf("Executable() = %q, want %q", got, DefaultExecutable)
	}
}

func TestLoadExistingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, testFile, []byte("applicationExecPath: /opt/jn\n"), 0o644)

	s := NewStore(fs, testFile)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := s.Get().ExecutablePath; got != "/opt/jn" {
		t.Errorf("ExecutablePath = %q, want /opt/jn", got)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, testFile, []byte("applicationExecPath: [unclosed\n"), 0o644)

	s := NewStore(fs, testFile)
	err := s.Load()
	if !errors.IsCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("Load() error = %v, want INVALID_INPUT", err)
	}
	if h := s.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("Health status = %s, want unhealthy", h.Status)
	}
}

func TestSetStoresAndPersists(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/opt/jn", []byte{}, 0o755)
	s := NewStore(fs, testFile)

	result, err := s.Set("/opt/jn")
	if err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if !result.IsOK() {
		t.Errorf("Set() result = %v, want ok", result)
	}

	reloaded := NewStore(fs, testFile)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := reloaded.Get().ExecutablePath; got != "/opt/jn" {
		t.Errorf("persisted ExecutablePath = %q, want /opt/jn", got)
	}
}

func TestSetMissingPathStillStored(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, testFile)

	result, err := s.Set("/nonexistent/jasmine-node")
	if err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if result.Kind != validation.KindWarning {
		t.Errorf("Set() kind = %s, want warning", result.Kind)
	}
	if got := s.Get().ExecutablePath; got != "/nonexistent/jasmine-node" {
		t.Errorf("ExecutablePath = %q, want the stored value", got)
	}
	if got := s.Get().Executable(); got != "/nonexistent/jasmine-node" {
		t.Errorf("Executable() = %q, want override used as-is", got)
	}
}

func TestSetEmptyRestoresDefault(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), testFile)
	_, _ = s.Set("/opt/jn")
	if _, err := s.Set(""); err != nil {
		t.Fatalf("Set(\"\") error: %v", err)
	}
	if got := s.Get().Executable(); got != DefaultExecutable {
		t.Errorf("Executable() = %q, want %q", got, DefaultExecutable)
	}
}

// slowWriteFs holds the first write to the settings file until released.
type slowWriteFs struct {
	afero.Fs
	first   atomic.Bool
	writing chan struct{}
	release chan struct{}
}

func (f *slowWriteFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR) != 0 && f.first.CompareAndSwap(false, true) {
		close(f.writing)
		<-f.release
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func TestConcurrentSetKeepsFileInSync(t *testing.T) {
	fs := &slowWriteFs{
		Fs:      afero.NewMemMapFs(),
		writing: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewStore(fs, testFile)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := s.Set("/first"); err != nil {
			t.Errorf("Set(/first) error: %v", err)
		}
	}()
	<-fs.writing

	go func() {
		defer wg.Done()
		if _, err := s.Set("/second"); err != nil {
			t.Errorf("Set(/second) error: %v", err)
		}
	}()
	time.Sleep(50 * time.Millisecond)
	close(fs.release)
	wg.Wait()

	reloaded := NewStore(fs.Fs, testFile)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got, want := reloaded.Get().ExecutablePath, s.Get().ExecutablePath; got != want {
		t.Errorf("persisted %q, in memory %q", got, want)
	}
}

func TestSaveFailureReported(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	s := NewStore(fs, testFile)

	_, err := s.Set("/opt/jn")
	if !errors.IsCode(err, errors.ErrCodeInternal) {
		t.Fatalf("Set() error = %v, want INTERNAL_ERROR", err)
	}
	if got := s.Get().ExecutablePath; got != "/opt/jn" {
		t.Errorf("in-memory value = %q, want /opt/jn", got)
	}
}

func TestStoreComponent(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, testFile, []byte("applicationExecPath: /opt/jn\n"), 0o644)

	reg := component.NewRegistry()
	s := NewStore(fs, testFile)
	if err := reg.Register(s); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := reg.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll() error: %v", err)
	}
	if got := s.Get().ExecutablePath; got != "/opt/jn" {
		t.Errorf("ExecutablePath after start = %q", got)
	}
	if h := s.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Errorf("Health status = %s, want healthy", h.Status)
	}
	if err := reg.StopAll(context.Background()); err != nil {
		t.Errorf("StopAll() error: %v", err)
	}
}
