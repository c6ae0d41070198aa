package buildstep

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbukum/jasmine-step/buildlog"
	"github.com/kbukum/jasmine-step/errors"
)

type fakeBuilder struct {
	form map[string]any
}

func (f *fakeBuilder) Type() string                        { return "fake" }
func (f *fakeBuilder) Perform(context.Context, Build) bool { return true }

func fakeFactory(form map[string]any) (Builder, error) {
	return &fakeBuilder{form: form}, nil
}

func TestRegistryCreate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Descriptor{Type: "fake", DisplayName: "fake step", Factory: fakeFactory}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	b, err := r.Create("fake", map[string]any{"verbose": true})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if got := b.(*fakeBuilder).form["verbose"]; got != true {
		t.Errorf("form not passed to factory, got %v", got)
	}

	if _, err := r.Create("missing", nil); !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Create(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestRegistryRegisterErrors(t *testing.T) {
	tests := []struct {
		name string
		d    Descriptor
		code errors.ErrorCode
	}{
		{"no type", Descriptor{Factory: fakeFactory}, errors.ErrCodeMissingField},
		{"no factory", Descriptor{Type: "x"}, errors.ErrCodeMissingField},
		{"duplicate", Descriptor{Type: "fake", Factory: fakeFactory}, errors.ErrCodeInvalidInput},
	}
	r := NewRegistry()
	_ = r.Register(Descriptor{Type: "fake", Factory: fakeFactory})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Register(tt.d); !errors.IsCode(err, tt.code) {
				t.Errorf("Register() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRegistryListSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"shell", "jasmine-node", "ant"} {
		_ = r.Register(Descriptor{Type: name, Factory: fakeFactory})
	}
	list := r.List()
	want := []string{"ant", "jasmine-node", "shell"}
	for i, d := range list {
		if d.Type != want[i] {
			t.Errorf("List()[%d] = %s, want %s", i, d.Type, want[i])
		}
	}
}

func TestDescriptorApplicable(t *testing.T) {
	all := Descriptor{Type: "a"}
	if !all.IsApplicable("maven") || !all.IsApplicable("freestyle") {
		t.Error("nil Applicable should accept every project kind")
	}
	onlyFree := Descriptor{Type: "b", Applicable: func(k string) bool { return k == "freestyle" }}
	if onlyFree.IsApplicable("maven") {
		t.Error("expected maven to be rejected")
	}
}

func TestLocalBuild(t *testing.T) {
	env := map[string]string{"PATH": "/usr/bin"}
	l := buildlog.NewConsole(&bytes.Buffer{}, buildlog.FormatConsole)
	b := NewLocalBuild("/work", env, l)

	env["PATH"] = "/changed"
	if got := b.Environment()["PATH"]; got != "/usr/bin" {
		t.Errorf("Environment() PATH = %q, want copy taken at construction", got)
	}
	b.Environment()["HOME"] = "/root"
	if _, ok := b.Environment()["HOME"]; ok {
		t.Error("Environment() must return a copy")
	}
	if b.ModuleRoot() != "/work" || b.Listener() != l {
		t.Error("unexpected module root or listener")
	}
	if b.ID() == "" || b.ID() == NewLocalBuild("/work", nil, l).ID() {
		t.Error("expected unique build IDs")
	}
}

func writeJob(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJob(t *testing.T) {
	path := writeJob(t, `
steps:
  - type: jasmine-node
    useCoffee: true
    specsFolder: spec/unit
  - type: jasmine-node
`)
	job, err := LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob() error: %v", err)
	}
	if len(job.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(job.Steps))
	}
	first := job.Steps[0]
	if first.Type != "jasmine-node" {
		t.Errorf("Type = %q", first.Type)
	}
	if _, ok := first.Form["type"]; ok {
		t.Error("type key should not be part of the form")
	}
	if len(first.Form) != 2 {
		t.Errorf("form = %v, want two keys", first.Form)
	}
	if len(job.Steps[1].Form) != 0 {
		t.Errorf("second form = %v, want empty", job.Steps[1].Form)
	}
}

func TestLoadJobErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"missing type", "steps:\n  - verbose: true\n", errors.ErrCodeInvalidInput},
		{"no steps", "name: empty\n", errors.ErrCodeInvalidInput},
		{"malformed", "steps: [\n", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadJob(writeJob(t, tt.content))
			if !errors.IsCode(err, tt.code) {
				t.Errorf("LoadJob() error = %v, want %s", err, tt.code)
			}
		})
	}
	if _, err := LoadJob(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("expected error for missing job file")
	}
}
