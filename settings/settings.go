package settings

import (
	"github.com/spf13/afero"

	"github.com/kbukum/jasmine-step/util"
	"github.com/kbukum/jasmine-step/validation"
)

// DefaultExecutable is run through the search path when no override is set.
const DefaultExecutable = "jasmine-node"

// Settings is the persisted global configuration.
type Settings struct {
	// ExecutablePath overrides the jasmine-node executable. Empty means
	// DefaultExecutable is looked up in PATH.
	ExecutablePath string `yaml:"applicationExecPath" json:"applicationExecPath" mapstructure:"applicationExecPath"`
}

// Executable returns the executable a build step runs.
func (s Settings) Executable() string {
	return util.Coalesce(s.ExecutablePath, DefaultExecutable)
}

// CheckExecPath validates a candidate executable path for the admin form.
// The result is advisory: an empty path is fine (PATH lookup is used), and a
// missing file yields a warning, never an error.
func CheckExecPath(fs afero.Fs, path string) validation.Result {
	if path == "" {
		return validation.OK()
	}
	if _, err := fs.Stat(path); err != nil {
		return validation.Warning("File does not exist: %s", path)
	}
	return validation.OK()
}
