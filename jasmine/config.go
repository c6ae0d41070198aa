package jasmine

import (
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/jasmine-step/errors"
)

// DefaultSpecsFolder is passed to jasmine-node when SpecsFolder is empty.
const DefaultSpecsFolder = "specs"

// Config is the per-step configuration. Every field is optional.
type Config struct {
	UseCoffee   bool   `mapstructure:"useCoffee" yaml:"useCoffee" json:"useCoffee"`
	UseJUnit    bool   `mapstructure:"useJunit" yaml:"useJunit" json:"useJunit"`
	Verbose     bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	SpecsFolder string `mapstructure:"specsFolder" yaml:"specsFolder" json:"specsFolder"`
	Match       string `mapstructure:"match" yaml:"match" json:"match"`
	Include     string `mapstructure:"include" yaml:"include" json:"include"`
}

// DecodeForm binds a submitted form to a Config. Values are weakly typed
// ("true", "on" and 1 all mean true), unknown keys are ignored and missing
// keys keep their zero value.
func DecodeForm(form map[string]any) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncType(checkboxHook),
	})
	if err != nil {
		return Config{}, errors.Internal(err)
	}
	if err := dec.Decode(form); err != nil {
		return Config{}, errors.InvalidInput("form", err.Error()).WithCause(err)
	}
	return cfg, nil
}

// checkboxHook maps the values HTML checkboxes submit onto booleans.
func checkboxHook(from, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Bool || from.Kind() != reflect.String {
		return data, nil
	}
	switch strings.ToLower(strings.TrimSpace(reflect.ValueOf(data).String())) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return data, nil
}
