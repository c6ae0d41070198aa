package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/jasmine-step/logger"
	"github.com/kbukum/jasmine-step/validation"
)

// ServiceConfig contains the fields every binary built on this module needs.
// Binaries extend it by embedding it in their own config structs.
//
// Example:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Settings settings.Config `yaml:"settings" mapstructure:"settings"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig is promoted through embedding so binary configs satisfy
// bootstrap.Config.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults defaults to the development environment. Debug lowers the
// log level unless one is set.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Environments lists the accepted values of ServiceConfig.Environment.
var Environments = []string{"development", "staging", "production"}

// Validate reports every invalid base field at once as an INVALID_INPUT
// error.
func (c *ServiceConfig) Validate() error {
	check := validation.New().
		Required("config.name", c.Name).
		Custom(slices.Contains(Environments, c.Environment), "config.environment",
			fmt.Sprintf("must be one of %v (got: %s)", Environments, c.Environment))
	if err := c.Logging.Validate(); err != nil {
		check.Fail("config.logging", "%v", err)
	}
	if appErr := check.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
