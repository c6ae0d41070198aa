package main

import (
	"fmt"
	"time"

	"github.com/kbukum/jasmine-step/admin"
	"github.com/kbukum/jasmine-step/config"
	"github.com/kbukum/jasmine-step/observability"
	"github.com/kbukum/jasmine-step/process"
	"github.com/kbukum/jasmine-step/settings"
	"github.com/kbukum/jasmine-step/validation"
	"github.com/kbukum/jasmine-step/version"
)

const serviceName = "jasmine-step"

// AppConfig is the jasmine-step configuration.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Settings  settings.Config      `yaml:"settings" mapstructure:"settings"`
	Admin     admin.Config         `yaml:"admin" mapstructure:"admin"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	Process   ProcessConfig        `yaml:"process" mapstructure:"process"`
}

// ProcessConfig tunes launched processes.
type ProcessConfig struct {
	// GracePeriod is the time between SIGTERM and SIGKILL for an interrupted step.
	GracePeriod time.Duration `yaml:"grace_period" mapstructure:"grace_period" validate:"gte=0"`
}

// ApplyDefaults fills unset fields.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Settings.File == "" {
		c.Settings.File = settings.DefaultFile()
	}
	c.Admin.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	if c.Telemetry.ServiceVersion == "" {
		c.Telemetry.ServiceVersion = c.Version
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = c.Environment
	}
	if c.Process.GracePeriod == 0 {
		c.Process.GracePeriod = process.DefaultGracePeriod
	}
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(&c.Settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := validation.Validate(&c.Process); err != nil {
		return fmt.Errorf("process: %w", err)
	}
	if err := c.Admin.Validate(); err != nil {
		return fmt.Errorf("admin: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	return nil
}

// configDefaults registers every key so environment overrides reach it.
func configDefaults() map[string]any {
	return map[string]any{
		"name":                   serviceName,
		"environment":            "development",
		"debug":                  false,
		"logging.level":          "info",
		"logging.format":         "console",
		"logging.output":         "stderr",
		"logging.no_color":       false,
		"settings.file":          settings.DefaultFile(),
		"admin.enabled":          false,
		"admin.addr":             "127.0.0.1:8089",
		"admin.jwt_secret":       "",
		"admin.cors_origins":     []string{},
		"admin.read_timeout":     "15s",
		"admin.shutdown_timeout": "5s",
		"telemetry.enabled":      false,
		"telemetry.endpoint":     "localhost:4318",
		"telemetry.insecure":     true,
		"telemetry.sample_rate":  1.0,
		"telemetry.interval":     "15s",
		"process.grace_period":   process.DefaultGracePeriod.String(),
	}
}

func loadAppConfig(configFile string) (*AppConfig, error) {
	cfg := &AppConfig{}
	opts := []config.LoaderOption{config.WithDefaults(configDefaults())}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
