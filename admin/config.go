package admin

import (
	"time"

	"github.com/kbukum/jasmine-step/validation"
)

// Config configures the admin server.
type Config struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required,hostname_port"`
	// JWTSecret enables bearer authentication for the settings routes.
	JWTSecret   string        `mapstructure:"jwt_secret"`
	CORSOrigins []string      `mapstructure:"cors_origins"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:8089"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
}

// Validate checks the configuration. A disabled server is always valid.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	return validation.Validate(c)
}
