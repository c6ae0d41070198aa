package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kbukum/jasmine-step/bootstrap"
	"github.com/kbukum/jasmine-step/errors"
	"github.com/kbukum/jasmine-step/logger"
	"github.com/kbukum/jasmine-step/observability"
	"github.com/kbukum/jasmine-step/settings"
	"github.com/kbukum/jasmine-step/version"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configFile   string
	settingsFile string
	logLevel     string
	fs           afero.Fs
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "jasmine-step",
		Short: "Run jasmine-node build steps",
		Long: `jasmine-step runs the jasmine-node test runner as a CI build step.

Each step renders a jasmine-node command line from its job configuration,
runs it in the build workspace with the build environment, streams its
output to the build log and passes or fails on the exit code.

The jasmine-node executable location is shared by every step and managed
with the settings commands or the admin API.`,
		Version:       version.Get().Short(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetVersionTemplate(`{{.Use}} version {{.Version}}` + "\n")

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configFile, "config", "", "Configuration file (default: search ./config.yml, ~/.jasmine-step/config.yml)")
	flags.StringVar(&o.settingsFile, "settings-file", "", "Settings file holding applicationExecPath (overrides settings.file)")
	flags.StringVar(&o.logLevel, "log-level", "", "Host log level: debug, info, warn, error")

	cmd.AddCommand(
		newRunCmd(o),
		newSettingsCmd(o),
		newCheckExecCmd(o),
		newServeCmd(o),
		newTokenCmd(o),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig loads the app config and applies flag overrides.
func (o *rootOptions) loadConfig() (*AppConfig, error) {
	if o.configFile != "" {
		if _, err := os.Stat(o.configFile); err != nil {
			return nil, errors.InvalidInput("config", fmt.Sprintf("cannot read config file %s", o.configFile)).WithCause(err)
		}
	}
	cfg, err := loadAppConfig(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.settingsFile != "" {
		cfg.Settings.File = o.settingsFile
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}

// newApp builds the application with the settings store registered first
// and, when withTelemetry is set, the telemetry component after it.
func (o *rootOptions) newApp(cmd *cobra.Command, withTelemetry bool) (*bootstrap.App[*AppConfig], *settings.Store, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	app, err := bootstrap.NewApp(cfg, bootstrap.WithLogOutput(cmd.ErrOrStderr()))
	if err != nil {
		return nil, nil, err
	}

	store := settings.NewStore(o.fs, cfg.Settings.File, settings.WithLogger(app.Logger.WithComponent("settings")))
	if err := app.RegisterComponent(store); err != nil {
		return nil, nil, err
	}
	if withTelemetry {
		if err := app.RegisterComponent(observability.NewTelemetry(cfg.Telemetry)); err != nil {
			return nil, nil, err
		}
	}
	app.Logger.Debug("Configuration loaded", logger.Fields(
		"settings_file", cfg.Settings.File,
		"telemetry", cfg.Telemetry.Enabled,
	))
	return app, store, nil
}
