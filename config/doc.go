// Package config loads the step runner's configuration.
//
// It uses Viper to read a YAML/JSON/TOML file found in standard locations,
// loads an optional .env file with godotenv, and lets environment variables
// override any key that has a default, using the service prefix:
//
//	JASMINE_STEP_SETTINGS_FILE=/var/lib/ci/jasmine.yml
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("jasmine-step", &cfg, config.WithDefaults(defaults))
package config
