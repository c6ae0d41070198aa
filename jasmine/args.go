package jasmine

import (
	"github.com/kbukum/jasmine-step/settings"
	"github.com/kbukum/jasmine-step/util"
)

// Args renders the jasmine-node command line. The first element is the
// executable.
func Args(cfg Config, s settings.Settings) []string {
	args := []string{s.Executable(), "--noColor"}
	if cfg.UseCoffee {
		args = append(args, "--coffee")
	}
	if cfg.UseJUnit {
		args = append(args, "--junitreport")
	}
	if cfg.Verbose {
		args = append(args, "--verbose")
	}
	if cfg.Match != "" {
		args = append(args, "--match", cfg.Match)
	}
	if cfg.Include != "" {
		args = append(args, "--include", cfg.Include)
	}
	return append(args, util.Coalesce(cfg.SpecsFolder, DefaultSpecsFolder))
}
