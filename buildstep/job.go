package buildstep

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/kbukum/jasmine-step/errors"
	"github.com/kbukum/jasmine-step/validation"
)

// Step is one entry of a job: the step type and its submitted form.
type Step struct {
	Type string
	Form map[string]any
}

// Job is an ordered list of steps.
type Job struct {
	Steps []Step
}

// LoadJob reads a job file. The format follows the file extension (yaml,
// json or toml).
func LoadJob(path string) (*Job, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.InvalidInput("job", fmt.Sprintf("cannot read job file %s", path)).WithCause(err)
	}

	var raw []map[string]any
	if err := v.UnmarshalKey("steps", &raw); err != nil {
		return nil, errors.InvalidInput("steps", "steps must be a list of forms").WithCause(err)
	}

	job := &Job{Steps: make([]Step, 0, len(raw))}
	check := validation.New()
	check.Custom(len(raw) > 0, "steps", "at least one step is required")
	for i, form := range raw {
		stepType, _ := form["type"].(string)
		check.Required(fmt.Sprintf("steps[%d].type", i), stepType)

		rest := make(map[string]any, len(form))
		for k, val := range form {
			if !strings.EqualFold(k, "type") {
				rest[k] = val
			}
		}
		job.Steps = append(job.Steps, Step{Type: stepType, Form: rest})
	}
	if err := check.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}
