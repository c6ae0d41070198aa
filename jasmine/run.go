package jasmine

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os/exec"
	"time"

	"github.com/kbukum/jasmine-step/buildstep"
	"github.com/kbukum/jasmine-step/errors"
	"github.com/kbukum/jasmine-step/process"
	"github.com/kbukum/jasmine-step/settings"
	"github.com/kbukum/jasmine-step/util"
)

const (
	msgLaunchFailed = "command execution failed"
	msgInterrupted  = "command execution interrupted"
	msgOutputFailed = "command output could not be recorded"
)

// Outcome is what happened to one jasmine-node run.
type Outcome struct {
	Success  bool
	ExitCode int
	Duration time.Duration
	// Err is nil on success, otherwise an *errors.AppError.
	Err error
}

// Run executes jasmine-node for cfg inside build and reports whether it
// exited with status 0.
func Run(ctx context.Context, cfg Config, s settings.Settings, build buildstep.Build) bool {
	return execute(ctx, cfg, s, build, 0).Success
}

func execute(ctx context.Context, cfg Config, s settings.Settings, build buildstep.Build, grace time.Duration) Outcome {
	args := Args(cfg, s)
	listener := build.Listener()

	result, err := process.Run(ctx, process.Command{
		Binary:      args[0],
		Args:        args[1:],
		Dir:         build.ModuleRoot(),
		Env:         util.EnvList(build.Environment()),
		Stdout:      listener,
		Stderr:      listener,
		GracePeriod: grace,
	})

	out := Outcome{ExitCode: -1, Err: err}
	if result != nil {
		out.ExitCode = result.ExitCode
		out.Duration = result.Duration
	}
	if err == nil {
		out.Success = true
		return out
	}

	switch {
	case errors.IsCode(err, errors.ErrCodeNonZeroExit):
		// jasmine-node already printed the failing specs.
	case errors.IsCode(err, errors.ErrCodeInterrupted):
		listener.Fatal(msgInterrupted, err)
	case errors.IsCode(err, errors.ErrCodeInternal):
		// The child ran but its output was lost.
		listener.Fatal(msgOutputFailed, err)
	default:
		listener.Fatal(msgLaunchFailed, err)
		if stderrors.Is(err, exec.ErrNotFound) || stderrors.Is(err, fs.ErrNotExist) {
			listener.Warn("jasmine-node executable " + args[0] + " not found; set applicationExecPath or add it to PATH")
		}
	}
	return out
}
