package process

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/jasmine-step/errors"
)

// Run starts a subprocess and waits for it to complete.
//
// The returned error is an *errors.AppError:
//   - ErrCodeLaunchFailed when the child could not be started (Result is nil),
//   - ErrCodeInterrupted when ctx was cancelled before the child exited,
//   - ErrCodeNonZeroExit when the child exited with a nonzero code.
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, errors.MissingField("binary")
	}

	gracePeriod := cmd.GracePeriod
	if gracePeriod == 0 {
		gracePeriod = DefaultGracePeriod
	}

	binary, err := resolveBinary(cmd.Binary, cmd.Env)
	if err != nil {
		return nil, errors.LaunchFailed(cmd.Binary, err)
	}

	c := exec.CommandContext(ctx, binary, cmd.Args...) //nolint:gosec // the step exists to run a configured binary
	c.Args[0] = cmd.Binary
	c.Dir = cmd.Dir
	c.Env = cmd.Env
	c.Stdin = cmd.Stdin

	var stdout, stderr bytes.Buffer
	c.Stdout = cmd.Stdout
	if c.Stdout == nil {
		c.Stdout = &stdout
	}
	c.Stderr = cmd.Stderr
	if c.Stderr == nil {
		c.Stderr = &stderr
	}

	// Own process group so an interrupt reaches the runner's children too.
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = gracePeriod

	start := time.Now()
	if err := c.Start(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Interrupted(cmd.Binary, ctx.Err())
		}
		return nil, errors.LaunchFailed(cmd.Binary, err)
	}

	err = c.Wait()
	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return result, errors.Interrupted(cmd.Binary, ctx.Err()).WithDetail("exit_code", result.ExitCode)
	}
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return result, errors.NonZeroExit(cmd.Binary, result.ExitCode).WithCause(err)
	}
	// Output copying failed after the child exited.
	return result, errors.Internal(err).WithDetail("binary", cmd.Binary)
}

// resolveBinary looks a bare executable name up in the PATH carried by env.
// Names containing a separator are returned unchanged. With a nil env the
// child inherits the parent's environment, so exec searches the parent's PATH.
// Otherwise only env's PATH is searched; a name missing there is not found.
func resolveBinary(binary string, env []string) (string, error) {
	if strings.ContainsRune(binary, os.PathSeparator) || env == nil {
		return binary, nil
	}
	pathList, _ := lookupEnv(env, "PATH")
	for _, dir := range filepath.SplitList(pathList) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, binary)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", &exec.Error{Name: binary, Err: exec.ErrNotFound}
}

func lookupEnv(env []string, key string) (string, bool) {
	for i := len(env) - 1; i >= 0; i-- {
		k, v, found := strings.Cut(env[i], "=")
		if found && k == key {
			return v, true
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
