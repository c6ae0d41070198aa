package process

import (
	"io"
	"time"
)

// DefaultGracePeriod is how long an interrupted child gets between SIGTERM and SIGKILL.
const DefaultGracePeriod = 5 * time.Second

// Command configures a subprocess to execute.
type Command struct {
	// Binary is the executable path or name. A bare name is looked up in the
	// PATH of Env only; with a nil Env the parent's PATH is used.
	Binary string
	// Args are the command-line arguments, not including the binary.
	Args []string
	// Dir is the working directory. If empty, uses the current directory.
	Dir string
	// Env is the complete child environment (key=value). Nil inherits the
	// parent environment; it is never merged with it.
	Env []string
	// Stdin provides input to the process. May be nil.
	Stdin io.Reader
	// Stdout receives standard output while the child runs. Nil captures it
	// into Result.Stdout.
	Stdout io.Writer
	// Stderr receives standard error while the child runs. Nil captures it
	// into Result.Stderr.
	Stderr io.Writer
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	// Defaults to DefaultGracePeriod if zero.
	GracePeriod time.Duration
}
