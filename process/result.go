package process

import "time"

// Result holds the output and status of a completed subprocess.
type Result struct {
	// Stdout is the captured standard output. Empty when Command.Stdout was set.
	Stdout []byte
	// Stderr is the captured standard error. Empty when Command.Stderr was set.
	Stderr []byte
	// ExitCode is the process exit code. -1 if the process was killed by a signal.
	ExitCode int
	// Duration is how long the process ran.
	Duration time.Duration
}

// Success reports whether the process exited with code zero.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}
