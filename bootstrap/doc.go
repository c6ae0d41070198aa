// Package bootstrap owns the lifecycle of a jasmine-step process: it applies
// config defaults, validates, initializes logging, starts the registered
// components in order and stops them in reverse.
//
// Long-running commands use Run, which blocks until SIGINT/SIGTERM. Finite
// commands use RunTask, whose context is cancelled on the same signals so a
// running build step is interrupted cleanly.
package bootstrap
