// Package process launches a single child process the way a build step needs
// it: an explicit environment, a working directory, output streamed to the
// build log while the child runs, and failures classified as launch
// failures, interruptions or nonzero exits.
//
// Cancelling the context interrupts the wait. The child's process group
// receives SIGTERM, then SIGKILL once the grace period has elapsed.
package process
