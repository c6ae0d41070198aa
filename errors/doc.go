// Package errors provides the structured error type used across the build
// step: machine-readable codes, optional details and a cause chain, plus an
// HTTP status for the administrative API.
package errors
