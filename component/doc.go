// Package component manages the long-lived parts of the step runner host:
// the global settings store, telemetry exporters and the admin API server.
//
// Components are started in registration order and stopped in reverse,
// so register what others depend on first.
package component
