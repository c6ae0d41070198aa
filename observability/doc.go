// Package observability wires OpenTelemetry tracing and metrics for build
// steps.
//
// Init installs OTLP/HTTP trace and metric providers as the otel globals when
// telemetry is enabled; otherwise the globals stay no-op and every span and
// instrument is free. Telemetry wraps Init as a lifecycle component.
//
// Steps record:
//   - a span "buildstep.perform" carrying step.type, process.exit_code and
//     step.outcome,
//   - the counter step.total and the histogram step.duration, both by type
//     and outcome.
package observability
