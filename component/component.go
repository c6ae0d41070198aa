package component

import "context"

// Component is a long-lived part of the host with a start/stop lifecycle:
// the settings store, the telemetry pipeline, the admin server.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// HealthStatus is the coarse state reported by a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// Health is one component's entry in a health report.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Healthy reports name as healthy.
func Healthy(name string) Health {
	return Health{Name: name, Status: StatusHealthy}
}

// Unhealthy reports name as unhealthy because of reason.
func Unhealthy(name, reason string) Health {
	return Health{Name: name, Status: StatusUnhealthy, Message: reason}
}

// Degraded reports name as working with reduced function.
func Degraded(name, reason string) Health {
	return Health{Name: name, Status: StatusDegraded, Message: reason}
}

// Worst returns the most severe status in hs. An empty report is healthy.
func Worst(hs []Health) HealthStatus {
	worst := StatusHealthy
	for _, h := range hs {
		switch h.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			worst = StatusDegraded
		}
	}
	return worst
}
