package admin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// metrics are registered on a private registry so several servers can
// coexist in one process.
type metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	settingsUpdates *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jasmine_step",
			Subsystem: "admin",
			Name:      "requests_total",
			Help:      "Admin API requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jasmine_step",
			Subsystem: "admin",
			Name:      "request_duration_seconds",
			Help:      "Admin API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		settingsUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jasmine_step",
			Name:      "settings_updates_total",
			Help:      "Executable path updates by validation result.",
		}, []string{"validation"}),
	}
	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.settingsUpdates,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
