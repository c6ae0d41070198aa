package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

func initMeter(ctx context.Context, cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns the package meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// StepMetrics holds the build step instruments.
type StepMetrics struct {
	total    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewStepMetrics creates the step instruments on meter.
func NewStepMetrics(meter metric.Meter) (*StepMetrics, error) {
	total, err := meter.Int64Counter("step.total",
		metric.WithDescription("Build steps performed, by type and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating step.total counter: %w", err)
	}

	duration, err := meter.Float64Histogram("step.duration",
		metric.WithDescription("Duration of build steps in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating step.duration histogram: %w", err)
	}

	return &StepMetrics{total: total, duration: duration}, nil
}

// Record records one performed step.
func (m *StepMetrics) Record(ctx context.Context, stepType, outcome string, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(AttrStepType, stepType),
		attribute.String(AttrOutcome, outcome),
	)
	m.total.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), attrs)
}
