package jasmine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/jasmine-step/buildstep"
	"github.com/kbukum/jasmine-step/errors"
	"github.com/kbukum/jasmine-step/logger"
	"github.com/kbukum/jasmine-step/observability"
	"github.com/kbukum/jasmine-step/settings"
)

// Step outcomes recorded on spans and metrics.
const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeLaunchError = "launch_failed"
	OutcomeInterrupted = "interrupted"
	OutcomeOutputError = "output_failed"
)

// Builder is a jasmine-node step bound to its configuration.
type Builder struct {
	cfg         Config
	store       *settings.Store
	metrics     *observability.StepMetrics
	gracePeriod time.Duration
	log         *logger.Logger
}

var _ buildstep.Builder = (*Builder)(nil)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithMetrics records step.total and step.duration on m.
func WithMetrics(m *observability.StepMetrics) BuilderOption {
	return func(b *Builder) { b.metrics = m }
}

// WithGracePeriod sets how long an interrupted run gets before SIGKILL.
func WithGracePeriod(d time.Duration) BuilderOption {
	return func(b *Builder) { b.gracePeriod = d }
}

// NewBuilder binds cfg to the shared settings store.
func NewBuilder(cfg Config, store *settings.Store, opts ...BuilderOption) *Builder {
	b := &Builder{cfg: cfg, store: store}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logger.WithComponent(TypeName)
	}
	return b
}

// Config returns the step configuration.
func (b *Builder) Config() Config { return b.cfg }

// Type implements buildstep.Builder.
func (b *Builder) Type() string { return TypeName }

// Perform implements buildstep.Builder. The settings are read once, when
// the step starts.
func (b *Builder) Perform(ctx context.Context, build buildstep.Build) bool {
	ctx, span := observability.StartSpan(ctx, observability.SpanPerform,
		attribute.String(observability.AttrStepType, TypeName),
		attribute.String(observability.AttrBuildID, build.ID()),
	)

	s := b.store.Get()
	log := b.log.WithBuild(build.ID())
	log.Info("Running jasmine-node", logger.Fields(
		logger.FieldPath, build.ModuleRoot(),
		"executable", s.Executable(),
	))

	out := execute(ctx, b.cfg, s, build, b.gracePeriod)
	outcome := outcomeOf(out)

	span.SetAttributes(
		attribute.Int(observability.AttrExitCode, out.ExitCode),
		attribute.String(observability.AttrOutcome, outcome),
	)
	observability.EndSpan(span, out.Err)

	if b.metrics != nil {
		b.metrics.Record(ctx, TypeName, outcome, out.Duration)
	}

	fields := logger.Fields(
		logger.FieldStatus, outcome,
		logger.FieldExitCode, out.ExitCode,
		logger.FieldDuration, out.Duration.Milliseconds(),
	)
	if out.Success {
		log.Info("jasmine-node passed", fields)
	} else {
		log.Warn("jasmine-node failed", fields)
	}
	return out.Success
}

func outcomeOf(out Outcome) string {
	switch {
	case out.Success:
		return OutcomeSuccess
	case errors.IsCode(out.Err, errors.ErrCodeInterrupted):
		return OutcomeInterrupted
	case errors.IsCode(out.Err, errors.ErrCodeNonZeroExit):
		return OutcomeFailure
	case errors.IsCode(out.Err, errors.ErrCodeInternal):
		return OutcomeOutputError
	default:
		return OutcomeLaunchError
	}
}
