package core

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mhold3n/CamProV5-sub001/internal/logging"
	"github.com/mhold3n/CamProV5-sub001/internal/observability"
	"github.com/mhold3n/CamProV5-sub001/model"
)

// Engine strings the synthesis stages together for callers that want one
// entry point: motion law -> preflight -> kinematic summary -> transmission
// and pitch. It holds no cross-call state; every invocation is a pure
// function of its parameters plus the optional reference provider, so one
// Engine is safe to share across goroutines.
type Engine struct {
	log     logging.Logger
	metrics *observability.EngineCollector
	ref     ReferenceCurveProvider
	tracer  trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger. Nil falls back to noop.
func WithLogger(log logging.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMetrics attaches a Prometheus collector.
func WithMetrics(c *observability.EngineCollector) Option {
	return func(e *Engine) { e.metrics = c }
}

// WithReferenceProvider attaches the optional calibration source.
func WithReferenceProvider(ref ReferenceCurveProvider) Option {
	return func(e *Engine) { e.ref = ref }
}

// NewEngine constructs an Engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log:    logging.Noop(),
		tracer: otel.Tracer("camprofile/core"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildTables runs one full synthesis for the given parameters and returns
// a fresh, immutable result. The only error condition is parameter
// validation; every later stage degrades rather than fails.
func (e *Engine) BuildTables(ctx context.Context, p model.UserParams) (*model.SynthesisResult, error) {
	ctx, jobID := logging.EnsureJobID(ctx)
	log := e.log.With(logging.String("job_id", jobID))
	start := time.Now()

	ctx, span := e.tracer.Start(ctx, "engine.build_tables",
		trace.WithAttributes(
			attribute.String("profile", string(p.Profile)),
			attribute.Float64("step_deg", p.StepDeg),
		))
	defer span.End()

	motion, err := e.synthesize(ctx, p)
	if err != nil {
		e.metrics.ObserveRun(string(p.Profile), "invalid_params", time.Since(start).Seconds())
		log.Error(ctx, "parameter validation failed", logging.String("error", err.Error()))
		return nil, err
	}

	report := e.preflight(ctx, motion)
	if !report.Passed {
		log.Warn(ctx, "preflight reported failures", logging.Any("failed", report.Failed()))
	}
	e.metrics.RecordPreflight(report)

	summary, err := SummarizeKinematics(p, motion)
	if err != nil {
		// Unreachable after a successful synthesis; kept as a guard.
		return nil, err
	}

	transmission := e.transmission(ctx, p, motion)
	if e.ref != nil && !transmission.Calibrated {
		e.metrics.IncCalibrationFallback()
	}
	e.metrics.SetResidualArcLenRMS(transmission.ResidualArcLenRMS)
	e.metrics.SetSampleCount(motion.Len())
	e.metrics.ObserveRun(string(p.Profile), "ok", time.Since(start).Seconds())

	log.Info(ctx, "synthesis complete",
		logging.Int("samples", motion.Len()),
		logging.Any("preflight_passed", report.Passed),
		logging.Any("calibrated", transmission.Calibrated),
	)

	return &model.SynthesisResult{
		Params:       p,
		Motion:       motion,
		Summary:      summary,
		Preflight:    report,
		Transmission: transmission,
	}, nil
}

func (e *Engine) synthesize(ctx context.Context, p model.UserParams) (model.MotionLawSamples, error) {
	_, span := e.tracer.Start(ctx, "engine.synthesize_motion_law")
	defer span.End()
	return SynthesizeMotionLaw(p)
}

func (e *Engine) preflight(ctx context.Context, motion model.MotionLawSamples) model.ValidationReport {
	_, span := e.tracer.Start(ctx, "engine.preflight")
	defer span.End()
	return PreflightCheck(motion)
}

func (e *Engine) transmission(ctx context.Context, p model.UserParams, motion model.MotionLawSamples) model.TransmissionAndPitch {
	ctx, span := e.tracer.Start(ctx, "engine.derive_transmission")
	defer span.End()
	return DeriveTransmission(ctx, p, motion, e.ref)
}
