package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mhold3n/CamProV5-sub001/model"
)

// EngineCollector bundles Prometheus metrics for the synthesis engine and
// provides a ready-made /metrics handler. All recording methods are nil-safe
// so callers can run without metrics wired at all.
type EngineCollector struct {
	gatherer prometheus.Gatherer

	SynthRuns     *prometheus.CounterVec
	SynthDuration *prometheus.HistogramVec

	PreflightFailures    *prometheus.CounterVec
	CalibrationFallbacks prometheus.Counter

	ResidualArcLen prometheus.Gauge
	MotionSamples  prometheus.Gauge
}

// NewEngineCollector registers engine Prometheus metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewEngineCollector(reg prometheus.Registerer) (*EngineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "synthesis_runs_total",
		Help: "Total number of synthesis runs, labeled by ramp profile and outcome.",
	}, []string{"profile", "outcome"})
	runs, err := registerCounterVec(reg, runs, "synthesis_runs_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "synthesis_duration_seconds",
		Help:    "End-to-end synthesis latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"profile"})
	duration, err = registerHistogramVec(reg, duration, "synthesis_duration_seconds")
	if err != nil {
		return nil, err
	}

	preflight := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "preflight_failures_total",
		Help: "Total number of preflight check failures, labeled by check name.",
	}, []string{"check"})
	preflight, err = registerCounterVec(reg, preflight, "preflight_failures_total")
	if err != nil {
		return nil, err
	}

	fallbacks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "calibration_fallbacks_total",
		Help: "Runs where a reference provider was configured but the geometry estimate was used instead.",
	}), "calibration_fallbacks_total")
	if err != nil {
		return nil, err
	}

	residual, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "transmission_residual_arclen_rms",
		Help: "Normalized arc-length residual of the most recent transmission derivation.",
	}), "transmission_residual_arclen_rms")
	if err != nil {
		return nil, err
	}
	samples, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "motion_table_samples",
		Help: "Sample count of the most recent synthesized motion-law table.",
	}), "motion_table_samples")
	if err != nil {
		return nil, err
	}

	return &EngineCollector{
		gatherer:             gatherer,
		SynthRuns:            runs,
		SynthDuration:        duration,
		PreflightFailures:    preflight,
		CalibrationFallbacks: fallbacks,
		ResidualArcLen:       residual,
		MotionSamples:        samples,
	}, nil
}

// ObserveRun records one synthesis attempt with its outcome and duration.
// The duration histogram only tracks successful runs so failed validations
// do not skew the latency distribution.
func (c *EngineCollector) ObserveRun(profile, outcome string, seconds float64) {
	if c == nil {
		return
	}
	if c.SynthRuns != nil {
		c.SynthRuns.WithLabelValues(profile, outcome).Inc()
	}
	if outcome == "ok" && c.SynthDuration != nil {
		c.SynthDuration.WithLabelValues(profile).Observe(seconds)
	}
}

// RecordPreflight bumps the failure counter for every check that did not pass.
func (c *EngineCollector) RecordPreflight(report model.ValidationReport) {
	if c == nil || c.PreflightFailures == nil {
		return
	}
	for _, check := range report.Checks {
		if !check.Passed {
			c.PreflightFailures.WithLabelValues(check.Name).Inc()
		}
	}
}

// IncCalibrationFallback records a run that wanted calibration but fell back
// to the geometry estimate.
func (c *EngineCollector) IncCalibrationFallback() {
	if c == nil || c.CalibrationFallbacks == nil {
		return
	}
	c.CalibrationFallbacks.Inc()
}

// SetResidualArcLenRMS publishes the residual of the latest run.
func (c *EngineCollector) SetResidualArcLenRMS(v float64) {
	if c == nil || c.ResidualArcLen == nil {
		return
	}
	c.ResidualArcLen.Set(v)
}

// SetSampleCount publishes the table size of the latest run.
func (c *EngineCollector) SetSampleCount(n int) {
	if c == nil || c.MotionSamples == nil {
		return
	}
	c.MotionSamples.Set(float64(n))
}

// Handler exposes a ready-to-use /metrics handler.
func (c *EngineCollector) Handler() http.Handler {
	gatherer := prometheus.Gatherer(prometheus.DefaultGatherer)
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
