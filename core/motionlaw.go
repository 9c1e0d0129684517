package core

import (
	"fmt"
	"math"

	"github.com/mhold3n/CamProV5-sub001/model"
)

const degToRad = math.Pi / 180.0

// segmentKind indexes the eight segments of one motion cycle in order.
type segmentKind int

const (
	segDwellTdc segmentKind = iota
	segRampAfterTdc
	segCVUp
	segRampBeforeBdc
	segDwellBdc
	segRampAfterBdc
	segCVDown
	segRampBeforeTdc
)

var segmentNames = [...]string{
	"dwell_tdc",
	"ramp_after_tdc",
	"cv_compression",
	"ramp_before_bdc",
	"dwell_bdc",
	"ramp_after_bdc",
	"cv_expansion",
	"ramp_before_tdc",
}

// cycleLayout holds the nine boundary angles of the eight-segment cycle:
// bounds[0] = 0 and bounds[8] = 360 when the fixed spans fit the revolution.
// Boundaries are clamped into [0,360]; when the fixed budget exceeds 360 the
// free constant-velocity spans collapse to zero and trailing segments pile
// up at 360 with zero width.
type cycleLayout struct {
	bounds [9]float64
}

func computeLayout(p model.UserParams) cycleLayout {
	dTdc := math.Max(0, p.DwellTdcDeg)
	dBdc := math.Max(0, p.DwellBdcDeg)
	rAt := math.Max(0, p.RampAfterTdcDeg)
	rBb := math.Max(0, p.RampBeforeBdcDeg)
	rAb := math.Max(0, p.RampAfterBdcDeg)
	rBt := math.Max(0, p.RampBeforeTdcDeg)

	fixed := dTdc + dBdc + rAt + rBb + rAb + rBt
	free := math.Max(0, 360.0-fixed)
	cvUp := free * p.UpFraction
	cvDown := free * (1.0 - p.UpFraction)

	var l cycleLayout
	spans := [8]float64{dTdc, rAt, cvUp, rBb, dBdc, rAb, cvDown, rBt}
	acc := 0.0
	l.bounds[0] = 0
	for i, s := range spans {
		acc += s
		l.bounds[i+1] = math.Min(acc, 360.0)
	}
	return l
}

// segmentAt classifies an angle in [0,360). Samples sitting exactly on a
// boundary belong to the following segment.
func (l cycleLayout) segmentAt(thetaDeg float64) segmentKind {
	for i := 0; i < 8; i++ {
		if thetaDeg < l.bounds[i+1] {
			return segmentKind(i)
		}
	}
	return segRampBeforeTdc
}

// spanDeg returns the width of a segment in degrees.
func (l cycleLayout) spanDeg(seg segmentKind) float64 {
	return l.bounds[seg+1] - l.bounds[seg]
}

// isBoundary reports whether thetaDeg coincides with an internal segment
// boundary, where a designed velocity/acceleration discontinuity is legal.
func (l cycleLayout) isBoundary(thetaDeg float64) bool {
	for i := 1; i < 8; i++ {
		if math.Abs(thetaDeg-l.bounds[i]) < 1e-9 {
			return true
		}
	}
	return false
}

// rampU returns the fractional progress of thetaDeg through a segment,
// clamped to [0,1]. Zero-width segments report 0.
func (l cycleLayout) rampU(seg segmentKind, thetaDeg float64) float64 {
	span := l.spanDeg(seg)
	if span <= 0 {
		return 0
	}
	return clampUnit((thetaDeg - l.bounds[seg]) / span)
}

// segments renders the layout as named spans for the kinematic summary.
func (l cycleLayout) segments() []model.SegmentSpan {
	out := make([]model.SegmentSpan, 0, 8)
	for i := 0; i < 8; i++ {
		out = append(out, model.SegmentSpan{
			Name:     segmentNames[i],
			StartDeg: l.bounds[i],
			EndDeg:   l.bounds[i+1],
		})
	}
	return out
}

// solveVUp picks the compression-side velocity magnitude so the stroke
// equals the angle-integral of velocity across the compression half, using
// the ramp mean value for the two ramp contributions.
func solveVUp(p model.UserParams, l cycleLayout) float64 {
	integ := ProfileIntegral(p.Profile)
	denom := l.spanDeg(segRampAfterTdc)*degToRad*integ +
		l.spanDeg(segCVUp)*degToRad +
		l.spanDeg(segRampBeforeBdc)*degToRad*(1.0-integ)
	if denom <= 0 {
		return 0
	}
	return p.StrokeMm / denom
}

// velocityShape splits the per-sample velocity into the compression-side
// value (already scaled by vUp) and the positive expansion-side unit shape
// that a later vDn scale multiplies.
func velocityShape(p model.UserParams, l cycleLayout, vUp, thetaDeg float64) (comp, expShape float64) {
	switch l.segmentAt(thetaDeg) {
	case segRampAfterTdc:
		return vUp * ProfileP(p.Profile, l.rampU(segRampAfterTdc, thetaDeg)), 0
	case segCVUp:
		return vUp, 0
	case segRampBeforeBdc:
		return vUp * (1.0 - ProfileP(p.Profile, l.rampU(segRampBeforeBdc, thetaDeg))), 0
	case segRampAfterBdc:
		return 0, ProfileP(p.Profile, l.rampU(segRampAfterBdc, thetaDeg))
	case segCVDown:
		return 0, 1.0
	case segRampBeforeTdc:
		return 0, 1.0 - ProfileP(p.Profile, l.rampU(segRampBeforeTdc, thetaDeg))
	default: // dwells
		return 0, 0
	}
}

// acceleration evaluates the analytic angle-derivative of velocity at
// thetaDeg with both magnitudes known. Dwells and constant-velocity spans
// are zero; zero-width ramps contribute a safe zero instead of dividing by
// their span.
func acceleration(p model.UserParams, l cycleLayout, vUp, vDn, thetaDeg float64) float64 {
	seg := l.segmentAt(thetaDeg)
	spanRad := l.spanDeg(seg) * degToRad
	if spanRad <= 0 {
		return 0
	}
	dp := ProfileDP(p.Profile, l.rampU(seg, thetaDeg))
	switch seg {
	case segRampAfterTdc:
		return vUp * dp / spanRad
	case segRampBeforeBdc:
		return -vUp * dp / spanRad
	case segRampAfterBdc:
		return -vDn * dp / spanRad
	case segRampBeforeTdc:
		return vDn * dp / spanRad
	default:
		return 0
	}
}

// trapezoidCircular integrates y over one full revolution with the
// trapezoidal rule, including the wrap interval from the last sample back
// to the (implied) first.
func trapezoidCircular(y []float64, stepRad float64) float64 {
	n := len(y)
	sum := 0.0
	for k := 0; k < n; k++ {
		sum += 0.5 * (y[k] + y[(k+1)%n]) * stepRad
	}
	return sum
}

// SynthesizeMotionLaw builds the periodic displacement/velocity/acceleration
// table for one revolution of the eight-segment cycle and applies the
// continuity correction before returning. The result is a fresh value on
// every call; nothing is cached or shared.
func SynthesizeMotionLaw(p model.UserParams) (model.MotionLawSamples, error) {
	if err := p.Validate(); err != nil {
		return model.MotionLawSamples{}, err
	}

	n := p.SampleCount()
	stepRad := p.StepDeg * degToRad
	l := computeLayout(p)
	vUp := solveVUp(p, l)

	theta := make([]float64, n)
	comp := make([]float64, n)
	expShape := make([]float64, n)
	for k := 0; k < n; k++ {
		theta[k] = float64(k) * p.StepDeg
		comp[k], expShape[k] = velocityShape(p, l, vUp, theta[k])
	}

	// vDn balances the discrete trapezoidal sums so the table returns to
	// its starting displacement over one full revolution, grid and all.
	vDn := 0.0
	if expArea := trapezoidCircular(expShape, stepRad); expArea > 0 {
		vDn = trapezoidCircular(comp, stepRad) / expArea
	}

	v := make([]float64, n)
	a := make([]float64, n)
	for k := 0; k < n; k++ {
		v[k] = comp[k] - vDn*expShape[k]
		a[k] = acceleration(p, l, vUp, vDn, theta[k])
	}

	x := make([]float64, n)
	for k := 1; k < n; k++ {
		x[k] = x[k-1] + 0.5*(v[k-1]+v[k])*stepRad
	}

	applyContinuityCorrection(p, l, theta, x, v, a)

	samples := make([]model.MotionLawSample, n)
	for k := 0; k < n; k++ {
		samples[k] = model.MotionLawSample{
			ThetaDeg:     theta[k],
			XMm:          x[k],
			VMmPerOmega:  v[k],
			AMmPerOmega2: a[k],
		}
	}
	return model.MotionLawSamples{StepDeg: p.StepDeg, Samples: samples}, nil
}

// VelocityMagnitudes recomputes the two constant-velocity magnitudes for a
// parameter set without building the full table. vDown is reported as the
// positive magnitude of the expansion-side velocity.
func VelocityMagnitudes(p model.UserParams) (vUp, vDown float64, err error) {
	if err := p.Validate(); err != nil {
		return 0, 0, fmt.Errorf("velocity magnitudes: %w", err)
	}
	n := p.SampleCount()
	stepRad := p.StepDeg * degToRad
	l := computeLayout(p)
	vUp = solveVUp(p, l)

	comp := make([]float64, n)
	expShape := make([]float64, n)
	for k := 0; k < n; k++ {
		comp[k], expShape[k] = velocityShape(p, l, vUp, float64(k)*p.StepDeg)
	}
	if expArea := trapezoidCircular(expShape, stepRad); expArea > 0 {
		vDown = trapezoidCircular(comp, stepRad) / expArea
	}
	return vUp, vDown, nil
}
