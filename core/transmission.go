package core

import (
	"context"
	"math"

	"github.com/mhold3n/CamProV5-sub001/model"
)

// singularityFloorFactor floors the geometry denominator at this fraction
// of the journal radius, sign preserved, so the estimate stays bounded when
// the slider axis passes through the journal phase angle.
const singularityFloorFactor = 0.15

// ratioFloor is the small positive clamp applied to the ratio curve.
const ratioFloor = 1e-6

// ratioSmoothHalfWidth is the half-width of the circular moving average
// applied to the geometry estimate (±5 samples).
const ratioSmoothHalfWidth = 5

// DeriveTransmission turns the synthesized velocity channel and the
// mechanism geometry into an instantaneous transmission-ratio curve plus
// prototype pitch curves. When a reference curve provider is supplied and
// yields a usable phi(theta) table for these parameters, the ratio curve is
// calibrated from it instead; any failure along that path silently falls
// back to the geometry estimate. The function never fails: if the stage
// produces non-finite values anywhere it degrades to an identity result
// (ratio = 1, empty pitch curves, zero residual).
func DeriveTransmission(ctx context.Context, p model.UserParams, motion model.MotionLawSamples, ref ReferenceCurveProvider) model.TransmissionAndPitch {
	n := motion.Len()
	if n < 3 {
		return identityTransmission(motion)
	}

	ratio := geometryRatio(p, motion)

	calibrated := false
	if ref != nil {
		if cal, ok := calibratedRatio(ctx, p, motion, ref); ok {
			ratio = cal
			calibrated = true
		}
	}

	for _, r := range ratio {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return identityTransmission(motion)
		}
	}

	planet, ring := SynthesizePitchCurves(p)

	points := make([]model.RatioPoint, n)
	for k := 0; k < n; k++ {
		points[k] = model.RatioPoint{ThetaDeg: motion.Samples[k].ThetaDeg, Ratio: ratio[k]}
	}
	return model.TransmissionAndPitch{
		Ratio:             points,
		PitchPlanet:       planet,
		PitchRing:         ring,
		ResidualArcLenRMS: residualArcLenRMS(ratio, motion.StepDeg),
		Calibrated:        calibrated,
	}
}

// geometryRatio estimates i(theta) from the velocity channel and the
// journal geometry: dpsi/dalpha = -v / (R*sin((theta+beta) - gamma)), with
// the denominator floored away from the singularity.
func geometryRatio(p model.UserParams, motion model.MotionLawSamples) []float64 {
	n := motion.Len()
	radius := p.JournalRadiusMm
	floor := singularityFloorFactor * radius

	raw := make([]float64, n)
	for k, s := range motion.Samples {
		angle := (s.ThetaDeg + p.JournalPhaseBetaDeg - p.SliderAxisGammaDeg) * degToRad
		den := radius * math.Sin(angle)
		if math.Abs(den) < floor {
			den = math.Copysign(floor, den)
		}
		raw[k] = 1.0 - s.VMmPerOmega/den
	}

	smoothed := smoothCircular(raw, ratioSmoothHalfWidth)
	return finishRatio(smoothed)
}

// calibratedRatio derives the ratio curve from an externally supplied
// reference angular curve phi(theta). It returns ok=false whenever the
// provider misses, errors, or hands back a table that does not match the
// sampling grid; the caller then keeps the geometry estimate.
func calibratedRatio(ctx context.Context, p model.UserParams, motion model.MotionLawSamples, ref ReferenceCurveProvider) ([]float64, bool) {
	curve, ok, err := ref.ReferenceCurve(ctx, p)
	if err != nil || !ok {
		return nil, false
	}
	n := motion.Len()
	if len(curve.PhiDeg) != n || len(curve.ThetaDeg) != n {
		return nil, false
	}

	// Per-sample angular rate via centered differences over the circular
	// grid, with explicit wraparound correction for the 0/360 jump.
	rate := make([]float64, n)
	for k := 0; k < n; k++ {
		ip := (k + 1) % n
		im := (k + n - 1) % n
		dphi := curve.PhiDeg[ip] - curve.PhiDeg[im]
		if dphi < -180 {
			dphi += 360
		} else if dphi > 180 {
			dphi -= 360
		}
		rate[k] = dphi / (2.0 * motion.StepDeg)
	}

	mean := meanOf(rate)
	if mean <= 0 || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, false
	}
	for k := range rate {
		rate[k] /= mean
	}
	return finishRatio(rate), true
}

// finishRatio applies the shared tail of both estimation paths: positive
// clamp, periodic endpoint equality, then exact mean-1 normalization.
func finishRatio(ratio []float64) []float64 {
	n := len(ratio)
	for k := range ratio {
		if ratio[k] < ratioFloor {
			ratio[k] = ratioFloor
		}
	}
	ratio[n-1] = ratio[0]
	if mean := meanOf(ratio); mean > 0 {
		for k := range ratio {
			ratio[k] /= mean
		}
	}
	return ratio
}

func smoothCircular(y []float64, halfWidth int) []float64 {
	n := len(y)
	out := make([]float64, n)
	window := float64(2*halfWidth + 1)
	for k := 0; k < n; k++ {
		sum := 0.0
		for j := -halfWidth; j <= halfWidth; j++ {
			sum += y[(k+j+n)%n]
		}
		out[k] = sum / window
	}
	return out
}

func meanOf(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	return sum / float64(len(y))
}

// residualArcLenRMS compares the normalized cumulative arc length of a
// uniform cam angle sweep against the ratio-weighted ring angle sweep.
// Both curves are normalized to their own totals, so the RMS difference is
// a dimensionless design-quality metric.
func residualArcLenRMS(ratio []float64, stepDeg float64) float64 {
	n := len(ratio)
	if n == 0 {
		return 0
	}
	camCum := make([]float64, n)
	ringCum := make([]float64, n)
	cam, ring := 0.0, 0.0
	for k := 0; k < n; k++ {
		cam += stepDeg
		ring += ratio[k] * stepDeg
		camCum[k] = cam
		ringCum[k] = ring
	}
	if cam <= 0 || ring <= 0 {
		return 0
	}
	sum := 0.0
	for k := 0; k < n; k++ {
		d := camCum[k]/cam - ringCum[k]/ring
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

// identityTransmission is the degraded-but-valid fallback: a flat unit
// ratio parallel to the motion table, no pitch curves, zero residual.
func identityTransmission(motion model.MotionLawSamples) model.TransmissionAndPitch {
	points := make([]model.RatioPoint, motion.Len())
	for k, s := range motion.Samples {
		points[k] = model.RatioPoint{ThetaDeg: s.ThetaDeg, Ratio: 1.0}
	}
	return model.TransmissionAndPitch{Ratio: points}
}
