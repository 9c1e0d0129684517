package core

import (
	"context"
	"math"
	"testing"

	"github.com/mhold3n/CamProV5-sub001/model"
)

func geometryParams(t *testing.T) (model.UserParams, model.MotionLawSamples) {
	t.Helper()
	p := symmetricRampParams()
	p.JournalRadiusMm = 10
	p.JournalPhaseBetaDeg = 0
	p.SliderAxisGammaDeg = 0
	motion, err := SynthesizeMotionLaw(p)
	if err != nil {
		t.Fatalf("SynthesizeMotionLaw: %v", err)
	}
	return p, motion
}

func TestGeometryRatioIsFiniteNormalizedPositive(t *testing.T) {
	p, motion := geometryParams(t)

	// The denominator sin(theta) crosses zero inside the sweep; the floor
	// must keep every sample finite anyway.
	result := DeriveTransmission(context.Background(), p, motion, nil)
	if result.Calibrated {
		t.Fatal("no provider supplied but result claims calibration")
	}
	if got, want := len(result.Ratio), motion.Len(); got != want {
		t.Fatalf("ratio length = %d, want %d", got, want)
	}

	sum := 0.0
	for _, pt := range result.Ratio {
		if math.IsNaN(pt.Ratio) || math.IsInf(pt.Ratio, 0) {
			t.Fatalf("non-finite ratio at theta=%v", pt.ThetaDeg)
		}
		if pt.Ratio <= 0 {
			t.Fatalf("non-positive ratio %v at theta=%v", pt.Ratio, pt.ThetaDeg)
		}
		sum += pt.Ratio
	}
	if mean := sum / float64(len(result.Ratio)); math.Abs(mean-1) > 1e-9 {
		t.Fatalf("mean ratio = %v, want 1 within 1e-9", mean)
	}
	if first, last := result.Ratio[0].Ratio, result.Ratio[len(result.Ratio)-1].Ratio; first != last {
		t.Fatalf("endpoint ratios differ: %v vs %v", first, last)
	}
}

func TestCalibratedRatioCollapsesForUniformReference(t *testing.T) {
	p, motion := geometryParams(t)

	n := motion.Len()
	curve := model.ReferenceCurve{
		ThetaDeg: make([]float64, n),
		PhiDeg:   make([]float64, n),
	}
	for k := 0; k < n; k++ {
		theta := motion.Samples[k].ThetaDeg
		curve.ThetaDeg[k] = theta
		curve.PhiDeg[k] = theta // perfectly uniform rotation
	}

	result := DeriveTransmission(context.Background(), p, motion, StaticReferenceProvider{Curve: curve})
	if !result.Calibrated {
		t.Fatal("matching reference curve was not used for calibration")
	}
	for _, pt := range result.Ratio {
		if math.Abs(pt.Ratio-1) > 1e-9 {
			t.Fatalf("uniform reference: ratio at theta=%v is %v, want 1", pt.ThetaDeg, pt.Ratio)
		}
	}
	if math.Abs(result.ResidualArcLenRMS) > 1e-9 {
		t.Fatalf("uniform ratio residual = %v, want ~0", result.ResidualArcLenRMS)
	}
}

func TestMismatchedReferenceFallsBackToGeometry(t *testing.T) {
	p, motion := geometryParams(t)

	curve := model.ReferenceCurve{
		ThetaDeg: []float64{0, 120, 240},
		PhiDeg:   []float64{0, 100, 260},
	}
	result := DeriveTransmission(context.Background(), p, motion, StaticReferenceProvider{Curve: curve})
	if result.Calibrated {
		t.Fatal("grid-mismatched reference curve must not calibrate")
	}
	if got, want := len(result.Ratio), motion.Len(); got != want {
		t.Fatalf("fallback ratio length = %d, want %d", got, want)
	}
}

func TestTinyTableDegradesToIdentity(t *testing.T) {
	motion := model.MotionLawSamples{
		StepDeg: 180,
		Samples: []model.MotionLawSample{{ThetaDeg: 0}, {ThetaDeg: 180}},
	}
	result := DeriveTransmission(context.Background(), model.DefaultUserParams(), motion, nil)
	for _, pt := range result.Ratio {
		if pt.Ratio != 1 {
			t.Fatalf("identity fallback ratio = %v, want exactly 1", pt.Ratio)
		}
	}
	if len(result.PitchPlanet) != 0 || len(result.PitchRing) != 0 {
		t.Fatal("identity fallback must not carry pitch curves")
	}
	if result.ResidualArcLenRMS != 0 {
		t.Fatalf("identity fallback residual = %v, want 0", result.ResidualArcLenRMS)
	}
}

func TestResidualIsDimensionlessAndBounded(t *testing.T) {
	p, motion := geometryParams(t)
	result := DeriveTransmission(context.Background(), p, motion, nil)
	if result.ResidualArcLenRMS < 0 || result.ResidualArcLenRMS >= 1 {
		t.Fatalf("residual = %v, want in [0,1)", result.ResidualArcLenRMS)
	}
}
