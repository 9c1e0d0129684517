package core

import (
	"math"

	"github.com/mhold3n/CamProV5-sub001/model"
)

// pitchCurvePoints is the fixed resolution of the prototype pitch curves.
const pitchCurvePoints = 101

// pitchRadiusEps keeps the planet prototype strictly positive.
const pitchRadiusEps = 1e-6

// SynthesizePitchCurves produces the monotone-affine planet and ring pitch
// prototypes over s in [0,1]. These are illustrative envelope curves, not
// the result of any conjugacy solve: the planet follows r0 + k*s floored at
// a small epsilon, and the ring follows bias + scale*s but never dips below
// the planet plus the configured clearance.
func SynthesizePitchCurves(p model.UserParams) (planet, ring []model.PitchPoint) {
	planet = make([]model.PitchPoint, pitchCurvePoints)
	ring = make([]model.PitchPoint, pitchCurvePoints)
	clearance := math.Max(0, p.ClearanceMm)
	for i := 0; i < pitchCurvePoints; i++ {
		s := float64(i) / float64(pitchCurvePoints-1)
		rp := math.Max(pitchRadiusEps, p.CamR0Mm+p.CamKPerUnitMm*s)
		rr := math.Max(rp+clearance, p.CenterBiasMm+p.CenterScaleMm*s)
		planet[i] = model.PitchPoint{S: s, RadiusMm: rp}
		ring[i] = model.PitchPoint{S: s, RadiusMm: rr}
	}
	return planet, ring
}
