package core

import (
	"math"

	"github.com/mhold3n/CamProV5-sub001/model"
)

// Profile shape library: normalized ramp shapes p(u) on [0,1] with
// p(0)=0, p(1)=1 and zero slope at both ends, so velocity ramps built from
// them join dwells and constant-velocity segments without acceleration
// spikes. All functions clamp u into [0,1] and have no other failure mode.

func clampUnit(u float64) float64 {
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

// ProfileP evaluates the shape function p(u) for the given variant.
func ProfileP(profile model.RampProfile, u float64) float64 {
	u = clampUnit(u)
	switch profile {
	case model.ProfileCycloidal:
		return 0.5 * (1.0 - math.Cos(math.Pi*u))
	case model.ProfileS7:
		u4 := u * u * u * u
		return u4 * (35.0 + u*(-84.0+u*(70.0-20.0*u)))
	default: // S5
		u3 := u * u * u
		return u3 * (10.0 + u*(-15.0+6.0*u))
	}
}

// ProfileDP evaluates dp/du for the given variant.
func ProfileDP(profile model.RampProfile, u float64) float64 {
	u = clampUnit(u)
	switch profile {
	case model.ProfileCycloidal:
		return 0.5 * math.Pi * math.Sin(math.Pi*u)
	case model.ProfileS7:
		u3 := u * u * u
		return u3 * (140.0 + u*(-420.0+u*(420.0-140.0*u)))
	default: // S5
		u2 := u * u
		return u2 * (30.0 + u*(-60.0+30.0*u))
	}
}

// ProfileD2P evaluates d2p/du2. It is not needed by the synthesis itself;
// callers use it to inspect the curvature a variant carries at its ends.
func ProfileD2P(profile model.RampProfile, u float64) float64 {
	u = clampUnit(u)
	switch profile {
	case model.ProfileCycloidal:
		return 0.5 * math.Pi * math.Pi * math.Cos(math.Pi*u)
	case model.ProfileS7:
		u2 := u * u
		return u2 * (420.0 + u*(-1680.0+u*(2100.0-840.0*u)))
	default: // S5
		return u * (60.0 + u*(-180.0+120.0*u))
	}
}

// ProfileIntegral returns the mean value of p over [0,1], i.e. the area a
// full ramp contributes relative to a constant-velocity span of the same
// width. It is exactly 0.5 for all three variants, but keeping the closed
// forms makes the vUp solve independent of that coincidence.
func ProfileIntegral(profile model.RampProfile) float64 {
	switch profile {
	case model.ProfileCycloidal:
		// integral of 0.5*(1 - cos(pi u)) over [0,1]
		return 0.5
	case model.ProfileS7:
		// integral of 35u^4 - 84u^5 + 70u^6 - 20u^7 = 7 - 14 + 10 - 2.5
		return 0.5
	default:
		// integral of 10u^3 - 15u^4 + 6u^5 = 2.5 - 3 + 1
		return 0.5
	}
}
