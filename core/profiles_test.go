package core

import (
	"math"
	"testing"

	"github.com/mhold3n/CamProV5-sub001/model"
)

var allProfiles = []model.RampProfile{
	model.ProfileCycloidal,
	model.ProfileS5,
	model.ProfileS7,
}

func TestProfileBoundaryValues(t *testing.T) {
	for _, profile := range allProfiles {
		if got := ProfileP(profile, 0); got != 0 {
			t.Fatalf("%s: p(0) = %v, want 0", profile, got)
		}
		if got := ProfileP(profile, 1); math.Abs(got-1) > 1e-15 {
			t.Fatalf("%s: p(1) = %v, want 1", profile, got)
		}
		if got := ProfileDP(profile, 0); math.Abs(got) > 1e-15 {
			t.Fatalf("%s: dp(0) = %v, want 0", profile, got)
		}
		if got := ProfileDP(profile, 1); math.Abs(got) > 1e-12 {
			t.Fatalf("%s: dp(1) = %v, want 0", profile, got)
		}
	}
}

func TestProfileMonotonic(t *testing.T) {
	const steps = 1000
	for _, profile := range allProfiles {
		prev := ProfileP(profile, 0)
		for i := 1; i <= steps; i++ {
			u := float64(i) / steps
			cur := ProfileP(profile, u)
			if cur < prev-1e-15 {
				t.Fatalf("%s: p not monotone at u=%v: %v < %v", profile, u, cur, prev)
			}
			prev = cur
		}
	}
}

func TestProfileClampsOutOfRange(t *testing.T) {
	for _, profile := range allProfiles {
		if got := ProfileP(profile, -0.5); got != 0 {
			t.Fatalf("%s: p(-0.5) = %v, want clamp to p(0)=0", profile, got)
		}
		if got := ProfileP(profile, 1.5); math.Abs(got-1) > 1e-15 {
			t.Fatalf("%s: p(1.5) = %v, want clamp to p(1)=1", profile, got)
		}
	}
}

// The vUp solve relies on the mean value of p over [0,1]; cross-check the
// closed forms against a fine midpoint sum.
func TestProfileIntegralMatchesNumeric(t *testing.T) {
	const steps = 200000
	for _, profile := range allProfiles {
		sum := 0.0
		for i := 0; i < steps; i++ {
			u := (float64(i) + 0.5) / steps
			sum += ProfileP(profile, u)
		}
		numeric := sum / steps
		if got := ProfileIntegral(profile); math.Abs(got-numeric) > 1e-9 {
			t.Fatalf("%s: ProfileIntegral = %v, numeric = %v", profile, got, numeric)
		}
	}
}

// S5 has zero curvature at both ends, S7 additionally zero jerk; cycloidal
// carries nonzero curvature at its ends, which is why joints built from it
// are only C1.
func TestProfileSecondDerivativeEndpoints(t *testing.T) {
	if got := ProfileD2P(model.ProfileS5, 0); got != 0 {
		t.Fatalf("s5: d2p(0) = %v, want 0", got)
	}
	if got := ProfileD2P(model.ProfileS5, 1); math.Abs(got) > 1e-12 {
		t.Fatalf("s5: d2p(1) = %v, want 0", got)
	}
	if got := ProfileD2P(model.ProfileS7, 0); got != 0 {
		t.Fatalf("s7: d2p(0) = %v, want 0", got)
	}
	if got := ProfileD2P(model.ProfileS7, 1); math.Abs(got) > 1e-11 {
		t.Fatalf("s7: d2p(1) = %v, want 0", got)
	}
	if got := ProfileD2P(model.ProfileCycloidal, 0); got == 0 {
		t.Fatal("cycloidal: d2p(0) = 0, want nonzero")
	}
}

func TestProfileDerivativeMatchesFiniteDifference(t *testing.T) {
	const h = 1e-6
	for _, profile := range allProfiles {
		for _, u := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
			fd := (ProfileP(profile, u+h) - ProfileP(profile, u-h)) / (2 * h)
			if got := ProfileDP(profile, u); math.Abs(got-fd) > 1e-5 {
				t.Fatalf("%s: dp(%v) = %v, finite difference = %v", profile, u, got, fd)
			}
		}
	}
}
