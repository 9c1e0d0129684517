package core

import (
	"testing"

	"github.com/mhold3n/CamProV5-sub001/model"
)

func TestPitchCurvesKeepClearance(t *testing.T) {
	p := model.DefaultUserParams()
	planet, ring := SynthesizePitchCurves(p)

	if len(planet) != pitchCurvePoints || len(ring) != pitchCurvePoints {
		t.Fatalf("curve lengths = (%d, %d), want %d", len(planet), len(ring), pitchCurvePoints)
	}
	for i := range planet {
		if planet[i].S != ring[i].S {
			t.Fatalf("parameter grids diverge at %d: %v vs %v", i, planet[i].S, ring[i].S)
		}
		if ring[i].RadiusMm < planet[i].RadiusMm+p.ClearanceMm {
			t.Fatalf("clearance violated at s=%v: ring=%v planet=%v", planet[i].S, ring[i].RadiusMm, planet[i].RadiusMm)
		}
	}
	if planet[0].S != 0 || planet[len(planet)-1].S != 1 {
		t.Fatalf("parameter range = [%v,%v], want [0,1]", planet[0].S, planet[len(planet)-1].S)
	}
}

func TestPitchPlanetNeverCollapses(t *testing.T) {
	p := model.DefaultUserParams()
	p.CamR0Mm = -5
	p.CamKPerUnitMm = 0

	planet, ring := SynthesizePitchCurves(p)
	for i := range planet {
		if planet[i].RadiusMm < pitchRadiusEps {
			t.Fatalf("planet radius %v below floor at s=%v", planet[i].RadiusMm, planet[i].S)
		}
		if ring[i].RadiusMm < planet[i].RadiusMm {
			t.Fatalf("ring below planet at s=%v", planet[i].S)
		}
	}
}

func TestPitchNegativeClearanceTreatedAsZero(t *testing.T) {
	p := model.DefaultUserParams()
	p.ClearanceMm = -3
	p.CenterBiasMm = 0
	p.CenterScaleMm = 0

	planet, ring := SynthesizePitchCurves(p)
	for i := range planet {
		if ring[i].RadiusMm < planet[i].RadiusMm {
			t.Fatalf("negative clearance pushed ring below planet at s=%v", planet[i].S)
		}
	}
}
