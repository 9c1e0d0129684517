package core

import (
	"fmt"
	"math"

	"github.com/mhold3n/CamProV5-sub001/model"
)

// PreflightCheck inspects a produced motion-law table for structural and
// numerical soundness. It is stateless and has no side effects: the report
// lists every named check with a pass flag and detail text, and the caller
// decides whether any failure is fatal.
func PreflightCheck(table model.MotionLawSamples) model.ValidationReport {
	var checks []model.ValidationCheck
	add := func(name string, passed bool, detail string) {
		checks = append(checks, model.ValidationCheck{Name: name, Passed: passed, Detail: detail})
	}

	n := table.Len()
	add("sample_count", n >= 3, fmt.Sprintf("n=%d", n))

	monotonic := n > 0 && table.Samples[0].ThetaDeg == 0
	for i := 1; i < n; i++ {
		if table.Samples[i].ThetaDeg <= table.Samples[i-1].ThetaDeg {
			monotonic = false
			break
		}
	}
	if monotonic && n > 0 && table.Samples[n-1].ThetaDeg >= 360 {
		monotonic = false
	}
	add("theta_monotonic", monotonic, "theta[0]=0, strictly increasing, < 360")

	stepOK := false
	if table.StepDeg > 0 {
		ratio := 360.0 / table.StepDeg
		stepOK = math.Abs(ratio-math.Round(ratio)) <= 1e-9
	}
	add("step_divides_revolution", stepOK, fmt.Sprintf("step=%v", table.StepDeg))

	finite := true
	for _, s := range table.Samples {
		for _, val := range [...]float64{s.ThetaDeg, s.XMm, s.VMmPerOmega, s.AMmPerOmega2} {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				finite = false
			}
		}
	}
	add("finite_values", finite, "no NaN or Inf in any channel")

	if n >= 3 {
		x := make([]float64, n)
		v := make([]float64, n)
		a := make([]float64, n)
		for i, s := range table.Samples {
			x[i], v[i], a[i] = s.XMm, s.VMmPerOmega, s.AMmPerOmega2
		}
		lastStep := table.Samples[n-1].ThetaDeg - table.Samples[n-2].ThetaDeg
		if lastStep > 0 {
			g := (360.0 - table.Samples[n-1].ThetaDeg) / lastStep
			add(wrapCheck("wrap_continuity_x", g, x))
			add(wrapCheck("wrap_continuity_v", g, v))
			add(wrapCheck("wrap_continuity_a", g, a))
		} else {
			add("wrap_continuity_x", false, "degenerate final step")
		}
	}

	passed := true
	for _, c := range checks {
		if !c.Passed {
			passed = false
			break
		}
	}
	return model.ValidationReport{Checks: checks, Passed: passed}
}

// wrapCheck extrapolates a channel from its last two samples to 360 degrees
// and compares against sample 0. The tolerance scales with the largest
// magnitude seen in the channel on top of an absolute floor, so flat and
// large-amplitude channels are judged fairly.
func wrapCheck(name string, g float64, y []float64) (string, bool, string) {
	n := len(y)
	extrap := (1.0+g)*y[n-1] - g*y[n-2]
	diff := math.Abs(extrap - y[0])
	tol := math.Max(1e-11, 1e-9*maxAbs(y))
	return name, diff <= tol, fmt.Sprintf("|extrap-first|=%.3e tol=%.3e", diff, tol)
}
