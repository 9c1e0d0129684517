package core

import (
	"math"

	"github.com/mhold3n/CamProV5-sub001/model"
)

// SummarizeKinematics computes the per-revolution statistics shown next to
// the plots: channel extrema, RMS acceleration, the two constant-velocity
// magnitudes, and the resolved segment table.
func SummarizeKinematics(p model.UserParams, motion model.MotionLawSamples) (model.KinematicSummary, error) {
	vUp, vDown, err := VelocityMagnitudes(p)
	if err != nil {
		return model.KinematicSummary{}, err
	}

	var maxX, maxV, maxA, sumA2 float64
	for _, s := range motion.Samples {
		if s.XMm > maxX {
			maxX = s.XMm
		}
		if av := math.Abs(s.VMmPerOmega); av > maxV {
			maxV = av
		}
		if aa := math.Abs(s.AMmPerOmega2); aa > maxA {
			maxA = aa
		}
		sumA2 += s.AMmPerOmega2 * s.AMmPerOmega2
	}
	rmsA := 0.0
	if n := motion.Len(); n > 0 {
		rmsA = math.Sqrt(sumA2 / float64(n))
	}

	return model.KinematicSummary{
		MaxDisplacementMm: maxX,
		MaxVelocity:       maxV,
		MaxAcceleration:   maxA,
		RMSAcceleration:   rmsA,
		VUpMmPerOmega:     vUp,
		VDownMmPerOmega:   vDown,
		Segments:          computeLayout(p).segments(),
	}, nil
}
