package model

// RatioPoint is one (cam angle, instantaneous transmission ratio) pair.
type RatioPoint struct {
	ThetaDeg float64 `json:"theta_deg"`
	Ratio    float64 `json:"ratio"`
}

// PitchPoint is one (normalized parameter, radius) pair of a pitch curve.
type PitchPoint struct {
	S        float64 `json:"s"`
	RadiusMm float64 `json:"radius_mm"`
}

// TransmissionAndPitch bundles the instantaneous transmission-ratio curve
// with the prototype pitch curves derived from the same parameter set.
// Invariants: mean(Ratio) == 1 within 1e-9, Ratio[last] == Ratio[0],
// Ratio > 0 everywhere, and ring radius >= planet radius + clearance for
// every s. ResidualArcLenRMS is a design-quality metric, not a gate.
type TransmissionAndPitch struct {
	Ratio             []RatioPoint `json:"ratio"`
	PitchPlanet       []PitchPoint `json:"pitch_planet"`
	PitchRing         []PitchPoint `json:"pitch_ring"`
	ResidualArcLenRMS float64      `json:"residual_arc_len_rms"`
	// Calibrated reports whether the curve came from an external reference
	// table rather than the geometry estimate.
	Calibrated bool `json:"calibrated"`
}

// ReferenceCurve is an externally supplied angular curve phi(theta) used to
// calibrate the transmission ratio. Both slices share one index.
type ReferenceCurve struct {
	ThetaDeg []float64 `json:"theta_deg"`
	PhiDeg   []float64 `json:"phi_deg"`
}

// SynthesisResult is the complete output of one engine invocation.
type SynthesisResult struct {
	Params       UserParams           `json:"params"`
	Motion       MotionLawSamples     `json:"motion"`
	Summary      KinematicSummary     `json:"summary"`
	Preflight    ValidationReport     `json:"preflight"`
	Transmission TransmissionAndPitch `json:"transmission"`
}
