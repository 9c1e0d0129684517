package model

// MotionLawSample is one row of the synthesized displacement table.
// Velocity and acceleration are normalized per unit angular rate, so the
// table is valid for any RPM the caller later applies.
type MotionLawSample struct {
	ThetaDeg     float64 `json:"theta_deg"`
	XMm          float64 `json:"x_mm"`
	VMmPerOmega  float64 `json:"v_mm_per_omega"`
	AMmPerOmega2 float64 `json:"a_mm_per_omega2"`
}

// MotionLawSamples is one full periodic revolution on a uniform grid.
// Invariants: Samples[0].ThetaDeg == 0, theta strictly increasing,
// Samples[n-1].ThetaDeg == (n-1)*StepDeg < 360. The sample at 360 degrees
// is implied equal to the sample at 0 and never stored.
type MotionLawSamples struct {
	StepDeg float64           `json:"step_deg"`
	Samples []MotionLawSample `json:"samples"`
}

// Len returns the number of stored samples.
func (m MotionLawSamples) Len() int { return len(m.Samples) }

// Velocities copies out the velocity channel.
func (m MotionLawSamples) Velocities() []float64 {
	v := make([]float64, len(m.Samples))
	for i, s := range m.Samples {
		v[i] = s.VMmPerOmega
	}
	return v
}

// SegmentSpan names one angular segment of the motion cycle.
type SegmentSpan struct {
	Name     string  `json:"name"`
	StartDeg float64 `json:"start_deg"`
	EndDeg   float64 `json:"end_deg"`
}

// KinematicSummary collects the per-revolution statistics the diagnostics
// and export collaborators display next to the plots.
type KinematicSummary struct {
	MaxDisplacementMm  float64       `json:"max_displacement_mm"`
	MaxVelocity        float64       `json:"max_velocity"`
	MaxAcceleration    float64       `json:"max_acceleration"`
	RMSAcceleration    float64       `json:"rms_acceleration"`
	VUpMmPerOmega      float64       `json:"v_up_mm_per_omega"`
	VDownMmPerOmega    float64       `json:"v_down_mm_per_omega"`
	Segments           []SegmentSpan `json:"segments"`
}
