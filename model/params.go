package model

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// UserParams is the full parameter set for one synthesis call: the angular
// layout of the eight-segment motion cycle plus the geometry constants used
// only by the transmission/pitch stage. All angles are degrees; all lengths
// are millimetres. Values are copied on every call, so a UserParams may be
// reused freely across goroutines.
type UserParams struct {
	// Motion law.
	StrokeMm         float64     `json:"stroke_mm"`
	DwellTdcDeg      float64     `json:"dwell_tdc_deg"`
	DwellBdcDeg      float64     `json:"dwell_bdc_deg"`
	RampAfterTdcDeg  float64     `json:"ramp_after_tdc_deg"`
	RampBeforeBdcDeg float64     `json:"ramp_before_bdc_deg"`
	RampAfterBdcDeg  float64     `json:"ramp_after_bdc_deg"`
	RampBeforeTdcDeg float64     `json:"ramp_before_tdc_deg"`
	UpFraction       float64     `json:"up_fraction"`
	StepDeg          float64     `json:"sampling_step_deg"`
	Profile          RampProfile `json:"ramp_profile"`

	// Geometry constants for the transmission/pitch stage.
	SliderAxisGammaDeg  float64 `json:"slider_axis_deg"`
	JournalPhaseBetaDeg float64 `json:"journal_phase_beta_deg"`
	JournalRadiusMm     float64 `json:"journal_radius_mm"`
	CamR0Mm             float64 `json:"cam_r0_mm"`
	CamKPerUnitMm       float64 `json:"cam_k_per_unit_mm"`
	CenterBiasMm        float64 `json:"center_distance_bias_mm"`
	CenterScaleMm       float64 `json:"center_distance_scale_mm"`
	ClearanceMm         float64 `json:"clearance_mm"`
}

// DefaultUserParams returns the parameter set the design tool starts from.
func DefaultUserParams() UserParams {
	return UserParams{
		StrokeMm:         100.0,
		DwellTdcDeg:      20.0,
		DwellBdcDeg:      20.0,
		RampAfterTdcDeg:  10.0,
		RampBeforeBdcDeg: 10.0,
		RampAfterBdcDeg:  10.0,
		RampBeforeTdcDeg: 10.0,
		UpFraction:       0.5,
		StepDeg:          0.5,
		Profile:          ProfileS5,

		SliderAxisGammaDeg:  0.0,
		JournalPhaseBetaDeg: 0.0,
		JournalRadiusMm:     5.0,
		CamR0Mm:             40.0,
		CamKPerUnitMm:       1.0,
		CenterBiasMm:        50.0,
		CenterScaleMm:       1.0,
		ClearanceMm:         0.5,
	}
}

// SampleCount returns the grid size n = round(360/step) implied by StepDeg.
func (p UserParams) SampleCount() int {
	if p.StepDeg <= 0 {
		return 0
	}
	return int(math.Round(360.0 / p.StepDeg))
}

// Validate checks the ranges the synthesizer assumes. The synthesizer itself
// is total over validated parameters; callers reject bad input here instead
// of handling mid-synthesis failures.
func (p UserParams) Validate() error {
	if p.StrokeMm <= 0 {
		return fmt.Errorf("stroke_mm must be positive, got %v", p.StrokeMm)
	}
	if p.UpFraction < 0 || p.UpFraction > 1 {
		return fmt.Errorf("up_fraction must be in [0,1], got %v", p.UpFraction)
	}
	if p.StepDeg <= 0 || p.StepDeg > 360 {
		return fmt.Errorf("sampling_step_deg must be in (0,360], got %v", p.StepDeg)
	}
	if p.SampleCount() < 3 {
		return fmt.Errorf("sampling_step_deg %v yields fewer than 3 samples per revolution", p.StepDeg)
	}
	for _, span := range []struct {
		name string
		deg  float64
	}{
		{"dwell_tdc_deg", p.DwellTdcDeg},
		{"dwell_bdc_deg", p.DwellBdcDeg},
		{"ramp_after_tdc_deg", p.RampAfterTdcDeg},
		{"ramp_before_bdc_deg", p.RampBeforeBdcDeg},
		{"ramp_after_bdc_deg", p.RampAfterBdcDeg},
		{"ramp_before_tdc_deg", p.RampBeforeTdcDeg},
	} {
		if span.deg < 0 || span.deg > 360 {
			return fmt.Errorf("%s must be in [0,360], got %v", span.name, span.deg)
		}
	}
	if p.JournalRadiusMm <= 0 {
		return fmt.Errorf("journal_radius_mm must be positive, got %v", p.JournalRadiusMm)
	}
	switch p.Profile {
	case ProfileCycloidal, ProfileS5, ProfileS7:
	default:
		return fmt.Errorf("unknown ramp profile %q", p.Profile)
	}
	return nil
}

// ParseUserParams decodes a JSON parameter file. Missing fields keep their
// defaults, so a file only needs to name what it changes.
func ParseUserParams(r io.Reader) (UserParams, error) {
	params := DefaultUserParams()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&params); err != nil {
		return UserParams{}, fmt.Errorf("decode user params: %w", err)
	}
	if err := params.Validate(); err != nil {
		return UserParams{}, err
	}
	return params, nil
}
