package model

import (
	"strings"
	"testing"
)

func TestDefaultUserParamsValidate(t *testing.T) {
	p := DefaultUserParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if got := p.SampleCount(); got != 720 {
		t.Fatalf("default SampleCount = %d, want 720", got)
	}
}

func TestParseUserParamsAppliesOverridesOverDefaults(t *testing.T) {
	p, err := ParseUserParams(strings.NewReader(`{"stroke_mm": 50, "ramp_profile": "septic"}`))
	if err != nil {
		t.Fatalf("ParseUserParams: %v", err)
	}
	if p.StrokeMm != 50 {
		t.Fatalf("stroke_mm = %v, want override 50", p.StrokeMm)
	}
	if p.Profile != ProfileS7 {
		t.Fatalf("ramp_profile = %q, want alias resolved to %q", p.Profile, ProfileS7)
	}
	if p.DwellTdcDeg != 20 {
		t.Fatalf("dwell_tdc_deg = %v, want untouched default 20", p.DwellTdcDeg)
	}
}

func TestParseUserParamsRejectsUnknownFields(t *testing.T) {
	if _, err := ParseUserParams(strings.NewReader(`{"stroke": 50}`)); err == nil {
		t.Fatal("misspelled field accepted")
	}
}

func TestParseUserParamsRejectsInvalidValues(t *testing.T) {
	cases := []string{
		`{"stroke_mm": -1}`,
		`{"up_fraction": 2}`,
		`{"sampling_step_deg": 0}`,
		`{"ramp_profile": "spline9"}`,
		`{"journal_radius_mm": 0}`,
		`not json at all`,
	}
	for _, body := range cases {
		if _, err := ParseUserParams(strings.NewReader(body)); err == nil {
			t.Fatalf("input %q accepted", body)
		}
	}
}

func TestRampProfileFromStringAliases(t *testing.T) {
	cases := []struct {
		in   string
		want RampProfile
	}{
		{"cycloidal", ProfileCycloidal},
		{"Cycloid", ProfileCycloidal},
		{"s5", ProfileS5},
		{"QUINTIC", ProfileS5},
		{" s7 ", ProfileS7},
		{"septic", ProfileS7},
	}
	for _, tc := range cases {
		got, ok := RampProfileFromString(tc.in)
		if !ok || got != tc.want {
			t.Fatalf("RampProfileFromString(%q) = (%q, %v), want (%q, true)", tc.in, got, ok, tc.want)
		}
	}
	if _, ok := RampProfileFromString("bezier"); ok {
		t.Fatal("unknown spelling accepted")
	}
}

func TestValidationReportFailed(t *testing.T) {
	report := ValidationReport{
		Checks: []ValidationCheck{
			{Name: "a", Passed: true},
			{Name: "b", Passed: false},
			{Name: "c", Passed: false},
		},
	}
	got := report.Failed()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("Failed() = %v, want [b c]", got)
	}
}
