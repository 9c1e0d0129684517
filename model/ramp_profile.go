package model

import (
	"fmt"
	"strings"
)

// RampProfile selects the normalized shape function used on every ramp
// segment of the motion cycle. The set is closed: adding a variant means
// teaching core.Profile* about it as well.
type RampProfile string

const (
	// ProfileCycloidal is the classic SHM-family ramp 0.5*(1 - cos(pi*u)).
	ProfileCycloidal RampProfile = "cycloidal"
	// ProfileS5 is the quintic smoothstep with zero first and second
	// derivative at both ends (C2 across segment joints).
	ProfileS5 RampProfile = "s5"
	// ProfileS7 is the septic smoothstep with zero first, second and third
	// derivative at both ends (C3 across segment joints).
	ProfileS7 RampProfile = "s7"
)

// RampProfileFromString maps user-facing spellings to a RampProfile.
// It tolerates the "quintic"/"septic" aliases used in older parameter files.
func RampProfileFromString(s string) (RampProfile, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cycloidal", "cycloid":
		return ProfileCycloidal, true
	case "s5", "quintic":
		return ProfileS5, true
	case "s7", "septic":
		return ProfileS7, true
	default:
		return "", false
	}
}

// UnmarshalJSON accepts the same spellings as RampProfileFromString.
func (p *RampProfile) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, ok := RampProfileFromString(s)
	if !ok {
		return fmt.Errorf("unknown ramp profile %q", s)
	}
	*p = parsed
	return nil
}
