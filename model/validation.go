package model

// ValidationCheck is one named pass/fail item from the preflight validator.
// Detail is free-form text for diagnostics output; it is never parsed.
type ValidationCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// ValidationReport aggregates the preflight checks. The validator never
// decides whether a failure is fatal; callers do.
type ValidationReport struct {
	Checks []ValidationCheck `json:"checks"`
	Passed bool              `json:"passed"`
}

// Failed returns the names of the checks that did not pass.
func (r ValidationReport) Failed() []string {
	var names []string
	for _, c := range r.Checks {
		if !c.Passed {
			names = append(names, c.Name)
		}
	}
	return names
}
