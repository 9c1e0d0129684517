package core

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"github.com/mhold3n/CamProV5-sub001/model"
)

// ReferenceCurveProvider supplies an optional externally computed angular
// curve phi(theta) for the current parameter set. Implementations are
// best-effort: ok=false means "no curve for these parameters" and is not an
// error; an error means the lookup itself broke. Either way the caller
// falls back to the geometry-derived ratio.
type ReferenceCurveProvider interface {
	ReferenceCurve(ctx context.Context, p model.UserParams) (model.ReferenceCurve, bool, error)
}

// ParamsKey derives a stable lookup key for a parameter set from the
// FNV-1a hash of its canonical JSON form. Two equal parameter sets always
// map to the same key.
func ParamsKey(p model.UserParams) string {
	data, err := json.Marshal(p)
	if err != nil {
		return "invalid"
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return fmt.Sprintf("%016x", h.Sum64())
}

// FileReferenceProvider looks up reference curves as JSON files named
// ref_<key>.json in a directory, keyed by ParamsKey. A missing file is a
// miss, not an error.
type FileReferenceProvider struct {
	Dir string
}

// ReferenceCurve implements ReferenceCurveProvider.
func (f FileReferenceProvider) ReferenceCurve(ctx context.Context, p model.UserParams) (model.ReferenceCurve, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.ReferenceCurve{}, false, err
	}
	path := filepath.Join(f.Dir, "ref_"+ParamsKey(p)+".json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.ReferenceCurve{}, false, nil
	}
	if err != nil {
		return model.ReferenceCurve{}, false, fmt.Errorf("read reference curve %q: %w", path, err)
	}
	var curve model.ReferenceCurve
	if err := json.Unmarshal(data, &curve); err != nil {
		return model.ReferenceCurve{}, false, fmt.Errorf("parse reference curve %q: %w", path, err)
	}
	if len(curve.ThetaDeg) == 0 || len(curve.ThetaDeg) != len(curve.PhiDeg) {
		return model.ReferenceCurve{}, false, fmt.Errorf("reference curve %q: mismatched grid lengths", path)
	}
	return curve, true, nil
}

// StaticReferenceProvider returns one fixed curve for every parameter set.
// It exists for tests and for callers that already hold the curve.
type StaticReferenceProvider struct {
	Curve model.ReferenceCurve
}

// ReferenceCurve implements ReferenceCurveProvider.
func (s StaticReferenceProvider) ReferenceCurve(ctx context.Context, p model.UserParams) (model.ReferenceCurve, bool, error) {
	if len(s.Curve.ThetaDeg) == 0 {
		return model.ReferenceCurve{}, false, nil
	}
	return s.Curve, true, nil
}
