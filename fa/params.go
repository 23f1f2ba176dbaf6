package fa

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Params is a snapshot of a function approximator's tunable parameters.
// Scalars hold derived-policy knobs such as epsilon or temperature, which
// are managed alongside the weight matrices.
type Params struct {
	Scalars map[string]float64
	Weights map[string]*mat.Dense
}

// Clone returns a deep copy.
func (p Params) Clone() Params {
	clone := Params{
		Scalars: make(map[string]float64, len(p.Scalars)),
		Weights: make(map[string]*mat.Dense, len(p.Weights)),
	}
	for k, v := range p.Scalars {
		clone.Scalars[k] = v
	}
	for k, w := range p.Weights {
		clone.Weights[k] = mat.DenseCopyOf(w)
	}
	return clone
}

// CheckStructure reports an error if next does not have the same keys and
// weight dimensions as old. Params setters reject structural mismatches
// without partial application.
func CheckStructure(old, next Params) error {
	if len(old.Scalars) != len(next.Scalars) {
		return fmt.Errorf("params have %d scalars, want %d", len(next.Scalars), len(old.Scalars))
	}
	for k := range old.Scalars {
		if _, ok := next.Scalars[k]; !ok {
			return fmt.Errorf("params missing scalar %q", k)
		}
	}
	if len(old.Weights) != len(next.Weights) {
		return fmt.Errorf("params have %d weight matrices, want %d", len(next.Weights), len(old.Weights))
	}
	for k, w := range old.Weights {
		nw, ok := next.Weights[k]
		if !ok {
			return fmt.Errorf("params missing weights %q", k)
		}
		r, c := w.Dims()
		nr, nc := nw.Dims()
		if r != nr || c != nc {
			return fmt.Errorf("weights %q have dims %dx%d, want %dx%d", k, nr, nc, r, c)
		}
	}
	return nil
}

// interpolate sets dst = (1-tau)*dst + tau*src in place.
func interpolate(dst, src *mat.Dense, tau float64) {
	var scaled mat.Dense
	scaled.Scale(tau, src)
	dst.Scale(1-tau, dst)
	dst.Add(dst, &scaled)
}
