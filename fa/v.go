package fa

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// V is a linear state value function.
type V struct {
	weights *mat.Dense // 1 x features
	pre     Preprocessor
}

type VOption func(v *V)

// WithVPreprocessor sets the feature map applied to raw observations.
func WithVPreprocessor(pre Preprocessor) VOption {
	return func(v *V) {
		if pre != nil {
			v.pre = pre
		}
	}
}

// NewV creates a zero-initialized value function for obsLen-dimensional
// observations.
func NewV(obsLen int, options ...VOption) *V {
	if obsLen <= 0 {
		panic("value function needs a positive observation size")
	}
	v := &V{pre: Identity{}}
	for _, option := range options {
		option(v)
	}
	v.weights = mat.NewDense(1, v.pre.Size(obsLen), nil)
	return v
}

// Features featurizes a raw observation with the value function's
// preprocessor.
func (v *V) Features(obs []float64) []float64 {
	return v.pre.Transform(obs)
}

// Eval returns v(s).
func (v *V) Eval(obs []float64) float64 {
	features := v.Features(obs)
	return mat.Dot(v.weights.RowView(0), mat.NewVecDense(len(features), features))
}

// EvalBatch evaluates v(s) for every row of S.
func (v *V) EvalBatch(S *mat.Dense) []float64 {
	n, _ := S.Dims()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = v.Eval(mat.Row(nil, i, S))
	}
	return out
}

// Weights returns the underlying 1 x features weight matrix, shared with
// learners.
func (v *V) Weights() *mat.Dense {
	return v.weights
}

// Params returns a deep-copied snapshot of the weights.
func (v *V) Params() Params {
	return Params{
		Scalars: map[string]float64{},
		Weights: map[string]*mat.Dense{"v": mat.DenseCopyOf(v.weights)},
	}
}

// SetParams overwrites the weights from a snapshot with the same structure.
func (v *V) SetParams(params Params) error {
	if err := CheckStructure(v.Params(), params); err != nil {
		return fmt.Errorf("new params must have the same structure as old params: %w", err)
	}
	v.weights.Copy(params.Weights["v"])
	return nil
}

// Copy returns an independent value function with the same weights and
// preprocessor.
func (v *V) Copy() *V {
	return &V{weights: mat.DenseCopyOf(v.weights), pre: v.pre}
}

// SmoothUpdate moves the weights toward src: w = (1-tau)*w + tau*w_src.
func (v *V) SmoothUpdate(src *V, tau float64) error {
	_, c := v.weights.Dims()
	_, sc := src.weights.Dims()
	if c != sc {
		return fmt.Errorf("cannot smooth-update %d-feature weights from %d-feature source", c, sc)
	}
	interpolate(v.weights, src.weights, tau)
	return nil
}
