package fa

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Q is a linear state-action value function. Weights are laid out with one
// row per action so that a single matrix-vector product evaluates q(s,.)
// for all actions at once.
type Q struct {
	weights *mat.Dense
	pre     Preprocessor
}

type Option func(q *Q)

// WithPreprocessor sets the feature map applied to raw observations.
func WithPreprocessor(pre Preprocessor) Option {
	return func(q *Q) {
		if pre != nil {
			q.pre = pre
		}
	}
}

// NewQ creates a zero-initialized q-function for obsLen-dimensional
// observations and a discrete action space of the given size.
func NewQ(obsLen, actions int, options ...Option) *Q {
	if obsLen <= 0 || actions <= 0 {
		panic("q-function needs positive observation and action sizes")
	}
	q := &Q{pre: Identity{}}
	for _, option := range options {
		option(q)
	}
	q.weights = mat.NewDense(actions, q.pre.Size(obsLen), nil)
	return q
}

// NumActions returns the size of the action space.
func (q *Q) NumActions() int {
	actions, _ := q.weights.Dims()
	return actions
}

// Features featurizes a raw observation with the q-function's preprocessor.
func (q *Q) Features(obs []float64) []float64 {
	return q.pre.Transform(obs)
}

// Eval returns q(s,.) as a vector of per-action values.
func (q *Q) Eval(obs []float64) *mat.VecDense {
	features := q.Features(obs)
	x := mat.NewVecDense(len(features), features)
	actions, _ := q.weights.Dims()
	out := mat.NewVecDense(actions, nil)
	out.MulVec(q.weights, x)
	return out
}

// EvalBatch evaluates q(s,.) for every row of S. The result has one row
// per state and one column per action.
func (q *Q) EvalBatch(S *mat.Dense) *mat.Dense {
	n, _ := S.Dims()
	_, features := q.weights.Dims()
	F := mat.NewDense(n, features, nil)
	for i := 0; i < n; i++ {
		F.SetRow(i, q.pre.Transform(mat.Row(nil, i, S)))
	}
	var out mat.Dense
	out.Mul(F, q.weights.T())
	return &out
}

// Value returns q(s,a).
func (q *Q) Value(obs []float64, a int) float64 {
	return q.Eval(obs).AtVec(a)
}

// Argmax returns the greedy action for obs, breaking ties by lowest index.
func (q *Q) Argmax(obs []float64) int {
	values := q.Eval(obs)
	best := 0
	for a := 1; a < values.Len(); a++ {
		if values.AtVec(a) > values.AtVec(best) {
			best = a
		}
	}
	return best
}

// Weights returns the underlying weight matrix. Policies and learners
// share this pointer so that learner updates show up in the actions the
// policy picks.
func (q *Q) Weights() *mat.Dense {
	return q.weights
}

// InitRandom fills the weights with small uniform noise in [-scale, scale].
func (q *Q) InitRandom(rng *rand.Rand, scale float64) {
	r, c := q.weights.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			q.weights.Set(i, j, scale*(2*rng.Float64()-1))
		}
	}
}

// Params returns a deep-copied snapshot of the weights.
func (q *Q) Params() Params {
	return Params{
		Scalars: map[string]float64{},
		Weights: map[string]*mat.Dense{"q": mat.DenseCopyOf(q.weights)},
	}
}

// SetParams overwrites the weights from a snapshot with the same structure.
func (q *Q) SetParams(params Params) error {
	if err := CheckStructure(q.Params(), params); err != nil {
		return fmt.Errorf("new params must have the same structure as old params: %w", err)
	}
	q.weights.Copy(params.Weights["q"])
	return nil
}

// Copy returns an independent q-function with the same weights and
// preprocessor.
func (q *Q) Copy() *Q {
	return &Q{weights: mat.DenseCopyOf(q.weights), pre: q.pre}
}

// SmoothUpdate moves the weights toward src: w = (1-tau)*w + tau*w_src.
func (q *Q) SmoothUpdate(src *Q, tau float64) error {
	r, c := q.weights.Dims()
	sr, sc := src.weights.Dims()
	if r != sr || c != sc {
		return fmt.Errorf("cannot smooth-update %dx%d weights from %dx%d source", r, c, sr, sc)
	}
	interpolate(q.weights, src.weights, tau)
	return nil
}
