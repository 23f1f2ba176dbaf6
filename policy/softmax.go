package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"approxrl/dist"
	"approxrl/fa"
)

// Softmax is a directly parameterized linear softmax policy: the logits
// are W*s with the policy's own weight matrix rather than a value
// function's. It is the actor in the actor/critic loop, where a
// policy-gradient updater moves its weights.
type Softmax struct {
	sampler
	weights *mat.Dense // actions x features
	pre     fa.Preprocessor
}

func NewSoftmax(obsLen, actions int, options ...Option) *Softmax {
	return NewSoftmaxWithPreprocessor(fa.Identity{}, obsLen, actions, options...)
}

func NewSoftmaxWithPreprocessor(pre fa.Preprocessor, obsLen, actions int, options ...Option) *Softmax {
	if obsLen <= 0 || actions <= 0 {
		panic("softmax policy needs positive observation and action sizes")
	}
	p := &Softmax{
		weights: mat.NewDense(actions, pre.Size(obsLen), nil),
		pre:     pre,
	}
	p.sampler = newSampler(p.distParams, options...)
	return p
}

// NumActions returns the size of the action space.
func (p *Softmax) NumActions() int {
	actions, _ := p.weights.Dims()
	return actions
}

// Features featurizes a raw observation with the policy's preprocessor.
func (p *Softmax) Features(obs []float64) []float64 {
	return p.pre.Transform(obs)
}

// Weights returns the underlying weight matrix, shared with updaters.
func (p *Softmax) Weights() *mat.Dense {
	return p.weights
}

// InitRandom fills the weights with small uniform noise in [-scale, scale].
func (p *Softmax) InitRandom(rng *rand.Rand, scale float64) {
	r, c := p.weights.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			p.weights.Set(i, j, scale*(2*rng.Float64()-1))
		}
	}
}

func (p *Softmax) distParams(obs []float64) []float64 {
	features := p.Features(obs)
	x := mat.NewVecDense(len(features), features)
	actions, _ := p.weights.Dims()
	logits := mat.NewVecDense(actions, nil)
	logits.MulVec(p.weights, x)
	return logits.RawVector().Data
}

// LogProbGrad returns the gradient of log pi(a|obs) with respect to the
// weights: (onehot(a) - pi(.|obs)) outer features(obs).
func (p *Softmax) LogProbGrad(obs []float64, a int) *mat.Dense {
	features := p.Features(obs)
	probs := dist.NewCategorical(p.distParams(obs)).Probs()
	actions := len(probs)

	grad := mat.NewDense(actions, len(features), nil)
	for i := 0; i < actions; i++ {
		indicator := 0.0
		if i == a {
			indicator = 1.0
		}
		scale := indicator - probs[i]
		for j, x := range features {
			grad.Set(i, j, scale*x)
		}
	}
	return grad
}

// ApplyGrad takes a gradient-ascent step: W += step*grad.
func (p *Softmax) ApplyGrad(grad *mat.Dense, step float64) {
	var scaled mat.Dense
	scaled.Scale(step, grad)
	p.weights.Add(p.weights, &scaled)
}

// Params returns a deep-copied snapshot of the weights.
func (p *Softmax) Params() fa.Params {
	return fa.Params{
		Scalars: map[string]float64{},
		Weights: map[string]*mat.Dense{"pi": mat.DenseCopyOf(p.weights)},
	}
}

// SetParams overwrites the weights from a snapshot with the same structure.
func (p *Softmax) SetParams(params fa.Params) error {
	if err := fa.CheckStructure(p.Params(), params); err != nil {
		return fmt.Errorf("new params must have the same structure as old params: %w", err)
	}
	p.weights.Copy(params.Weights["pi"])
	return nil
}

// Copy returns an independent policy with the same weights, e.g. a behavior
// policy tracking a target policy.
func (p *Softmax) Copy() *Softmax {
	clone := &Softmax{weights: mat.DenseCopyOf(p.weights), pre: p.pre}
	clone.sampler = newSampler(clone.distParams, WithRand(p.spawn()))
	return clone
}

// SmoothUpdate moves the weights toward src: W = (1-tau)*W + tau*W_src.
func (p *Softmax) SmoothUpdate(src *Softmax, tau float64) error {
	r, c := p.weights.Dims()
	sr, sc := src.weights.Dims()
	if r != sr || c != sc {
		return fmt.Errorf("cannot smooth-update %dx%d weights from %dx%d source", r, c, sr, sc)
	}
	var scaled mat.Dense
	scaled.Scale(tau, src.weights)
	p.weights.Scale(1-tau, p.weights)
	p.weights.Add(p.weights, &scaled)
	return nil
}
