// Package policy provides action-selection strategies derived from learned
// value functions, plus a directly parameterized softmax policy for
// actor/critic training.
package policy

import (
	"time"

	"golang.org/x/exp/rand"

	"approxrl/dist"
	"approxrl/fa"
)

// Policy samples actions conditioned on a state observation.
type Policy interface {
	// Sample draws an action and returns it with its log-propensity.
	Sample(obs []float64) (action int, logp float64)
	// Mode returns the greedy action.
	Mode(obs []float64) int
	// DistParams returns the logits of the conditional action distribution.
	DistParams(obs []float64) []float64
}

// Updatable is a policy whose tunable parameters can be snapshotted and
// restored. Copy and SmoothUpdate stay on the concrete types: they pair a
// policy with another of its own kind.
type Updatable interface {
	Policy
	// Params returns a deep-copied snapshot of the policy's parameters.
	Params() fa.Params
	// SetParams overwrites the parameters from a snapshot with the same
	// structure.
	SetParams(params fa.Params) error
}

var (
	_ Updatable = (*EpsilonGreedy)(nil)
	_ Updatable = (*Boltzmann)(nil)
	_ Updatable = (*Softmax)(nil)
)

type Option func(s *sampler)

// WithRand sets the sampling source. Tests use this for determinism.
func WithRand(rng *rand.Rand) Option {
	return func(s *sampler) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSeed seeds a fresh sampling source.
func WithSeed(seed uint64) Option {
	return func(s *sampler) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// sampler turns a logits function into a sampling policy. Concrete
// policies embed it and plug in their own distribution parameters.
type sampler struct {
	distParams func(obs []float64) []float64
	rng        *rand.Rand
}

func newSampler(distParams func(obs []float64) []float64, options ...Option) sampler {
	s := sampler{
		distParams: distParams,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

func (s sampler) Sample(obs []float64) (int, float64) {
	return dist.NewCategorical(s.distParams(obs)).SampleLogP(s.rng)
}

func (s sampler) Mode(obs []float64) int {
	return dist.NewCategorical(s.distParams(obs)).Mode()
}

func (s sampler) DistParams(obs []float64) []float64 {
	return s.distParams(obs)
}

// LogProb returns the log-propensity of action a under the policy at obs.
func (s sampler) LogProb(obs []float64, a int) float64 {
	return dist.NewCategorical(s.distParams(obs)).LogProb(a)
}

// spawn derives an independent source for policy copies.
func (s sampler) spawn() *rand.Rand {
	return rand.New(rand.NewSource(s.rng.Uint64()))
}
