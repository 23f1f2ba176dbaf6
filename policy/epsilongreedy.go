package policy

import (
	"fmt"
	"math"

	"approxrl/fa"
)

// logitFloor keeps zero-probability actions at a finite logit.
const logitFloor = 1e-15

// EpsilonGreedy derives an epsilon-greedy policy from a q-function.
//
// With probability epsilon an action is drawn uniformly at random,
// otherwise the greedy action is taken; when several actions tie for the
// maximum the greedy mass is split between them. Epsilon is a first-class
// parameter: it travels with the q-weights through Params, Copy and
// SmoothUpdate.
type EpsilonGreedy struct {
	sampler
	q       *fa.Q
	epsilon float64
}

func NewEpsilonGreedy(q *fa.Q, epsilon float64, options ...Option) *EpsilonGreedy {
	if q == nil {
		panic("epsilon-greedy policy needs a q-function")
	}
	if epsilon < 0 || epsilon > 1 {
		panic(fmt.Sprintf("epsilon must be in [0, 1], got %v", epsilon))
	}
	p := &EpsilonGreedy{q: q, epsilon: epsilon}
	p.sampler = newSampler(p.distParams, options...)
	return p
}

// Q returns the underlying q-function.
func (p *EpsilonGreedy) Q() *fa.Q {
	return p.q
}

// Epsilon returns the exploration probability.
func (p *EpsilonGreedy) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon adjusts the exploration probability, e.g. for annealing
// schedules.
func (p *EpsilonGreedy) SetEpsilon(epsilon float64) {
	if epsilon < 0 || epsilon > 1 {
		panic(fmt.Sprintf("epsilon must be in [0, 1], got %v", epsilon))
	}
	p.epsilon = epsilon
}

func (p *EpsilonGreedy) distParams(obs []float64) []float64 {
	values := p.q.Eval(obs)
	n := values.Len()

	max := math.Inf(-1)
	for a := 0; a < n; a++ {
		if v := values.AtVec(a); v > max {
			max = v
		}
	}
	ties := 0
	for a := 0; a < n; a++ {
		if values.AtVec(a) == max {
			ties++
		}
	}

	logits := make([]float64, n)
	for a := 0; a < n; a++ {
		prob := p.epsilon / float64(n)
		if values.AtVec(a) == max {
			prob += (1 - p.epsilon) / float64(ties)
		}
		logits[a] = math.Log(prob + logitFloor)
	}
	return logits
}

// Params returns epsilon alongside the q-weights.
func (p *EpsilonGreedy) Params() fa.Params {
	params := p.q.Params()
	params.Scalars["epsilon"] = p.epsilon
	return params
}

// SetParams overwrites epsilon and the q-weights from a snapshot with the
// same structure.
func (p *EpsilonGreedy) SetParams(params fa.Params) error {
	if err := fa.CheckStructure(p.Params(), params); err != nil {
		return fmt.Errorf("new params must have the same structure as old params: %w", err)
	}
	if eps := params.Scalars["epsilon"]; eps < 0 || eps > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", eps)
	}
	p.epsilon = params.Scalars["epsilon"]
	qParams := params.Clone()
	delete(qParams.Scalars, "epsilon")
	return p.q.SetParams(qParams)
}

// Copy returns an independent policy over a copied q-function.
func (p *EpsilonGreedy) Copy() *EpsilonGreedy {
	return NewEpsilonGreedy(p.q.Copy(), p.epsilon, WithRand(p.spawn()))
}

// SmoothUpdate moves epsilon and the q-weights toward src.
func (p *EpsilonGreedy) SmoothUpdate(src *EpsilonGreedy, tau float64) error {
	if err := p.q.SmoothUpdate(src.q, tau); err != nil {
		return err
	}
	p.epsilon = (1-tau)*p.epsilon + tau*src.epsilon
	return nil
}
