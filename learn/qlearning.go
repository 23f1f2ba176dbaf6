package learn

import (
	"math"

	"approxrl/fa"
	"approxrl/replay"
)

// QLearning updates a q-function off-policy: the bootstrap value is the
// maximum of a target q-function over the bootstrap state.
type QLearning struct {
	q      *fa.Q
	target *fa.Q
	alpha  float64
}

func NewQLearning(q *fa.Q, learningRate float64) *QLearning {
	if q == nil {
		panic("q-learning updater needs a q-function")
	}
	if learningRate <= 0 {
		panic("learning rate must be positive")
	}
	return &QLearning{q: q, target: q.Copy(), alpha: learningRate}
}

// Target returns the target q-function.
func (u *QLearning) Target() *fa.Q {
	return u.target
}

// TDError computes Rn + In*max_a q_target(Sn,a) - q(S,A) for every
// transition.
func (u *QLearning) TDError(batch replay.Batch) []float64 {
	deltas := make([]float64, batch.Len())
	for i, t := range batch.Transitions {
		bootstrap := u.target.Value(t.Sn, u.target.Argmax(t.Sn))
		deltas[i] = t.Rn + t.In*bootstrap - u.q.Value(t.S, t.A)
	}
	return deltas
}

// Update takes one averaged semi-gradient step over the batch and returns
// the mean absolute TD error. Only the weight row of the taken action
// moves for each sample.
func (u *QLearning) Update(batch replay.Batch) float64 {
	deltas := u.TDError(batch)
	step := u.alpha / float64(batch.Len())

	weights := u.q.Weights()
	meanAbs := 0.0
	for i, t := range batch.Transitions {
		for j, x := range u.q.Features(t.S) {
			weights.Set(t.A, j, weights.At(t.A, j)+step*deltas[i]*x)
		}
		meanAbs += math.Abs(deltas[i])
	}
	return meanAbs / float64(batch.Len())
}

// SyncTarget smooth-updates the target toward the live q-function.
func (u *QLearning) SyncTarget(tau float64) {
	if err := u.target.SmoothUpdate(u.q, tau); err != nil {
		panic(err) // target is a copy, shapes cannot diverge
	}
}
