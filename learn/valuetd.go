// Package learn implements updaters that move function-approximator and
// policy weights from batches of replayed transitions.
package learn

import (
	"math"

	"approxrl/fa"
	"approxrl/replay"
)

// ValueTD updates a state value function by semi-gradient n-step TD. A
// target copy of the value function supplies the bootstrap values and is
// synced separately.
type ValueTD struct {
	v      *fa.V
	target *fa.V
	alpha  float64
}

func NewValueTD(v *fa.V, learningRate float64) *ValueTD {
	if v == nil {
		panic("value TD updater needs a value function")
	}
	if learningRate <= 0 {
		panic("learning rate must be positive")
	}
	return &ValueTD{v: v, target: v.Copy(), alpha: learningRate}
}

// Target returns the target value function.
func (u *ValueTD) Target() *fa.V {
	return u.target
}

// TDError computes Rn + In*v_target(Sn) - v(S) for every transition.
func (u *ValueTD) TDError(batch replay.Batch) []float64 {
	values := u.v.EvalBatch(batch.States())
	bootstrapValues := u.target.EvalBatch(batch.BootstrapStates())
	returns := batch.Returns()
	discounts := batch.Bootstraps()

	deltas := make([]float64, batch.Len())
	for i := range deltas {
		deltas[i] = returns[i] + discounts[i]*bootstrapValues[i] - values[i]
	}
	return deltas
}

// Update takes one averaged semi-gradient step over the batch and returns
// the mean absolute TD error.
func (u *ValueTD) Update(batch replay.Batch) float64 {
	deltas := u.TDError(batch)
	step := u.alpha / float64(batch.Len())

	weights := u.v.Weights()
	meanAbs := 0.0
	for i, t := range batch.Transitions {
		for j, x := range u.v.Features(t.S) {
			weights.Set(0, j, weights.At(0, j)+step*deltas[i]*x)
		}
		meanAbs += math.Abs(deltas[i])
	}
	return meanAbs / float64(batch.Len())
}

// SyncTarget smooth-updates the target toward the live value function.
func (u *ValueTD) SyncTarget(tau float64) {
	if err := u.target.SmoothUpdate(u.v, tau); err != nil {
		panic(err) // target is a copy, shapes cannot diverge
	}
}
