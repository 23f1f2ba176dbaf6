package learn

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"approxrl/policy"
	"approxrl/replay"
)

// PPOClip updates a softmax policy with the clipped surrogate
// policy-gradient objective. The probability ratio compares the policy's
// current propensity against the behavior propensity recorded in the
// transition; samples whose ratio has left the clip interval in the
// direction of the advantage contribute no gradient.
type PPOClip struct {
	pi    *policy.Softmax
	alpha float64
	clip  float64
}

func NewPPOClip(pi *policy.Softmax, learningRate, clipEpsilon float64) *PPOClip {
	if pi == nil {
		panic("PPO updater needs a policy")
	}
	if learningRate <= 0 {
		panic("learning rate must be positive")
	}
	if clipEpsilon <= 0 || clipEpsilon >= 1 {
		panic("clip epsilon must be in (0, 1)")
	}
	return &PPOClip{pi: pi, alpha: learningRate, clip: clipEpsilon}
}

// Update takes one averaged gradient-ascent step over the batch using the
// given advantages and returns the fraction of clipped samples.
func (u *PPOClip) Update(batch replay.Batch, adv []float64) float64 {
	if len(adv) != batch.Len() {
		panic("advantage column does not match batch size")
	}

	rows, features := u.pi.Weights().Dims()
	grad := mat.NewDense(rows, features, nil)
	clipped := 0

	actions := batch.Actions()
	logps := batch.LogPs()
	for i, t := range batch.Transitions {
		ratio := math.Exp(u.pi.LogProb(t.S, actions[i]) - logps[i])
		if (adv[i] >= 0 && ratio > 1+u.clip) || (adv[i] < 0 && ratio < 1-u.clip) {
			clipped++
			continue
		}
		g := u.pi.LogProbGrad(t.S, actions[i])
		g.Scale(ratio*adv[i], g)
		grad.Add(grad, g)
	}

	u.pi.ApplyGrad(grad, u.alpha/float64(batch.Len()))
	return float64(clipped) / float64(batch.Len())
}
