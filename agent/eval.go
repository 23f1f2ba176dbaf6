package agent

import (
	"approxrl/dist"
	"approxrl/policy"
)

type evaluationAgent struct {
	pi policy.Policy
}

// NewEvaluationAgent returns an agent that always takes the policy's mode
// action, for actual play during evaluation.
func NewEvaluationAgent(pi policy.Policy) Agent {
	return evaluationAgent{pi: pi}
}

func (a evaluationAgent) Act(obs []float64) (int, float64) {
	d := dist.NewCategorical(a.pi.DistParams(obs))
	mode := d.Mode()
	return mode, d.LogProb(mode)
}
