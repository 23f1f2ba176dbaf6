package agent

import "approxrl/policy"

type trainingAgent struct {
	pi policy.Policy
}

// NewTrainingAgent returns an agent that samples from the policy's action
// distribution, keeping exploration alive during training.
func NewTrainingAgent(pi policy.Policy) Agent {
	return trainingAgent{pi: pi}
}

func (a trainingAgent) Act(obs []float64) (int, float64) {
	return a.pi.Sample(obs)
}
