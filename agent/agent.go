package agent

// Agent picks actions from state observations.
type Agent interface {
	// Act returns an action for obs together with its log-propensity.
	Act(obs []float64) (action int, logp float64)
}
