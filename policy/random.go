package policy

// Random samples actions uniformly at random, a useful baseline.
type Random struct {
	sampler
	actions int
}

func NewRandom(actions int, options ...Option) *Random {
	if actions <= 0 {
		panic("random policy needs a positive action count")
	}
	p := &Random{actions: actions}
	p.sampler = newSampler(p.distParams, options...)
	return p
}

func (p *Random) distParams(obs []float64) []float64 {
	return make([]float64, p.actions)
}
