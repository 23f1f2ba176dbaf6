package policy

import (
	"fmt"

	"approxrl/fa"
)

// Boltzmann derives a softmax policy from a q-function: the action logits
// are q(s,.)/temperature. A small temperature approaches greedy sampling,
// a large one approaches uniform. Like epsilon for EpsilonGreedy, the
// temperature is a first-class parameter managed alongside the q-weights.
type Boltzmann struct {
	sampler
	q           *fa.Q
	temperature float64
}

func NewBoltzmann(q *fa.Q, temperature float64, options ...Option) *Boltzmann {
	if q == nil {
		panic("boltzmann policy needs a q-function")
	}
	if temperature <= 0 {
		panic(fmt.Sprintf("temperature must be positive, got %v", temperature))
	}
	p := &Boltzmann{q: q, temperature: temperature}
	p.sampler = newSampler(p.distParams, options...)
	return p
}

// Q returns the underlying q-function.
func (p *Boltzmann) Q() *fa.Q {
	return p.q
}

// Temperature returns the Boltzmann temperature.
func (p *Boltzmann) Temperature() float64 {
	return p.temperature
}

// SetTemperature adjusts the temperature, e.g. for annealing schedules.
func (p *Boltzmann) SetTemperature(temperature float64) {
	if temperature <= 0 {
		panic(fmt.Sprintf("temperature must be positive, got %v", temperature))
	}
	p.temperature = temperature
}

func (p *Boltzmann) distParams(obs []float64) []float64 {
	values := p.q.Eval(obs)
	logits := make([]float64, values.Len())
	for a := range logits {
		logits[a] = values.AtVec(a) / p.temperature
	}
	return logits
}

// Params returns the temperature alongside the q-weights.
func (p *Boltzmann) Params() fa.Params {
	params := p.q.Params()
	params.Scalars["temperature"] = p.temperature
	return params
}

// SetParams overwrites the temperature and the q-weights from a snapshot
// with the same structure.
func (p *Boltzmann) SetParams(params fa.Params) error {
	if err := fa.CheckStructure(p.Params(), params); err != nil {
		return fmt.Errorf("new params must have the same structure as old params: %w", err)
	}
	if params.Scalars["temperature"] <= 0 {
		return fmt.Errorf("temperature must be positive, got %v", params.Scalars["temperature"])
	}
	p.temperature = params.Scalars["temperature"]
	qParams := params.Clone()
	delete(qParams.Scalars, "temperature")
	return p.q.SetParams(qParams)
}

// Copy returns an independent policy over a copied q-function.
func (p *Boltzmann) Copy() *Boltzmann {
	return NewBoltzmann(p.q.Copy(), p.temperature, WithRand(p.spawn()))
}

// SmoothUpdate moves the temperature and the q-weights toward src.
func (p *Boltzmann) SmoothUpdate(src *Boltzmann, tau float64) error {
	if err := p.q.SmoothUpdate(src.q, tau); err != nil {
		return err
	}
	p.temperature = (1-tau)*p.temperature + tau*src.temperature
	return nil
}
