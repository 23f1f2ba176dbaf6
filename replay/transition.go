// Package replay provides an n-step experience-replay buffer for
// value-based and actor/critic training.
package replay

import "gonum.org/v1/gonum/mat"

// Transition is a single n-step transition. Rn is the discounted sum of
// the (at most) n rewards observed from S, In is the bootstrap discount
// gamma^n, zero when the episode ended within the n steps, and Sn is the
// state to bootstrap from.
type Transition struct {
	S    []float64 `json:"s"`
	A    int       `json:"a"`
	LogP float64   `json:"logp"`
	Rn   float64   `json:"rn"`
	In   float64   `json:"in"`
	Sn   []float64 `json:"sn"`
}

// Batch is a sampled batch of transitions with column views for batched
// evaluation.
type Batch struct {
	Transitions []Transition
}

func (b Batch) Len() int {
	return len(b.Transitions)
}

// States returns the start states, one row per transition.
func (b Batch) States() *mat.Dense {
	return b.stack(func(t Transition) []float64 { return t.S })
}

// BootstrapStates returns the bootstrap states, one row per transition.
func (b Batch) BootstrapStates() *mat.Dense {
	return b.stack(func(t Transition) []float64 { return t.Sn })
}

func (b Batch) stack(field func(Transition) []float64) *mat.Dense {
	if b.Len() == 0 {
		panic("cannot stack an empty batch")
	}
	out := mat.NewDense(b.Len(), len(field(b.Transitions[0])), nil)
	for i, t := range b.Transitions {
		out.SetRow(i, field(t))
	}
	return out
}

// Actions returns the action column.
func (b Batch) Actions() []int {
	actions := make([]int, b.Len())
	for i, t := range b.Transitions {
		actions[i] = t.A
	}
	return actions
}

// LogPs returns the behavior log-propensity column.
func (b Batch) LogPs() []float64 {
	logps := make([]float64, b.Len())
	for i, t := range b.Transitions {
		logps[i] = t.LogP
	}
	return logps
}

// Returns returns the n-step return column.
func (b Batch) Returns() []float64 {
	returns := make([]float64, b.Len())
	for i, t := range b.Transitions {
		returns[i] = t.Rn
	}
	return returns
}

// Bootstraps returns the bootstrap discount column.
func (b Batch) Bootstraps() []float64 {
	bootstraps := make([]float64, b.Len())
	for i, t := range b.Transitions {
		bootstraps[i] = t.In
	}
	return bootstraps
}
