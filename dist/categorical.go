package dist

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"approxrl/utils"
)

// Categorical is a categorical distribution over a discrete action space,
// parameterized by unnormalized logits.
type Categorical struct {
	logits []float64
}

func NewCategorical(logits []float64) Categorical {
	if len(logits) == 0 {
		panic("categorical distribution needs at least one logit")
	}
	return Categorical{logits: logits}
}

// Logits returns the raw distribution parameters.
func (d Categorical) Logits() []float64 {
	return d.logits
}

// Probs returns the normalized probabilities.
func (d Categorical) Probs() []float64 {
	z := floats.LogSumExp(d.logits)
	probs := make([]float64, len(d.logits))
	for i, l := range d.logits {
		probs[i] = math.Exp(l - z)
	}
	return probs
}

// LogProb returns the log-propensity of action a.
func (d Categorical) LogProb(a int) float64 {
	if a < 0 || a >= len(d.logits) {
		panic("action out of range")
	}
	return d.logits[a] - floats.LogSumExp(d.logits)
}

// Sample draws an action by inverse transform over the normalized
// probabilities.
func (d Categorical) Sample(rng *rand.Rand) int {
	sampled := rng.Float64()
	cumulative := 0.0
	probs := d.Probs()
	for a, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return a
		}
	}
	return len(probs) - 1 // Fallback in case of rounding errors
}

// SampleLogP draws an action and returns it with its log-propensity.
func (d Categorical) SampleLogP(rng *rand.Rand) (int, float64) {
	a := d.Sample(rng)
	return a, d.LogProb(a)
}

// Mode returns the highest-probability action, breaking ties by lowest
// index.
func (d Categorical) Mode() int {
	return utils.ArgMax(d.logits)
}

// Entropy returns the entropy in nats.
func (d Categorical) Entropy() float64 {
	z := floats.LogSumExp(d.logits)
	entropy := 0.0
	for _, l := range d.logits {
		p := math.Exp(l - z)
		if p > 0 {
			entropy -= p * (l - z)
		}
	}
	return entropy
}
