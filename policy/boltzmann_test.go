package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"approxrl/dist"
)

func TestNewBoltzmann(t *testing.T) {
	t.Run("panics without a q-function", func(t *testing.T) {
		require.Panics(t, func() {
			NewBoltzmann(nil, 0.1)
		})
	})

	t.Run("panics on non-positive temperature", func(t *testing.T) {
		q := chainQ(t, 1, 2)

		require.Panics(t, func() { NewBoltzmann(q, 0) })
		require.Panics(t, func() { NewBoltzmann(q, -1) })
	})
}

func TestBoltzmannDistParams(t *testing.T) {
	obs := []float64{1}

	t.Run("logits are values over temperature", func(t *testing.T) {
		p := NewBoltzmann(chainQ(t, 1, 2, -0.5), 0.5)

		logits := p.DistParams(obs)

		require.InDelta(t, 2.0, logits[0], 1e-12)
		require.InDelta(t, 4.0, logits[1], 1e-12)
		require.InDelta(t, -1.0, logits[2], 1e-12)
	})

	t.Run("small temperature approaches greedy", func(t *testing.T) {
		p := NewBoltzmann(chainQ(t, 1, 2), 0.01)

		probs := dist.NewCategorical(p.DistParams(obs)).Probs()
		require.Greater(t, probs[1], 0.999)
	})

	t.Run("large temperature approaches uniform", func(t *testing.T) {
		p := NewBoltzmann(chainQ(t, 1, 2), 1000)

		probs := dist.NewCategorical(p.DistParams(obs)).Probs()
		require.InDelta(t, 0.5, probs[0], 1e-3)
		require.InDelta(t, 0.5, probs[1], 1e-3)
	})
}

func TestBoltzmannSample(t *testing.T) {
	t.Run("near-greedy at low temperature", func(t *testing.T) {
		p := NewBoltzmann(chainQ(t, 1, 5, 2), 0.001, WithRand(rand.New(rand.NewSource(3))))

		for i := 0; i < 30; i++ {
			a, _ := p.Sample([]float64{1})
			require.Equal(t, 1, a)
		}
	})
}

func TestBoltzmannParams(t *testing.T) {
	t.Run("temperature travels with the q-weights", func(t *testing.T) {
		p := NewBoltzmann(chainQ(t, 1, 2), 0.02)

		params := p.Params()

		require.InDelta(t, 0.02, params.Scalars["temperature"], 1e-12)
		require.Contains(t, params.Weights, "q")
	})

	t.Run("round-trips through SetParams", func(t *testing.T) {
		p := NewBoltzmann(chainQ(t, 1, 2), 0.02)
		other := NewBoltzmann(chainQ(t, 0, 0), 1)

		require.NoError(t, other.SetParams(p.Params()))

		require.InDelta(t, 0.02, other.Temperature(), 1e-12)
		require.InDelta(t, 2.0, other.Q().Weights().At(1, 0), 1e-12)
	})

	t.Run("rejects a non-positive temperature", func(t *testing.T) {
		p := NewBoltzmann(chainQ(t, 1, 2), 0.02)

		params := p.Params()
		params.Scalars["temperature"] = 0

		require.Error(t, p.SetParams(params))
	})
}

func TestBoltzmannSmoothUpdate(t *testing.T) {
	t.Run("interpolates temperature and weights together", func(t *testing.T) {
		p := NewBoltzmann(chainQ(t, 0, 0), 0.2)
		src := NewBoltzmann(chainQ(t, 4, 0), 1.0)

		require.NoError(t, p.SmoothUpdate(src, 0.25))

		require.InDelta(t, 0.4, p.Temperature(), 1e-12)
		require.InDelta(t, 1.0, p.Q().Weights().At(0, 0), 1e-12)
	})
}
