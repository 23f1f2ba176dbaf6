package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"approxrl/dist"
)

func TestSoftmaxDistParams(t *testing.T) {
	t.Run("logits are the linear projection", func(t *testing.T) {
		p := NewSoftmax(2, 2)
		p.Weights().SetRow(0, []float64{1, 0})
		p.Weights().SetRow(1, []float64{0, -1})

		logits := p.DistParams([]float64{3, 2})

		require.InDelta(t, 3.0, logits[0], 1e-12)
		require.InDelta(t, -2.0, logits[1], 1e-12)
	})
}

func TestSoftmaxLogProbGrad(t *testing.T) {
	t.Run("matches onehot minus probabilities outer features", func(t *testing.T) {
		p := NewSoftmax(2, 3)
		p.Weights().SetRow(0, []float64{0.5, -1})
		p.Weights().SetRow(1, []float64{1, 1})
		p.Weights().SetRow(2, []float64{0, 0.3})
		obs := []float64{1, 2}

		grad := p.LogProbGrad(obs, 1)

		probs := dist.NewCategorical(p.DistParams(obs)).Probs()
		for a := 0; a < 3; a++ {
			indicator := 0.0
			if a == 1 {
				indicator = 1.0
			}
			for j, x := range obs {
				require.InDelta(t, (indicator-probs[a])*x, grad.At(a, j), 1e-12)
			}
		}
	})

	t.Run("gradient ascent raises the action's log-propensity", func(t *testing.T) {
		p := NewSoftmax(2, 2)
		obs := []float64{1, 0.5}
		before := p.LogProb(obs, 0)

		p.ApplyGrad(p.LogProbGrad(obs, 0), 0.1)

		require.Greater(t, p.LogProb(obs, 0), before)
	})
}

func TestSoftmaxCopy(t *testing.T) {
	t.Run("copies are independent behavior policies", func(t *testing.T) {
		p := NewSoftmax(2, 2, WithSeed(5))
		p.Weights().Set(0, 0, 1)

		behavior := p.Copy()
		behavior.Weights().Set(0, 0, -1)

		require.InDelta(t, 1.0, p.Weights().At(0, 0), 1e-12)
	})

	t.Run("copy samples like the original distribution", func(t *testing.T) {
		p := NewSoftmax(1, 2)
		p.Weights().SetRow(1, []float64{100})

		clone := p.Copy()
		a, _ := clone.Sample([]float64{1})
		require.Equal(t, 1, a)
	})
}

func TestSoftmaxSmoothUpdate(t *testing.T) {
	t.Run("interpolates toward the source", func(t *testing.T) {
		p := NewSoftmax(1, 2)
		src := NewSoftmax(1, 2)
		src.Weights().Set(0, 0, 2)

		require.NoError(t, p.SmoothUpdate(src, 0.5))
		require.InDelta(t, 1.0, p.Weights().At(0, 0), 1e-12)
	})

	t.Run("rejects shape mismatch", func(t *testing.T) {
		require.Error(t, NewSoftmax(1, 2).SmoothUpdate(NewSoftmax(2, 2), 0.5))
	})
}

func TestSoftmaxParams(t *testing.T) {
	t.Run("round-trips through SetParams", func(t *testing.T) {
		p := NewSoftmax(2, 2)
		p.InitRandom(rand.New(rand.NewSource(9)), 0.5)

		other := NewSoftmax(2, 2)
		require.NoError(t, other.SetParams(p.Params()))

		require.InDelta(t, p.Weights().At(1, 1), other.Weights().At(1, 1), 1e-12)
	})

	t.Run("rejects mismatched structure", func(t *testing.T) {
		require.Error(t, NewSoftmax(2, 2).SetParams(NewSoftmax(3, 2).Params()))
	})
}

func TestRandomPolicy(t *testing.T) {
	t.Run("is uniform", func(t *testing.T) {
		p := NewRandom(4, WithRand(rand.New(rand.NewSource(2))))

		probs := dist.NewCategorical(p.DistParams(nil)).Probs()
		for _, prob := range probs {
			require.InDelta(t, 0.25, prob, 1e-12)
		}
	})
}
