package fa

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewQ(t *testing.T) {
	t.Run("panics on non-positive sizes", func(t *testing.T) {
		require.Panics(t, func() { NewQ(0, 2) })
		require.Panics(t, func() { NewQ(4, 0) })
	})

	t.Run("sizes weights for the preprocessor output", func(t *testing.T) {
		q := NewQ(3, 2, WithPreprocessor(Polynomial{Degree: 2}))

		r, c := q.Weights().Dims()
		require.Equal(t, 2, r)
		require.Equal(t, 7, c, "Polynomial degree 2 maps 3 inputs to 1+2*3 features")
	})
}

func TestQEval(t *testing.T) {
	q := NewQ(2, 3)
	q.Weights().SetRow(0, []float64{1, 0})
	q.Weights().SetRow(1, []float64{2, -1})
	q.Weights().SetRow(2, []float64{0, 0.5})

	t.Run("computes per-action values", func(t *testing.T) {
		values := q.Eval([]float64{1, 2})

		require.InDelta(t, 1.0, values.AtVec(0), 1e-12)
		require.InDelta(t, 0.0, values.AtVec(1), 1e-12)
		require.InDelta(t, 1.0, values.AtVec(2), 1e-12)
	})

	t.Run("batched evaluation agrees with per-state evaluation", func(t *testing.T) {
		S := mat.NewDense(3, 2, []float64{
			1, 2,
			0, 1,
			-1, 0.5,
		})

		batch := q.EvalBatch(S)

		for i := 0; i < 3; i++ {
			single := q.Eval(mat.Row(nil, i, S))
			for a := 0; a < q.NumActions(); a++ {
				require.InDelta(t, single.AtVec(a), batch.At(i, a), 1e-12)
			}
		}
	})

	t.Run("argmax breaks ties by lowest index", func(t *testing.T) {
		tied := NewQ(1, 3)
		tied.Weights().SetRow(0, []float64{1})
		tied.Weights().SetRow(1, []float64{1})

		require.Equal(t, 0, tied.Argmax([]float64{1}))
	})
}

func TestQCopy(t *testing.T) {
	t.Run("copies are independent", func(t *testing.T) {
		q := NewQ(2, 2)
		q.Weights().Set(0, 0, 1)

		clone := q.Copy()
		clone.Weights().Set(0, 0, 9)

		require.InDelta(t, 1.0, q.Weights().At(0, 0), 1e-12,
			"Mutating a copy should not touch the original")
	})
}

func TestQParams(t *testing.T) {
	t.Run("round-trips through SetParams", func(t *testing.T) {
		q := NewQ(2, 2)
		q.Weights().Set(1, 1, 3)

		other := NewQ(2, 2)
		require.NoError(t, other.SetParams(q.Params()))
		require.InDelta(t, 3.0, other.Weights().At(1, 1), 1e-12)
	})

	t.Run("snapshot does not alias the live weights", func(t *testing.T) {
		q := NewQ(2, 2)
		params := q.Params()
		params.Weights["q"].Set(0, 0, 7)

		require.InDelta(t, 0.0, q.Weights().At(0, 0), 1e-12)
	})

	t.Run("rejects mismatched dimensions", func(t *testing.T) {
		q := NewQ(2, 2)
		bigger := NewQ(3, 2)

		err := q.SetParams(bigger.Params())
		require.Error(t, err, "Params with different weight dims should be rejected")
	})

	t.Run("rejects missing weight keys", func(t *testing.T) {
		q := NewQ(2, 2)

		err := q.SetParams(Params{Scalars: map[string]float64{}, Weights: map[string]*mat.Dense{}})
		require.Error(t, err)
	})
}

func TestQSmoothUpdate(t *testing.T) {
	newPair := func() (*Q, *Q) {
		q := NewQ(1, 1)
		q.Weights().Set(0, 0, 1)
		src := NewQ(1, 1)
		src.Weights().Set(0, 0, 3)
		return q, src
	}

	t.Run("interpolates toward the source", func(t *testing.T) {
		q, src := newPair()

		require.NoError(t, q.SmoothUpdate(src, 0.5))
		require.InDelta(t, 2.0, q.Weights().At(0, 0), 1e-12,
			"Should compute (1-tau)*w + tau*w_src")
	})

	t.Run("tau of one copies the source", func(t *testing.T) {
		q, src := newPair()

		require.NoError(t, q.SmoothUpdate(src, 1))
		require.InDelta(t, 3.0, q.Weights().At(0, 0), 1e-12)
	})

	t.Run("tau of zero is a no-op", func(t *testing.T) {
		q, src := newPair()

		require.NoError(t, q.SmoothUpdate(src, 0))
		require.InDelta(t, 1.0, q.Weights().At(0, 0), 1e-12)
	})

	t.Run("rejects shape mismatch", func(t *testing.T) {
		q := NewQ(1, 1)
		src := NewQ(2, 1)

		require.Error(t, q.SmoothUpdate(src, 0.5))
	})
}

func TestPolynomial(t *testing.T) {
	t.Run("appends powers with a bias term", func(t *testing.T) {
		p := Polynomial{Degree: 2}

		features := p.Transform([]float64{2, 3})

		require.Equal(t, []float64{1, 2, 3, 4, 9}, features)
	})
}
