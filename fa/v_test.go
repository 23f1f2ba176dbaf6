package fa

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestVEval(t *testing.T) {
	v := NewV(3)
	v.Weights().SetRow(0, []float64{1, -2, 0.5})

	t.Run("computes the linear value", func(t *testing.T) {
		require.InDelta(t, 1*1+(-2)*2+0.5*4, v.Eval([]float64{1, 2, 4}), 1e-12)
	})

	t.Run("batched evaluation agrees with per-state evaluation", func(t *testing.T) {
		S := mat.NewDense(2, 3, []float64{
			1, 2, 4,
			0, -1, 3,
		})

		values := v.EvalBatch(S)

		require.Len(t, values, 2)
		for i, value := range values {
			require.InDelta(t, v.Eval(mat.Row(nil, i, S)), value, 1e-12)
		}
	})
}

func TestVCopyAndSmoothUpdate(t *testing.T) {
	t.Run("copies are independent", func(t *testing.T) {
		v := NewV(2)
		clone := v.Copy()
		clone.Weights().Set(0, 0, 5)

		require.InDelta(t, 0.0, v.Weights().At(0, 0), 1e-12)
	})

	t.Run("interpolates toward the source", func(t *testing.T) {
		v := NewV(1)
		src := NewV(1)
		src.Weights().Set(0, 0, 10)

		require.NoError(t, v.SmoothUpdate(src, 0.1))
		require.InDelta(t, 1.0, v.Weights().At(0, 0), 1e-12)
	})

	t.Run("rejects shape mismatch", func(t *testing.T) {
		require.Error(t, NewV(1).SmoothUpdate(NewV(2), 0.5))
	})
}

func TestVParams(t *testing.T) {
	t.Run("round-trips through SetParams", func(t *testing.T) {
		v := NewV(2)
		v.Weights().Set(0, 1, 4)

		other := NewV(2)
		require.NoError(t, other.SetParams(v.Params()))
		require.InDelta(t, 4.0, other.Weights().At(0, 1), 1e-12)
	})

	t.Run("rejects mismatched structure", func(t *testing.T) {
		require.Error(t, NewV(2).SetParams(NewV(3).Params()))
	})
}
