package env

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCartPole(t *testing.T) {
	t.Run("reset starts near the balanced state", func(t *testing.T) {
		c := NewCartPole(1, 200)

		obs := c.Reset()

		require.Len(t, obs, 4)
		for _, x := range obs {
			require.LessOrEqual(t, math.Abs(x), 0.05)
		}
	})

	t.Run("same seed gives the same episode", func(t *testing.T) {
		a := NewCartPole(7, 200)
		b := NewCartPole(7, 200)

		require.Equal(t, a.Reset(), b.Reset())

		obsA, _, _ := a.Step(1)
		obsB, _, _ := b.Step(1)
		require.Equal(t, obsA, obsB)
	})

	t.Run("constant pushing topples the pole", func(t *testing.T) {
		c := NewCartPole(3, 10000)
		c.Reset()

		done := false
		steps := 0
		for !done && steps < 10000 {
			_, reward, d := c.Step(1)
			require.InDelta(t, cartPoleStepReward, reward, 1e-12)
			done = d
			steps++
		}

		require.True(t, done)
		require.Less(t, steps, 1000, "Always pushing right should end the episode quickly")
	})

	t.Run("episode ends at the step cap", func(t *testing.T) {
		c := NewCartPole(5, 1)
		c.Reset()

		_, _, done := c.Step(0)

		require.True(t, done)
	})

	t.Run("panics on unknown action", func(t *testing.T) {
		c := NewCartPole(1, 10)
		c.Reset()

		require.Panics(t, func() { c.Step(5) })
	})
}
