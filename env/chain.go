package env

// Chain is a corridor random walk: the agent starts at the left end and
// moves left or right; each step costs a small penalty and reaching the
// right end pays out and ends the episode. Observations are one-hot over
// positions, so linear function approximation is exact on it.
type Chain struct {
	length   int
	maxSteps int
	position int
	steps    int
}

const (
	chainStepPenalty = -0.01
	chainGoalReward  = 1.0
)

func NewChain(length, maxSteps int) *Chain {
	if length < 2 {
		panic("chain needs at least two positions")
	}
	if maxSteps <= 0 {
		panic("chain needs a positive step cap")
	}
	return &Chain{length: length, maxSteps: maxSteps}
}

func (c *Chain) Reset() []float64 {
	c.position = 0
	c.steps = 0
	return c.observe()
}

func (c *Chain) Step(action int) ([]float64, float64, bool) {
	switch action {
	case 0:
		if c.position > 0 {
			c.position--
		}
	case 1:
		if c.position < c.length-1 {
			c.position++
		}
	default:
		panic("chain actions are 0 (left) and 1 (right)")
	}
	c.steps++

	reward := chainStepPenalty
	done := false
	if c.position == c.length-1 {
		reward = chainGoalReward
		done = true
	}
	if c.steps >= c.maxSteps {
		done = true
	}
	return c.observe(), reward, done
}

func (c *Chain) observe() []float64 {
	obs := make([]float64, c.length)
	obs[c.position] = 1
	return obs
}

func (c *Chain) NumActions() int { return 2 }
func (c *Chain) ObsSize() int    { return c.length }
