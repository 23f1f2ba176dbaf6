package env

import (
	"math"

	"golang.org/x/exp/rand"
)

// CartPole is the classic pole-balancing task: push a cart left or right
// to keep the pole upright. The observation is [x, xDot, theta, thetaDot];
// every step survived pays 1 and the episode ends when the pole falls
// over, the cart leaves the track, or the step cap is reached.
type CartPole struct {
	rng      *rand.Rand
	maxSteps int

	x, xDot         float64
	theta, thetaDot float64
	steps           int
}

const (
	gravity            = 9.8
	cartMass           = 1.0
	poleMass           = 0.1
	poleHalfLength     = 0.5
	pushForce          = 10.0
	integrationStep    = 0.02
	thetaThreshold     = 12.0 * math.Pi / 180.0
	positionThreshold  = 2.4
	cartPoleStepReward = 1.0
)

func NewCartPole(seed uint64, maxSteps int) *CartPole {
	if maxSteps <= 0 {
		panic("cart-pole needs a positive step cap")
	}
	return &CartPole{
		rng:      rand.New(rand.NewSource(seed)),
		maxSteps: maxSteps,
	}
}

func (c *CartPole) Reset() []float64 {
	c.x = c.uniform()
	c.xDot = c.uniform()
	c.theta = c.uniform()
	c.thetaDot = c.uniform()
	c.steps = 0
	return c.observe()
}

func (c *CartPole) uniform() float64 {
	return 0.05 * (2*c.rng.Float64() - 1)
}

func (c *CartPole) Step(action int) ([]float64, float64, bool) {
	force := pushForce
	if action == 0 {
		force = -pushForce
	} else if action != 1 {
		panic("cart-pole actions are 0 (left) and 1 (right)")
	}

	totalMass := cartMass + poleMass
	poleMassLength := poleMass * poleHalfLength

	cosTheta := math.Cos(c.theta)
	sinTheta := math.Sin(c.theta)
	temp := (force + poleMassLength*c.thetaDot*c.thetaDot*sinTheta) / totalMass
	thetaAcc := (gravity*sinTheta - cosTheta*temp) /
		(poleHalfLength * (4.0/3.0 - poleMass*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thetaAcc*cosTheta/totalMass

	c.x += integrationStep * c.xDot
	c.xDot += integrationStep * xAcc
	c.theta += integrationStep * c.thetaDot
	c.thetaDot += integrationStep * thetaAcc
	c.steps++

	done := c.x < -positionThreshold || c.x > positionThreshold ||
		c.theta < -thetaThreshold || c.theta > thetaThreshold ||
		c.steps >= c.maxSteps
	return c.observe(), cartPoleStepReward, done
}

func (c *CartPole) observe() []float64 {
	return []float64{c.x, c.xDot, c.theta, c.thetaDot}
}

func (c *CartPole) NumActions() int { return 2 }
func (c *CartPole) ObsSize() int    { return 4 }
