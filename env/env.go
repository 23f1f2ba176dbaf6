// Package env defines the environment surface the training loops run
// against, plus a couple of small built-in environments.
package env

// Env is a discrete-action episodic environment.
type Env interface {
	// Reset starts a new episode and returns the initial observation.
	Reset() []float64
	// Step applies an action and returns the next observation, the reward
	// and whether the episode ended.
	Step(action int) (obs []float64, reward float64, done bool)
	// NumActions returns the size of the action space.
	NumActions() int
	// ObsSize returns the observation vector length.
	ObsSize() int
}
