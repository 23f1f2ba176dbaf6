// Package engine runs training loops that tie an environment, policies,
// a replay buffer and updaters together.
package engine

import (
	"time"

	"approxrl/experiments/metrics"
)

type config struct {
	episodes    int
	batchSize   int
	passes      int
	updateEvery int
	tau         float64
	seed        uint64
	collector   metrics.Collector
}

type Option func(c *config)

func WithEpisodes(episodes int) Option {
	return func(c *config) {
		if episodes > 0 {
			c.episodes = episodes
		}
	}
}

func WithBatchSize(batchSize int) Option {
	return func(c *config) {
		if batchSize > 0 {
			c.batchSize = batchSize
		}
	}
}

// WithPasses sets how many times the buffer content is consumed per
// update round.
func WithPasses(passes int) Option {
	return func(c *config) {
		if passes > 0 {
			c.passes = passes
		}
	}
}

// WithUpdateEvery sets the step interval between update rounds of the
// q-learning loop.
func WithUpdateEvery(steps int) Option {
	return func(c *config) {
		if steps > 0 {
			c.updateEvery = steps
		}
	}
}

// WithTau sets the smooth-update rate for behavior and target syncs.
func WithTau(tau float64) Option {
	return func(c *config) {
		if tau > 0 && tau <= 1 {
			c.tau = tau
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.collector = metrics.NewCollector()
	}
}

func defaultConfig() config {
	return config{
		episodes:    100,
		batchSize:   32,
		passes:      4,
		updateEvery: 1,
		tau:         0.1,
		seed:        uint64(time.Now().UnixNano()),
		collector:   metrics.NewDummyCollector(),
	}
}
