package engine

import (
	"golang.org/x/exp/rand"

	"approxrl/env"
	"approxrl/experiments/metrics"
	"approxrl/learn"
	"approxrl/policy"
	"approxrl/replay"
)

// QLoop is a value-based training loop: a behavior policy derived from the
// q-function (epsilon-greedy or Boltzmann) collects experience while the
// q-learning updater trains the same shared weights from replayed batches.
type QLoop struct {
	config
	env      env.Env
	behavior policy.Policy
	updater  *learn.QLearning
	buffer   *replay.Buffer
	rng      *rand.Rand
}

func NewQLoop(e env.Env, behavior policy.Policy, updater *learn.QLearning, buffer *replay.Buffer, options ...Option) *QLoop {
	if e == nil || behavior == nil || updater == nil || buffer == nil {
		panic("q-learning loop needs an environment, behavior policy, updater and buffer")
	}
	loop := &QLoop{
		config:   defaultConfig(),
		env:      e,
		behavior: behavior,
		updater:  updater,
		buffer:   buffer,
	}
	for _, option := range options {
		option(&loop.config)
	}
	loop.rng = rand.New(rand.NewSource(loop.seed))
	return loop
}

// Run trains for the configured number of episodes and returns the run
// summary with per-episode metrics (empty without WithMetrics).
func (l *QLoop) Run() (metrics.TrainMetric, []metrics.EpisodeMetric) {
	l.collector.Start()
	totalSteps := 0

	for ep := 1; ep <= l.episodes; ep++ {
		s := l.env.Reset()
		steps := 0
		ret := 0.0
		meanTD := 0.0
		updates := 0

		for {
			a, logp := l.behavior.Sample(s)
			sNext, r, done := l.env.Step(a)
			l.buffer.Add(s, a, r, done, logp)
			l.collector.AddStep()
			steps++
			totalSteps++
			ret += r

			if totalSteps%l.updateEvery == 0 && l.buffer.Len() >= l.batchSize {
				batch := l.buffer.Sample(l.rng, l.batchSize)
				meanTD += l.updater.Update(batch)
				l.updater.SyncTarget(l.tau)
				l.collector.AddUpdate()
				updates++
			}

			if done {
				break
			}
			s = sNext
		}

		if updates > 0 {
			meanTD /= float64(updates)
		}
		l.collector.AddEpisode(metrics.EpisodeMetric{
			Episode: ep,
			Steps:   steps,
			Return:  ret,
			MeanTD:  meanTD,
		})
	}

	return l.collector.Complete()
}
