package engine

import (
	"golang.org/x/exp/rand"

	"approxrl/env"
	"approxrl/experiments/metrics"
	"approxrl/learn"
	"approxrl/policy"
	"approxrl/replay"
)

// ActorCritic is a PPO-style training loop. A behavior copy of the actor
// collects experience; once the buffer fills, the critic's TD errors serve
// as advantages for clipped policy-gradient updates, the buffer is
// cleared, and the behavior policy smooth-updates toward the freshly
// trained actor.
type ActorCritic struct {
	config
	env    env.Env
	actor  *policy.Softmax
	critic *learn.ValueTD
	ppo    *learn.PPOClip
	buffer *replay.Buffer
	rng    *rand.Rand
}

func NewActorCritic(e env.Env, actor *policy.Softmax, critic *learn.ValueTD, ppo *learn.PPOClip, buffer *replay.Buffer, options ...Option) *ActorCritic {
	if e == nil || actor == nil || critic == nil || ppo == nil || buffer == nil {
		panic("actor-critic loop needs an environment, actor, critic, updater and buffer")
	}
	loop := &ActorCritic{
		config: defaultConfig(),
		env:    e,
		actor:  actor,
		critic: critic,
		ppo:    ppo,
		buffer: buffer,
	}
	for _, option := range options {
		option(&loop.config)
	}
	loop.rng = rand.New(rand.NewSource(loop.seed))
	return loop
}

// Run trains for the configured number of episodes and returns the run
// summary with per-episode metrics (empty without WithMetrics).
func (l *ActorCritic) Run() (metrics.TrainMetric, []metrics.EpisodeMetric) {
	behavior := l.actor.Copy()
	l.collector.Start()

	for ep := 1; ep <= l.episodes; ep++ {
		s := l.env.Reset()
		steps := 0
		ret := 0.0
		meanTD := 0.0
		clipFraction := 0.0

		for {
			a, logp := behavior.Sample(s)
			sNext, r, done := l.env.Step(a)
			l.buffer.Add(s, a, r, done, logp)
			l.collector.AddStep()
			steps++
			ret += r

			if l.buffer.Len() == l.buffer.Capacity() {
				meanTD, clipFraction = l.updateRound()
				l.buffer.Clear()
				if err := behavior.SmoothUpdate(l.actor, l.tau); err != nil {
					panic(err) // behavior is a copy, shapes cannot diverge
				}
			}

			if done {
				break
			}
			s = sNext
		}

		l.collector.AddEpisode(metrics.EpisodeMetric{
			Episode:      ep,
			Steps:        steps,
			Return:       ret,
			MeanTD:       meanTD,
			ClipFraction: clipFraction,
		})
	}

	return l.collector.Complete()
}

// updateRound consumes the full buffer in several passes of sampled
// mini-batches, returning the mean TD error and clip fraction over the
// round.
func (l *ActorCritic) updateRound() (meanTD, clipFraction float64) {
	rounds := l.passes * l.buffer.Capacity() / l.batchSize
	if rounds == 0 {
		rounds = 1
	}
	for i := 0; i < rounds; i++ {
		batch := l.buffer.Sample(l.rng, l.batchSize)
		adv := l.critic.TDError(batch)
		clipFraction += l.ppo.Update(batch, adv)
		meanTD += l.critic.Update(batch)
		l.collector.AddUpdate()
	}
	l.critic.SyncTarget(l.tau)
	return meanTD / float64(rounds), clipFraction / float64(rounds)
}
