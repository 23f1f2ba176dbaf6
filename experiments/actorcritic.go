package experiments

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"approxrl/engine"
	"approxrl/env"
	"approxrl/experiments/metrics"
	"approxrl/fa"
	"approxrl/learn"
	"approxrl/policy"
	"approxrl/replay"
)

const (
	cartPoleMaxSteps = 200
	acEpisodes       = 300
	acSeed           = 11
	acActorLR        = 0.01
	acCriticLR       = 0.05
	acClip           = 0.2
	acGamma          = 0.9
	acNStep          = 5
	acCapacity       = 256
)

// RunActorCritic trains a PPO-style actor/critic on cart-pole and stores
// CSV records and a learning-curve figure.
func RunActorCritic() {
	monitored := env.NewMonitor(env.NewCartPole(acSeed, cartPoleMaxSteps), 20)

	actor := policy.NewSoftmax(monitored.ObsSize(), monitored.NumActions(), policy.WithSeed(acSeed))
	actor.InitRandom(rand.New(rand.NewSource(acSeed)), 0.01)
	critic := learn.NewValueTD(fa.NewV(monitored.ObsSize()), acCriticLR)
	ppo := learn.NewPPOClip(actor, acActorLR, acClip)
	buffer := replay.New(acNStep, acGamma, acCapacity)

	loop := engine.NewActorCritic(monitored, actor, critic, ppo, buffer,
		engine.WithEpisodes(acEpisodes),
		engine.WithBatchSize(32),
		engine.WithPasses(4),
		engine.WithTau(0.1),
		engine.WithSeed(acSeed),
		engine.WithMetrics(),
	)

	log.Info().Msgf("starting actor-critic experiment on cart-pole...")
	train, episodes := loop.Run()
	log.Info().Msgf("completed actor-critic experiment: %d episodes, %d steps, %d updates in %s",
		train.Episodes, train.Steps, train.Updates, train.Duration)

	config := metrics.AgentConfig{
		ID:           1,
		Algorithm:    "ppo-clip",
		LearningRate: acActorLR,
		Episodes:     acEpisodes,
	}
	records := make([]metrics.EpisodeRecord, len(episodes))
	for i, em := range episodes {
		records[i] = metrics.EpisodeRecord{Agent: config.ID, EpisodeMetric: em}
	}

	writer, err := metrics.NewWriter("actor_critic")
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}
	err = writer.WriteAgentConfigs([]metrics.AgentConfig{config})
	if err != nil {
		panic(fmt.Sprintf("failed to store agent configs: %v", err))
	}
	err = writer.WriteEpisodeRecords(records)
	if err != nil {
		panic(fmt.Sprintf("failed to write episode records: %v", err))
	}
	log.Info().Msg("stored episode records")

	figure := filepath.Join(writer.BaseDir(), "learning_curve.png")
	err = saveLearningCurves(figure, "PPO actor-critic on CartPole", []metrics.AgentConfig{config}, records)
	if err != nil {
		panic(fmt.Sprintf("failed to plot learning curve: %v", err))
	}
	log.Info().Msgf("stored learning curve at %s", figure)
}
