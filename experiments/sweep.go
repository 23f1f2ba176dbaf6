package experiments

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"approxrl/engine"
	"approxrl/env"
	"approxrl/experiments/metrics"
	"approxrl/fa"
	"approxrl/learn"
	"approxrl/policy"
	"approxrl/replay"
)

const (
	chainLength   = 8
	chainMaxSteps = 100
	sweepEpisodes = 200
	sweepLR       = 0.5
	sweepGamma    = 0.9
	sweepSeed     = 7
)

var epsilonConfigs = []metrics.AgentConfig{
	{ID: 1, Algorithm: "epsilon-greedy", Epsilon: 0.01, LearningRate: sweepLR, Episodes: sweepEpisodes},
	{ID: 2, Algorithm: "epsilon-greedy", Epsilon: 0.05, LearningRate: sweepLR, Episodes: sweepEpisodes},
	{ID: 3, Algorithm: "epsilon-greedy", Epsilon: 0.1, LearningRate: sweepLR, Episodes: sweepEpisodes},
	{ID: 4, Algorithm: "epsilon-greedy", Epsilon: 0.3, LearningRate: sweepLR, Episodes: sweepEpisodes},
}

var temperatureConfigs = []metrics.AgentConfig{
	{ID: 5, Algorithm: "boltzmann", Temperature: 0.01, LearningRate: sweepLR, Episodes: sweepEpisodes},
	{ID: 6, Algorithm: "boltzmann", Temperature: 0.1, LearningRate: sweepLR, Episodes: sweepEpisodes},
	{ID: 7, Algorithm: "boltzmann", Temperature: 1.0, LearningRate: sweepLR, Episodes: sweepEpisodes},
}

// RunExplorationSweep trains q-learning agents on the chain environment
// across a range of epsilon and temperature settings, then stores CSV
// records and a learning-curve figure.
func RunExplorationSweep() {
	configs := append(append([]metrics.AgentConfig{}, epsilonConfigs...), temperatureConfigs...)
	records := []metrics.EpisodeRecord{}

	log.Info().Msgf("starting exploration sweep experiment...")

	for i, config := range configs {
		log.Info().Msgf("starting agent %d of %d: %s eps=%.2f tau=%.2f...",
			i+1, len(configs), config.Algorithm, config.Epsilon, config.Temperature)

		train, episodes := runSweepAgent(config)
		for _, em := range episodes {
			records = append(records, metrics.EpisodeRecord{
				Agent:         config.ID,
				EpisodeMetric: em,
			})
		}

		log.Info().Msgf("completed agent %d of %d in %s with final return %.3f",
			i+1, len(configs), train.Duration, train.FinalReturn)
	}

	log.Info().Msgf("completed exploration sweep experiment")

	// Store experiment metadata
	writer, err := metrics.NewWriter("exploration_sweep")
	if err != nil {
		panic(fmt.Sprintf("failed to create experiment writer: %v", err))
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		panic(fmt.Sprintf("failed to store agent configs: %v", err))
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	err = writer.WriteEpisodeRecords(records)
	if err != nil {
		panic(fmt.Sprintf("failed to write episode records: %v", err))
	}
	log.Info().Msg("stored episode records")

	figure := filepath.Join(writer.BaseDir(), "learning_curves.png")
	err = saveLearningCurves(figure, "Exploration sweep on Chain", configs, records)
	if err != nil {
		panic(fmt.Sprintf("failed to plot learning curves: %v", err))
	}
	log.Info().Msgf("stored learning curves at %s", figure)
}

// runSweepAgent trains a single q-learning agent with the behavior policy
// the config names.
func runSweepAgent(config metrics.AgentConfig) (metrics.TrainMetric, []metrics.EpisodeMetric) {
	chain := env.NewChain(chainLength, chainMaxSteps)
	q := fa.NewQ(chain.ObsSize(), chain.NumActions())

	var behavior policy.Policy
	switch config.Algorithm {
	case "epsilon-greedy":
		behavior = policy.NewEpsilonGreedy(q, config.Epsilon, policy.WithSeed(sweepSeed))
	case "boltzmann":
		behavior = policy.NewBoltzmann(q, config.Temperature, policy.WithSeed(sweepSeed))
	default:
		panic(fmt.Sprintf("unknown algorithm %q", config.Algorithm))
	}

	updater := learn.NewQLearning(q, config.LearningRate)
	buffer := replay.New(1, sweepGamma, 2048)

	loop := engine.NewQLoop(chain, behavior, updater, buffer,
		engine.WithEpisodes(config.Episodes),
		engine.WithBatchSize(32),
		engine.WithTau(0.1),
		engine.WithSeed(sweepSeed),
		engine.WithMetrics(),
	)
	return loop.Run()
}
