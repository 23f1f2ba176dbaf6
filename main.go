package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"approxrl/agent"
	"approxrl/engine"
	"approxrl/env"
	"approxrl/experiments"
	"approxrl/fa"
	"approxrl/learn"
	"approxrl/policy"
	"approxrl/replay"
)

func main() {
	experiment := flag.String("experiment", "actorcritic", "Experiment to run: actorcritic, sweep or serve")
	port := flag.String("port", "8080", "Port for the agent server (serve mode)")
	flag.Parse()

	switch *experiment {
	case "actorcritic":
		experiments.RunActorCritic()
	case "sweep":
		experiments.RunExplorationSweep()
	case "serve":
		servePolicy(*port)
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
}

// servePolicy trains a q-learning agent on the chain environment and then
// serves its greedy policy over HTTP.
func servePolicy(port string) {
	chain := env.NewChain(8, 100)
	q := fa.NewQ(chain.ObsSize(), chain.NumActions())
	behavior := policy.NewEpsilonGreedy(q, 0.1)
	updater := learn.NewQLearning(q, 0.5)
	buffer := replay.New(1, 0.9, 2048)

	loop := engine.NewQLoop(chain, behavior, updater, buffer,
		engine.WithEpisodes(200),
		engine.WithBatchSize(32),
		engine.WithTau(0.1),
	)

	log.Info().Msg("training policy before serving...")
	loop.Run()

	greedy := policy.NewEpsilonGreedy(q, 0)
	if err := agent.StartServer(agent.NewEvaluationAgent(greedy), port); err != nil {
		log.Fatal().Err(err).Msg("agent server stopped")
	}
}
