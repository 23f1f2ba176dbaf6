package experiments

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"approxrl/experiments/metrics"
	"approxrl/utils"
)

// saveLearningCurves plots one return-per-episode line per agent config
// and writes the figure to path. Records whose agent matches no config are
// skipped.
func saveLearningCurves(path, title string, configs []metrics.AgentConfig, records []metrics.EpisodeRecord) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "episode"
	p.Y.Label.Text = "return"

	ids := make([]int, len(configs))
	for i, config := range configs {
		ids[i] = config.ID
	}

	curves := make([]plotter.XYs, len(configs))
	for _, record := range records {
		i := utils.FindIndex(ids, record.Agent)
		if i < 0 {
			continue
		}
		curves[i] = append(curves[i], plotter.XY{X: float64(record.Episode), Y: record.Return})
	}

	lines := []interface{}{}
	for i, config := range configs {
		lines = append(lines, configLabel(config), curves[i])
	}

	if err := plotutil.AddLines(p, lines...); err != nil {
		return fmt.Errorf("failed to add learning curves: %w", err)
	}
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save learning curves: %w", err)
	}
	return nil
}

func configLabel(config metrics.AgentConfig) string {
	switch config.Algorithm {
	case "epsilon-greedy":
		return fmt.Sprintf("eps=%.2f", config.Epsilon)
	case "boltzmann":
		return fmt.Sprintf("tau=%.2f", config.Temperature)
	default:
		return config.Algorithm
	}
}
