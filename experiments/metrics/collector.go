package metrics

import (
	"sync/atomic"
	"time"
)

// TrainMetric summarizes one training run.
type TrainMetric struct {
	Episodes    int
	Steps       int
	Updates     int
	Duration    time.Duration
	FinalReturn float64
}

// EpisodeMetric summarizes one episode of a training run.
type EpisodeMetric struct {
	Episode      int
	Steps        int
	Return       float64
	MeanTD       float64
	ClipFraction float64
}

type Collector interface {
	Start()
	AddStep()
	AddUpdate()
	AddEpisode(m EpisodeMetric)
	Complete() (TrainMetric, []EpisodeMetric)
}

type collector struct {
	startTime time.Time
	steps     atomic.Int64
	updates   atomic.Int64
	episodes  []EpisodeMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
}

func (c *collector) AddStep() {
	c.steps.Add(1)
}

func (c *collector) AddUpdate() {
	c.updates.Add(1)
}

func (c *collector) AddEpisode(m EpisodeMetric) {
	c.episodes = append(c.episodes, m)
}

func (c *collector) Complete() (TrainMetric, []EpisodeMetric) {
	finalReturn := 0.0
	if len(c.episodes) > 0 {
		finalReturn = c.episodes[len(c.episodes)-1].Return
	}
	return TrainMetric{
		Episodes:    len(c.episodes),
		Steps:       int(c.steps.Load()),
		Updates:     int(c.updates.Load()),
		Duration:    time.Since(c.startTime),
		FinalReturn: finalReturn,
	}, c.episodes
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (dummyCollector) Start()                   {}
func (dummyCollector) AddStep()                 {}
func (dummyCollector) AddUpdate()               {}
func (dummyCollector) AddEpisode(EpisodeMetric) {}
func (dummyCollector) Complete() (TrainMetric, []EpisodeMetric) {
	return TrainMetric{}, nil
}
