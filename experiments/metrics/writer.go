package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig identifies one agent configuration in an experiment.
type AgentConfig struct {
	ID           int
	Algorithm    string
	Epsilon      float64
	Temperature  float64
	LearningRate float64
	Episodes     int
}

// EpisodeRecord ties an episode metric to the agent that produced it.
type EpisodeRecord struct {
	Agent int // AgentConfig.ID
	EpisodeMetric
}

type Writer struct {
	baseDir string
}

func NewWriter(experiment string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", experiment, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

// BaseDir returns the run directory the writer stores files under.
func (w *Writer) BaseDir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	// Create a file
	path := filepath.Join(w.baseDir, "agent_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create agent configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"id", "algorithm", "epsilon", "temperature", "learning_rate", "episodes"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write agent configs header: %w", err)
	}

	// Write each row
	for _, config := range configs {
		row := []string{
			strconv.Itoa(config.ID),
			config.Algorithm,
			strconv.FormatFloat(config.Epsilon, 'g', -1, 64),
			strconv.FormatFloat(config.Temperature, 'g', -1, 64),
			strconv.FormatFloat(config.LearningRate, 'g', -1, 64),
			strconv.Itoa(config.Episodes),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write agent config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteEpisodeRecords(records []EpisodeRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "episode_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create episode records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"agent", "episode", "steps", "return", "mean_td", "clip_fraction"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write episode records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Agent),
			strconv.Itoa(record.Episode),
			strconv.Itoa(record.Steps),
			strconv.FormatFloat(record.Return, 'g', -1, 64),
			strconv.FormatFloat(record.MeanTD, 'g', -1, 64),
			strconv.FormatFloat(record.ClipFraction, 'g', -1, 64),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write episode record row: %w", err)
		}
	}

	return nil
}
