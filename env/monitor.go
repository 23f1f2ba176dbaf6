package env

import "github.com/rs/zerolog/log"

// Monitor wraps an Env and logs per-episode statistics: episode number,
// step count, return, and a moving average of the return.
type Monitor struct {
	Env

	window  int
	episode int
	steps   int
	ret     float64
	returns []float64
}

// NewMonitor wraps e, averaging returns over the given window of recent
// episodes.
func NewMonitor(e Env, window int) *Monitor {
	if window <= 0 {
		panic("monitor needs a positive averaging window")
	}
	return &Monitor{Env: e, window: window}
}

func (m *Monitor) Reset() []float64 {
	m.episode++
	m.steps = 0
	m.ret = 0
	return m.Env.Reset()
}

func (m *Monitor) Step(action int) ([]float64, float64, bool) {
	obs, reward, done := m.Env.Step(action)
	m.steps++
	m.ret += reward

	if done {
		m.returns = append(m.returns, m.ret)
		if len(m.returns) > m.window {
			m.returns = m.returns[1:]
		}
		log.Info().Msgf("episode %d done after %d steps: return %.3f (avg %.3f over last %d)",
			m.episode, m.steps, m.ret, m.avgReturn(), len(m.returns))
	}
	return obs, reward, done
}

// Episode returns the current episode number (1-based after first Reset).
func (m *Monitor) Episode() int {
	return m.episode
}

// AvgReturn returns the moving average of recent episode returns.
func (m *Monitor) AvgReturn() float64 {
	return m.avgReturn()
}

func (m *Monitor) avgReturn() float64 {
	if len(m.returns) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range m.returns {
		sum += r
	}
	return sum / float64(len(m.returns))
}
