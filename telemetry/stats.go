package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Speed           float64 `csv:"speed"`

	// Population at window end
	Entities  int `csv:"entities"`
	Particles int `csv:"particles"`

	// Events during window
	Spawned   int `csv:"spawned"`
	Despawned int `csv:"despawned"`
	Dropped   int `csv:"dropped"`
	IdleTicks int `csv:"idle_ticks"` // ticks without a delta

	// Camera and player at window end
	Zoom        float64 `csv:"zoom"`
	PlayerX     float64 `csv:"player_x"`
	PlayerY     float64 `csv:"player_y"`
	PlayerSpeed float64 `csv:"player_speed"`

	// Particle speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution returns the mean and the 10th, 50th and 90th percentiles.
func Distribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.10), Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("speed", s.Speed),
		slog.Int("entities", s.Entities),
		slog.Int("particles", s.Particles),
		slog.Int("spawned", s.Spawned),
		slog.Int("despawned", s.Despawned),
		slog.Int("dropped", s.Dropped),
		slog.Int("idle_ticks", s.IdleTicks),
		slog.Float64("zoom", s.Zoom),
		slog.Float64("player_x", s.PlayerX),
		slog.Float64("player_y", s.PlayerY),
		slog.Float64("player_speed", s.PlayerSpeed),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
	)
}

// LogStats logs the window at Info.
func (s WindowStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("stats", "window", s)
}
