package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	spawned   int
	despawned int
	dropped   int
	idle      int
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int64(windowTicks)}
}

// RecordMaintain adds the outcome of one maintain step.
func (c *Collector) RecordMaintain(spawned, despawned, dropped int) {
	c.spawned += spawned
	c.despawned += despawned
	c.dropped += dropped
}

// RecordIdleTick counts a tick that carried no time delta.
func (c *Collector) RecordIdleTick() {
	c.idle++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Snapshot is the world state sampled when a window closes.
type Snapshot struct {
	SimTime        float64
	Speed          float64
	Entities       int
	Zoom           float64
	PlayerX        float64
	PlayerY        float64
	PlayerSpeed    float64
	ParticleSpeeds []float64
}

// Flush produces the stats for the window ending at currentTick and resets
// the counters.
func (c *Collector) Flush(currentTick int64, snap Snapshot) WindowStats {
	mean, p10, p50, p90 := Distribution(snap.ParticleSpeeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      snap.SimTime,
		Speed:           snap.Speed,

		Entities:  snap.Entities,
		Particles: len(snap.ParticleSpeeds),

		Spawned:   c.spawned,
		Despawned: c.despawned,
		Dropped:   c.dropped,
		IdleTicks: c.idle,

		Zoom:        snap.Zoom,
		PlayerX:     snap.PlayerX,
		PlayerY:     snap.PlayerY,
		PlayerSpeed: snap.PlayerSpeed,

		SpeedMean: mean,
		SpeedP10:  p10,
		SpeedP50:  p50,
		SpeedP90:  p90,
	}

	c.windowStartTick = currentTick
	c.spawned, c.despawned, c.dropped, c.idle = 0, 0, 0, 0
	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}
