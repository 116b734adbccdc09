package telemetry

import "testing"

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(10)

	c.RecordMaintain(3, 1, 0)
	c.RecordMaintain(2, 0, 1)
	c.RecordIdleTick()

	if c.ShouldFlush(9) {
		t.Error("window should not be full at tick 9")
	}
	if !c.ShouldFlush(10) {
		t.Error("window should be full at tick 10")
	}

	stats := c.Flush(10, Snapshot{
		SimTime:        5,
		Speed:          1,
		Entities:       6,
		Zoom:           20,
		ParticleSpeeds: []float64{1, 2, 3, 4, 5},
	})

	if stats.Spawned != 5 || stats.Despawned != 1 || stats.Dropped != 1 || stats.IdleTicks != 1 {
		t.Errorf("unexpected counters %+v", stats)
	}
	if stats.Particles != 5 || stats.SpeedMean != 3 || stats.SpeedP50 != 3 {
		t.Errorf("unexpected distribution %+v", stats)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("unexpected window %d-%d", stats.WindowStartTick, stats.WindowEndTick)
	}

	// counters reset for the next window
	next := c.Flush(20, Snapshot{})
	if next.Spawned != 0 || next.IdleTicks != 0 || next.WindowStartTick != 10 {
		t.Errorf("collector did not reset: %+v", next)
	}
}

func TestNewCollectorClampsWindow(t *testing.T) {
	if c := NewCollector(0); c.WindowTicks() != 1 {
		t.Errorf("expected window of 1 tick, got %d", c.WindowTicks())
	}
}
