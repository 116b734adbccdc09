package game

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacedrift/components"
	"github.com/pthm-cable/spacedrift/telemetry"
	"github.com/pthm-cable/spacedrift/world"
)

// flushTelemetry closes the stats window when it is full.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sample())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats(g.logger)
		perfStats.LogStats(g.logger)
		g.LogWorldState()
	}

	for _, sink := range g.sinks {
		if err := sink.WriteStats(stats); err != nil {
			g.logger.Error("failed to write stats", "error", err)
		}
		if err := sink.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
}

// sample captures the world state at the end of a window.
func (g *Game) sample() telemetry.Snapshot {
	snap := telemetry.Snapshot{
		SimTime:  g.clock.Time(),
		Speed:    g.clock.Speed(),
		Entities: g.store.Len(),
		Zoom:     g.camera.Zoom(),
	}

	player, hasPlayer := g.ctx.Tracked()
	if hasPlayer {
		if pos, ok := g.store.Position.Get(player); ok {
			snap.PlayerX, snap.PlayerY = pos.X, pos.Y
		}
	}

	g.store.Velocity.Each(func(e world.Entity, v *components.Velocity) {
		speed := r2.Norm(v.Vec)
		if hasPlayer && e == player {
			snap.PlayerSpeed = speed
			return
		}
		snap.ParticleSpeeds = append(snap.ParticleSpeeds, speed)
	})
	return snap
}
