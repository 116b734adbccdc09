package game

import (
	"github.com/pthm-cable/spacedrift/parallax"
	"github.com/pthm-cable/spacedrift/scene"
	"github.com/pthm-cable/spacedrift/telemetry"
)

// Scene returns the entity draw list for the current camera. The slice is
// reused on the next call.
func (g *Game) Scene() []scene.Item {
	return g.scene.Build(g.camera)
}

// Stars returns the backdrop draw list, farthest plane first.
func (g *Game) Stars() ([]parallax.Draw, error) {
	return g.stars.Draws(parallax.ViewFromCamera(g.camera))
}

// HUD is the status shown over the scene.
type HUD struct {
	Tick      int64
	Time      float64
	Speed     float64
	Paused    bool
	Zoom      float64
	Entities  int
	Particles int
	Perf      telemetry.PerfStats
}

// HUD collects the current status.
func (g *Game) HUD() HUD {
	return HUD{
		Tick:      g.tick,
		Time:      g.clock.Time(),
		Speed:     g.clock.Speed(),
		Paused:    g.paused,
		Zoom:      g.camera.Zoom(),
		Entities:  g.store.Len(),
		Particles: g.ParticleCount(),
		Perf:      g.perfCollector.Stats(),
	}
}

// RecordFrame marks a rendered frame for FPS tracking.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}
