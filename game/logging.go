package game

import (
	"log/slog"

	"github.com/pthm-cable/spacedrift/components"
	"github.com/pthm-cable/spacedrift/world"
)

// LogWorldState logs a summary of the world at Info level.
func (g *Game) LogWorldState() {
	var withVelocity, withSpin int
	g.store.Velocity.Each(func(_ world.Entity, v *components.Velocity) {
		if v.X != 0 || v.Y != 0 {
			withVelocity++
		}
	})
	g.store.AngularVelocity.Each(func(_ world.Entity, w *components.AngularVelocity) {
		if w.R != 0 {
			withSpin++
		}
	})

	attrs := []any{
		"tick", g.tick,
		"sim_time", g.clock.Time(),
		"speed", g.clock.Speed(),
		"paused", g.paused,
		"entities", g.store.Len(),
		"particles", g.ParticleCount(),
		"moving", withVelocity,
		"spinning", withSpin,
		slog.Group("camera",
			"x", g.camera.CenterPoint().X,
			"y", g.camera.CenterPoint().Y,
			"zoom", g.camera.Zoom(),
		),
	}
	if player, ok := g.ctx.Tracked(); ok {
		if pos, ok := g.store.Position.Get(player); ok {
			attrs = append(attrs, slog.Group("player", "x", pos.X, "y", pos.Y))
		}
	}
	g.logger.Info("world", attrs...)
}
