package game

import (
	"fmt"

	"github.com/pthm-cable/spacedrift/components"
	"github.com/pthm-cable/spacedrift/shape"
	"github.com/pthm-cable/spacedrift/world"
)

// CreatePlayer spawns the steered ship at the origin and tracks it. It
// runs between ticks, so the entity exists immediately.
func (g *Game) CreatePlayer() (world.Entity, error) {
	e, err := g.store.Spawn(playerBundle())
	if err != nil {
		return e, fmt.Errorf("creating player: %w", err)
	}
	g.ctx.Track(e)
	g.logger.Debug("player created", "entity", e.ID())
	return e, nil
}

func playerBundle() world.Bundle {
	pos := components.NewPosition(0, 0)
	rot := components.Rotation{}
	vel := components.Velocity{}
	acc := components.Acceleration{}
	angVel := components.AngularVelocity{}
	shp := components.Shape{Shape: shape.Player()}
	return world.Bundle{
		Position:        &pos,
		Rotation:        &rot,
		Velocity:        &vel,
		Acceleration:    &acc,
		AngularVelocity: &angVel,
		Shape:           &shp,
	}
}

// ClearParticles queues every entity except the player for despawn. The
// entities disappear at the end of the next tick.
func (g *Game) ClearParticles() int {
	player, hasPlayer := g.ctx.Tracked()
	n := 0
	g.store.Shape.Each(func(e world.Entity, _ *components.Shape) {
		if hasPlayer && e == player {
			return
		}
		g.commands.Despawn(e)
		n++
	})
	return n
}

// ParticleCount returns the number of shaped entities other than the
// player.
func (g *Game) ParticleCount() int {
	n := g.store.Shape.Count()
	if _, ok := g.ctx.Tracked(); ok {
		n--
	}
	return n
}
