package systems

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacedrift/components"
	"github.com/pthm-cable/spacedrift/shape"
	"github.com/pthm-cable/spacedrift/world"
)

// InputSystem turns the input snapshot into player thrust, aim, camera
// motion and particle spawns.
type InputSystem struct{}

// NewInputSystem creates the input stage.
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (s *InputSystem) Info() StageInfo {
	return StageInfo{
		ID:          StageInput,
		Name:        "Input",
		Description: "Steers the player, moves the camera and spawns particles",
	}
}

func (s *InputSystem) Access() Access {
	return Access{
		Reads: components.KindInput | components.KindPosition,
		Writes: components.KindAcceleration | components.KindRotation |
			components.KindCamera | components.KindEntities,
	}
}

func (s *InputSystem) Run(ctx *Context) {
	in := ctx.Input

	if in.MouseLeft {
		ctx.Commands.Spawn(ParticleBundle(ctx))
	}

	if dy := in.MouseScroll[1]; dy != 0 {
		ctx.Camera.ScrollZoom(ctx.Tuning.ZoomFactor, dy)
	}

	e, ok := ctx.Tracked()
	if !ok {
		ctx.Camera.CenterAt(in.Cursor())
		return
	}

	acc := components.Acceleration{Vec: r2.Scale(ctx.Tuning.BaseAcceleration, in.KeyboardDirection())}
	rot := components.Rotation{Angle: in.AimAngle(ctx.Camera.ScreenCenter())}
	s.write(ctx, e, ctx.Store.Acceleration.Set(e, acc), world.Bundle{Acceleration: &acc})
	s.write(ctx, e, ctx.Store.Rotation.Set(e, rot), world.Bundle{Rotation: &rot})

	if pos, ok := ctx.Store.Position.Get(e); ok {
		ctx.Camera.CenterAt(pos.Vec)
	}
}

// write falls back to a deferred insert when the component is missing.
func (s *InputSystem) write(ctx *Context, e world.Entity, err error, b world.Bundle) {
	switch {
	case err == nil:
	case errors.Is(err, world.ErrMissingComponent):
		if err := ctx.Commands.Insert(e, b); err != nil {
			ctx.logger().Debug("input write dropped", "err", err)
		}
	default:
		ctx.logger().Warn("input write failed", "entity", e.ID(), "err", err)
	}
}

// ParticleBundle builds a particle with random velocity, spin and shape.
// It sits at the origin, or under the cursor when Tuning.SpawnAtCursor is
// set, with zero rotation and acceleration.
func ParticleBundle(ctx *Context) world.Bundle {
	t := ctx.Tuning
	rng := ctx.Rand

	pos := components.Position{}
	if t.SpawnAtCursor {
		pos.Vec = ctx.Camera.ScreenToWorld(ctx.Input.Cursor())
	}
	rot := components.Rotation{}
	acc := components.Acceleration{}
	vel := components.NewVelocity(
		uniform(rng.Float64(), -t.MaxVelocity, t.MaxVelocity),
		uniform(rng.Float64(), -t.MaxVelocity, t.MaxVelocity),
	)
	angVel := components.AngularVelocity{
		R: uniform(rng.Float64(), -t.MaxAngularVelocity, t.MaxAngularVelocity),
	}
	shp := components.Shape{Shape: shape.Random(rng, t.ShapeSize, t.MaxShapeDepth)}

	return world.Bundle{
		Position:        &pos,
		Rotation:        &rot,
		Velocity:        &vel,
		Acceleration:    &acc,
		AngularVelocity: &angVel,
		Shape:           &shp,
	}
}

// uniform maps u in [0, 1) onto [lo, hi).
func uniform(u, lo, hi float64) float64 {
	return lo + (hi-lo)*u
}
