package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacedrift/components"
	"github.com/pthm-cable/spacedrift/telemetry"
	"github.com/pthm-cable/spacedrift/world"
)

// Stage IDs double as perf phase names.
const (
	StageInput           = telemetry.PhaseInput
	StageAcceleration    = telemetry.PhaseAcceleration
	StageLinearMovement  = telemetry.PhaseLinearMovement
	StageAngularMovement = telemetry.PhaseAngularMovement
)

// AccelerationSystem integrates acceleration into velocity.
type AccelerationSystem struct {
	filter *ecs.Filter2[components.Acceleration, components.Velocity]
}

// NewAccelerationSystem creates the acceleration stage.
func NewAccelerationSystem(store *world.Store) *AccelerationSystem {
	return &AccelerationSystem{
		filter: ecs.NewFilter2[components.Acceleration, components.Velocity](store.World()),
	}
}

func (s *AccelerationSystem) Info() StageInfo {
	return StageInfo{
		ID:          StageAcceleration,
		Name:        "Acceleration",
		Description: "velocity += acceleration * dt",
	}
}

func (s *AccelerationSystem) Access() Access {
	return Access{
		Reads:  components.KindAcceleration | components.KindClock,
		Writes: components.KindVelocity,
	}
}

// Run skips the frame entirely when the clock has no delta.
func (s *AccelerationSystem) Run(ctx *Context) {
	dt, ok := ctx.Clock.DT()
	if !ok {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		acc, vel := query.Get()
		vel.Vec = r2.Add(vel.Vec, r2.Scale(dt, acc.Vec))
	}
}

// LinearMovementSystem integrates velocity into position.
// It must run after AccelerationSystem so positions use this frame's
// velocity.
type LinearMovementSystem struct {
	filter *ecs.Filter2[components.Velocity, components.Position]
}

// NewLinearMovementSystem creates the linear movement stage.
func NewLinearMovementSystem(store *world.Store) *LinearMovementSystem {
	return &LinearMovementSystem{
		filter: ecs.NewFilter2[components.Velocity, components.Position](store.World()),
	}
}

func (s *LinearMovementSystem) Info() StageInfo {
	return StageInfo{
		ID:          StageLinearMovement,
		Name:        "Linear Movement",
		Description: "position += velocity * dt",
		After:       []string{StageAcceleration},
	}
}

func (s *LinearMovementSystem) Access() Access {
	return Access{
		Reads:  components.KindVelocity | components.KindClock,
		Writes: components.KindPosition,
	}
}

func (s *LinearMovementSystem) Run(ctx *Context) {
	dt, ok := ctx.Clock.DT()
	if !ok {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		vel, pos := query.Get()
		pos.Vec = r2.Add(pos.Vec, r2.Scale(dt, vel.Vec))
	}
}

// AngularMovementSystem integrates angular velocity into rotation.
type AngularMovementSystem struct {
	filter *ecs.Filter2[components.AngularVelocity, components.Rotation]
}

// NewAngularMovementSystem creates the angular movement stage.
func NewAngularMovementSystem(store *world.Store) *AngularMovementSystem {
	return &AngularMovementSystem{
		filter: ecs.NewFilter2[components.AngularVelocity, components.Rotation](store.World()),
	}
}

func (s *AngularMovementSystem) Info() StageInfo {
	return StageInfo{
		ID:          StageAngularMovement,
		Name:        "Angular Movement",
		Description: "rotation += angular_velocity * dt",
	}
}

func (s *AngularMovementSystem) Access() Access {
	return Access{
		Reads:  components.KindAngularVelocity | components.KindClock,
		Writes: components.KindRotation,
	}
}

func (s *AngularMovementSystem) Run(ctx *Context) {
	dt, ok := ctx.Clock.DT()
	if !ok {
		return
	}
	query := s.filter.Query()
	for query.Next() {
		angVel, rot := query.Get()
		rot.Angle += angVel.R * dt
	}
}
