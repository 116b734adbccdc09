// Package systems contains the per-frame update stages and the scheduler
// that runs them.
package systems

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/spacedrift/camera"
	"github.com/pthm-cable/spacedrift/clock"
	"github.com/pthm-cable/spacedrift/input"
	"github.com/pthm-cable/spacedrift/world"
)

// Tuning holds the constants the stages read.
type Tuning struct {
	BaseAcceleration   float64 // player thrust, world units / s / s
	ZoomFactor         float64 // zoom multiplier per scroll step, > 0
	MaxVelocity        float64 // particle speed bound per axis
	MaxAngularVelocity float64 // particle spin bound, radians / s
	ShapeSize          float64
	MaxShapeDepth      int
	SpawnAtCursor      bool // spawn particles under the cursor instead of at the origin
}

// DefaultTuning returns the built-in constants.
func DefaultTuning() Tuning {
	return Tuning{
		BaseAcceleration:   10,
		ZoomFactor:         1.1,
		MaxVelocity:        20,
		MaxAngularVelocity: math.Pi,
		ShapeSize:          1,
		MaxShapeDepth:      3,
	}
}

// Context is everything a stage may touch during a frame. Each stage
// receives the same Context; which fields it reads or writes is declared
// by the stage's Access.
type Context struct {
	Clock    *clock.Clock
	Camera   *camera.Camera
	Input    *input.State
	Store    *world.Store
	Commands *world.Commands
	Rand     *rand.Rand
	Tuning   Tuning
	Logger   *slog.Logger

	player    world.Entity
	hasPlayer bool
}

// Track designates e as the entity the input stage steers and the camera
// follows.
func (c *Context) Track(e world.Entity) {
	c.player = e
	c.hasPlayer = true
}

// Tracked returns the tracked entity if one is set and still alive.
func (c *Context) Tracked() (world.Entity, bool) {
	if !c.hasPlayer || !c.Store.Alive(c.player) {
		return world.Entity{}, false
	}
	return c.player, true
}

func (c *Context) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
