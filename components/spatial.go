package components

import "gonum.org/v1/gonum/spatial/r2"

// Position is an entity's location in world coordinates.
type Position struct {
	r2.Vec
}

// NewPosition returns a Position at (x, y).
func NewPosition(x, y float64) Position {
	return Position{r2.Vec{X: x, Y: y}}
}

// Rotation is an entity's heading in radians. It is never wrapped.
type Rotation struct {
	Angle float64
}

// Velocity is the rate of change of Position (world units / s).
type Velocity struct {
	r2.Vec
}

// NewVelocity returns a Velocity of (dx, dy).
func NewVelocity(dx, dy float64) Velocity {
	return Velocity{r2.Vec{X: dx, Y: dy}}
}

// Acceleration is the applied force per unit mass (world units / s / s).
// The input stage overwrites it every frame; it does not accumulate.
type Acceleration struct {
	r2.Vec
}

// NewAcceleration returns an Acceleration of (dx, dy).
func NewAcceleration(dx, dy float64) Acceleration {
	return Acceleration{r2.Vec{X: dx, Y: dy}}
}

// AngularVelocity is the rate of change of Rotation (radians / s).
type AngularVelocity struct {
	R float64
}
