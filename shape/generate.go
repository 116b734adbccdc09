package shape

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// Player returns the ship outline: a round hull, a nose pointing up the
// screen (heading 0) and two swept wing squares behind it.
func Player() Shape {
	return Compound{Parts: []SubShape{
		{Shape: Circle{Radius: 1}},
		{Offset: r2.Vec{X: 0, Y: -0.75}, Shape: Rectangle{Width: 0.5, Height: 0.75}},
		{Offset: r2.Vec{X: 0.75, Y: 0.75}, Rotation: math.Pi / 4, Shape: Rectangle{Width: 0.5, Height: 0.5}},
		{Offset: r2.Vec{X: -0.75, Y: 0.75}, Rotation: math.Pi / 4, Shape: Rectangle{Width: 0.5, Height: 0.5}},
	}}
}

// CompoundParts is the number of children in a generated Compound.
const CompoundParts = 3

// Random draws a particle shape of the given size. Each of the four
// variants is equally likely; a Compound holds CompoundParts random
// children offset within ±0.75·size. Nesting stops at maxDepth, below
// which only leaf variants are drawn.
func Random(rng *rand.Rand, size float64, maxDepth int) Shape {
	variants := 4
	if maxDepth <= 1 {
		variants = 3
	}
	switch rng.IntN(variants) {
	case 0:
		return Circle{Radius: size / 2}
	case 1:
		return Rectangle{Width: size, Height: size}
	case 2:
		return Sprite{Name: ParticleSprite, Width: size, Height: size}
	}

	spread := size * 0.75
	parts := make([]SubShape, CompoundParts)
	for i := range parts {
		parts[i] = SubShape{
			Offset: r2.Vec{
				X: uniform(rng, -spread, spread),
				Y: uniform(rng, -spread, spread),
			},
			Rotation: uniform(rng, 0, math.Pi),
			Shape:    Random(rng, size, maxDepth-1),
		}
	}
	return Compound{Parts: parts}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
