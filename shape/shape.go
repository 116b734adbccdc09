// Package shape defines the drawable outline of an entity.
//
// Shape is a closed set of variants: Circle, Rectangle, Sprite and Compound.
// A Compound owns its children by value, so a shape tree can never refer
// back to one of its ancestors.
package shape

import "gonum.org/v1/gonum/spatial/r2"

// Shape is implemented only by the variants in this package.
type Shape interface {
	isShape()
}

// Circle is a disc centered on the local origin.
type Circle struct {
	Radius float64
}

// Rectangle is an axis-aligned box centered on the local origin.
type Rectangle struct {
	Width, Height float64
}

// ParticleSprite names the image used by generated particle sprites.
const ParticleSprite = "particle"

// Sprite is a named image drawn into a centered box.
type Sprite struct {
	Name          string
	Width, Height float64
}

// Compound groups child shapes, each with its own local offset and rotation.
type Compound struct {
	Parts []SubShape
}

// SubShape places a child shape inside a Compound.
type SubShape struct {
	Offset   r2.Vec
	Rotation float64 // radians
	Shape    Shape
}

func (Circle) isShape()    {}
func (Rectangle) isShape() {}
func (Sprite) isShape()    {}
func (Compound) isShape()  {}

// Default is the shape used when none is given.
func Default() Shape {
	return Circle{Radius: 1}
}

// Depth returns the nesting depth of s. Leaves have depth 1.
func Depth(s Shape) int {
	c, ok := s.(Compound)
	if !ok {
		return 1
	}
	deepest := 0
	for _, p := range c.Parts {
		if d := Depth(p.Shape); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Leaves counts the non-compound shapes in s.
func Leaves(s Shape) int {
	c, ok := s.(Compound)
	if !ok {
		if s == nil {
			return 0
		}
		return 1
	}
	n := 0
	for _, p := range c.Parts {
		n += Leaves(p.Shape)
	}
	return n
}

// Extent returns the half-size of a square that encloses s around its
// local origin. Used for visibility culling.
func Extent(s Shape) float64 {
	switch v := s.(type) {
	case Circle:
		return v.Radius
	case Rectangle:
		return r2.Norm(r2.Vec{X: v.Width, Y: v.Height}) / 2
	case Sprite:
		return r2.Norm(r2.Vec{X: v.Width, Y: v.Height}) / 2
	case Compound:
		var ext float64
		for _, p := range v.Parts {
			if e := r2.Norm(p.Offset) + Extent(p.Shape); e > ext {
				ext = e
			}
		}
		return ext
	}
	return 0
}
