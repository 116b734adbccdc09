// Package transform implements the 2D affine transforms used to map world
// coordinates onto the screen.
package transform

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrSingular is returned when a transform has no inverse.
var ErrSingular = errors.New("transform: singular matrix")

// Affine is the matrix
//
//	| A B C |
//	| D E F |
//	| 0 0 1 |
//
// Builder methods post-multiply, so each call works in the local space
// produced by the calls before it:
//
//	Identity().Trans(w/2, h/2).Zoom(z).Trans(-cx, -cy)
//
// maps the world point (cx, cy) to the screen center.
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// Mul returns a·b (b is applied first).
func (a Affine) Mul(b Affine) Affine {
	return Affine{
		A: a.A*b.A + a.B*b.D,
		B: a.A*b.B + a.B*b.E,
		C: a.A*b.C + a.B*b.F + a.C,
		D: a.D*b.A + a.E*b.D,
		E: a.D*b.B + a.E*b.E,
		F: a.D*b.C + a.E*b.F + a.F,
	}
}

// Trans appends a translation.
func (a Affine) Trans(x, y float64) Affine {
	return a.Mul(Affine{A: 1, C: x, E: 1, F: y})
}

// TransVec appends a translation by v.
func (a Affine) TransVec(v r2.Vec) Affine {
	return a.Trans(v.X, v.Y)
}

// Zoom appends a uniform scale.
func (a Affine) Zoom(s float64) Affine {
	return a.Mul(Affine{A: s, E: s})
}

// Rot appends a rotation by rad radians.
func (a Affine) Rot(rad float64) Affine {
	sin, cos := math.Sincos(rad)
	return a.Mul(Affine{A: cos, B: -sin, D: sin, E: cos})
}

// Apply maps p through the transform.
func (a Affine) Apply(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: a.A*p.X + a.B*p.Y + a.C,
		Y: a.D*p.X + a.E*p.Y + a.F,
	}
}

// Origin returns where the local origin lands.
func (a Affine) Origin() r2.Vec {
	return r2.Vec{X: a.C, Y: a.F}
}

// Scale returns the length a local unit vector along x maps to.
func (a Affine) Scale() float64 {
	return math.Hypot(a.A, a.D)
}

// Angle returns the rotation component in radians.
func (a Affine) Angle() float64 {
	return math.Atan2(a.D, a.A)
}

// Invert returns the inverse transform.
func (a Affine) Invert() (Affine, error) {
	det := a.A*a.E - a.B*a.D
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Affine{}, fmt.Errorf("%w: determinant %g", ErrSingular, det)
	}

	m := mat.NewDense(3, 3, []float64{
		a.A, a.B, a.C,
		a.D, a.E, a.F,
		0, 0, 1,
	})
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		// A Condition error still carries a usable inverse.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return Affine{}, fmt.Errorf("%w: %v", ErrSingular, err)
		}
	}
	return Affine{
		A: inv.At(0, 0), B: inv.At(0, 1), C: inv.At(0, 2),
		D: inv.At(1, 0), E: inv.At(1, 1), F: inv.At(1, 2),
	}, nil
}

// VisibleBounds returns the world-space box that a maps onto the screen
// rectangle (0, 0)-(width, height).
func (a Affine) VisibleBounds(width, height float64) (r2.Box, error) {
	inv, err := a.Invert()
	if err != nil {
		return r2.Box{}, err
	}
	corners := [4]r2.Vec{
		inv.Apply(r2.Vec{}),
		inv.Apply(r2.Vec{X: width}),
		inv.Apply(r2.Vec{Y: height}),
		inv.Apply(r2.Vec{X: width, Y: height}),
	}
	box := r2.Box{Min: corners[0], Max: corners[0]}
	for _, c := range corners[1:] {
		box.Min.X = math.Min(box.Min.X, c.X)
		box.Min.Y = math.Min(box.Min.Y, c.Y)
		box.Max.X = math.Max(box.Max.X, c.X)
		box.Max.Y = math.Max(box.Max.Y, c.Y)
	}
	return box, nil
}
