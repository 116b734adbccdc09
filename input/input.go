// Package input holds the aggregated keyboard and mouse state that the
// window layer writes and the simulation reads once per tick.
package input

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Key is one of the four directional keys.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
)

// State is the input snapshot for one tick.
// Screen coordinates have y pointing down.
type State struct {
	Left, Right, Up, Down bool

	MouseLeft     bool
	MousePosition [2]float64 // absolute screen position
	MouseScroll   [2]float64 // delta since the previous tick
}

// SetKey records whether a directional key is held.
func (s *State) SetKey(k Key, held bool) {
	switch k {
	case KeyLeft:
		s.Left = held
	case KeyRight:
		s.Right = held
	case KeyUp:
		s.Up = held
	case KeyDown:
		s.Down = held
	}
}

// MoveMouse records the latest cursor position.
func (s *State) MoveMouse(x, y float64) {
	s.MousePosition = [2]float64{x, y}
}

// Scroll accumulates wheel movement until EndTick.
func (s *State) Scroll(dx, dy float64) {
	s.MouseScroll[0] += dx
	s.MouseScroll[1] += dy
}

// Merge folds a later snapshot into s. Held state and the cursor are
// replaced, scroll deltas add up.
func (s *State) Merge(next State) {
	s.Left, s.Right, s.Up, s.Down = next.Left, next.Right, next.Up, next.Down
	s.MouseLeft = next.MouseLeft
	s.MousePosition = next.MousePosition
	s.Scroll(next.MouseScroll[0], next.MouseScroll[1])
}

// EndTick clears per-tick deltas after the simulation consumed them.
func (s *State) EndTick() {
	s.MouseScroll = [2]float64{}
}

// Cursor returns the mouse position as a vector.
func (s *State) Cursor() r2.Vec {
	return r2.Vec{X: s.MousePosition[0], Y: s.MousePosition[1]}
}

// KeyboardDirection returns the movement direction selected by the
// directional keys. Diagonals are unit length, so moving diagonally is no
// faster than moving along an axis. Left wins over right, up over down.
func (s *State) KeyboardDirection() r2.Vec {
	horizontal := s.Left || s.Right
	vertical := s.Up || s.Down

	var d r2.Vec
	if horizontal {
		d.X = 1
		if s.Left {
			d.X = -1
		}
	}
	if vertical {
		d.Y = 1
		if s.Up {
			d.Y = -1
		}
	}
	if horizontal && vertical {
		d = r2.Scale(1/math.Sqrt2, d)
	}
	return d
}

// AimAngle returns the heading that points from screenCenter towards the
// cursor. Heading 0 faces up the screen and increases clockwise, which is
// the raw atan2 angle turned a quarter turn.
func (s *State) AimAngle(screenCenter r2.Vec) float64 {
	d := r2.Sub(s.Cursor(), screenCenter)
	return math.Atan2(d.X, -d.Y)
}
