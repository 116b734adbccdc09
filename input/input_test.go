package input

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestKeyboardDirection(t *testing.T) {
	inv := 1 / math.Sqrt2
	tests := []struct {
		name  string
		state State
		want  r2.Vec
	}{
		{"none", State{}, r2.Vec{}},
		{"left", State{Left: true}, r2.Vec{X: -1}},
		{"right", State{Right: true}, r2.Vec{X: 1}},
		{"up", State{Up: true}, r2.Vec{Y: -1}},
		{"down", State{Down: true}, r2.Vec{Y: 1}},
		{"left+up", State{Left: true, Up: true}, r2.Vec{X: -inv, Y: -inv}},
		{"right+down", State{Right: true, Down: true}, r2.Vec{X: inv, Y: inv}},
		{"left+right", State{Left: true, Right: true}, r2.Vec{X: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.state.KeyboardDirection()
			if !near(got.X, tc.want.X) || !near(got.Y, tc.want.Y) {
				t.Errorf("expected (%f, %f), got (%f, %f)", tc.want.X, tc.want.Y, got.X, got.Y)
			}
		})
	}
}

func TestDiagonalIsUnitLength(t *testing.T) {
	s := State{Left: true, Up: true}
	if n := r2.Norm(s.KeyboardDirection()); !near(n, 1) {
		t.Errorf("diagonal length should be 1, got %f", n)
	}
}

func TestAimAngle(t *testing.T) {
	center := r2.Vec{X: 400, Y: 300}
	tests := []struct {
		name   string
		cursor [2]float64
		want   float64
	}{
		{"up", [2]float64{400, 100}, 0},
		{"right", [2]float64{600, 300}, math.Pi / 2},
		{"down", [2]float64{400, 500}, math.Pi},
		{"left", [2]float64{200, 300}, -math.Pi / 2},
	}

	for _, tc := range tests {
		s := State{MousePosition: tc.cursor}
		if got := s.AimAngle(center); !near(got, tc.want) {
			t.Errorf("%s: expected %f, got %f", tc.name, tc.want, got)
		}
	}
}

func TestScrollAccumulatesUntilEndTick(t *testing.T) {
	var s State
	s.Scroll(0, 1)
	s.Scroll(0, 2)
	if s.MouseScroll[1] != 3 {
		t.Errorf("expected accumulated scroll 3, got %f", s.MouseScroll[1])
	}
	s.EndTick()
	if s.MouseScroll != [2]float64{} {
		t.Errorf("expected scroll cleared, got %v", s.MouseScroll)
	}
}

func TestMerge(t *testing.T) {
	s := State{Left: true, MouseScroll: [2]float64{0, 1}}
	s.Merge(State{Right: true, MouseLeft: true, MousePosition: [2]float64{5, 6}, MouseScroll: [2]float64{0, 2}})

	if s.Left || !s.Right {
		t.Error("held keys should be replaced")
	}
	if !s.MouseLeft {
		t.Error("mouse button should be replaced")
	}
	if s.MousePosition != [2]float64{5, 6} {
		t.Errorf("cursor should be replaced, got %v", s.MousePosition)
	}
	if s.MouseScroll[1] != 3 {
		t.Errorf("scroll should add up, got %f", s.MouseScroll[1])
	}
}

func TestSetKey(t *testing.T) {
	var s State
	s.SetKey(KeyUp, true)
	s.SetKey(KeyRight, true)
	s.SetKey(KeyRight, false)
	if !s.Up || s.Right {
		t.Errorf("unexpected key state: %+v", s)
	}
}
