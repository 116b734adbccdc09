package shape

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func nested() Shape {
	return Compound{Parts: []SubShape{
		{Shape: Circle{Radius: 1}},
		{Offset: r2.Vec{X: 2}, Shape: Compound{Parts: []SubShape{
			{Shape: Rectangle{Width: 1, Height: 1}},
			{Offset: r2.Vec{Y: 1}, Shape: Sprite{Name: "x", Width: 1, Height: 1}},
		}}},
	}}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"circle", Circle{Radius: 1}, 1},
		{"empty compound", Compound{}, 1},
		{"flat compound", Compound{Parts: []SubShape{{Shape: Circle{Radius: 1}}}}, 2},
		{"nested", nested(), 3},
	}
	for _, tc := range tests {
		if got := Depth(tc.shape); got != tc.want {
			t.Errorf("%s: expected depth %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestLeaves(t *testing.T) {
	if got := Leaves(nested()); got != 3 {
		t.Errorf("expected 3 leaves, got %d", got)
	}
	if got := Leaves(nil); got != 0 {
		t.Errorf("expected 0 leaves for nil, got %d", got)
	}
}

func TestExtent(t *testing.T) {
	if got := Extent(Circle{Radius: 2}); got != 2 {
		t.Errorf("circle extent: expected 2, got %f", got)
	}
	want := math.Sqrt(2) / 2
	if got := Extent(Rectangle{Width: 1, Height: 1}); math.Abs(got-want) > 1e-12 {
		t.Errorf("square extent: expected %f, got %f", want, got)
	}
	// nested sprite sits at (2,1) with half-diagonal sqrt(2)/2
	want = 2 + 1 + math.Sqrt(2)/2
	if got := Extent(nested()); math.Abs(got-want) > 1e-12 {
		t.Errorf("nested extent: expected %f, got %f", want, got)
	}
}

func TestCompoundOwnsChildrenByValue(t *testing.T) {
	parts := []SubShape{{Shape: Circle{Radius: 1}}}
	c := Compound{Parts: parts}
	copied := Compound{Parts: append([]SubShape(nil), c.Parts...)}
	copied.Parts[0].Shape = Circle{Radius: 5}

	if c.Parts[0].Shape.(Circle).Radius != 1 {
		t.Error("modifying a copy changed the original compound")
	}
}
