package scene

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacedrift/camera"
	"github.com/pthm-cable/spacedrift/components"
	"github.com/pthm-cable/spacedrift/shape"
	"github.com/pthm-cable/spacedrift/transform"
	"github.com/pthm-cable/spacedrift/world"
)

func approx(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestFlattenNested(t *testing.T) {
	s := shape.Compound{Parts: []shape.SubShape{
		{Offset: r2.Vec{X: 1}, Shape: shape.Circle{Radius: 1}},
		{Offset: r2.Vec{X: 2}, Rotation: math.Pi / 2, Shape: shape.Compound{Parts: []shape.SubShape{
			{Offset: r2.Vec{X: 1}, Shape: shape.Rectangle{Width: 1, Height: 1}},
		}}},
	}}

	items := Flatten(nil, world.Entity{}, s, transform.Identity())
	if len(items) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(items))
	}
	if got := items[0].Transform.Origin(); !approx(got, r2.Vec{X: 1}) {
		t.Errorf("first leaf at %v, want (1, 0)", got)
	}
	// the inner offset is rotated by its parent: (2,0) + rot90(1,0) = (2,1)
	if got := items[1].Transform.Origin(); !approx(got, r2.Vec{X: 2, Y: 1}) {
		t.Errorf("nested leaf at %v, want (2, 1)", got)
	}
	if _, ok := items[1].Shape.(shape.Rectangle); !ok {
		t.Errorf("expected a rectangle leaf, got %T", items[1].Shape)
	}
}

func TestBuildAppliesCameraAndEntityTransform(t *testing.T) {
	store := world.NewStore()
	pos := components.NewPosition(2, 0)
	rot := components.Rotation{Angle: math.Pi / 2}
	shp := components.Shape{Shape: shape.Compound{Parts: []shape.SubShape{
		{Offset: r2.Vec{X: 1}, Shape: shape.Circle{Radius: 0.5}},
	}}}
	e, err := store.Spawn(world.Bundle{Position: &pos, Rotation: &rot, Shape: &shp})
	if err != nil {
		t.Fatal(err)
	}

	cam := camera.New(800, 600, 10)
	items := NewBuilder(store).Build(cam)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Entity != e {
		t.Error("item should reference its entity")
	}
	// world (2,0) + rot90(1,0) = (2,1) -> screen (400+20, 300+10)
	if got := items[0].Transform.Origin(); !approx(got, r2.Vec{X: 420, Y: 310}) {
		t.Errorf("expected screen origin (420, 310), got %v", got)
	}
	if math.Abs(items[0].Transform.Scale()-10) > 1e-9 {
		t.Errorf("expected scale 10, got %f", items[0].Transform.Scale())
	}
}

func TestBuildWithoutRotation(t *testing.T) {
	store := world.NewStore()
	pos := components.NewPosition(0, 0)
	shp := components.Shape{Shape: shape.Default()}
	if _, err := store.Spawn(world.Bundle{Position: &pos, Shape: &shp}); err != nil {
		t.Fatal(err)
	}

	items := NewBuilder(store).Build(camera.New(100, 100, 1))
	if len(items) != 1 || items[0].Transform.Angle() != 0 {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestBuildCullsOffscreen(t *testing.T) {
	store := world.NewStore()
	for _, x := range []float64{0, 1000} {
		pos := components.NewPosition(x, 0)
		shp := components.Shape{Shape: shape.Circle{Radius: 1}}
		if _, err := store.Spawn(world.Bundle{Position: &pos, Shape: &shp}); err != nil {
			t.Fatal(err)
		}
	}
	// entity without a shape is never drawn
	pos := components.NewPosition(0, 0)
	if _, err := store.Spawn(world.Bundle{Position: &pos}); err != nil {
		t.Fatal(err)
	}

	b := NewBuilder(store)
	cam := camera.New(800, 600, 20)
	if n := len(b.Build(cam)); n != 1 {
		t.Errorf("expected 1 visible item, got %d", n)
	}
	b.Cull = false
	if n := len(b.Build(cam)); n != 2 {
		t.Errorf("expected 2 items without culling, got %d", n)
	}
}
