package shape

import (
	"math"
	"math/rand/v2"
	"reflect"
	"testing"
)

func TestPlayerNosePointsUp(t *testing.T) {
	c, ok := Player().(Compound)
	if !ok {
		t.Fatalf("player shape should be a compound, got %T", Player())
	}
	if len(c.Parts) != 4 {
		t.Fatalf("expected 4 parts, got %d", len(c.Parts))
	}
	nose := c.Parts[1]
	if nose.Offset.X != 0 || nose.Offset.Y >= 0 {
		t.Errorf("nose should sit above the hull, got offset %v", nose.Offset)
	}
	if Depth(Player()) != 2 {
		t.Errorf("expected depth 2, got %d", Depth(Player()))
	}
}

func TestRandomRespectsDepthCap(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for maxDepth := 1; maxDepth <= 3; maxDepth++ {
		for range 200 {
			s := Random(rng, 1, maxDepth)
			if d := Depth(s); d > maxDepth {
				t.Fatalf("depth %d exceeds cap %d", d, maxDepth)
			}
		}
	}
}

func TestRandomVariantsAndBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	seen := map[string]bool{}
	for range 400 {
		s := Random(rng, 2, 2)
		switch v := s.(type) {
		case Circle:
			seen["circle"] = true
			if v.Radius != 1 {
				t.Errorf("circle radius should be size/2, got %f", v.Radius)
			}
		case Rectangle:
			seen["rect"] = true
			if v.Width != 2 || v.Height != 2 {
				t.Errorf("unexpected rectangle %v", v)
			}
		case Sprite:
			seen["sprite"] = true
			if v.Name != ParticleSprite {
				t.Errorf("sprite should use %q, got %q", ParticleSprite, v.Name)
			}
		case Compound:
			seen["compound"] = true
			if len(v.Parts) != CompoundParts {
				t.Errorf("expected %d parts, got %d", CompoundParts, len(v.Parts))
			}
			for _, p := range v.Parts {
				if math.Abs(p.Offset.X) > 1.5 || math.Abs(p.Offset.Y) > 1.5 {
					t.Errorf("offset %v outside ±0.75·size", p.Offset)
				}
				if p.Rotation < 0 || p.Rotation > math.Pi {
					t.Errorf("rotation %f outside [0, π]", p.Rotation)
				}
			}
		}
	}
	if len(seen) != 4 {
		t.Errorf("expected all four variants, saw %v", seen)
	}
}

func TestRandomIsSeeded(t *testing.T) {
	a := Random(rand.New(rand.NewPCG(3, 4)), 1, 3)
	b := Random(rand.New(rand.NewPCG(3, 4)), 1, 3)
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should give the same shape")
	}
}
