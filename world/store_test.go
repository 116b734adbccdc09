package world

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/pthm-cable/spacedrift/components"
)

func quietCommands() *Commands {
	return NewCommands(slog.New(slog.DiscardHandler))
}

func TestSpawnAndGet(t *testing.T) {
	s := NewStore()
	pos := components.NewPosition(1, 2)
	vel := components.NewVelocity(3, 4)

	e, err := s.Spawn(Bundle{Position: &pos, Velocity: &vel})
	if err != nil {
		t.Fatalf("spawn failed: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 entity, got %d", s.Len())
	}

	p, ok := s.Position.Get(e)
	if !ok || p.X != 1 || p.Y != 2 {
		t.Errorf("unexpected position %v (ok=%v)", p, ok)
	}
	if s.Rotation.Has(e) {
		t.Error("entity should not have a rotation")
	}
}

func TestGetReturnsMutablePointer(t *testing.T) {
	s := NewStore()
	pos := components.NewPosition(0, 0)
	e, _ := s.Spawn(Bundle{Position: &pos})

	p, _ := s.Position.Get(e)
	p.X = 42

	again, _ := s.Position.Get(e)
	if again.X != 42 {
		t.Errorf("write through pointer lost, got %f", again.X)
	}
}

func TestStructuralChangesRefusedInFrame(t *testing.T) {
	s := NewStore()
	pos := components.NewPosition(0, 0)
	e, _ := s.Spawn(Bundle{Position: &pos})

	s.BeginFrame()
	defer s.EndFrame()

	if _, err := s.NewEntity(); !errors.Is(err, ErrFrameLocked) {
		t.Errorf("NewEntity: expected ErrFrameLocked, got %v", err)
	}
	if err := s.Despawn(e); !errors.Is(err, ErrFrameLocked) {
		t.Errorf("Despawn: expected ErrFrameLocked, got %v", err)
	}
	if err := s.Velocity.Insert(e, components.NewVelocity(1, 1)); !errors.Is(err, ErrFrameLocked) {
		t.Errorf("adding a component: expected ErrFrameLocked, got %v", err)
	}
	// overwriting an existing component is not structural
	if err := s.Position.Insert(e, components.NewPosition(5, 5)); err != nil {
		t.Errorf("overwrite in frame should succeed, got %v", err)
	}
	if err := s.Position.Set(e, components.NewPosition(6, 6)); err != nil {
		t.Errorf("set in frame should succeed, got %v", err)
	}
}

func TestSetMissingComponent(t *testing.T) {
	s := NewStore()
	e, _ := s.NewEntity()
	if err := s.Velocity.Set(e, components.NewVelocity(1, 0)); !errors.Is(err, ErrMissingComponent) {
		t.Errorf("expected ErrMissingComponent, got %v", err)
	}
}

func TestDespawnDeadEntity(t *testing.T) {
	s := NewStore()
	e, _ := s.NewEntity()
	if err := s.Despawn(e); err != nil {
		t.Fatalf("first despawn failed: %v", err)
	}
	if err := s.Despawn(e); !errors.Is(err, ErrDeadEntity) {
		t.Errorf("expected ErrDeadEntity, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected 0 entities, got %d", s.Len())
	}
	if _, ok := s.Position.Get(e); ok {
		t.Error("dead entity should have no components")
	}
}

func TestColumnEachAndCount(t *testing.T) {
	s := NewStore()
	for i := range 5 {
		pos := components.NewPosition(float64(i), 0)
		b := Bundle{Position: &pos}
		if i%2 == 0 {
			vel := components.NewVelocity(1, 0)
			b.Velocity = &vel
		}
		if _, err := s.Spawn(b); err != nil {
			t.Fatal(err)
		}
	}

	if n := s.Position.Count(); n != 5 {
		t.Errorf("expected 5 positions, got %d", n)
	}
	if n := s.Velocity.Count(); n != 3 {
		t.Errorf("expected 3 velocities, got %d", n)
	}

	sum := 0.0
	s.Position.Each(func(_ Entity, p *components.Position) {
		sum += p.X
	})
	if sum != 10 {
		t.Errorf("expected x sum 10, got %f", sum)
	}
}

func TestRemoveComponent(t *testing.T) {
	s := NewStore()
	pos := components.NewPosition(0, 0)
	vel := components.NewVelocity(1, 0)
	e, _ := s.Spawn(Bundle{Position: &pos, Velocity: &vel})

	if err := s.Velocity.Remove(e); err != nil {
		t.Fatal(err)
	}
	if s.Velocity.Has(e) {
		t.Error("velocity should be gone")
	}
	if !s.Position.Has(e) {
		t.Error("position should remain")
	}
	// absent component removal is a no-op
	if err := s.Velocity.Remove(e); err != nil {
		t.Errorf("second remove should be a no-op, got %v", err)
	}
}

func TestBundleKinds(t *testing.T) {
	pos := components.NewPosition(0, 0)
	rot := components.Rotation{}
	b := Bundle{Position: &pos, Rotation: &rot}
	want := components.KindPosition | components.KindRotation
	if b.Kinds() != want {
		t.Errorf("expected %s, got %s", want, b.Kinds())
	}
}
