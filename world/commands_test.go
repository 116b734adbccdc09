package world

import (
	"errors"
	"testing"

	"github.com/pthm-cable/spacedrift/components"
)

func TestSpawnDeferredUntilApply(t *testing.T) {
	s := NewStore()
	cmds := quietCommands()

	s.BeginFrame()
	pos := components.NewPosition(3, 4)
	cmds.Spawn(Bundle{Position: &pos})
	if s.Len() != 0 {
		t.Errorf("spawn must not be visible during the frame, have %d entities", s.Len())
	}
	s.EndFrame()

	res, err := cmds.Apply(s)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if len(res.Spawned) != 1 || s.Len() != 1 {
		t.Fatalf("expected one spawned entity, got %d (store %d)", len(res.Spawned), s.Len())
	}
	p, ok := s.Position.Get(res.Spawned[0])
	if !ok || p.X != 3 || p.Y != 4 {
		t.Errorf("unexpected spawned position %v", p)
	}
	if cmds.Len() != 0 {
		t.Errorf("buffer should be empty after apply, has %d", cmds.Len())
	}
}

func TestApplyRefusedInFrame(t *testing.T) {
	s := NewStore()
	cmds := quietCommands()
	cmds.Spawn(Bundle{})

	s.BeginFrame()
	if _, err := cmds.Apply(s); !errors.Is(err, ErrFrameLocked) {
		t.Errorf("expected ErrFrameLocked, got %v", err)
	}
	s.EndFrame()
	if cmds.Len() != 1 {
		t.Errorf("refused apply must keep the buffer, has %d", cmds.Len())
	}
}

func TestInsertAfterDespawnIsDropped(t *testing.T) {
	s := NewStore()
	cmds := quietCommands()
	e, _ := s.NewEntity()

	cmds.Despawn(e)
	vel := components.NewVelocity(1, 1)
	if err := cmds.Insert(e, Bundle{Velocity: &vel}); !errors.Is(err, ErrStaleEntity) {
		t.Errorf("expected ErrStaleEntity, got %v", err)
	}

	res, err := cmds.Apply(s)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if res.Despawned != 1 || res.Inserted != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	if s.Alive(e) {
		t.Error("entity should be dead")
	}
}

func TestInsertOnDeadEntityIsDropped(t *testing.T) {
	s := NewStore()
	cmds := quietCommands()
	e, _ := s.NewEntity()
	_ = s.Despawn(e)

	pos := components.NewPosition(1, 1)
	if err := cmds.Insert(e, Bundle{Position: &pos}); err != nil {
		t.Fatalf("recording should succeed, got %v", err)
	}
	other := components.NewPosition(2, 2)
	cmds.Spawn(Bundle{Position: &other})

	res, err := cmds.Apply(s)
	if err != nil {
		t.Fatalf("dropped command must not fail apply: %v", err)
	}
	if res.Dropped != 1 || len(res.Spawned) != 1 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestInsertAddsComponents(t *testing.T) {
	s := NewStore()
	cmds := quietCommands()
	pos := components.NewPosition(0, 0)
	e, _ := s.Spawn(Bundle{Position: &pos})

	acc := components.NewAcceleration(0, -10)
	if err := cmds.Insert(e, Bundle{Acceleration: &acc}); err != nil {
		t.Fatal(err)
	}
	if _, err := cmds.Apply(s); err != nil {
		t.Fatal(err)
	}
	a, ok := s.Acceleration.Get(e)
	if !ok || a.Y != -10 {
		t.Errorf("expected acceleration (0, -10), got %v (ok=%v)", a, ok)
	}
}

func TestCommandsAppliedInOrder(t *testing.T) {
	s := NewStore()
	cmds := quietCommands()
	for i := range 3 {
		pos := components.NewPosition(float64(i), 0)
		cmds.Spawn(Bundle{Position: &pos})
	}
	res, err := cmds.Apply(s)
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range res.Spawned {
		p, _ := s.Position.Get(e)
		if p.X != float64(i) {
			t.Errorf("spawn %d has x=%f", i, p.X)
		}
	}
}

func TestDespawnTwiceDropsSecond(t *testing.T) {
	s := NewStore()
	cmds := quietCommands()
	e, _ := s.NewEntity()
	cmds.Despawn(e)
	cmds.Despawn(e)

	res, err := cmds.Apply(s)
	if err != nil {
		t.Fatal(err)
	}
	if res.Despawned != 1 || res.Dropped != 1 {
		t.Errorf("unexpected result %+v", res)
	}
}
