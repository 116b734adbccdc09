// Package world owns all per-entity component data.
//
// Storage is backed by an ark ECS world. Each component kind is exposed as
// a typed Column so stages never look components up by type at runtime.
// Structural changes (creating or destroying entities, adding or removing
// components) are refused while a frame is in progress; stages record them
// in a Commands buffer that is applied after the last stage.
package world

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/spacedrift/components"
)

var (
	// ErrDeadEntity is returned when an operation targets an entity that
	// does not exist.
	ErrDeadEntity = errors.New("world: entity is not alive")

	// ErrStaleEntity is returned when a component is written to an entity
	// that was despawned earlier in the same frame.
	ErrStaleEntity = errors.New("world: entity was despawned this frame")

	// ErrFrameLocked is returned for structural changes during a frame.
	ErrFrameLocked = errors.New("world: structural change during frame")

	// ErrMissingComponent is returned by Column.Set when the entity lacks
	// the component.
	ErrMissingComponent = errors.New("world: component not present")
)

// Entity identifies an entity in a Store.
type Entity = ecs.Entity

// Store holds every entity and its components.
type Store struct {
	world *ecs.World
	live  int

	// locked is true between BeginFrame and EndFrame.
	locked bool

	Position        *Column[components.Position]
	Rotation        *Column[components.Rotation]
	Velocity        *Column[components.Velocity]
	Acceleration    *Column[components.Acceleration]
	AngularVelocity *Column[components.AngularVelocity]
	Shape           *Column[components.Shape]
}

// NewStore creates an empty store.
func NewStore() *Store {
	w := ecs.NewWorld()
	s := &Store{world: w}
	s.Position = newColumn[components.Position](s, components.KindPosition)
	s.Rotation = newColumn[components.Rotation](s, components.KindRotation)
	s.Velocity = newColumn[components.Velocity](s, components.KindVelocity)
	s.Acceleration = newColumn[components.Acceleration](s, components.KindAcceleration)
	s.AngularVelocity = newColumn[components.AngularVelocity](s, components.KindAngularVelocity)
	s.Shape = newColumn[components.Shape](s, components.KindShape)
	return s
}

// World exposes the underlying ark world for building filters.
func (s *Store) World() *ecs.World {
	return s.world
}

// BeginFrame locks the store against structural changes.
func (s *Store) BeginFrame() {
	s.locked = true
}

// EndFrame unlocks the store so deferred commands can be applied.
func (s *Store) EndFrame() {
	s.locked = false
}

// InFrame reports whether a frame is in progress.
func (s *Store) InFrame() bool {
	return s.locked
}

// Alive reports whether e exists.
func (s *Store) Alive(e ecs.Entity) bool {
	return s.world.Alive(e)
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return s.live
}

// NewEntity creates an entity with no components.
func (s *Store) NewEntity() (ecs.Entity, error) {
	if s.locked {
		return ecs.Entity{}, fmt.Errorf("creating entity: %w", ErrFrameLocked)
	}
	e := s.world.NewEntity()
	s.live++
	return e, nil
}

// Spawn creates an entity carrying every component set in b.
func (s *Store) Spawn(b Bundle) (ecs.Entity, error) {
	e, err := s.NewEntity()
	if err != nil {
		return e, err
	}
	if err := s.Insert(e, b); err != nil {
		return e, err
	}
	return e, nil
}

// Insert adds or overwrites every component set in b.
func (s *Store) Insert(e ecs.Entity, b Bundle) error {
	var errs []error
	if b.Position != nil {
		errs = append(errs, s.Position.Insert(e, *b.Position))
	}
	if b.Rotation != nil {
		errs = append(errs, s.Rotation.Insert(e, *b.Rotation))
	}
	if b.Velocity != nil {
		errs = append(errs, s.Velocity.Insert(e, *b.Velocity))
	}
	if b.Acceleration != nil {
		errs = append(errs, s.Acceleration.Insert(e, *b.Acceleration))
	}
	if b.AngularVelocity != nil {
		errs = append(errs, s.AngularVelocity.Insert(e, *b.AngularVelocity))
	}
	if b.Shape != nil {
		errs = append(errs, s.Shape.Insert(e, *b.Shape))
	}
	return errors.Join(errs...)
}

// Despawn destroys e and all its components.
func (s *Store) Despawn(e ecs.Entity) error {
	if s.locked {
		return fmt.Errorf("despawning entity %d: %w", e.ID(), ErrFrameLocked)
	}
	if !s.world.Alive(e) {
		return fmt.Errorf("despawning entity %d: %w", e.ID(), ErrDeadEntity)
	}
	s.world.RemoveEntity(e)
	s.live--
	return nil
}

// Bundle is a set of optional components. Nil fields are left untouched.
type Bundle struct {
	Position        *components.Position
	Rotation        *components.Rotation
	Velocity        *components.Velocity
	Acceleration    *components.Acceleration
	AngularVelocity *components.AngularVelocity
	Shape           *components.Shape
}

// Kinds returns the component kinds set in b.
func (b Bundle) Kinds() components.Kind {
	var k components.Kind
	if b.Position != nil {
		k |= components.KindPosition
	}
	if b.Rotation != nil {
		k |= components.KindRotation
	}
	if b.Velocity != nil {
		k |= components.KindVelocity
	}
	if b.Acceleration != nil {
		k |= components.KindAcceleration
	}
	if b.AngularVelocity != nil {
		k |= components.KindAngularVelocity
	}
	if b.Shape != nil {
		k |= components.KindShape
	}
	return k
}
