package world

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/spacedrift/components"
)

// Column gives typed access to one component kind.
type Column[T any] struct {
	store  *Store
	mapper *ecs.Map[T]
	filter *ecs.Filter1[T]
	kind   components.Kind
}

func newColumn[T any](s *Store, kind components.Kind) *Column[T] {
	return &Column[T]{
		store:  s,
		mapper: ecs.NewMap[T](s.world),
		filter: ecs.NewFilter1[T](s.world),
		kind:   kind,
	}
}

// Kind returns the component kind stored in this column.
func (c *Column[T]) Kind() components.Kind {
	return c.kind
}

// Has reports whether e is alive and carries the component.
func (c *Column[T]) Has(e ecs.Entity) bool {
	return c.store.world.Alive(e) && c.mapper.Has(e)
}

// Get returns a mutable pointer to e's component.
// The pointer is valid until the next structural change.
func (c *Column[T]) Get(e ecs.Entity) (*T, bool) {
	if !c.Has(e) {
		return nil, false
	}
	return c.mapper.Get(e), true
}

// Set overwrites an existing component in place. It never changes the
// entity's structure and is therefore allowed during a frame.
func (c *Column[T]) Set(e ecs.Entity, v T) error {
	if !c.store.world.Alive(e) {
		return fmt.Errorf("setting %s on entity %d: %w", c.kind, e.ID(), ErrDeadEntity)
	}
	if !c.mapper.Has(e) {
		return fmt.Errorf("setting %s on entity %d: %w", c.kind, e.ID(), ErrMissingComponent)
	}
	*c.mapper.Get(e) = v
	return nil
}

// Insert overwrites the component when present and adds it otherwise.
// Adding is a structural change and fails during a frame.
func (c *Column[T]) Insert(e ecs.Entity, v T) error {
	if !c.store.world.Alive(e) {
		return fmt.Errorf("inserting %s on entity %d: %w", c.kind, e.ID(), ErrDeadEntity)
	}
	if c.mapper.Has(e) {
		*c.mapper.Get(e) = v
		return nil
	}
	if c.store.locked {
		return fmt.Errorf("inserting %s on entity %d: %w", c.kind, e.ID(), ErrFrameLocked)
	}
	c.mapper.Add(e, &v)
	return nil
}

// Remove detaches the component from e. Removing an absent component is
// a no-op.
func (c *Column[T]) Remove(e ecs.Entity) error {
	if !c.store.world.Alive(e) {
		return fmt.Errorf("removing %s from entity %d: %w", c.kind, e.ID(), ErrDeadEntity)
	}
	if !c.mapper.Has(e) {
		return nil
	}
	if c.store.locked {
		return fmt.Errorf("removing %s from entity %d: %w", c.kind, e.ID(), ErrFrameLocked)
	}
	c.mapper.Remove(e)
	return nil
}

// Each calls fn for every entity carrying the component.
func (c *Column[T]) Each(fn func(e ecs.Entity, v *T)) {
	query := c.filter.Query()
	for query.Next() {
		fn(query.Entity(), query.Get())
	}
}

// Count returns the number of entities carrying the component.
func (c *Column[T]) Count() int {
	n := 0
	query := c.filter.Query()
	for query.Next() {
		n++
	}
	return n
}
