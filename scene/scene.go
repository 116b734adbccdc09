// Package scene turns the component store into a flat list of shapes with
// their screen transforms, ready for a renderer.
package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/spacedrift/camera"
	"github.com/pthm-cable/spacedrift/components"
	"github.com/pthm-cable/spacedrift/shape"
	"github.com/pthm-cable/spacedrift/transform"
	"github.com/pthm-cable/spacedrift/world"
)

// Item is one leaf shape placed on screen. Transform maps the shape's
// local coordinates to screen pixels.
type Item struct {
	Entity    world.Entity
	Shape     shape.Shape // never a Compound
	Transform transform.Affine
}

// Builder collects draw items from a store.
type Builder struct {
	store  *world.Store
	filter *ecs.Filter2[components.Position, components.Shape]
	items  []Item

	// Cull drops entities whose extent lies entirely off screen.
	Cull bool
}

// NewBuilder creates a builder for store.
func NewBuilder(store *world.Store) *Builder {
	return &Builder{
		store:  store,
		filter: ecs.NewFilter2[components.Position, components.Shape](store.World()),
		Cull:   true,
	}
}

// Build returns the draw list for the current camera. Each entity's
// transform is camera, then translate(position), then rotate(rotation);
// compound children apply their own offset and rotation on top.
// The returned slice is reused by the next call.
func (b *Builder) Build(cam *camera.Camera) []Item {
	b.items = b.items[:0]
	view := cam.Transform()

	query := b.filter.Query()
	for query.Next() {
		pos, shp := query.Get()
		if shp.Shape == nil {
			continue
		}
		if b.Cull && !cam.IsVisible(pos.Vec, shape.Extent(shp.Shape)) {
			continue
		}

		e := query.Entity()
		tr := view.TransVec(pos.Vec)
		if rot, ok := b.store.Rotation.Get(e); ok {
			tr = tr.Rot(rot.Angle)
		}
		b.items = Flatten(b.items, e, shp.Shape, tr)
	}
	return b.items
}

// Flatten appends the leaves of s to out, composing compound offsets and
// rotations onto tr.
func Flatten(out []Item, e world.Entity, s shape.Shape, tr transform.Affine) []Item {
	c, ok := s.(shape.Compound)
	if !ok {
		return append(out, Item{Entity: e, Shape: s, Transform: tr})
	}
	for _, p := range c.Parts {
		if p.Shape == nil {
			continue
		}
		out = Flatten(out, e, p.Shape, tr.TransVec(p.Offset).Rot(p.Rotation))
	}
	return out
}
