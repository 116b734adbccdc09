// Package components defines ECS components for the simulation.
package components

import (
	"strings"

	"github.com/pthm-cable/spacedrift/shape"
)

// Shape attaches a drawable outline to an entity.
type Shape struct {
	shape.Shape
}

// Kind identifies a component type or shared resource in stage access
// declarations.
type Kind uint16

const (
	KindPosition Kind = 1 << iota
	KindRotation
	KindVelocity
	KindAcceleration
	KindAngularVelocity
	KindShape

	// Shared resources
	KindClock
	KindCamera
	KindInput
	KindEntities
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{KindPosition, "position"},
	{KindRotation, "rotation"},
	{KindVelocity, "velocity"},
	{KindAcceleration, "acceleration"},
	{KindAngularVelocity, "angular_velocity"},
	{KindShape, "shape"},
	{KindClock, "clock"},
	{KindCamera, "camera"},
	{KindInput, "input"},
	{KindEntities, "entities"},
}

// Has reports whether every kind in other is also set in k.
func (k Kind) Has(other Kind) bool {
	return k&other == other
}

// Overlaps reports whether k and other share any kind.
func (k Kind) Overlaps(other Kind) bool {
	return k&other != 0
}

// String lists the kinds in k, separated by '|'.
func (k Kind) String() string {
	if k == 0 {
		return "none"
	}
	var names []string
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			names = append(names, kn.name)
		}
	}
	return strings.Join(names, "|")
}
