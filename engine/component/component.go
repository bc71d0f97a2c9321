// Package component defines the closed set of behaviours an entity can carry: a spatial
// Transformation, a Drawable description for the render system, and gravity-driven Physics.
package component

import "errors"

// Kind identifies a component type.
type Kind int

const (
	KindTransformation Kind = iota
	KindDrawable
	KindPhysics
)

// String returns the component discriminator name.
func (k Kind) String() string {
	switch k {
	case KindTransformation:
		return "Transformation"
	case KindDrawable:
		return "Drawable"
	case KindPhysics:
		return "Physics"
	default:
		return "Unknown"
	}
}

// ErrMissingShape is returned when a Drawable is initialized without geometry.
var ErrMissingShape = errors.New("component: drawable has no shape")

// Host is the entity a component is attached to, seen through the lookups components need to find
// their siblings.
type Host interface {
	// Name returns the entity's display name.
	Name() string

	// Component returns the first component of kind.
	Component(kind Kind) (Component, bool)
}

// Component is a unit of entity behaviour.
type Component interface {
	// Kind returns the component type.
	Kind() Kind

	// Name returns the component discriminator, e.g. "Transformation".
	Name() string

	// Init is called once when the component is attached to host.
	//
	// Parameters:
	//   - host: the owning entity
	//
	// Returns:
	//   - error: error if the component cannot work in its current configuration
	Init(host Host) error

	// Update advances the component by delta seconds.
	Update(delta float32)
}

// Releaser is implemented by components that own GPU resources.
type Releaser interface {
	// Release frees owned GPU resources. Calls after the first are no-ops.
	Release()
}

// TransformationOf returns host's first Transformation, or nil.
func TransformationOf(host Host) Transformation {
	if host == nil {
		return nil
	}
	c, ok := host.Component(KindTransformation)
	if !ok {
		return nil
	}
	t, _ := c.(Transformation)
	return t
}

// DrawableOf returns host's first Drawable, or nil.
func DrawableOf(host Host) Drawable {
	if host == nil {
		return nil
	}
	c, ok := host.Component(KindDrawable)
	if !ok {
		return nil
	}
	d, _ := c.(Drawable)
	return d
}

// PhysicsOf returns host's first Physics, or nil.
func PhysicsOf(host Host) Physics {
	if host == nil {
		return nil
	}
	c, ok := host.Component(KindPhysics)
	if !ok {
		return nil
	}
	p, _ := c.(Physics)
	return p
}
