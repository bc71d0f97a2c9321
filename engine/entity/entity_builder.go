package entity

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/component"
	"github.com/google/uuid"
)

// EntityBuilderOption configures an Entity at construction.
type EntityBuilderOption func(*entityImpl)

// WithUUID sets a fixed identifier instead of a random one.
//
// Parameters:
//   - id: the identifier
//
// Returns:
//   - EntityBuilderOption: a function that sets the ID
func WithUUID(id uuid.UUID) EntityBuilderOption {
	return func(e *entityImpl) {
		e.id = id
	}
}

// WithDisabled creates the entity disabled.
//
// Returns:
//   - EntityBuilderOption: a function that disables the entity
func WithDisabled() EntityBuilderOption {
	return func(e *entityImpl) {
		e.enabled.Store(false)
	}
}

// WithComponents attaches components at construction. Components whose Init fails are dropped;
// use AddComponent when the error matters.
//
// Parameters:
//   - components: the components to attach, in order
//
// Returns:
//   - EntityBuilderOption: a function that attaches the components
func WithComponents(components ...component.Component) EntityBuilderOption {
	return func(e *entityImpl) {
		for _, c := range components {
			_ = e.AddComponent(c)
		}
	}
}
