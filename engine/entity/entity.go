// Package entity implements the scene tree: named nodes with a stable UUID, an ordered component
// list and exclusively owned children.
package entity

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-gl/engine/component"
	"github.com/google/uuid"
)

var (
	// ErrNilChild is returned when AddChild is given nil.
	ErrNilChild = errors.New("entity: child is nil")

	// ErrSelfChild is returned when an entity is added as its own child.
	ErrSelfChild = errors.New("entity: entity cannot be its own child")

	// ErrAlreadyParented is returned when the child is already attached to a parent.
	ErrAlreadyParented = errors.New("entity: child already has a parent")

	// ErrCycle is returned when the child is an ancestor of the entity.
	ErrCycle = errors.New("entity: adding child would create a cycle")

	// ErrForeignEntity is returned for Entity values not created by New.
	ErrForeignEntity = errors.New("entity: child was not created by this package")

	// ErrNilComponent is returned when AddComponent is given nil.
	ErrNilComponent = errors.New("entity: component is nil")
)

type entityImpl struct {
	mu         *sync.RWMutex
	id         uuid.UUID
	name       string
	enabled    atomic.Bool
	components []component.Component
	children   []*entityImpl
	parent     *entityImpl
}

// Entity is a node in the scene tree. An entity owns its components and children; the parent
// reference is a non-owning back link.
type Entity interface {
	component.Host

	// UUID returns the identifier generated at construction.
	//
	// Returns:
	//   - uuid.UUID: the entity ID
	UUID() uuid.UUID

	// SetName changes the display name.
	SetName(name string)

	// Enabled reports whether the entity takes part in updates and drawing. A disabled entity
	// prunes its whole subtree.
	Enabled() bool

	// SetEnabled enables or disables the entity.
	SetEnabled(enabled bool)

	// AddComponent appends c and calls c.Init with this entity. If Init fails the component is removed again.
	//
	// Parameters:
	//   - c: the component to attach
	//
	// Returns:
	//   - error: ErrNilComponent or the Init error
	AddComponent(c component.Component) error

	// Components returns the components in insertion order.
	Components() []component.Component

	// ComponentByName returns the first component whose discriminator equals name.
	ComponentByName(name string) (component.Component, bool)

	// Transformation returns the first Transformation component or nil.
	Transformation() component.Transformation

	// Drawable returns the first Drawable component or nil.
	Drawable() component.Drawable

	// Physics returns the first Physics component or nil.
	Physics() component.Physics

	// AddChild appends child and sets its parent to this entity.
	//
	// Parameters:
	//   - child: the entity to attach
	//
	// Returns:
	//   - error: ErrNilChild, ErrSelfChild, ErrAlreadyParented, ErrCycle or ErrForeignEntity
	AddChild(child Entity) error

	// RemoveChildAt detaches the child at index without destroying it.
	//
	// Returns:
	//   - Entity: the detached child, or nil when index is out of range
	RemoveChildAt(index int) Entity

	// RemoveChildByUUID detaches the direct child with the given ID without destroying it.
	//
	// Returns:
	//   - Entity: the detached child, or nil when no direct child matches
	RemoveChildByUUID(id uuid.UUID) Entity

	// Children returns the direct children in insertion order.
	Children() []Entity

	// Child returns the child at index, or nil when out of range.
	Child(index int) Entity

	// ChildCount returns the number of direct children.
	ChildCount() int

	// Parent returns the parent, or nil for a root.
	Parent() Entity

	// Find searches this entity and its descendants depth-first for id.
	//
	// Returns:
	//   - Entity: the match or nil
	Find(id uuid.UUID) Entity

	// FindByName searches depth-first for the first entity with the given display name.
	FindByName(name string) Entity

	// Walk visits this entity and its descendants in pre-order. Returning false from fn skips the
	// visited entity's children.
	Walk(fn func(e Entity) bool)

	// Update updates every component in insertion order, then every child in insertion order.
	// Disabled entities are skipped along with their subtree.
	//
	// Parameters:
	//   - delta: elapsed time in seconds
	Update(delta float32)

	// Destroy releases GPU-owning components, destroys every child and detaches from the parent.
	Destroy()
}

var _ Entity = &entityImpl{}

// New creates an enabled, parentless entity with a random UUID.
//
// Parameters:
//   - name: the display name
//   - options: optional EntityBuilderOptions
//
// Returns:
//   - Entity: the new entity
func New(name string, options ...EntityBuilderOption) Entity {
	e := &entityImpl{
		mu:   &sync.RWMutex{},
		id:   uuid.New(),
		name: name,
	}
	e.enabled.Store(true)
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *entityImpl) UUID() uuid.UUID {
	return e.id
}

func (e *entityImpl) Name() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.name
}

func (e *entityImpl) SetName(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.name = name
}

func (e *entityImpl) Enabled() bool {
	return e.enabled.Load()
}

func (e *entityImpl) SetEnabled(enabled bool) {
	e.enabled.Store(enabled)
}

func (e *entityImpl) AddComponent(c component.Component) error {
	if c == nil {
		return ErrNilComponent
	}
	e.mu.Lock()
	e.components = append(e.components, c)
	e.mu.Unlock()

	if err := c.Init(e); err != nil {
		e.mu.Lock()
		for i, existing := range e.components {
			if existing == c {
				e.components = append(e.components[:i], e.components[i+1:]...)
				break
			}
		}
		e.mu.Unlock()
		return err
	}
	return nil
}

func (e *entityImpl) Components() []component.Component {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]component.Component, len(e.components))
	copy(out, e.components)
	return out
}

func (e *entityImpl) Component(kind component.Kind) (component.Component, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, c := range e.components {
		if c.Kind() == kind {
			return c, true
		}
	}
	return nil, false
}

func (e *entityImpl) ComponentByName(name string) (component.Component, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, c := range e.components {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

func (e *entityImpl) Transformation() component.Transformation {
	return component.TransformationOf(e)
}

func (e *entityImpl) Drawable() component.Drawable {
	return component.DrawableOf(e)
}

func (e *entityImpl) Physics() component.Physics {
	return component.PhysicsOf(e)
}

func (e *entityImpl) AddChild(child Entity) error {
	if child == nil {
		return ErrNilChild
	}
	c, ok := child.(*entityImpl)
	if !ok {
		return ErrForeignEntity
	}
	if c == e {
		return ErrSelfChild
	}
	if c.parentImpl() != nil {
		return ErrAlreadyParented
	}
	for a := e.parentImpl(); a != nil; a = a.parentImpl() {
		if a == c {
			return ErrCycle
		}
	}

	c.mu.Lock()
	c.parent = e
	c.mu.Unlock()

	e.mu.Lock()
	e.children = append(e.children, c)
	e.mu.Unlock()
	return nil
}

func (e *entityImpl) RemoveChildAt(index int) Entity {
	e.mu.Lock()
	if index < 0 || index >= len(e.children) {
		e.mu.Unlock()
		return nil
	}
	c := e.children[index]
	e.children = append(e.children[:index], e.children[index+1:]...)
	e.mu.Unlock()

	c.mu.Lock()
	c.parent = nil
	c.mu.Unlock()
	return c
}

func (e *entityImpl) RemoveChildByUUID(id uuid.UUID) Entity {
	e.mu.RLock()
	index := -1
	for i, c := range e.children {
		if c.id == id {
			index = i
			break
		}
	}
	e.mu.RUnlock()
	if index < 0 {
		return nil
	}
	return e.RemoveChildAt(index)
}

func (e *entityImpl) Children() []Entity {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Entity, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

func (e *entityImpl) Child(index int) Entity {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if index < 0 || index >= len(e.children) {
		return nil
	}
	return e.children[index]
}

func (e *entityImpl) ChildCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.children)
}

func (e *entityImpl) Parent() Entity {
	p := e.parentImpl()
	if p == nil {
		return nil
	}
	return p
}

func (e *entityImpl) Find(id uuid.UUID) Entity {
	var found Entity
	e.Walk(func(n Entity) bool {
		if found != nil {
			return false
		}
		if n.UUID() == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func (e *entityImpl) FindByName(name string) Entity {
	var found Entity
	e.Walk(func(n Entity) bool {
		if found != nil {
			return false
		}
		if n.Name() == name {
			found = n
			return false
		}
		return true
	})
	return found
}

func (e *entityImpl) Walk(fn func(e Entity) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.childSnapshot() {
		c.Walk(fn)
	}
}

func (e *entityImpl) Update(delta float32) {
	if !e.Enabled() {
		return
	}
	e.mu.RLock()
	components := make([]component.Component, len(e.components))
	copy(components, e.components)
	e.mu.RUnlock()

	for _, c := range components {
		c.Update(delta)
	}
	for _, c := range e.childSnapshot() {
		c.Update(delta)
	}
}

func (e *entityImpl) Destroy() {
	if p := e.parentImpl(); p != nil {
		p.RemoveChildByUUID(e.id)
	}
	e.destroy()
}

// destroy releases components and children without touching the parent link.
func (e *entityImpl) destroy() {
	e.mu.Lock()
	components := e.components
	children := e.children
	e.components = nil
	e.children = nil
	e.mu.Unlock()

	for _, c := range components {
		if r, ok := c.(component.Releaser); ok {
			r.Release()
		}
	}
	for _, c := range children {
		c.mu.Lock()
		c.parent = nil
		c.mu.Unlock()
		c.destroy()
	}
}

func (e *entityImpl) parentImpl() *entityImpl {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

func (e *entityImpl) childSnapshot() []*entityImpl {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*entityImpl, len(e.children))
	copy(out, e.children)
	return out
}
