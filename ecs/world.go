// Package ecs is the entity-component store. Entities form a tree, own at
// most one component per identifier and are updated in registration order.
package ecs

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/milk9111/alive/render"
)

var (
	ErrUnknownEntity      = errors.New("ecs: unknown entity")
	ErrNilComponent       = errors.New("ecs: component is nil")
	ErrDuplicateComponent = errors.New("ecs: entity already has component")
	ErrAlreadyOwned       = errors.New("ecs: component already owned")
)

// World owns entities and their components.
type World struct {
	entities entityStore
	slots    []*Entity // by slot-1
	order    []EntityID
	stores   map[Identifier]*SparseSet
	pending  []Component

	// set while Update walks order; removals then copy order first
	updating bool
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: map[Identifier]*SparseSet{}}
}

// CreateEntity registers a new root entity.
func (w *World) CreateEntity() EntityID {
	id := w.entities.create()
	e := &Entity{id: id, world: w}
	idx := int(id.index())
	for len(w.slots) < idx {
		w.slots = append(w.slots, nil)
	}
	w.slots[idx-1] = e
	w.order = append(w.order, id)
	return id
}

// CreateChild registers a new entity under parent.
func (w *World) CreateChild(parent EntityID) (EntityID, error) {
	p, ok := w.Entity(parent)
	if !ok {
		return NoEntity, fmt.Errorf("%w: %s", ErrUnknownEntity, parent)
	}
	id := w.CreateEntity()
	e, _ := w.Entity(id)
	e.parent = parent
	p.children = append(p.children, id)
	return id, nil
}

// Entity resolves an id to its live entity.
func (w *World) Entity(id EntityID) (*Entity, bool) {
	if !w.entities.isAlive(id) {
		return nil, false
	}
	return w.slots[id.index()-1], true
}

// IsAlive reports whether an entity id is valid.
func (w *World) IsAlive(id EntityID) bool {
	return w.entities.isAlive(id)
}

// Len is the number of live entities.
func (w *World) Len() int {
	return len(w.order)
}

// Entities yields live entities in registration order.
func (w *World) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, id := range w.order {
			e, ok := w.Entity(id)
			if !ok {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// DestroyEntity removes an entity, its subtree and all their components.
func (w *World) DestroyEntity(id EntityID) bool {
	e, ok := w.Entity(id)
	if !ok {
		return false
	}
	for _, child := range slices.Clone(e.children) {
		w.DestroyEntity(child)
	}
	if p, ok := e.Parent(); ok {
		p.children = slices.DeleteFunc(p.children, func(c EntityID) bool { return c == id })
	}
	for _, c := range e.components {
		w.stores[c.ID()].Remove(id.index())
	}
	e.components = nil
	w.slots[id.index()-1] = nil
	if w.updating {
		w.order = slices.Clone(w.order)
	}
	w.order = slices.DeleteFunc(w.order, func(o EntityID) bool { return o == id })
	return w.entities.destroy(id)
}

// AddComponent attaches c to entity id, binds its owner and schedules its
// Load hook before its first Update.
func (w *World) AddComponent(id EntityID, c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	e, ok := w.Entity(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	b := c.base()
	if b.entity != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, c.ID())
	}
	store := w.store(c.ID())
	if store.Has(id.index()) {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateComponent, c.ID(), id)
	}

	b.entity = e
	store.Set(id.index(), c)
	e.components = append(e.components, c)
	w.pending = append(w.pending, c)
	return nil
}

// Component returns the component of entity id tagged ident. A missing
// component is not an error.
func (w *World) Component(id EntityID, ident Identifier) (Component, bool) {
	if !w.entities.isAlive(id) {
		return nil, false
	}
	c := w.stores[ident].Get(id.index())
	return c, c != nil
}

// HasComponent reports whether entity id carries ident.
func (w *World) HasComponent(id EntityID, ident Identifier) bool {
	_, ok := w.Component(id, ident)
	return ok
}

// Count is the number of components stored for ident.
func (w *World) Count(ident Identifier) int {
	return w.stores[ident].Len()
}

func (w *World) store(ident Identifier) *SparseSet {
	s, ok := w.stores[ident]
	if !ok {
		s = &SparseSet{}
		w.stores[ident] = s
	}
	return s
}

type searchFrame struct {
	entity *Entity
	next   int
}

// FindChildrenByComponent walks the descendants of id depth first and
// yields those carrying ident. The sequence is lazy and single use: ranging
// over it again continues where the previous range stopped.
func (w *World) FindChildrenByComponent(id EntityID, ident Identifier) iter.Seq[EntityID] {
	root, ok := w.Entity(id)
	var stack []searchFrame
	if ok {
		stack = append(stack, searchFrame{entity: root})
	}
	return func(yield func(EntityID) bool) {
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next >= len(top.entity.children) {
				stack = stack[:len(stack)-1]
				continue
			}
			childID := top.entity.children[top.next]
			top.next++

			child, ok := w.Entity(childID)
			if !ok {
				continue
			}
			stack = append(stack, searchFrame{entity: child})
			if w.HasComponent(childID, ident) {
				if !yield(childID) {
					return
				}
			}
		}
	}
}

// Load runs pending Load hooks in the order components were added. A
// component whose Load fails stays out of Update and Render.
func (w *World) Load() error {
	var errs []error
	for len(w.pending) > 0 {
		c := w.pending[0]
		w.pending = w.pending[1:]
		if err := w.load(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadEntity runs the pending Load hooks of entity id only. Hooks of other
// entities stay pending.
func (w *World) LoadEntity(id EntityID) error {
	var errs []error
	var rest []Component
	for i := 0; i < len(w.pending); i++ {
		c := w.pending[i]
		if e := c.base().entity; e == nil || e.id != id {
			rest = append(rest, c)
			continue
		}
		if err := w.load(c); err != nil {
			errs = append(errs, err)
		}
	}
	w.pending = rest
	return errors.Join(errs...)
}

func (w *World) load(c Component) error {
	b := c.base()
	if b.loaded || b.entity == nil || !w.IsAlive(b.entity.id) {
		return nil
	}
	if l, ok := c.(Loader); ok {
		if err := l.Load(); err != nil {
			// never retried and never updated
			return fmt.Errorf("ecs: load %s on %s: %w", c.ID(), b.entity.id, err)
		}
	}
	b.loaded = true
	return nil
}

// Update loads pending components, then updates every component: entities
// in registration order, components in add order. Entities and components
// added during the walk wait for the next Update.
func (w *World) Update() error {
	err := w.Load()

	w.updating = true
	defer func() { w.updating = false }()

	for _, id := range w.order {
		e, ok := w.Entity(id)
		if !ok {
			continue
		}
		for _, c := range e.components {
			if !w.IsAlive(id) {
				break
			}
			if !c.base().loaded {
				continue
			}
			if u, ok := c.(Updater); ok {
				u.Update()
			}
		}
	}
	return err
}

// Render submits draws for every loaded component in update order.
func (w *World) Render(r render.Renderer) {
	for e := range w.Entities() {
		for _, c := range e.components {
			if !c.base().loaded {
				continue
			}
			if d, ok := c.(Drawer); ok {
				d.Render(r)
			}
		}
	}
}
