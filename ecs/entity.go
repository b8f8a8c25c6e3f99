package ecs

import (
	"iter"
	"strconv"
)

// EntityID packs a slot index with a generation so stale ids never resolve
// to a newer entity in the same slot.
type EntityID uint64

type entityIndex uint32
type generation uint32

const entityIDBits = 32

// NoEntity is the zero id; valid entities are never zero.
const NoEntity EntityID = 0

func makeEntityID(idx entityIndex, gen generation) EntityID {
	return EntityID(uint64(gen)<<entityIDBits | uint64(idx))
}

func (e EntityID) index() entityIndex {
	return entityIndex(uint32(e))
}

func (e EntityID) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e EntityID) String() string {
	return strconv.FormatUint(uint64(e.index()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

func (e EntityID) Valid() bool {
	return e.index() > 0
}

// Entity is a node of the entity tree owning an ordered set of components.
type Entity struct {
	id         EntityID
	world      *World
	parent     EntityID
	children   []EntityID
	components []Component
}

func (e *Entity) ID() EntityID {
	return e.id
}

func (e *Entity) World() *World {
	return e.world
}

// Parent returns the parent entity; roots have none.
func (e *Entity) Parent() (*Entity, bool) {
	if e.parent == NoEntity {
		return nil, false
	}
	return e.world.Entity(e.parent)
}

// Component looks up a sibling component by identifier.
func (e *Entity) Component(ident Identifier) (Component, bool) {
	return e.world.Component(e.id, ident)
}

// FindChildrenByComponent is World.FindChildrenByComponent rooted at e.
func (e *Entity) FindChildrenByComponent(ident Identifier) iter.Seq[EntityID] {
	return e.world.FindChildrenByComponent(e.id, ident)
}

// Components returns the entity's components in add order.
func (e *Entity) Components() []Component {
	return e.components
}
