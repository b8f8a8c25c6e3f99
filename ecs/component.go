package ecs

import (
	"fmt"

	"github.com/milk9111/alive/render"
)

// Identifier tags a component kind. An entity holds at most one component
// per identifier.
type Identifier int

const (
	None Identifier = iota
	Transform
	Animation
	Physics
	AbeMovementController
	SligMovementController
	PlayerController
	MapObject
)

func (i Identifier) String() string {
	switch i {
	case None:
		return "None"
	case Transform:
		return "Transform"
	case Animation:
		return "Animation"
	case Physics:
		return "Physics"
	case AbeMovementController:
		return "AbeMovementController"
	case SligMovementController:
		return "SligMovementController"
	case PlayerController:
		return "PlayerController"
	case MapObject:
		return "MapObject"
	default:
		return fmt.Sprintf("Identifier(%d)", int(i))
	}
}

// Component is implemented by embedding Base.
type Component interface {
	ID() Identifier
	base() *Base
}

// Loader runs once, after the component is added and before its first Update.
type Loader interface {
	Load() error
}

type Updater interface {
	Update()
}

type Drawer interface {
	Render(r render.Renderer)
}

// Base carries the owner back-reference. It is set once by the world when
// the component is added.
type Base struct {
	entity *Entity
	loaded bool
}

func (b *Base) base() *Base {
	return b
}

// Entity returns the owning entity.
func (b *Base) Entity() *Entity {
	return b.entity
}
