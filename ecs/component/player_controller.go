package component

import (
	"fmt"

	"github.com/milk9111/alive/ecs"
	"github.com/milk9111/alive/input"
)

// PlayerController turns the input snapshot into one goal per tick for a
// sibling movement component.
type PlayerController struct {
	ecs.Base
	// Target is the sibling receiving goals.
	Target ecs.Identifier

	actions input.Actions
	setter  GoalSetter
}

func NewPlayerController(actions input.Actions) *PlayerController {
	if actions == nil {
		actions = input.None
	}
	return &PlayerController{Target: ecs.AbeMovementController, actions: actions}
}

func (*PlayerController) ID() ecs.Identifier { return ecs.PlayerController }

func (p *PlayerController) Load() error {
	c, ok := p.Entity().Component(p.Target)
	if !ok {
		return fmt.Errorf("%w: %s needs %s", ErrMissingSibling, p.ID(), p.Target)
	}
	setter, ok := c.(GoalSetter)
	if !ok {
		return fmt.Errorf("component: %s does not accept goals", p.Target)
	}
	p.setter = setter
	return nil
}

// GoalFor picks the goal for a snapshot: left, then right, then chant,
// otherwise stand.
func GoalFor(a input.Actions) Goal {
	switch {
	case a.Left():
		return GoLeft
	case a.Right():
		return GoRight
	case a.Chant():
		return Chant
	default:
		return Stand
	}
}

func (p *PlayerController) Update() {
	p.setter.SetGoal(GoalFor(p.actions))
}
