package component

import (
	"fmt"

	"github.com/milk9111/alive/ecs"
)

type SligState int

const (
	SligStanding SligState = iota
	SligStandingTurnAround
	SligWalking
	SligWalkingToStanding
	sligStateCount
)

func (s SligState) String() string {
	switch s {
	case SligStanding:
		return "Standing"
	case SligStandingTurnAround:
		return "StandingTurnAround"
	case SligWalking:
		return "Walking"
	case SligWalkingToStanding:
		return "WalkingToStanding"
	default:
		return fmt.Sprintf("SligState(%d)", int(s))
	}
}

const (
	CueSligStandIdle       = "SligStandIdle"
	CueSligStandTurnAround = "SligStandTurnAround"
	CueSligWalking         = "SligWalking"
	CueSligWalkToStand     = "SligWalkToStand"
)

const sligWalkSpeed = WalkSpeed

// SligMovement drives a slig with the same goals as AbeMovement. It is the
// component a chanting Abe looks for.
type SligMovement struct {
	ecs.Base
	State SligState
	Goal  Goal

	physics   *Physics
	animation *Animation
	table     *machine[SligState, *SligMovement]
}

func NewSligMovement() *SligMovement {
	return &SligMovement{}
}

func (*SligMovement) ID() ecs.Identifier { return ecs.SligMovementController }

func (m *SligMovement) SetGoal(g Goal) { m.Goal = g }

func (m *SligMovement) Load() error {
	var err error
	if m.physics, err = requireSibling[*Physics](m, ecs.Physics); err != nil {
		return err
	}
	if m.animation, err = requireSibling[*Animation](m, ecs.Animation); err != nil {
		return err
	}
	m.table = sligTable()
	return nil
}

func sligTable() *machine[SligState, *SligMovement] {
	t := newMachine[SligState, *SligMovement](int(sligStateCount))

	walk := func(left bool) func(*SligMovement) {
		return func(m *SligMovement) {
			if m.animation.FlipX != left {
				m.animation.Change(CueSligStandTurnAround)
				m.State = SligStandingTurnAround
				return
			}
			m.animation.Change(CueSligWalking)
			m.setXSpeed(sligWalkSpeed)
			m.State = SligWalking
		}
	}
	t.on(SligStanding, GoLeft, walk(true))
	t.on(SligStanding, GoRight, walk(false))

	t.every(SligStandingTurnAround, func(m *SligMovement) {
		if !m.animation.Complete() {
			return
		}
		m.animation.FlipX = !m.animation.FlipX
		m.animation.Change(CueSligStandIdle)
		m.State = SligStanding
	})

	t.every(SligWalking, func(m *SligMovement) {
		if m.Goal.walking() {
			return
		}
		m.animation.Change(CueSligWalkToStand)
		m.State = SligWalkingToStanding
	})

	t.every(SligWalkingToStanding, func(m *SligMovement) {
		if !m.animation.Complete() {
			return
		}
		m.animation.Change(CueSligStandIdle)
		m.physics.XSpeed = 0
		m.State = SligStanding
	})
	return t
}

func (m *SligMovement) setXSpeed(speed float64) {
	if m.animation.FlipX {
		speed = -speed
	}
	m.physics.XSpeed = speed
}

func (m *SligMovement) Update() {
	m.table.step(m.State, m.Goal, m)
}
