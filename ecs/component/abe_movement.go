package component

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/alive/ecs"
	"github.com/milk9111/alive/logger"
)

// WalkSpeed is the horizontal walk speed in world units per tick.
const WalkSpeed = 2.777771

type AbeState int

const (
	AbeStanding AbeState = iota
	AbeStandingTurnAround
	AbeChanting
	AbeChantToStand
	AbeStandingToWalking
	AbeWalking
	AbeWalkingToStanding
	abeStateCount
)

func (s AbeState) String() string {
	switch s {
	case AbeStanding:
		return "Standing"
	case AbeStandingTurnAround:
		return "StandingTurnAround"
	case AbeChanting:
		return "Chanting"
	case AbeChantToStand:
		return "ChantToStand"
	case AbeStandingToWalking:
		return "StandingToWalking"
	case AbeWalking:
		return "Walking"
	case AbeWalkingToStanding:
		return "WalkingToStanding"
	default:
		return fmt.Sprintf("AbeState(%d)", int(s))
	}
}

// Animation cues played by AbeMovement.
const (
	CueAbeStandIdle          = "AbeStandIdle"
	CueAbeStandTurnAround    = "AbeStandTurnAround"
	CueAbeWalkToStand        = "AbeWalkToStand"
	CueAbeWalkToStandMidGrid = "AbeWalkToStandMidGrid"
	CueAbeWalking            = "AbeWalking"
	CueAbeStandToChant       = "AbeStandToChant"
	CueAbeChantToStand       = "AbeChantToStand"
)

// Walking frame thresholds, zero based.
const (
	abeSnapFrameA = 5
	abeSnapFrameB = 14
	abeStopFrameA = 2
	abeStopFrameB = 11
)

// AbeMovement is the movement state machine of the player character.
type AbeMovement struct {
	ecs.Base
	State AbeState
	Goal  Goal

	physics   *Physics
	animation *Animation
	table     *machine[AbeState, *AbeMovement]
	candidate ecs.EntityID
	log       *zap.Logger
}

func NewAbeMovement(log *zap.Logger) *AbeMovement {
	return &AbeMovement{log: logger.OrNop(log)}
}

func (*AbeMovement) ID() ecs.Identifier { return ecs.AbeMovementController }

func (m *AbeMovement) SetGoal(g Goal) { m.Goal = g }

// PossessionCandidate is the last slig found while chanting.
func (m *AbeMovement) PossessionCandidate() ecs.EntityID { return m.candidate }

// HasTransition reports whether (s, g) has its own handler.
func (m *AbeMovement) HasTransition(s AbeState, g Goal) bool {
	return m.table != nil && m.table.has(s, g)
}

func (m *AbeMovement) Load() error {
	var err error
	if m.physics, err = requireSibling[*Physics](m, ecs.Physics); err != nil {
		return err
	}
	if m.animation, err = requireSibling[*Animation](m, ecs.Animation); err != nil {
		return err
	}
	m.table = abeTable()
	return nil
}

func abeTable() *machine[AbeState, *AbeMovement] {
	t := newMachine[AbeState, *AbeMovement](int(abeStateCount))

	t.on(AbeStanding, GoLeft, func(m *AbeMovement) { m.startWalk(true) })
	t.on(AbeStanding, GoRight, func(m *AbeMovement) { m.startWalk(false) })
	t.on(AbeStanding, Chant, func(m *AbeMovement) {
		m.animation.Change(CueAbeStandToChant)
		m.State = AbeChanting
	})

	t.every(AbeStandingTurnAround, func(m *AbeMovement) {
		if !m.animation.Complete() {
			return
		}
		m.animation.FlipX = !m.animation.FlipX
		m.animation.Change(CueAbeStandIdle)
		m.State = AbeStanding
	})

	t.on(AbeChanting, Stand, func(m *AbeMovement) {
		m.animation.Change(CueAbeChantToStand)
		m.State = AbeChantToStand
	})
	t.on(AbeChanting, Chant, (*AbeMovement).searchPossession)

	t.every(AbeChantToStand, func(m *AbeMovement) {
		if !m.animation.Complete() {
			return
		}
		m.animation.Change(CueAbeStandIdle)
		m.State = AbeStanding
	})

	t.every(AbeStandingToWalking, func(m *AbeMovement) {
		if !m.animation.Complete() {
			return
		}
		m.animation.Change(CueAbeWalking)
		m.setXSpeed(WalkSpeed)
		m.State = AbeWalking
	})

	t.every(AbeWalking, (*AbeMovement).walk)

	t.every(AbeWalkingToStanding, func(m *AbeMovement) {
		if !m.animation.Complete() {
			return
		}
		m.animation.Change(CueAbeStandIdle)
		m.physics.XSpeed = 0
		m.State = AbeStanding
	})
	return t
}

// startWalk turns around when facing away from the goal, otherwise starts
// walking.
func (m *AbeMovement) startWalk(left bool) {
	if m.animation.FlipX != left {
		m.animation.Change(CueAbeStandTurnAround)
		m.State = AbeStandingTurnAround
		return
	}
	m.animation.Change(CueAbeWalkToStand)
	m.State = AbeStandingToWalking
	m.setXSpeed(WalkSpeed)
}

func (m *AbeMovement) walk() {
	frame := m.animation.FrameNumber()
	if frame == abeSnapFrameA || frame == abeSnapFrameB {
		m.physics.SnapXToGrid()
	}
	if m.Goal.walking() {
		return
	}
	if frame == abeStopFrameA || frame == abeStopFrameB {
		m.State = AbeWalkingToStanding
		if frame == abeStopFrameA {
			m.animation.Change(CueAbeWalkToStand)
		} else {
			m.animation.Change(CueAbeWalkToStandMidGrid)
		}
	}
}

func (m *AbeMovement) searchPossession() {
	parent, ok := m.Entity().Parent()
	if !ok {
		return
	}
	for id := range parent.FindChildrenByComponent(ecs.SligMovementController) {
		m.candidate = id
		m.log.Info("found a slig to possess", zap.Stringer("slig", id))
		return
	}
}

// setXSpeed applies speed along the current facing.
func (m *AbeMovement) setXSpeed(speed float64) {
	if m.animation.FlipX {
		m.physics.XSpeed = -speed
		return
	}
	m.physics.XSpeed = speed
}

func (m *AbeMovement) Update() {
	m.table.step(m.State, m.Goal, m)
}
