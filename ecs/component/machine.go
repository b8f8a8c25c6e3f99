package component

import "fmt"

// Goal is the high level action requested of a controlled entity.
type Goal int

const (
	Stand Goal = iota
	GoLeft
	GoRight
	Chant
	goalCount
)

func (g Goal) String() string {
	switch g {
	case Stand:
		return "Stand"
	case GoLeft:
		return "GoLeft"
	case GoRight:
		return "GoRight"
	case Chant:
		return "Chant"
	default:
		return fmt.Sprintf("Goal(%d)", int(g))
	}
}

func (g Goal) walking() bool {
	return g == GoLeft || g == GoRight
}

// GoalSetter is implemented by components that accept goals from a
// controller, player or scripted.
type GoalSetter interface {
	SetGoal(g Goal)
}

// machine is a state by goal transition table plus a per state tick
// handler. The tables are filled once and never change afterwards.
type machine[S ~int, T any] struct {
	onGoal [][goalCount]func(T)
	onTick []func(T)
}

func newMachine[S ~int, T any](states int) *machine[S, T] {
	return &machine[S, T]{
		onGoal: make([][goalCount]func(T), states),
		onTick: make([]func(T), states),
	}
}

func (m *machine[S, T]) on(s S, g Goal, fn func(T)) {
	m.onGoal[s][g] = fn
}

func (m *machine[S, T]) every(s S, fn func(T)) {
	m.onTick[s] = fn
}

// has reports whether (s, g) has a goal handler.
func (m *machine[S, T]) has(s S, g Goal) bool {
	return m.onGoal[s][g] != nil
}

// step runs the goal handler for (s, g), or the state's tick handler when
// there is none. States without either are no-ops.
func (m *machine[S, T]) step(s S, g Goal, target T) {
	if int(s) < 0 || int(s) >= len(m.onTick) || g < 0 || g >= goalCount {
		return
	}
	if fn := m.onGoal[s][g]; fn != nil {
		fn(target)
		return
	}
	if fn := m.onTick[s]; fn != nil {
		fn(target)
	}
}
