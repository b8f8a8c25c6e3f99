// Package input maps device state to the held-action snapshot read by
// controllers.
package input

// Actions is the held state of the mapped actions for the current tick.
type Actions interface {
	Left() bool
	Right() bool
	Chant() bool
}

// State is a plain Actions snapshot.
type State struct {
	LeftHeld  bool
	RightHeld bool
	ChantHeld bool
}

func (s State) Left() bool  { return s.LeftHeld }
func (s State) Right() bool { return s.RightHeld }
func (s State) Chant() bool { return s.ChantHeld }

// None has nothing held.
var None Actions = State{}

// Snapshot copies the current values of a.
func Snapshot(a Actions) State {
	if a == nil {
		return State{}
	}
	return State{LeftHeld: a.Left(), RightHeld: a.Right(), ChantHeld: a.Chant()}
}
