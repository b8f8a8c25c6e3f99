package component

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/alive/ecs"
)

func TestAbeStandingStartsWalk(t *testing.T) {
	tests := []struct {
		name      string
		flipX     bool
		goal      Goal
		wantState AbeState
		wantCue   string
		wantSpeed float64
	}{
		{"right_facing_right", false, GoRight, AbeStandingToWalking, CueAbeWalkToStand, 2.777771},
		{"left_facing_left", true, GoLeft, AbeStandingToWalking, CueAbeWalkToStand, -2.777771},
		{"left_facing_right_turns", false, GoLeft, AbeStandingTurnAround, CueAbeStandTurnAround, 0},
		{"right_facing_left_turns", true, GoRight, AbeStandingTurnAround, CueAbeStandTurnAround, 0},
		{"chant", false, Chant, AbeChanting, CueAbeStandToChant, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newAbeWorld(t)
			f.animation.FlipX = tc.flipX
			f.movement.SetGoal(tc.goal)

			f.movement.Update()

			require.Equal(t, tc.wantState, f.movement.State)
			require.Equal(t, tc.wantCue, f.animation.Current())
			require.Equal(t, tc.wantSpeed, f.physics.XSpeed)
		})
	}
}

func TestAbeTurnAroundWaitsForAnimation(t *testing.T) {
	f := newAbeWorld(t)
	f.movement.SetGoal(GoLeft)
	f.movement.Update()
	require.Equal(t, AbeStandingTurnAround, f.movement.State)

	// a new goal mid turn is ignored
	f.movement.SetGoal(GoRight)
	f.movement.Update()
	require.Equal(t, AbeStandingTurnAround, f.movement.State)
	require.False(t, f.animation.FlipX)

	finish(f.animation)
	f.movement.Update()
	require.Equal(t, AbeStanding, f.movement.State)
	require.True(t, f.animation.FlipX)
	require.Equal(t, CueAbeStandIdle, f.animation.Current())
}

func TestAbeWalkCycle(t *testing.T) {
	f := newAbeWorld(t)
	f.movement.SetGoal(GoRight)
	f.movement.Update()
	require.Equal(t, AbeStandingToWalking, f.movement.State)

	finish(f.animation)
	f.movement.Update()
	require.Equal(t, AbeWalking, f.movement.State)
	require.Equal(t, CueAbeWalking, f.animation.Current())
	require.Equal(t, WalkSpeed, f.physics.XSpeed)
}

func TestAbeWalkingFrames(t *testing.T) {
	tests := []struct {
		name      string
		frame     int
		goal      Goal
		x         float64
		wantX     float64
		wantState AbeState
		wantCue   string
	}{
		{"snap_on_frame_5", 5, GoRight, 40, 37, AbeWalking, CueAbeWalking},
		{"snap_on_frame_14", 14, GoLeft, 66, 62, AbeWalking, CueAbeWalking},
		{"no_snap_between", 6, GoRight, 40, 40, AbeWalking, CueAbeWalking},
		{"stop_on_frame_2", 2, Stand, 40, 40, AbeWalkingToStanding, CueAbeWalkToStand},
		{"stop_on_frame_11_mid_grid", 11, Chant, 40, 40, AbeWalkingToStanding, CueAbeWalkToStandMidGrid},
		{"keep_walking_on_stop_frame", 2, GoRight, 40, 40, AbeWalking, CueAbeWalking},
		{"no_stop_off_threshold", 3, Stand, 40, 40, AbeWalking, CueAbeWalking},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newAbeWorld(t)
			f.movement.State = AbeWalking
			require.True(t, f.animation.Change(CueAbeWalking))
			f.animation.SetFrame(tc.frame)
			f.transform.X = tc.x
			f.movement.SetGoal(tc.goal)

			f.movement.Update()

			require.Equal(t, tc.wantState, f.movement.State)
			require.Equal(t, tc.wantX, f.transform.X)
			require.Equal(t, tc.wantCue, f.animation.Current())
		})
	}
}

func TestAbeWalkingToStandingStops(t *testing.T) {
	f := newAbeWorld(t)
	f.movement.State = AbeWalkingToStanding
	f.physics.XSpeed = WalkSpeed
	require.True(t, f.animation.Change(CueAbeWalkToStand))

	f.movement.Update()
	require.Equal(t, AbeWalkingToStanding, f.movement.State)

	finish(f.animation)
	f.movement.Update()
	require.Equal(t, AbeStanding, f.movement.State)
	require.Zero(t, f.physics.XSpeed)
}

func TestAbeChanting(t *testing.T) {
	t.Run("stand_ends_chant", func(t *testing.T) {
		f := newAbeWorld(t)
		f.movement.State = AbeChanting
		f.movement.SetGoal(Stand)
		f.movement.Update()
		require.Equal(t, AbeChantToStand, f.movement.State)
		require.Equal(t, CueAbeChantToStand, f.animation.Current())

		finish(f.animation)
		f.movement.Update()
		require.Equal(t, AbeStanding, f.movement.State)
	})

	t.Run("finds_slig_under_parent", func(t *testing.T) {
		w := ecs.NewWorld()
		root := w.CreateEntity()
		abeID, err := w.CreateChild(root)
		require.NoError(t, err)
		sligID, err := w.CreateChild(root)
		require.NoError(t, err)

		f := newAbe(t, w, abeID)
		_, err = ecs.Add(w, sligID, NewTransform(0, 0))
		require.NoError(t, err)
		_, err = ecs.Add(w, sligID, NewPhysics(nil))
		require.NoError(t, err)
		_, err = ecs.Add(w, sligID, NewAnimation(testAnimations(), nil, CueSligStandIdle))
		require.NoError(t, err)
		_, err = ecs.Add(w, sligID, NewSligMovement())
		require.NoError(t, err)
		require.NoError(t, w.Load())

		f.movement.State = AbeChanting
		f.movement.SetGoal(Chant)
		f.movement.Update()
		require.Equal(t, AbeChanting, f.movement.State)
		require.Equal(t, sligID, f.movement.PossessionCandidate())
	})

	t.Run("no_parent", func(t *testing.T) {
		f := newAbeWorld(t)
		f.movement.State = AbeChanting
		f.movement.SetGoal(Chant)
		f.movement.Update()
		require.Equal(t, ecs.NoEntity, f.movement.PossessionCandidate())
	})
}

func TestAbeMissingTransitionIsNoOp(t *testing.T) {
	for s := AbeStanding; s < abeStateCount; s++ {
		for g := Stand; g < goalCount; g++ {
			f := newAbeWorld(t)
			if f.movement.HasTransition(s, g) {
				continue
			}
			t.Run(s.String()+"_"+g.String(), func(t *testing.T) {
				f.movement.State = s
				f.movement.SetGoal(g)
				require.NotPanics(t, f.movement.Update)
				require.Equal(t, s, f.movement.State)
			})
		}
	}
}

func TestAbeMovementNeedsSiblings(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	_, err := ecs.Add(w, id, NewTransform(0, 0))
	require.NoError(t, err)
	_, err = ecs.Add(w, id, NewAbeMovement(nil))
	require.NoError(t, err)
	require.ErrorIs(t, w.Load(), ErrMissingSibling)
}
