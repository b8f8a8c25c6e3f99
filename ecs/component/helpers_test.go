package component

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/alive/anim"
	"github.com/milk9111/alive/ecs"
)

type fakeSource map[string]*anim.Animation

func (f fakeSource) Locate(name string) (*anim.Animation, bool) {
	a, ok := f[name]
	return a, ok
}

// testAnimations has looping idle and walk cycles and two frame one shots
// for every transition cue.
func testAnimations() fakeSource {
	src := fakeSource{}
	for _, name := range []string{CueAbeStandIdle, CueAbeWalking, CueSligStandIdle, CueSligWalking} {
		src[name] = anim.New(name, 1, true, anim.Frames(16, 4, 4))
	}
	for _, name := range []string{
		CueAbeStandTurnAround, CueAbeWalkToStand, CueAbeWalkToStandMidGrid,
		CueAbeStandToChant, CueAbeChantToStand, CueSligStandTurnAround, CueSligWalkToStand,
	} {
		src[name] = anim.New(name, 1, false, anim.Frames(2, 4, 4))
	}
	return src
}

type abeFixture struct {
	world     *ecs.World
	id        ecs.EntityID
	transform *Transform
	physics   *Physics
	animation *Animation
	movement  *AbeMovement
}

func newAbe(t *testing.T, w *ecs.World, id ecs.EntityID) abeFixture {
	t.Helper()
	f := abeFixture{world: w, id: id}
	var err error
	f.transform, err = ecs.Add(w, id, NewTransform(100, 100))
	require.NoError(t, err)
	f.physics, err = ecs.Add(w, id, NewPhysics(nil))
	require.NoError(t, err)
	f.animation, err = ecs.Add(w, id, NewAnimation(testAnimations(), nil, CueAbeStandIdle))
	require.NoError(t, err)
	f.movement, err = ecs.Add(w, id, NewAbeMovement(nil))
	require.NoError(t, err)
	require.NoError(t, w.Load())
	return f
}

func newAbeWorld(t *testing.T) abeFixture {
	t.Helper()
	w := ecs.NewWorld()
	return newAbe(t, w, w.CreateEntity())
}

// finish plays the current animation to its end.
func finish(a *Animation) {
	for i := 0; i < 64 && !a.Complete(); i++ {
		a.Update()
	}
}
