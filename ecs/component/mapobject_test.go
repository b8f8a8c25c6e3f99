package component

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/alive/collision"
	"github.com/milk9111/alive/ecs"
	"github.com/milk9111/alive/input"
	"github.com/milk9111/alive/render"
)

type fakeScript struct {
	name      string
	inits     int
	updates   int
	reloads   int
	activated []bool
	updateErr error
	onUpdate  func(obj *MapObject)
}

func (f *fakeScript) Name() string { return f.name }

func (f *fakeScript) Init(obj *MapObject) error {
	f.inits++
	return nil
}

func (f *fakeScript) Update(obj *MapObject, in input.Actions) error {
	f.updates++
	if f.onUpdate != nil {
		f.onUpdate(obj)
	}
	return f.updateErr
}

func (f *fakeScript) Activate(obj *MapObject, direction bool) error {
	f.activated = append(f.activated, direction)
	return nil
}

func (f *fakeScript) Reload() error {
	f.reloads++
	return nil
}

type activation struct {
	id        int
	direction bool
}

type fakeActivator struct {
	got []activation
}

func (f *fakeActivator) ActivateObjectsWithID(id int, direction bool) {
	f.got = append(f.got, activation{id, direction})
}

func newMapObject(t *testing.T, script Script, env MapObjectEnv) (*ecs.World, *MapObject) {
	t.Helper()
	w := ecs.NewWorld()
	id := w.CreateEntity()
	_, err := ecs.Add(w, id, NewTransform(DefaultMapObjectX, DefaultMapObjectY))
	require.NoError(t, err)
	_, err = ecs.Add(w, id, NewAnimation(testAnimations(), nil))
	require.NoError(t, err)
	obj, err := ecs.Add(w, id, NewMapObject(7, Rect{W: 20, H: 40}, script, env))
	require.NoError(t, err)
	require.NoError(t, w.Load())
	return w, obj
}

func TestMapObjectLifecycle(t *testing.T) {
	script := &fakeScript{name: "door"}
	act := &fakeActivator{}
	w, obj := newMapObject(t, script, MapObjectEnv{Activator: act})

	require.Equal(t, "door", obj.Name())
	require.Equal(t, 7, obj.Id())
	require.Equal(t, 1, script.inits)

	require.NoError(t, w.Update())
	require.Equal(t, 1, script.updates)

	obj.Activate(true)
	require.Equal(t, []bool{true}, script.activated)

	obj.ActivateID(3, false)
	require.Equal(t, []activation{{3, false}}, act.got)

	require.NoError(t, obj.ReloadScript())
	require.Equal(t, 1, script.reloads)
	require.Equal(t, 2, script.inits)
}

func TestMapObjectHaltsOnScriptError(t *testing.T) {
	script := &fakeScript{name: "mine", updateErr: errors.New("boom")}
	w, obj := newMapObject(t, script, MapObjectEnv{})

	require.NoError(t, w.Update())
	require.NoError(t, w.Update())
	require.Equal(t, 1, script.updates)

	script.updateErr = nil
	require.NoError(t, obj.ReloadScript())
	require.NoError(t, w.Update())
	require.Equal(t, 2, script.updates)
}

func TestMapObjectNeedsScript(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	require.NoError(t, w.AddComponent(id, NewTransform(0, 0)))
	require.NoError(t, w.AddComponent(id, NewMapObject(1, Rect{}, nil, MapObjectEnv{})))
	require.ErrorIs(t, w.Load(), ErrNoScript)
}

func TestMapObjectFields(t *testing.T) {
	_, obj := newMapObject(t, &fakeScript{name: "hoist"}, MapObjectEnv{})

	require.Equal(t, float64(DefaultMapObjectX), obj.X())
	require.Equal(t, float64(DefaultMapObjectY), obj.Y())
	require.True(t, obj.ContainsPoint(55, 120))
	require.False(t, obj.ContainsPoint(70, 120))

	obj.SetX(40)
	obj.SnapXToGrid()
	require.Equal(t, float64(37), obj.X())

	obj.SetFlipX(true)
	require.True(t, obj.FlipX())

	require.True(t, obj.SetAnimation(CueAbeStandToChant))
	require.False(t, obj.SetAnimation("Missing"))
	require.False(t, obj.AnimationComplete())
	require.Zero(t, obj.FrameNumber())
}

func TestMapObjectGeometry(t *testing.T) {
	lines := collision.NewStore()
	lines.AddLine(cp.Vector{X: 70, Y: 0}, cp.Vector{X: 70, Y: 200}, collision.WallRight)
	lines.AddLine(cp.Vector{X: 0, Y: 60}, cp.Vector{X: 200, Y: 60}, collision.Ceiling)
	lines.AddLine(cp.Vector{X: 0, Y: 150}, cp.Vector{X: 200, Y: 150}, collision.Floor)

	_, obj := newMapObject(t, &fakeScript{name: "abe"}, MapObjectEnv{Lines: lines})

	t.Run("wall", func(t *testing.T) {
		require.True(t, obj.WallCollision(25, -10))
		require.False(t, obj.WallCollision(10, -10))
		obj.SetFlipX(true)
		defer obj.SetFlipX(false)
		require.False(t, obj.WallCollision(25, -10))
	})

	t.Run("ceiling", func(t *testing.T) {
		require.True(t, obj.CellingCollision(0, -50))
		require.False(t, obj.CellingCollision(0, -20))
	})

	t.Run("floor", func(t *testing.T) {
		hit, x, y, angle := obj.FloorCollision()
		require.True(t, hit)
		require.Equal(t, float64(DefaultMapObjectX), x)
		require.Equal(t, 150.0, y)
		require.Zero(t, angle)
	})

	t.Run("no_lines", func(t *testing.T) {
		_, bare := newMapObject(t, &fakeScript{name: "abe"}, MapObjectEnv{})
		require.False(t, bare.WallCollision(100, 0))
		hit, _, _, _ := bare.FloorCollision()
		require.False(t, hit)
	})
}

func TestAnimationRender(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	_, err := ecs.Add(w, id, NewTransform(10, 20))
	require.NoError(t, err)
	a, err := ecs.Add(w, id, NewAnimation(testAnimations(), nil, CueAbeStandIdle))
	require.NoError(t, err)
	require.NoError(t, w.Load())

	rec := render.NewRecorder()
	w.Render(rec)
	w.Render(rec)
	require.Len(t, rec.Draws, 2)
	require.Len(t, rec.Loaded, 1)
	require.Equal(t, 10.0, rec.Draws[0].X)
	require.Equal(t, render.LayerObjects, rec.Draws[0].Layer)

	a.Update()
	w.Render(rec)
	require.Len(t, rec.Loaded, 2)

	a.Release(rec)
	require.Empty(t, rec.Loaded)
}
