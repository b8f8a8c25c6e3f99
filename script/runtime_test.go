package script

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/alive/anim"
	"github.com/milk9111/alive/ecs"
	"github.com/milk9111/alive/ecs/component"
	"github.com/milk9111/alive/input"
	"github.com/milk9111/alive/vfs"
)

type animSource struct{}

func (animSource) Locate(name string) (*anim.Animation, bool) {
	return anim.New(name, 1, false, anim.Frames(2, 1, 1)), true
}

type activation struct {
	id        int
	direction bool
}

type recordingActivator struct {
	got []activation
}

func (r *recordingActivator) ActivateObjectsWithID(id int, direction bool) {
	r.got = append(r.got, activation{id, direction})
}

func spawn(t *testing.T, inst *Instance, env component.MapObjectEnv) (*ecs.World, *component.MapObject) {
	t.Helper()
	w := ecs.NewWorld()
	id := w.CreateEntity()
	_, err := ecs.Add(w, id, component.NewTransform(component.DefaultMapObjectX, component.DefaultMapObjectY))
	require.NoError(t, err)
	_, err = ecs.Add(w, id, component.NewAnimation(animSource{}, nil))
	require.NoError(t, err)
	obj, err := ecs.Add(w, id, component.NewMapObject(4, component.Rect{W: 25, H: 20}, inst, env))
	require.NoError(t, err)
	require.NoError(t, w.Load())
	return w, obj
}

func TestBuiltinScriptsCompile(t *testing.T) {
	rt := NewRuntime(nil, nil)
	names := Builtin()
	require.ElementsMatch(t, []string{
		"background_animation", "door", "electric_wall", "hoist", "mine", "slam_door", "switch",
	}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			inst, err := rt.New(name)
			require.NoError(t, err)
			require.Equal(t, name, inst.Name())

			w, _ := spawn(t, inst, component.MapObjectEnv{})
			require.NoError(t, w.Update())
		})
	}
}

func TestUnknownScript(t *testing.T) {
	_, err := NewRuntime(nil, nil).New("nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDoorActivation(t *testing.T) {
	inst, err := NewRuntime(nil, nil).New("door")
	require.NoError(t, err)
	w, obj := spawn(t, inst, component.MapObjectEnv{})

	an, ok := ecs.Sibling[*component.Animation](obj, ecs.Animation)
	require.True(t, ok)
	require.Equal(t, "DoorClosed_Barracks", an.Current())

	obj.Activate(true)
	require.Equal(t, "DoorOpen_Barracks", an.Current())
	require.NoError(t, w.Update())
	frame := an.FrameNumber()

	// a second open signal does not restart the animation
	obj.Activate(true)
	require.Equal(t, frame, an.FrameNumber())

	obj.Activate(false)
	require.Equal(t, "DoorClosed_Barracks", an.Current())
}

func TestSwitchSignalsByID(t *testing.T) {
	inst, err := NewRuntime(nil, nil).New("switch")
	require.NoError(t, err)
	act := &recordingActivator{}
	held := &input.State{}
	w, _ := spawn(t, inst, component.MapObjectEnv{Activator: act, Input: held})

	require.NoError(t, w.Update())
	require.Empty(t, act.got)

	held.ChantHeld = true
	require.NoError(t, w.Update())
	require.NoError(t, w.Update())
	require.Equal(t, []activation{{4, true}}, act.got)
}

func TestOverrideAndReentrantActivation(t *testing.T) {
	src := `
name := "echo"

init := func(obj, state) {
	state.count = 0
}

update := func(obj, state, input) {
	obj.activate(true)
}

activate := func(obj, state, direction) {
	state.count += 1
	obj.set_x(state.count)
}
`
	mem := vfs.NewMemory().Add("door.tengo", []byte(src))
	inst, err := NewRuntime(mem, nil).New("door")
	require.NoError(t, err)
	require.Equal(t, "echo", inst.Name())
	require.Equal(t, "door", inst.File())

	w, obj := spawn(t, inst, component.MapObjectEnv{})
	require.NoError(t, w.Update())
	require.Equal(t, 1.0, obj.X())
}

func TestReloadPicksUpNewSource(t *testing.T) {
	mem := vfs.NewMemory().Add("lamp.tengo", []byte(`
name := "lamp"
init := func(obj, state) { obj.set_x(1) }
update := func(obj, state, input) {}
activate := func(obj, state, direction) {}
`))
	inst, err := NewRuntime(mem, nil).New("lamp")
	require.NoError(t, err)
	_, obj := spawn(t, inst, component.MapObjectEnv{})
	require.Equal(t, 1.0, obj.X())

	mem.Add("lamp.tengo", []byte(`
name := "lamp2"
init := func(obj, state) { obj.set_x(2) }
update := func(obj, state, input) {}
activate := func(obj, state, direction) {}
`))
	require.NoError(t, obj.ReloadScript())
	require.Equal(t, 2.0, obj.X())
	require.Equal(t, "lamp2", obj.Name())

	mem.Add("lamp.tengo", []byte(`name := `))
	require.Error(t, obj.ReloadScript())
}

func TestWatcherReportsScriptEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "door.tengo"), []byte("x"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, "door", got[0])
	require.NotContains(t, got, "notes")
}

func TestScriptName(t *testing.T) {
	name, ok := scriptName("/a/b/Mine.TENGO")
	require.True(t, ok)
	require.Equal(t, "Mine", name)

	_, ok = scriptName("/a/b/mine.yaml")
	require.False(t, ok)
}
