// Package gridmap loads a level path into a playable map and runs it.
package gridmap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/milk9111/alive/collision"
	"github.com/milk9111/alive/ecs"
	"github.com/milk9111/alive/ecs/component"
	"github.com/milk9111/alive/grid"
	"github.com/milk9111/alive/input"
	"github.com/milk9111/alive/logger"
	"github.com/milk9111/alive/render"
)

var ErrNotInEditor = errors.New("gridmap: map is not in editor mode")

// Mode selects between simulation and editing. A map is never both.
type Mode int

const (
	InGame Mode = iota
	InEditor
)

func (m Mode) String() string {
	if m == InEditor {
		return "InEditor"
	}
	return "InGame"
}

// cameraRetryFrames is how many frames a camera whose image failed to
// load waits before the next attempt.
const cameraRetryFrames = 60

// CameraSource returns the encoded image of a camera by name.
type CameraSource func(name string) ([]byte, bool)

// GridMap is a loaded level: screens, collision lines and the entity tree
// under one root.
type GridMap struct {
	world   *ecs.World
	root    ecs.EntityID
	grid    *grid.Grid
	lines   *collision.Store
	mode    Mode
	cameras CameraSource
	anims   component.AnimationSource
	missing map[string]int // frames until the next load attempt
	log     *zap.Logger
}

func (m *GridMap) World() *ecs.World       { return m.world }
func (m *GridMap) Root() ecs.EntityID      { return m.root }
func (m *GridMap) Grid() *grid.Grid        { return m.grid }
func (m *GridMap) Lines() *collision.Store { return m.lines }
func (m *GridMap) Mode() Mode              { return m.mode }
func (m *GridMap) SetMode(mode Mode)       { m.mode = mode }

// Update runs one simulation tick. It does nothing in editor mode.
func (m *GridMap) Update() error {
	if m.mode == InEditor {
		return nil
	}
	return m.world.Update()
}

// Render draws resident screens, loading their textures on first use, and
// then every entity. A camera that fails to load is retried every
// cameraRetryFrames frames and warned about once.
func (m *GridMap) Render(r render.Renderer) {
	for s := range m.grid.Screens() {
		if m.cameras == nil {
			break
		}
		if wait, ok := m.missing[s.Name]; ok && wait > 0 {
			m.missing[s.Name] = wait - 1
			continue
		}
		tex, err := s.EnsureTexture(r, m.cameras)
		if err != nil {
			if _, failedBefore := m.missing[s.Name]; !failedBefore {
				m.log.Warn("camera texture", zap.String("camera", s.Name), zap.Error(err))
			}
			m.missing[s.Name] = cameraRetryFrames
			continue
		}
		delete(m.missing, s.Name)
		if tex == render.NoTexture {
			continue
		}
		bb := m.grid.Bounds(s.X, s.Y)
		r.Draw(render.DrawCmd{Texture: tex, X: bb.L, Y: bb.B, Scale: 1, Layer: render.LayerBackground})
	}
	m.world.Render(r)
}

// Release unloads every texture owned by the map.
func (m *GridMap) Release(r render.Renderer) {
	m.grid.UnloadAll(r)
	for e := range m.world.Entities() {
		if a, ok := ecs.Get[*component.Animation](m.world, e.ID(), ecs.Animation); ok {
			a.Release(r)
		}
	}
}

// Objects yields the map objects in registration order.
func (m *GridMap) Objects() iter.Seq[*component.MapObject] {
	return func(yield func(*component.MapObject) bool) {
		for e := range m.world.Entities() {
			obj, ok := ecs.Get[*component.MapObject](m.world, e.ID(), ecs.MapObject)
			if !ok {
				continue
			}
			if !yield(obj) {
				return
			}
		}
	}
}

// ActivateObjectsWithID signals every map object carrying id.
func (m *GridMap) ActivateObjectsWithID(id int, direction bool) {
	for obj := range m.Objects() {
		if obj.Id() == id {
			obj.Activate(direction)
		}
	}
}

// ReloadScripts recompiles the objects running the named script file and
// returns how many were reloaded.
func (m *GridMap) ReloadScripts(file string) int {
	n := 0
	for obj := range m.Objects() {
		f, ok := obj.Script().(interface{ File() string })
		if !ok || f.File() != file {
			continue
		}
		if err := obj.ReloadScript(); err != nil {
			m.log.Error("script reload failed", zap.String("script", file), zap.Int("id", obj.Id()), zap.Error(err))
			continue
		}
		n++
	}
	if n > 0 {
		m.log.Info("scripts reloaded", zap.String("script", file), zap.Int("objects", n))
	}
	return n
}

// EditLines runs fn against the collision lines and validates the result.
// It is only allowed in editor mode.
func (m *GridMap) EditLines(fn func(lines *collision.Store) error) error {
	if m.mode != InEditor {
		return ErrNotInEditor
	}
	if err := fn(m.lines); err != nil {
		return err
	}
	return m.lines.Validate()
}

// SpawnPlayer creates the controlled character under the map root.
func (m *GridMap) SpawnPlayer(x, y float64, actions input.Actions) (ecs.EntityID, error) {
	id, err := m.world.CreateChild(m.root)
	if err != nil {
		return ecs.NoEntity, err
	}
	for _, c := range []ecs.Component{
		component.NewTransform(x, y),
		component.NewPhysics(m.lines),
		component.NewAnimation(m.anims, m.log, component.CueAbeStandIdle),
		component.NewAbeMovement(m.log),
		component.NewPlayerController(actions),
	} {
		if err := m.world.AddComponent(id, c); err != nil {
			m.world.DestroyEntity(id)
			return ecs.NoEntity, fmt.Errorf("gridmap: spawn player: %w", err)
		}
	}
	m.log.Info("player spawned", zap.Stringer("entity", id), zap.Float64("x", x), zap.Float64("y", y))
	return id, nil
}

// Fingerprint hashes lines, cameras and map object records. Two maps
// loaded from the same path hash equal however the load was paced.
func (m *GridMap) Fingerprint() uint64 {
	d := xxhash.New()
	var buf []byte
	putF := func(v float64) { buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v)) }
	putI := func(v int64) { buf = binary.LittleEndian.AppendUint64(buf, uint64(v)) }
	putS := func(s string) {
		putI(int64(len(s)))
		buf = append(buf, s...)
	}
	flush := func() {
		_, _ = d.Write(buf)
		buf = buf[:0]
	}

	putI(int64(m.lines.Len()))
	for l := range m.lines.All() {
		putI(int64(l.ID))
		putF(l.P1.X)
		putF(l.P1.Y)
		putF(l.P2.X)
		putF(l.P2.Y)
		putI(int64(l.Type))
		putI(int64(l.Prev))
		putI(int64(l.Next))
		flush()
	}

	putI(int64(m.grid.Width))
	putI(int64(m.grid.Height))
	for s := range m.grid.Screens() {
		putI(int64(s.X))
		putI(int64(s.Y))
		putS(s.Name)
		flush()
	}

	putI(int64(m.world.Len()))
	for obj := range m.Objects() {
		putI(int64(obj.Id()))
		putS(obj.Name())
		putI(int64(obj.Rect.X))
		putI(int64(obj.Rect.Y))
		putI(int64(obj.Rect.W))
		putI(int64(obj.Rect.H))
		putF(obj.X())
		putF(obj.Y())
		flush()
	}
	flush()
	return d.Sum64()
}

func newGridMap(cameras CameraSource, anims component.AnimationSource, log *zap.Logger) *GridMap {
	return &GridMap{cameras: cameras, anims: anims, missing: map[string]int{}, log: logger.OrNop(log)}
}
