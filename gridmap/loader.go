package gridmap

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/alive/collision"
	"github.com/milk9111/alive/ecs"
	"github.com/milk9111/alive/ecs/component"
	"github.com/milk9111/alive/grid"
	"github.com/milk9111/alive/input"
	"github.com/milk9111/alive/logger"
	"github.com/milk9111/alive/path"
)

var (
	ErrAborted   = errors.New("gridmap: load aborted")
	ErrNoPath    = errors.New("gridmap: no path to load")
	ErrBadResume = errors.New("gridmap: snapshot does not match path")
)

// State is a loader stage. Stages run in declaration order.
type State int

const (
	Init State = iota
	SetupSystems
	SetupAndConvertCollisionItems
	AllocateCameraMemory
	LoadCameras
	LoadEntities
	Done
	Failed
	Aborted
)

func (s State) String() string {
	switch s {
	case Init:
		return "Init"
	case SetupSystems:
		return "SetupSystems"
	case SetupAndConvertCollisionItems:
		return "SetupAndConvertCollisionItems"
	case AllocateCameraMemory:
		return "AllocateCameraMemory"
	case LoadCameras:
		return "LoadCameras"
	case LoadEntities:
		return "LoadEntities"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	case Aborted:
		return "Aborted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ScriptFactory creates the script companion for a bound object.
type ScriptFactory func(name string) (component.Script, error)

// Deps are the collaborators a load needs. Only Bindings and Scripts are
// required for objects to be created.
type Deps struct {
	Bindings   *Bindings
	Scripts    ScriptFactory
	Animations component.AnimationSource
	Cameras    CameraSource
	Input      input.Actions
	Log        *zap.Logger
}

// Loader converts a path into a GridMap a bounded amount of work per Step.
// It owns everything it builds until Done.
type Loader struct {
	path    *path.Path
	deps    Deps
	session uuid.UUID
	log     *zap.Logger

	state   State
	err     error
	lines   Cursor
	camX    Cursor
	camY    Cursor
	objects Cursor
	skipped int
	steps   int

	building  *GridMap
	published *GridMap
}

// NewLoader prepares a load of p. No work is done until Step.
func NewLoader(p *path.Path, deps Deps) *Loader {
	if deps.Bindings == nil {
		deps.Bindings = DefaultBindings()
	}
	if deps.Input == nil {
		deps.Input = input.None
	}
	session := uuid.New()
	return &Loader{
		path:    p,
		deps:    deps,
		session: session,
		log:     logger.OrNop(deps.Log).With(zap.String("load", session.String())),
	}
}

func (l *Loader) State() State       { return l.state }
func (l *Loader) Session() uuid.UUID { return l.session }

// Skipped counts object records with no script binding.
func (l *Loader) Skipped() int { return l.skipped }

// Map returns the loaded map once Done, nil before.
func (l *Loader) Map() *GridMap { return l.published }

// Err is the error that stopped the load, if any.
func (l *Loader) Err() error { return l.err }

// Abort discards everything built so far. Later Steps return ErrAborted.
func (l *Loader) Abort() {
	if l.state == Done || l.state == Failed || l.state == Aborted {
		return
	}
	l.log.Info("load aborted", zap.Stringer("state", l.state))
	l.discard()
	l.state = Aborted
	l.err = ErrAborted
}

func (l *Loader) discard() {
	l.building = nil
	l.published = nil
}

// Step does one unit of work: one collision item, one camera cell or one
// object record, or one setup stage. It reports true once the map is
// published.
func (l *Loader) Step() (bool, error) {
	switch l.state {
	case Done:
		return true, nil
	case Failed, Aborted:
		return false, l.err
	}

	l.steps++
	if err := l.step(); err != nil {
		l.discard()
		l.state = Failed
		l.err = err
		l.log.Error("load failed", zap.Error(err))
		return false, err
	}
	return l.state == Done, nil
}

func (l *Loader) step() error {
	switch l.state {
	case Init:
		if l.path == nil {
			return ErrNoPath
		}
		l.log.Info("load started",
			zap.Int("collision_items", len(l.path.CollisionItems)),
			zap.Int("grid_width", l.path.GridWidth),
			zap.Int("grid_height", l.path.GridHeight),
			zap.Int("objects", len(l.path.MapObjects)))
		l.building = newGridMap(l.deps.Cameras, l.deps.Animations, l.deps.Log)
		l.state = SetupSystems

	case SetupSystems:
		m := l.building
		m.world = ecs.NewWorld()
		m.root = m.world.CreateEntity()
		m.lines = collision.NewStore()
		l.lines = newCursor(len(l.path.CollisionItems))
		l.state = SetupAndConvertCollisionItems

	case SetupAndConvertCollisionItems:
		if !l.lines.Done() {
			if err := l.convertLine(l.lines.Current); err != nil {
				return err
			}
			l.lines.Advance()
			return nil
		}
		if err := l.building.lines.Validate(); err != nil {
			return fmt.Errorf("gridmap: collision items: %w", err)
		}
		l.state = AllocateCameraMemory

	case AllocateCameraMemory:
		p := l.path
		l.building.grid = grid.New(p.GridWidth, p.GridHeight, float64(p.CameraWidth), float64(p.CameraHeight))
		l.camX = newCursor(p.GridWidth)
		l.camY = newCursor(p.GridHeight)
		if l.camY.Done() {
			l.camX.Current = l.camX.Bound
		}
		l.state = LoadCameras

	case LoadCameras:
		if !l.camX.Done() {
			if err := l.loadCamera(l.camX.Current, l.camY.Current); err != nil {
				return err
			}
			l.camY.Advance()
			if l.camY.Done() {
				l.camY.Reset()
				l.camX.Advance()
			}
			return nil
		}
		l.objects = newCursor(len(l.path.MapObjects))
		l.state = LoadEntities

	case LoadEntities:
		if !l.objects.Done() {
			if err := l.loadObject(l.objects.Current); err != nil {
				return err
			}
			l.objects.Advance()
			return nil
		}
		l.published = l.building
		l.building = nil
		l.state = Done
		l.log.Info("load done",
			zap.Int("steps", l.steps),
			zap.Int("lines", l.published.lines.Len()),
			zap.Int("cameras", l.published.grid.Len()),
			zap.Int("entities", l.published.world.Len()),
			zap.Int("skipped", l.skipped))
	}
	return nil
}

func (l *Loader) convertLine(i int) error {
	item := l.path.CollisionItems[i]
	id := collision.LineID(i)
	lines := l.building.lines
	p1 := cp.Vector{X: float64(item.P1.X), Y: float64(item.P1.Y)}
	p2 := cp.Vector{X: float64(item.P2.X), Y: float64(item.P2.Y)}
	if err := lines.AddLineWithID(id, p1, p2, collision.TypeFromCode(item.Type)); err != nil {
		return fmt.Errorf("gridmap: collision item %d: %w", i, err)
	}
	return lines.SetLinks(id, linkID(item.Prev), linkID(item.Next))
}

func linkID(v int16) collision.LineID {
	if v == path.NoLink {
		return collision.NoLine
	}
	return collision.LineID(v)
}

func (l *Loader) loadCamera(x, y int) error {
	cam, ok := l.path.Camera(x, y)
	if !ok {
		return nil
	}
	if _, err := l.building.grid.Add(cam.X, cam.Y, cam.Name); err != nil {
		return fmt.Errorf("gridmap: camera: %w", err)
	}
	return nil
}

// ObjectID reads the activation id of an object record: the first two
// property bytes, little endian. Records with shorter properties use 0.
func ObjectID(rec path.MapObject) int {
	if len(rec.Props) < 2 {
		return 0
	}
	return int(binary.LittleEndian.Uint16(rec.Props))
}

func (l *Loader) loadObject(i int) error {
	rec := l.path.MapObjects[i]
	name, ok := l.deps.Bindings.Script(rec.Type)
	if !ok {
		l.skipped++
		l.log.Warn("unknown object type skipped", zap.Int("index", i), zap.Uint32("type", rec.Type))
		return nil
	}
	if l.deps.Scripts == nil {
		l.skipped++
		l.log.Warn("no script factory, object skipped", zap.Int("index", i), zap.String("script", name))
		return nil
	}
	script, err := l.deps.Scripts(name)
	if err != nil {
		return fmt.Errorf("gridmap: object %d (%s): %w", i, name, err)
	}

	m := l.building
	id, err := m.world.CreateChild(m.root)
	if err != nil {
		return err
	}
	rect := component.Rect{X: int32(rec.X), Y: int32(rec.Y), W: int32(rec.W), H: int32(rec.H)}
	env := component.MapObjectEnv{Lines: m.lines, Activator: m, Input: l.deps.Input, Log: l.deps.Log}
	for _, c := range []ecs.Component{
		component.NewTransform(float64(rec.X), float64(rec.Y)),
		component.NewAnimation(l.deps.Animations, l.deps.Log),
		component.NewMapObject(ObjectID(rec), rect, script, env),
	} {
		if err := m.world.AddComponent(id, c); err != nil {
			return fmt.Errorf("gridmap: object %d: %w", i, err)
		}
	}
	if err := m.world.LoadEntity(id); err != nil {
		return fmt.Errorf("gridmap: init object %d (%s): %w", i, name, err)
	}
	return nil
}

// Progress reports units of work done and in total.
type Progress struct {
	State State
	Done  int
	Total int
}

// Fraction is Done/Total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

func (l *Loader) Progress() Progress {
	total := l.totalSteps()
	done := l.steps
	if l.state == Done {
		done = total
	}
	return Progress{State: l.state, Done: min(done, total), Total: total}
}

// totalSteps is the number of Step calls a full load takes.
func (l *Loader) totalSteps() int {
	if l.path == nil {
		return 1
	}
	p := l.path
	cells := p.GridWidth * p.GridHeight
	// Init, SetupSystems, the validating step after the collision items,
	// AllocateCameraMemory, the step leaving LoadCameras and the publishing
	// step.
	return 6 + len(p.CollisionItems) + cells + len(p.MapObjects)
}

// Snapshot is the resumable position of a load.
type Snapshot struct {
	Session string `yaml:"session" json:"session"`
	State   State  `yaml:"state" json:"state"`
	Steps   int    `yaml:"steps" json:"steps"`
	Lines   Cursor `yaml:"lines" json:"lines"`
	CameraX Cursor `yaml:"camera_x" json:"camera_x"`
	CameraY Cursor `yaml:"camera_y" json:"camera_y"`
	Objects Cursor `yaml:"objects" json:"objects"`
	Skipped int    `yaml:"skipped" json:"skipped"`
}

func (l *Loader) Snapshot() Snapshot {
	return Snapshot{
		Session: l.session.String(),
		State:   l.state,
		Steps:   l.steps,
		Lines:   l.lines,
		CameraX: l.camX,
		CameraY: l.camY,
		Objects: l.objects,
		Skipped: l.skipped,
	}
}

// Resume rebuilds a loader at the position of snap. The containers are
// rebuilt from p, so p must be the path the snapshot was taken from.
func Resume(p *path.Path, deps Deps, snap Snapshot) (*Loader, error) {
	l := NewLoader(p, deps)
	if id, err := uuid.Parse(snap.Session); err == nil {
		l.session = id
		l.log = logger.OrNop(deps.Log).With(zap.String("load", id.String()))
	}
	if snap.State == Failed || snap.State == Aborted {
		return nil, fmt.Errorf("%w: snapshot of a %s load", ErrBadResume, snap.State)
	}
	for l.steps < snap.Steps {
		if _, err := l.Step(); err != nil {
			return nil, err
		}
		if l.state == Done {
			break
		}
	}
	if l.state != snap.State || l.lines != snap.Lines || l.camX != snap.CameraX ||
		l.camY != snap.CameraY || l.objects != snap.Objects {
		l.Abort()
		return nil, ErrBadResume
	}
	l.log.Info("load resumed", zap.Stringer("state", l.state), zap.Int("steps", l.steps))
	return l, nil
}

// Run steps the loader to completion.
func (l *Loader) Run() (*GridMap, error) {
	for {
		done, err := l.Step()
		if err != nil {
			return nil, err
		}
		if done {
			return l.Map(), nil
		}
	}
}
