package component

import (
	"errors"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/milk9111/alive/collision"
	"github.com/milk9111/alive/ecs"
	"github.com/milk9111/alive/input"
	"github.com/milk9111/alive/logger"
)

// Default position of a map object placed without a record.
const (
	DefaultMapObjectX = 50
	DefaultMapObjectY = 100
)

const (
	ceilingProbeLift = 2
	floorProbeDepth  = 780
)

// Script is the script side companion of a map object. The core calls it
// for the high level behaviour and the script calls back through the
// MapObject methods.
type Script interface {
	Name() string
	Init(obj *MapObject) error
	Update(obj *MapObject, in input.Actions) error
	Activate(obj *MapObject, direction bool) error
	// Reload recompiles the script source. State is rebuilt by Init.
	Reload() error
}

// Activator delivers activation signals to every map object with an id.
type Activator interface {
	ActivateObjectsWithID(id int, direction bool)
}

// Rect is the placement of an object record in world units.
type Rect struct {
	X, Y, W, H int32
}

// MapObjectEnv carries the map collaborators a map object talks to. Any
// field may be nil.
type MapObjectEnv struct {
	Lines     *collision.Store
	Activator Activator
	Input     input.Actions
	Log       *zap.Logger
}

// MapObject is a positioned entity whose behaviour lives in a script.
type MapObject struct {
	ecs.Base
	Rect Rect

	id        int
	name      string
	flip      bool
	script    Script
	broken    bool
	env       MapObjectEnv
	transform *Transform
	animation *Animation
	log       *zap.Logger
}

func NewMapObject(id int, rect Rect, script Script, env MapObjectEnv) *MapObject {
	if env.Input == nil {
		env.Input = input.None
	}
	return &MapObject{
		Rect:   rect,
		id:     id,
		script: script,
		env:    env,
		log:    logger.OrNop(env.Log),
	}
}

func (*MapObject) ID() ecs.Identifier { return ecs.MapObject }

// Id is the activation id; several objects may share one.
func (o *MapObject) Id() int { return o.id }

func (o *MapObject) SetId(id int) { o.id = id }

// Name is the script provided name.
func (o *MapObject) Name() string { return o.name }

func (o *MapObject) Script() Script { return o.script }

func (o *MapObject) Load() error {
	t, err := requireSibling[*Transform](o, ecs.Transform)
	if err != nil {
		return err
	}
	o.transform = t
	if a, ok := ecs.Sibling[*Animation](o, ecs.Animation); ok {
		o.animation = a
	}
	if o.script == nil {
		return ErrNoScript
	}
	o.name = o.script.Name()
	o.log = o.log.With(zap.String("object", o.name), zap.Int("id", o.id))
	return o.script.Init(o)
}

func (o *MapObject) Update() {
	if o.broken {
		return
	}
	if err := o.script.Update(o, o.env.Input); err != nil {
		o.broken = true
		o.log.Error("script update failed, object halted", zap.Error(err))
	}
}

// Activate signals this object.
func (o *MapObject) Activate(direction bool) {
	if o.broken {
		return
	}
	if err := o.script.Activate(o, direction); err != nil {
		o.log.Warn("script activate failed", zap.Error(err))
	}
}

// ActivateID signals every object with id through the map.
func (o *MapObject) ActivateID(id int, direction bool) {
	if o.env.Activator == nil {
		return
	}
	o.env.Activator.ActivateObjectsWithID(id, direction)
}

// ReloadScript recompiles the script and runs its init again.
func (o *MapObject) ReloadScript() error {
	if o.script == nil {
		return ErrNoScript
	}
	if err := o.script.Reload(); err != nil {
		return err
	}
	o.broken = false
	o.name = o.script.Name()
	if err := o.script.Init(o); err != nil {
		o.broken = true
		return errors.Join(errors.New("component: reinit after reload"), err)
	}
	return nil
}

func (o *MapObject) X() float64 { return o.transform.X }
func (o *MapObject) Y() float64 { return o.transform.Y }

func (o *MapObject) SetX(x float64) { o.transform.X = x }
func (o *MapObject) SetY(y float64) { o.transform.Y = y }

// FlipX is true when the object faces left.
func (o *MapObject) FlipX() bool {
	if o.animation != nil {
		return o.animation.FlipX
	}
	return o.flip
}

func (o *MapObject) SetFlipX(flip bool) {
	o.flip = flip
	if o.animation != nil {
		o.animation.FlipX = flip
	}
}

func (o *MapObject) SnapXToGrid() {
	o.transform.SnapXToGrid()
}

// ContainsPoint tests (x, y) against the record size placed at the
// current position.
func (o *MapObject) ContainsPoint(x, y float64) bool {
	px, py := o.transform.X, o.transform.Y
	return x >= px && x < px+float64(o.Rect.W) && y >= py && y < py+float64(o.Rect.H)
}

// SetAnimation switches the sibling animation. It reports false when the
// object has no animation or the name is unknown.
func (o *MapObject) SetAnimation(name string) bool {
	return o.animation != nil && o.animation.Change(name)
}

func (o *MapObject) AnimationComplete() bool {
	return o.animation != nil && o.animation.Complete()
}

func (o *MapObject) FrameNumber() int {
	if o.animation == nil {
		return 0
	}
	return o.animation.FrameNumber()
}

func (o *MapObject) facing(dx float64) float64 {
	if o.FlipX() {
		return -dx
	}
	return dx
}

// WallCollision casts dx ahead along the facing at height y+dy.
func (o *MapObject) WallCollision(dx, dy float64) bool {
	if o.env.Lines == nil {
		return false
	}
	from := cp.Vector{X: o.transform.X, Y: o.transform.Y + dy}
	to := cp.Vector{X: o.transform.X + o.facing(dx), Y: o.transform.Y + dy}
	_, hit := o.env.Lines.QuerySegment(from, to, collision.AnyWall)
	return hit
}

// CellingCollision probes upwards at dx ahead, from just above the feet to
// y+dy.
func (o *MapObject) CellingCollision(dx, dy float64) bool {
	if o.env.Lines == nil {
		return false
	}
	x := o.transform.X + o.facing(dx)
	from := cp.Vector{X: x, Y: o.transform.Y - ceilingProbeLift}
	to := cp.Vector{X: x, Y: o.transform.Y + dy}
	_, hit := o.env.Lines.QuerySegment(from, to, collision.AnyCeiling)
	return hit
}

// FloorCollision looks straight down for a floor and returns the hit point
// and the floor angle.
func (o *MapObject) FloorCollision() (hit bool, x, y, angle float64) {
	if o.env.Lines == nil {
		return false, 0, 0, 0
	}
	from := cp.Vector{X: o.transform.X, Y: o.transform.Y}
	to := from.Add(cp.Vector{Y: floorProbeDepth})
	h, ok := o.env.Lines.QuerySegment(from, to, collision.AnyFloor)
	if !ok {
		return false, 0, 0, 0
	}
	if l, found := o.env.Lines.Line(h.Line); found {
		angle = l.Angle()
	}
	return true, h.Point.X, h.Point.Y, angle
}
