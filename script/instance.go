package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"go.uber.org/zap"

	"github.com/milk9111/alive/ecs/component"
	"github.com/milk9111/alive/input"
)

// Instance is one compiled script bound to at most one map object. It
// implements component.Script.
type Instance struct {
	file     string
	name     string
	runtime  *Runtime
	compiled *tengo.Compiled
	state    *tengo.Map
	obj      *tengo.ImmutableMap
	bound    *component.MapObject
	running  bool
	deferred []bool
	log      *zap.Logger
}

var _ component.Script = (*Instance)(nil)

// File is the script the instance was compiled from.
func (i *Instance) File() string { return i.file }

func (i *Instance) Name() string { return i.name }

// Reload recompiles from the current source and clears the state map.
func (i *Instance) Reload() error {
	src, err := i.runtime.Source(i.file)
	if err != nil {
		return err
	}
	compiled, err := compile(src)
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", i.file, err)
	}
	i.compiled = compiled
	i.state = &tengo.Map{Value: map[string]tengo.Object{}}

	// Running with an unknown phase only evaluates the globals.
	if err := i.run("load", nil, nil, false); err != nil {
		return err
	}
	i.name = i.file
	if compiled.IsDefined("name") {
		if n := strings.TrimSpace(compiled.Get("name").String()); n != "" {
			i.name = n
		}
	}
	return nil
}

func (i *Instance) Init(obj *component.MapObject) error {
	i.bind(obj)
	return i.run("init", i.obj, nil, false)
}

func (i *Instance) Update(obj *component.MapObject, in input.Actions) error {
	i.bind(obj)
	return i.run("update", i.obj, inputObject(in), false)
}

// Activate runs the activate hook. An activation raised while this
// instance is already running is delivered once the running call returns.
func (i *Instance) Activate(obj *component.MapObject, direction bool) error {
	i.bind(obj)
	if i.running {
		i.deferred = append(i.deferred, direction)
		return nil
	}
	return i.run("activate", i.obj, nil, direction)
}

func (i *Instance) bind(obj *component.MapObject) {
	if i.bound == obj && i.obj != nil {
		return
	}
	i.bound = obj
	i.obj = objectAPI(obj)
}

func (i *Instance) run(phase string, obj, in *tengo.ImmutableMap, direction bool) error {
	if obj == nil {
		obj = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if in == nil {
		in = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	for name, v := range map[string]any{
		"__phase":     phase,
		"__obj":       obj,
		"__state":     i.state,
		"__input":     in,
		"__direction": direction,
	} {
		if err := i.compiled.Set(name, v); err != nil {
			return fmt.Errorf("script: %s set %s: %w", i.file, name, err)
		}
	}

	i.running = true
	err := i.compiled.Run()
	i.running = false
	if err != nil {
		return fmt.Errorf("script: %s %s: %w", i.file, phase, err)
	}

	for len(i.deferred) > 0 {
		d := i.deferred[0]
		i.deferred = i.deferred[1:]
		if err := i.run("activate", i.obj, nil, d); err != nil {
			return err
		}
	}
	return nil
}

func inputObject(in input.Actions) *tengo.ImmutableMap {
	s := input.Snapshot(in)
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"left":  boolObject(s.LeftHeld),
		"right": boolObject(s.RightHeld),
		"chant": boolObject(s.ChantHeld),
	}}
}
