package script

import (
	"strings"

	"github.com/d5/tengo/v2"

	"github.com/milk9111/alive/ecs/component"
)

type userFunc func(args ...tengo.Object) (tengo.Object, error)

// objectAPI exposes the map object fields and operations scripts may use.
func objectAPI(obj *component.MapObject) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	add := func(name string, fn userFunc) {
		values[name] = &tengo.UserFunction{Name: name, Value: tengo.CallableFunc(fn)}
	}

	add("x", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: obj.X()}, nil
	})
	add("y", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: obj.Y()}, nil
	})
	add("set_x", func(args ...tengo.Object) (tengo.Object, error) {
		if v, ok := floatArg(args, 0); ok {
			obj.SetX(v)
		}
		return tengo.UndefinedValue, nil
	})
	add("set_y", func(args ...tengo.Object) (tengo.Object, error) {
		if v, ok := floatArg(args, 0); ok {
			obj.SetY(v)
		}
		return tengo.UndefinedValue, nil
	})
	add("id", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(obj.Id())}, nil
	})
	add("set_id", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) > 0 {
			if v, ok := tengo.ToInt(args[0]); ok {
				obj.SetId(v)
			}
		}
		return tengo.UndefinedValue, nil
	})
	add("flip_x", func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(obj.FlipX()), nil
	})
	add("set_flip_x", func(args ...tengo.Object) (tengo.Object, error) {
		obj.SetFlipX(boolArg(args, 0))
		return tengo.UndefinedValue, nil
	})
	add("snap_x_to_grid", func(args ...tengo.Object) (tengo.Object, error) {
		obj.SnapXToGrid()
		return tengo.UndefinedValue, nil
	})
	add("activate", func(args ...tengo.Object) (tengo.Object, error) {
		obj.Activate(boolArg(args, 0))
		return tengo.UndefinedValue, nil
	})
	add("activate_id", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		id, ok := tengo.ToInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		obj.ActivateID(id, boolArg(args, 1))
		return tengo.TrueValue, nil
	})
	add("wall_collision", func(args ...tengo.Object) (tengo.Object, error) {
		dx, _ := floatArg(args, 0)
		dy, _ := floatArg(args, 1)
		return boolObject(obj.WallCollision(dx, dy)), nil
	})
	add("celling_collision", func(args ...tengo.Object) (tengo.Object, error) {
		dx, _ := floatArg(args, 0)
		dy, _ := floatArg(args, 1)
		return boolObject(obj.CellingCollision(dx, dy)), nil
	})
	add("floor_collision", func(args ...tengo.Object) (tengo.Object, error) {
		hit, x, y, angle := obj.FloorCollision()
		return &tengo.Array{Value: []tengo.Object{
			boolObject(hit),
			&tengo.Float{Value: x},
			&tengo.Float{Value: y},
			&tengo.Float{Value: angle},
		}}, nil
	})
	add("set_animation", func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		return boolObject(obj.SetAnimation(objectAsString(args[0]))), nil
	})
	add("animation_complete", func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(obj.AnimationComplete()), nil
	})
	add("frame_number", func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(obj.FrameNumber())}, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func boolArg(args []tengo.Object, i int) bool {
	if i >= len(args) {
		return false
	}
	return !args[i].IsFalsy()
}

func floatArg(args []tengo.Object, i int) (float64, bool) {
	if i >= len(args) {
		return 0, false
	}
	return tengo.ToFloat64(args[i])
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
