// Package script runs map object behaviour written in tengo.
//
// A script defines a global name and three functions:
//
//	init(obj, state)
//	update(obj, state, input)
//	activate(obj, state, direction)
//
// state is a map owned by the instance and kept between calls.
package script

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/alive/logger"
	"github.com/milk9111/alive/vfs"
)

//go:embed scripts/*.tengo
var builtin embed.FS

const scriptExt = ".tengo"

var ErrNotFound = errors.New("script: not found")

const dispatchScript = `
if __phase == "init" {
	init(__obj, __state)
} else if __phase == "update" {
	update(__obj, __state, __input)
} else if __phase == "activate" {
	activate(__obj, __state, __direction)
}
`

// Runtime compiles script instances. Sources are looked up in the override
// file system first, then in the scripts built into the binary.
type Runtime struct {
	overrides vfs.FileSystem
	log       *zap.Logger
}

// NewRuntime creates a runtime. overrides may be nil.
func NewRuntime(overrides vfs.FileSystem, log *zap.Logger) *Runtime {
	return &Runtime{overrides: overrides, log: logger.OrNop(log)}
}

// Source returns the text of the named script.
func (r *Runtime) Source(name string) ([]byte, error) {
	file := name + scriptExt
	if r.overrides != nil && r.overrides.FileExists(file) {
		return vfs.ReadFile(r.overrides, file)
	}
	data, err := builtin.ReadFile("scripts/" + file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, err
}

// Builtin lists the names of the embedded scripts.
func Builtin() []string {
	entries, err := builtin.ReadDir("scripts")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), scriptExt))
	}
	return names
}

// New compiles a fresh instance of the named script.
func (r *Runtime) New(name string) (*Instance, error) {
	inst := &Instance{file: name, runtime: r, log: r.log.With(zap.String("script", name))}
	if err := inst.Reload(); err != nil {
		return nil, err
	}
	return inst, nil
}

func compile(src []byte) (*tengo.Compiled, error) {
	s := tengo.NewScript(append(append([]byte{}, src...), "\n"+dispatchScript...))
	_ = s.Add("__phase", "")
	_ = s.Add("__obj", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__input", map[string]any{})
	_ = s.Add("__direction", false)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return s.Compile()
}
