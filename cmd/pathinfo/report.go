package main

import (
	"fmt"

	"github.com/milk9111/alive/ecs/component"
	"github.com/milk9111/alive/gridmap"
	"github.com/milk9111/alive/path"
	"github.com/milk9111/alive/script"
)

type report struct {
	Session     string            `yaml:"session"`
	State       string            `yaml:"state"`
	Steps       string            `yaml:"steps"`
	Fingerprint string            `yaml:"fingerprint,omitempty"`
	Cameras     int               `yaml:"cameras"`
	Lines       int               `yaml:"lines"`
	Objects     map[string]int    `yaml:"objects,omitempty"`
	Skipped     int               `yaml:"skipped"`
	Snapshot    *gridmap.Snapshot `yaml:"snapshot,omitempty"`
}

func scriptFactory(rt *script.Runtime) gridmap.ScriptFactory {
	return func(name string) (component.Script, error) {
		return rt.New(name)
	}
}

// inspect loads p. With stopAfter > 0 the load is cut short after that many
// steps and the report carries the resumable snapshot instead of the map.
func inspect(p *path.Path, deps gridmap.Deps, stopAfter int) (report, error) {
	l := gridmap.NewLoader(p, deps)
	for n := 0; stopAfter <= 0 || n < stopAfter; n++ {
		done, err := l.Step()
		if err != nil {
			return report{}, err
		}
		if done {
			break
		}
	}

	pr := l.Progress()
	rep := report{
		Session: l.Session().String(),
		State:   pr.State.String(),
		Steps:   fmt.Sprintf("%d/%d", pr.Done, pr.Total),
		Skipped: l.Skipped(),
	}

	m := l.Map()
	if m == nil {
		snap := l.Snapshot()
		rep.Snapshot = &snap
		l.Abort()
		return rep, nil
	}

	rep.Fingerprint = fmt.Sprintf("%016x", m.Fingerprint())
	rep.Cameras = m.Grid().Len()
	rep.Lines = m.Lines().Len()
	rep.Objects = map[string]int{}
	for obj := range m.Objects() {
		rep.Objects[obj.Name()]++
	}
	return rep, nil
}
