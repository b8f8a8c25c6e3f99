package gridmap

import (
	"errors"

	"go.uber.org/zap"

	"github.com/milk9111/alive/logger"
	"github.com/milk9111/alive/render"
)

// Level holds the installed map and at most one load in progress. The
// installed map is only replaced when a load finishes successfully.
type Level struct {
	current *GridMap
	pending *Loader
	// OnReplace is called with the outgoing map after a new one is
	// installed.
	OnReplace func(old *GridMap)
	log       *zap.Logger
}

func NewLevel(log *zap.Logger) *Level {
	return &Level{log: logger.OrNop(log)}
}

// Map is the installed map, nil before the first successful load.
func (l *Level) Map() *GridMap { return l.current }

// Loading reports whether a load is pending.
func (l *Level) Loading() bool { return l.pending != nil }

// Pending is the load in progress, if any.
func (l *Level) Pending() *Loader { return l.pending }

// Load starts replacing the map. A load already in progress is aborted.
func (l *Level) Load(loader *Loader) {
	if l.pending != nil {
		l.pending.Abort()
	}
	l.pending = loader
}

// Abort cancels the pending load and keeps the installed map.
func (l *Level) Abort() {
	if l.pending == nil {
		return
	}
	l.pending.Abort()
	l.pending = nil
}

// StepLoad advances the pending load by at most budget steps. On success
// the new map is installed; on failure the old map stays and the error is
// returned.
func (l *Level) StepLoad(budget int) (bool, error) {
	if l.pending == nil {
		return false, nil
	}
	for i := 0; i < max(budget, 1); i++ {
		done, err := l.pending.Step()
		if err != nil {
			l.pending = nil
			return false, err
		}
		if done {
			l.install(l.pending.Map())
			l.pending = nil
			return true, nil
		}
	}
	return false, nil
}

func (l *Level) install(m *GridMap) {
	old := l.current
	l.current = m
	l.log.Info("map installed", zap.Uint64("fingerprint", m.Fingerprint()))
	if old != nil && l.OnReplace != nil {
		l.OnReplace(old)
	}
}

// Update ticks the installed map.
// Advance is one frame: it steps the pending load, if any, by budget and
// then ticks the installed map, so the old map keeps running while its
// replacement loads. It reports whether a new map was installed.
func (l *Level) Advance(budget int) (bool, error) {
	installed, loadErr := l.StepLoad(budget)
	return installed, errors.Join(loadErr, l.Update())
}

func (l *Level) Update() error {
	if l.current == nil {
		return nil
	}
	return l.current.Update()
}

func (l *Level) Render(r render.Renderer) {
	if l.current == nil {
		return
	}
	l.current.Render(r)
}
