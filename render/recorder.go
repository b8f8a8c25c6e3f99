package render

import (
	"fmt"
	"slices"
)

// Recorder is a headless renderer that remembers what it was asked to do.
// Tools and tests use it where no window exists.
type Recorder struct {
	Loaded   map[TextureID]string
	Draws    []DrawCmd
	next     TextureID
	FailLoad func(name string) bool
}

func NewRecorder() *Recorder {
	return &Recorder{Loaded: map[TextureID]string{}}
}

func (r *Recorder) LoadTexture(name string, data []byte) (TextureID, error) {
	if r.FailLoad != nil && r.FailLoad(name) {
		return NoTexture, fmt.Errorf("render: cannot load %s", name)
	}
	r.next++
	r.Loaded[r.next] = name
	return r.next, nil
}

func (r *Recorder) UnloadTexture(id TextureID) {
	delete(r.Loaded, id)
}

func (r *Recorder) Draw(cmd DrawCmd) {
	r.Draws = append(r.Draws, cmd)
}

// Names returns the names of resident textures, sorted.
func (r *Recorder) Names() []string {
	out := make([]string, 0, len(r.Loaded))
	for _, n := range r.Loaded {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Reset forgets recorded draws.
func (r *Recorder) Reset() {
	r.Draws = r.Draws[:0]
}
