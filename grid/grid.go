// Package grid maps screen grid coordinates to camera images and screen
// transition bounds.
package grid

import (
	"errors"
	"fmt"
	"iter"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/alive/render"
)

var (
	ErrOutOfBounds = errors.New("grid: cell out of bounds")
	ErrOccupied    = errors.New("grid: cell already has a camera")
)

type TextureState int

const (
	Unloaded TextureState = iota
	Loading
	Resident
)

func (s TextureState) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Resident:
		return "resident"
	default:
		return fmt.Sprintf("TextureState(%d)", int(s))
	}
}

// Screen is one camera of the grid.
type Screen struct {
	X    int
	Y    int
	Name string

	state   TextureState
	texture render.TextureID
}

func (s *Screen) State() TextureState {
	return s.state
}

func (s *Screen) Texture() render.TextureID {
	return s.texture
}

// EnsureTexture loads the camera image on first use. src fetches the
// encoded image; a miss or a renderer failure leaves the screen unloaded
// so a later call can retry. Callers decide how often to retry.
func (s *Screen) EnsureTexture(r render.Renderer, src func(name string) ([]byte, bool)) (render.TextureID, error) {
	if s.state == Resident {
		return s.texture, nil
	}
	s.state = Loading
	data, ok := src(s.Name)
	if !ok {
		s.state = Unloaded
		return render.NoTexture, fmt.Errorf("grid: camera image %s not found", s.Name)
	}
	tex, err := r.LoadTexture(s.Name, data)
	if err != nil {
		s.state = Unloaded
		return render.NoTexture, err
	}
	s.texture = tex
	s.state = Resident
	return tex, nil
}

// Unload releases the texture, if any.
func (s *Screen) Unload(r render.Renderer) {
	if s.state == Resident {
		r.UnloadTexture(s.texture)
	}
	s.texture = render.NoTexture
	s.state = Unloaded
}

// Grid holds at most one screen per cell.
type Grid struct {
	Width        int
	Height       int
	CameraWidth  float64
	CameraHeight float64

	screens []*Screen // index x*Height+y
}

func New(width, height int, camW, camH float64) *Grid {
	return &Grid{
		Width:        width,
		Height:       height,
		CameraWidth:  camW,
		CameraHeight: camH,
		screens:      make([]*Screen, width*height),
	}
}

func (g *Grid) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0, false
	}
	return x*g.Height + y, true
}

// Add places a camera on an empty cell.
func (g *Grid) Add(x, y int, name string) (*Screen, error) {
	i, ok := g.index(x, y)
	if !ok {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	if g.screens[i] != nil {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrOccupied, x, y)
	}
	s := &Screen{X: x, Y: y, Name: name}
	g.screens[i] = s
	return s, nil
}

// Screen returns the camera at (x, y).
func (g *Grid) Screen(x, y int) (*Screen, bool) {
	i, ok := g.index(x, y)
	if !ok || g.screens[i] == nil {
		return nil, false
	}
	return g.screens[i], true
}

// Screens yields cameras in x-major order.
func (g *Grid) Screens() iter.Seq[*Screen] {
	return func(yield func(*Screen) bool) {
		for _, s := range g.screens {
			if s == nil {
				continue
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Len counts placed cameras.
func (g *Grid) Len() int {
	n := 0
	for range g.Screens() {
		n++
	}
	return n
}

// Bounds is the world rectangle covered by cell (x, y).
func (g *Grid) Bounds(x, y int) cp.BB {
	l := float64(x) * g.CameraWidth
	t := float64(y) * g.CameraHeight
	return cp.BB{L: l, B: t, R: l + g.CameraWidth, T: t + g.CameraHeight}
}

// CellAt finds the cell that contains world point (wx, wy). Crossing a
// cell boundary is a screen transition.
func (g *Grid) CellAt(wx, wy float64) (int, int, bool) {
	if g.CameraWidth <= 0 || g.CameraHeight <= 0 || wx < 0 || wy < 0 {
		return 0, 0, false
	}
	x := int(wx / g.CameraWidth)
	y := int(wy / g.CameraHeight)
	if _, ok := g.index(x, y); !ok {
		return 0, 0, false
	}
	return x, y, true
}

// UnloadAll releases every resident texture.
func (g *Grid) UnloadAll(r render.Renderer) {
	for s := range g.Screens() {
		s.Unload(r)
	}
}
