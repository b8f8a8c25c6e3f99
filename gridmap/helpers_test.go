package gridmap

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/alive/anim"
	"github.com/milk9111/alive/ecs/component"
	"github.com/milk9111/alive/input"
	"github.com/milk9111/alive/path"
)

type fakeScript struct {
	file        string
	inits       int
	updates     int
	reloads     int
	activations []bool
}

func (f *fakeScript) Name() string { return f.file }
func (f *fakeScript) File() string { return f.file }

func (f *fakeScript) Init(*component.MapObject) error {
	f.inits++
	return nil
}

func (f *fakeScript) Update(*component.MapObject, input.Actions) error {
	f.updates++
	return nil
}

func (f *fakeScript) Activate(_ *component.MapObject, direction bool) error {
	f.activations = append(f.activations, direction)
	return nil
}

func (f *fakeScript) Reload() error {
	f.reloads++
	return nil
}

type scriptRecorder struct {
	made []*fakeScript
}

func (r *scriptRecorder) factory(name string) (component.Script, error) {
	s := &fakeScript{file: name}
	r.made = append(r.made, s)
	return s, nil
}

type animations struct{}

func (animations) Locate(name string) (*anim.Animation, bool) {
	return anim.New(name, 1, true, anim.Frames(4, 2, 2)), true
}

func props(id uint16) []byte {
	return binary.LittleEndian.AppendUint16(nil, id)
}

// testPath is a 3x2 grid with four cameras, a linked chain of three lines
// plus a lone wall, and six objects of which the last has no binding.
func testPath() *path.Path {
	p := path.New(3, 2, 375, 260)
	p.SetCamera(0, 0, "R1P01C01")
	p.SetCamera(1, 0, "R1P01C02")
	p.SetCamera(2, 1, "R1P01C03")
	p.SetCamera(0, 1, "R1P01C04")

	p.CollisionItems = []path.CollisionItem{
		{P1: path.Point{X: 0, Y: 200}, P2: path.Point{X: 100, Y: 200}, Type: 0, Prev: path.NoLink, Next: 1},
		{P1: path.Point{X: 100, Y: 200}, P2: path.Point{X: 200, Y: 200}, Type: 0, Prev: 0, Next: 2},
		{P1: path.Point{X: 200, Y: 200}, P2: path.Point{X: 300, Y: 200}, Type: 0, Prev: 1, Next: path.NoLink},
		{P1: path.Point{X: 300, Y: 0}, P2: path.Point{X: 300, Y: 200}, Type: 1, Prev: path.NoLink, Next: path.NoLink},
	}

	p.MapObjects = []path.MapObject{
		{Type: 2, X: 10, Y: 150, W: 25, H: 20},
		{Type: 5, X: 60, Y: 150, W: 25, H: 50, Props: props(3)},
		{Type: 13, X: 90, Y: 40, W: 50, H: 50},
		{Type: 17, X: 120, Y: 170, W: 25, H: 30, Props: props(3)},
		{Type: 24, X: 180, Y: 190, W: 25, H: 10},
		{Type: 999, X: 210, Y: 190, W: 25, H: 10},
	}
	return p
}

func testDeps(rec *scriptRecorder, log *zap.Logger) Deps {
	return Deps{
		Scripts:    rec.factory,
		Animations: animations{},
		Cameras: func(name string) ([]byte, bool) {
			if name == "R1P01C04" {
				return nil, false
			}
			return []byte(name), true
		},
		Log: log,
	}
}

func loadMap(t *testing.T, p *path.Path) (*GridMap, *scriptRecorder) {
	t.Helper()
	rec := &scriptRecorder{}
	m, err := NewLoader(p, testDeps(rec, nil)).Run()
	require.NoError(t, err)
	return m, rec
}
