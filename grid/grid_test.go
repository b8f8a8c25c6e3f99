package grid

import (
	"testing"

	"github.com/milk9111/alive/render"
	"github.com/stretchr/testify/require"
)

func TestAddAndLookup(t *testing.T) {
	g := New(3, 2, 375, 260)

	s, err := g.Add(2, 1, "R1P15C06")
	require.NoError(t, err)
	require.Equal(t, Unloaded, s.State())

	_, err = g.Add(2, 1, "R1P15C07")
	require.ErrorIs(t, err, ErrOccupied)
	_, err = g.Add(3, 0, "X")
	require.ErrorIs(t, err, ErrOutOfBounds)

	got, ok := g.Screen(2, 1)
	require.True(t, ok)
	require.Same(t, s, got)
	_, ok = g.Screen(0, 0)
	require.False(t, ok)

	_, err = g.Add(0, 1, "R1P15C02")
	require.NoError(t, err)

	var names []string
	for sc := range g.Screens() {
		names = append(names, sc.Name)
	}
	require.Equal(t, []string{"R1P15C02", "R1P15C06"}, names)
	require.Equal(t, 2, g.Len())
}

func TestCellAtAndBounds(t *testing.T) {
	g := New(3, 2, 375, 260)

	x, y, ok := g.CellAt(400, 10)
	require.True(t, ok)
	require.Equal(t, 1, x)
	require.Equal(t, 0, y)

	_, _, ok = g.CellAt(375*3+1, 0)
	require.False(t, ok)
	_, _, ok = g.CellAt(-1, 0)
	require.False(t, ok)

	bb := g.Bounds(1, 1)
	require.Equal(t, 375.0, bb.L)
	require.Equal(t, 260.0, bb.B)
	require.Equal(t, 750.0, bb.R)
	require.Equal(t, 520.0, bb.T)
}

func TestTextureLifecycle(t *testing.T) {
	g := New(1, 1, 375, 260)
	s, err := g.Add(0, 0, "R1P15C01")
	require.NoError(t, err)

	r := render.NewRecorder()
	calls := 0
	src := func(name string) ([]byte, bool) {
		calls++
		return []byte(name), true
	}

	tex, err := s.EnsureTexture(r, src)
	require.NoError(t, err)
	require.Equal(t, Resident, s.State())

	again, err := s.EnsureTexture(r, src)
	require.NoError(t, err)
	require.Equal(t, tex, again)
	require.Equal(t, 1, calls)
	require.Equal(t, []string{"R1P15C01"}, r.Names())

	g.UnloadAll(r)
	require.Equal(t, Unloaded, s.State())
	require.Empty(t, r.Names())
}

func TestTextureMissStaysUnloaded(t *testing.T) {
	g := New(1, 1, 375, 260)
	s, _ := g.Add(0, 0, "R1P15C01")

	r := render.NewRecorder()
	_, err := s.EnsureTexture(r, func(string) ([]byte, bool) { return nil, false })
	require.Error(t, err)
	require.Equal(t, Unloaded, s.State())

	r.FailLoad = func(string) bool { return true }
	_, err = s.EnsureTexture(r, func(string) ([]byte, bool) { return []byte{1}, true })
	require.Error(t, err)
	require.Equal(t, Unloaded, s.State())
}
