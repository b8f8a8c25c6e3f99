package main

import (
	"testing"

	"github.com/milk9111/alive/gridmap"
	"github.com/milk9111/alive/path"
	"github.com/milk9111/alive/script"
	"github.com/stretchr/testify/require"
)

func samplePath() *path.Path {
	p := path.New(2, 1, 375, 260)
	p.SetCamera(0, 0, "R1P01C01")
	p.SetCamera(1, 0, "R1P01C02")
	p.CollisionItems = []path.CollisionItem{
		{P1: path.Point{X: 0, Y: 200}, P2: path.Point{X: 300, Y: 200}, Type: 0, Prev: -1, Next: -1},
	}
	p.MapObjects = []path.MapObject{
		{Type: 5, X: 100, Y: 100, W: 25, H: 60, Props: []byte{7, 0}},
		{Type: 5, X: 150, Y: 100, W: 25, H: 60, Props: []byte{8, 0}},
		{Type: 17, X: 200, Y: 100, W: 25, H: 25, Props: []byte{7, 0}},
		{Type: 4242, X: 0, Y: 0, W: 1, H: 1},
	}
	return p
}

func TestInspect(t *testing.T) {
	deps := gridmap.Deps{Scripts: scriptFactory(script.NewRuntime(nil, nil))}

	rep, err := inspect(samplePath(), deps, 0)
	require.NoError(t, err)
	require.Equal(t, "Done", rep.State)
	require.Equal(t, 2, rep.Cameras)
	require.Equal(t, 1, rep.Lines)
	require.Equal(t, 1, rep.Skipped)
	require.Equal(t, map[string]int{"door": 2, "switch": 1}, rep.Objects)
	require.NotEmpty(t, rep.Fingerprint)
	require.Nil(t, rep.Snapshot)

	again, err := inspect(samplePath(), deps, 0)
	require.NoError(t, err)
	require.Equal(t, rep.Fingerprint, again.Fingerprint)
}

func TestInspectStopsEarly(t *testing.T) {
	deps := gridmap.Deps{Scripts: scriptFactory(script.NewRuntime(nil, nil))}

	rep, err := inspect(samplePath(), deps, 3)
	require.NoError(t, err)
	require.NotEqual(t, "Done", rep.State)
	require.Empty(t, rep.Fingerprint)
	require.NotNil(t, rep.Snapshot)
	require.Equal(t, 3, rep.Snapshot.Steps)
}
