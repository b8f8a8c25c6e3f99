package path

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func samplePath() *Path {
	p := New(2, 3, 375, 260)
	p.SetCamera(0, 0, "R1P15C01")
	p.SetCamera(1, 2, "R1P15C06")
	p.CollisionItems = []CollisionItem{
		{P1: Point{0, 100}, P2: Point{100, 100}, Type: 0, Prev: NoLink, Next: 1},
		{P1: Point{100, 100}, P2: Point{200, 100}, Type: 0, Prev: 0, Next: NoLink},
	}
	p.MapObjects = []MapObject{
		{Type: 5, X: 10, Y: 20, W: 25, H: 40, Props: []byte{7, 0}},
		{Type: 17, X: 50, Y: 20, W: 25, H: 20},
	}
	return p
}

func TestDecodeEncoded(t *testing.T) {
	p := samplePath()
	got, err := Decode(bytes.NewReader(p.Bytes()))
	require.NoError(t, err)

	require.Equal(t, 2, got.GridWidth)
	require.Equal(t, 3, got.GridHeight)
	require.Equal(t, 375, got.CameraWidth)

	cam, ok := got.Camera(1, 2)
	require.True(t, ok)
	require.Equal(t, Camera{X: 1, Y: 2, Name: "R1P15C06"}, cam)
	_, ok = got.Camera(1, 0)
	require.False(t, ok)
	_, ok = got.Camera(5, 5)
	require.False(t, ok)

	require.Equal(t, p.CollisionItems, got.CollisionItems)
	require.Len(t, got.MapObjects, 2)
	require.Equal(t, []byte{7, 0}, got.MapObjects[0].Props)
	require.Equal(t, uint32(17), got.MapObjects[1].Type)
	require.Empty(t, got.MapObjects[1].Props)
}

func TestDecodeErrors(t *testing.T) {
	data := samplePath().Bytes()

	t.Run("magic", func(t *testing.T) {
		bad := append([]byte("XXXX"), data[4:]...)
		_, err := Decode(bytes.NewReader(bad))
		require.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("version", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[4] = 9
		_, err := Decode(bytes.NewReader(bad))
		require.ErrorIs(t, err, ErrBadVersion)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode(bytes.NewReader(data[:len(data)-3]))
		require.Error(t, err)
	})
}

func TestDecodeRejectsOversizedCounts(t *testing.T) {
	empty := New(0, 0, 375, 260).Bytes()
	countAt := len(empty) - 8 // collision count, then object count

	hugeCollision := append([]byte(nil), empty[:countAt]...)
	hugeCollision = binary.LittleEndian.AppendUint32(hugeCollision, 0xFFFFFFFF)

	hugeObjects := append([]byte(nil), empty...)
	binary.LittleEndian.PutUint32(hugeObjects[len(hugeObjects)-4:], 0xFFFFFFFF)

	hugeGrid := New(0, 0, 375, 260).Bytes()
	binary.LittleEndian.PutUint16(hugeGrid[6:], 0xFFFF)
	binary.LittleEndian.PutUint16(hugeGrid[8:], 0xFFFF)

	tests := []struct {
		name string
		data []byte
	}{
		{"collision_count", hugeCollision},
		{"object_count", hugeObjects},
		{"grid_size", hugeGrid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(tc.data))
			require.ErrorIs(t, err, ErrTruncated)
		})
	}
}
