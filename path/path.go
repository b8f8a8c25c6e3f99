// Package path decodes path chunks: the camera grid, collision items and the
// object table of one level path.
//
// Layout, little endian:
//
//	"PATH" | version u16 | gridW u16 | gridH u16 | camW u16 | camH u16
//	gridW*gridH × name [8]byte (index y*gridW+x, all zero = no camera)
//	count u32 | count × {x1 y1 x2 y2 i16 | type u16 | prev i16 | next i16}
//	count u32 | count × {type u32 | x y w h i16 | propLen u16 | props}
package path

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const Version = 1

// NoLink marks a collision item without a neighbour.
const NoLink = -1

var (
	ErrBadMagic   = errors.New("path: bad magic")
	ErrBadVersion = errors.New("path: unsupported version")
	ErrTruncated  = errors.New("path: truncated data")
)

var magic = [4]byte{'P', 'A', 'T', 'H'}

// Smallest encoded sizes, used to reject counts the input cannot hold.
const (
	cameraNameSize    = 8
	collisionItemSize = 14
	objectHeaderSize  = 14
)

type Point struct {
	X int16
	Y int16
}

// CollisionItem is one line of the path's collision table. Prev and Next
// index into the same table, or are NoLink.
type CollisionItem struct {
	P1   Point
	P2   Point
	Type uint16
	Prev int16
	Next int16
}

// MapObject is one raw record of the object table.
type MapObject struct {
	Type  uint32
	X     int16
	Y     int16
	W     int16
	H     int16
	Props []byte
}

type Camera struct {
	X    int
	Y    int
	Name string
}

type Path struct {
	GridWidth    int
	GridHeight   int
	CameraWidth  int
	CameraHeight int

	// CameraNames is indexed by y*GridWidth+x; empty means no camera.
	CameraNames    []string
	CollisionItems []CollisionItem
	MapObjects     []MapObject
}

// New allocates an empty grid of the given size.
func New(gridW, gridH, camW, camH int) *Path {
	return &Path{
		GridWidth:    gridW,
		GridHeight:   gridH,
		CameraWidth:  camW,
		CameraHeight: camH,
		CameraNames:  make([]string, gridW*gridH),
	}
}

// Camera returns the camera at grid cell (x, y), if any.
func (p *Path) Camera(x, y int) (Camera, bool) {
	if x < 0 || y < 0 || x >= p.GridWidth || y >= p.GridHeight {
		return Camera{}, false
	}
	name := p.CameraNames[y*p.GridWidth+x]
	if name == "" {
		return Camera{}, false
	}
	return Camera{X: x, Y: y, Name: name}, true
}

// SetCamera names the camera at (x, y).
func (p *Path) SetCamera(x, y int, name string) {
	p.CameraNames[y*p.GridWidth+x] = name
}

type header struct {
	Magic        [4]byte
	Version      uint16
	GridWidth    uint16
	GridHeight   uint16
	CameraWidth  uint16
	CameraHeight uint16
}

type rawObject struct {
	Type    uint32
	X       int16
	Y       int16
	W       int16
	H       int16
	PropLen uint16
}

// Decode reads a path chunk.
func Decode(r io.Reader) (*Path, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("path: read: %w", err)
	}
	br := bytes.NewReader(data)

	var h header
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("path: read header: %w", err)
	}
	if h.Magic != magic {
		return nil, ErrBadMagic
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}

	cells := int64(h.GridWidth) * int64(h.GridHeight)
	if err := fits(br, cells, cameraNameSize, "cameras"); err != nil {
		return nil, err
	}
	p := New(int(h.GridWidth), int(h.GridHeight), int(h.CameraWidth), int(h.CameraHeight))
	for i := range p.CameraNames {
		var name [cameraNameSize]byte
		if _, err := io.ReadFull(br, name[:]); err != nil {
			return nil, fmt.Errorf("path: read camera %d: %w", i, err)
		}
		p.CameraNames[i] = string(bytes.TrimRight(name[:], "\x00"))
	}

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("path: read collision count: %w", err)
	}
	if err := fits(br, int64(count), collisionItemSize, "collision items"); err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		var item CollisionItem
		if err := binary.Read(br, binary.LittleEndian, &item); err != nil {
			return nil, fmt.Errorf("path: read collision item %d: %w", i, err)
		}
		p.CollisionItems = append(p.CollisionItems, item)
	}

	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("path: read object count: %w", err)
	}
	if err := fits(br, int64(count), objectHeaderSize, "objects"); err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		var raw rawObject
		if err := binary.Read(br, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("path: read object %d: %w", i, err)
		}
		props := make([]byte, raw.PropLen)
		if _, err := io.ReadFull(br, props); err != nil {
			return nil, fmt.Errorf("path: read object %d props: %w", i, err)
		}
		p.MapObjects = append(p.MapObjects, MapObject{
			Type:  raw.Type,
			X:     raw.X,
			Y:     raw.Y,
			W:     raw.W,
			H:     raw.H,
			Props: props,
		})
	}
	return p, nil
}

// fits checks that n records of at least size bytes can still be read.
func fits(r *bytes.Reader, n, size int64, what string) error {
	if n > int64(r.Len())/size {
		return fmt.Errorf("%w: %d %s in %d bytes", ErrTruncated, n, what, r.Len())
	}
	return nil
}

// Encode writes p in the layout Decode reads.
func Encode(w io.Writer, p *Path) error {
	h := header{
		Magic:        magic,
		Version:      Version,
		GridWidth:    uint16(p.GridWidth),
		GridHeight:   uint16(p.GridHeight),
		CameraWidth:  uint16(p.CameraWidth),
		CameraHeight: uint16(p.CameraHeight),
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}
	for _, name := range p.CameraNames {
		var raw [8]byte
		copy(raw[:], name)
		if _, err := w.Write(raw[:]); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(p.CollisionItems))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, p.CollisionItems); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(p.MapObjects))); err != nil {
		return err
	}
	for _, o := range p.MapObjects {
		raw := rawObject{Type: o.Type, X: o.X, Y: o.Y, W: o.W, H: o.H, PropLen: uint16(len(o.Props))}
		if err := binary.Write(w, binary.LittleEndian, raw); err != nil {
			return err
		}
		if _, err := w.Write(o.Props); err != nil {
			return err
		}
	}
	return nil
}

// Bytes is Encode into a fresh buffer.
func (p *Path) Bytes() []byte {
	var buf bytes.Buffer
	_ = Encode(&buf, p)
	return buf.Bytes()
}
