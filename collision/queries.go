package collision

import "github.com/jakecoffman/cp"

// Direction is one of the four grid aligned query directions. Screen
// coordinates are used: y grows downwards.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) vector() cp.Vector {
	switch d {
	case Up:
		return cp.Vector{X: 0, Y: -1}
	case Down:
		return cp.Vector{X: 0, Y: 1}
	case Left:
		return cp.Vector{X: -1, Y: 0}
	default:
		return cp.Vector{X: 1, Y: 0}
	}
}

// Box is an axis aligned bounding box in screen coordinates. cp.BB is used
// with B as the smallest y.
type Box = cp.BB

// NewBox builds a box from its top left corner and size.
func NewBox(x, y, w, h float64) Box {
	return cp.BB{L: x, B: y, R: x + w, T: y + h}
}

// edge returns the middle of the box side facing d.
func edge(bb Box, d Direction) cp.Vector {
	c := bb.Center()
	switch d {
	case Up:
		return cp.Vector{X: c.X, Y: bb.B}
	case Down:
		return cp.Vector{X: c.X, Y: bb.T}
	case Left:
		return cp.Vector{X: bb.L, Y: c.Y}
	default:
		return cp.Vector{X: bb.R, Y: c.Y}
	}
}

// QueryBox casts from the side of bb facing d, at most maxDist far.
func (s *Store) QueryBox(bb Box, d Direction, maxDist float64, mask Type) (Hit, bool) {
	from := edge(bb, d)
	return s.QuerySegment(from, from.Add(d.vector().Mult(maxDist)), mask)
}

// WallAhead looks for any wall within dist of the box side facing d.
func (s *Store) WallAhead(bb Box, d Direction, dist float64) (Hit, bool) {
	return s.QueryBox(bb, d, dist, AnyWall)
}

// FloorBelow looks for a floor under the box.
func (s *Store) FloorBelow(bb Box, dist float64) (Hit, bool) {
	return s.QueryBox(bb, Down, dist, AnyFloor)
}

// CeilingAbove looks for a ceiling over the box.
func (s *Store) CeilingAbove(bb Box, dist float64) (Hit, bool) {
	return s.QueryBox(bb, Up, dist, AnyCeiling)
}
