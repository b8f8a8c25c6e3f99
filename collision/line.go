package collision

import (
	"math"

	"github.com/jakecoffman/cp"
)

// LineID identifies a line for the lifetime of its store. Loaded lines keep
// the index they had in the path's collision table.
type LineID int

// NoLine marks an absent link.
const NoLine LineID = -1

// Type is a bitmask of collision line kinds.
type Type uint16

const (
	Floor Type = 1 << iota
	WallLeft
	WallRight
	Ceiling
	BackgroundFloor
	BackgroundWallLeft
	BackgroundWallRight
	BackgroundCeiling
	Hazard
	FlyingSligCeiling
	ArtificialWall
)

const (
	AnyFloor   = Floor | BackgroundFloor
	AnyWall    = WallLeft | WallRight | BackgroundWallLeft | BackgroundWallRight
	AnyCeiling = Ceiling | BackgroundCeiling
	All        = Type(math.MaxUint16)
)

// TypeFromCode converts the enumerated line type of a path collision item
// into its mask bit. Codes outside the known range map to zero and never
// match a query.
func TypeFromCode(code uint16) Type {
	if code > 10 {
		return 0
	}
	return Type(1) << code
}

// Line is a directed segment P1 to P2 with optional neighbours.
type Line struct {
	ID   LineID
	P1   cp.Vector
	P2   cp.Vector
	Type Type
	Prev LineID
	Next LineID
}

// Angle is the direction of the line in radians.
func (l *Line) Angle() float64 {
	d := l.P2.Sub(l.P1)
	return math.Atan2(d.Y, d.X)
}

func (l *Line) Length() float64 {
	return l.P2.Sub(l.P1).Length()
}
