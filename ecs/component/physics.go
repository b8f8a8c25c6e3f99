package component

import (
	"math"

	"github.com/milk9111/alive/collision"
	"github.com/milk9111/alive/ecs"
)

const (
	DefaultBodyWidth  = 20
	DefaultBodyHeight = 50
)

// WallQuerier answers wall look-ahead queries. *collision.Store satisfies it.
type WallQuerier interface {
	WallAhead(bb collision.Box, d collision.Direction, dist float64) (collision.Hit, bool)
}

// Physics integrates speed into the sibling Transform and stops horizontal
// movement at walls.
type Physics struct {
	ecs.Base
	XSpeed float64
	YSpeed float64
	Width  float64
	Height float64

	lines     WallQuerier
	transform *Transform
}

// NewPhysics creates a physics body. lines may be nil for bodies that
// ignore collision.
func NewPhysics(lines WallQuerier) *Physics {
	return &Physics{Width: DefaultBodyWidth, Height: DefaultBodyHeight, lines: lines}
}

func (*Physics) ID() ecs.Identifier { return ecs.Physics }

func (p *Physics) Load() error {
	t, err := requireSibling[*Transform](p, ecs.Transform)
	if err != nil {
		return err
	}
	p.transform = t
	return nil
}

// Bounds is the body box: centred on X, standing on Y.
func (p *Physics) Bounds() collision.Box {
	return collision.NewBox(p.transform.X-p.Width/2, p.transform.Y-p.Height, p.Width, p.Height)
}

func (p *Physics) Update() {
	if p.XSpeed != 0 && p.lines != nil {
		dir := collision.Right
		if p.XSpeed < 0 {
			dir = collision.Left
		}
		if _, hit := p.lines.WallAhead(p.Bounds(), dir, math.Abs(p.XSpeed)); hit {
			p.XSpeed = 0
		}
	}
	p.transform.X += p.XSpeed
	p.transform.Y += p.YSpeed
}

func (p *Physics) SnapXToGrid() {
	p.transform.SnapXToGrid()
}
