// Package component holds the concrete components simulated by the grid map.
package component

import (
	"fmt"

	"github.com/milk9111/alive/ecs"
)

const (
	gridCellWidth  = 25
	gridCellCentre = 12
)

// Transform is the world position of an entity. Y is the feet line.
type Transform struct {
	ecs.Base
	X float64
	Y float64
}

func NewTransform(x, y float64) *Transform {
	return &Transform{X: x, Y: y}
}

func (*Transform) ID() ecs.Identifier { return ecs.Transform }

// SnapXToGrid moves X onto the centre of its grid column.
func (t *Transform) SnapXToGrid() {
	t.X = SnapX(t.X)
}

// SnapX rounds x towards zero onto the 25 unit grid shifted by 12.
func SnapX(x float64) float64 {
	col := (int(x) - gridCellCentre) / gridCellWidth
	return float64(col*gridCellWidth + gridCellCentre)
}

// requireSibling fetches a sibling needed by c at Load time.
func requireSibling[T ecs.Component](c ecs.Component, ident ecs.Identifier) (T, error) {
	s, ok := ecs.Sibling[T](c, ident)
	if !ok {
		return s, fmt.Errorf("%w: %s needs %s", ErrMissingSibling, c.ID(), ident)
	}
	return s, nil
}
