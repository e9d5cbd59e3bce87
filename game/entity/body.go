package entity

import "torus-snake/game/types"

// Body is the ordered list of segments behind the head, tail first.
type Body struct {
	cells []types.Point
}

func NewBody(cells ...types.Point) Body {
	return Body{cells: append([]types.Point(nil), cells...)}
}

// Append adds a segment right behind the head.
func (b *Body) Append(p types.Point) {
	b.cells = append(b.cells, p)
}

// DropTail removes the oldest segment
func (b *Body) DropTail() {
	if len(b.cells) > 0 {
		b.cells = b.cells[1:]
	}
}

func (b *Body) Contains(p types.Point) bool {
	for _, c := range b.cells {
		if c == p {
			return true
		}
	}
	return false
}

// Cells returns a copy of the segments
func (b *Body) Cells() []types.Point {
	return append([]types.Point(nil), b.cells...)
}
