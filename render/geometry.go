package render

import (
	"torus-snake/game/entity"
	"torus-snake/game/types"
)

// tailOffsets is searched in order; the first neighbour that matches picks the rotation.
var tailOffsets = [...]struct {
	dx, dy   int
	rotation types.Rotation
}{
	{1, 0, types.Rotation0},
	{0, 1, types.Rotation90},
	{-1, 0, types.Rotation180},
	{0, -1, types.Rotation270},
}

// TailRotation turns the tail sprite so its open end faces next.
func TailRotation(g types.Grid, tail, next types.Point) types.Rotation {
	for _, o := range tailOffsets {
		if g.Equal(types.Point{X: tail.X + o.dx, Y: tail.Y + o.dy}, next) {
			return o.rotation
		}
	}
	return types.Rotation0
}

// TurnRotation picks the corner sprite rotation for a segment whose neighbours
// are prev and next. Corners are up+right, right+down, down+left, left+up.
func TurnRotation(g types.Grid, current, prev, next types.Point) types.Rotation {
	touches := func(d types.Direction) bool {
		n := g.Step(current, d)
		return g.Equal(n, prev) || g.Equal(n, next)
	}

	up, right, down, left := touches(types.Up), touches(types.Right), touches(types.Down), touches(types.Left)
	switch {
	case up && right:
		return types.Rotation0
	case right && down:
		return types.Rotation90
	case down && left:
		return types.Rotation180
	case left && up:
		return types.Rotation270
	}
	return types.Rotation0
}

// BodySprite selects the sprite and rotation of an interior segment.
func BodySprite(g types.Grid, current, prev, next types.Point) (Sprite, types.Rotation) {
	if next.X == prev.X {
		return Straight, types.Rotation90
	}
	if next.Y == prev.Y {
		return Straight, types.Rotation0
	}
	return Turn, TurnRotation(g, current, prev, next)
}

// FoodAhead reports whether food sits on the cell right in front of the head.
func FoodAhead(g types.Grid, head types.Point, d types.Direction, food types.Point) bool {
	return g.Equal(g.Step(head, d), food)
}

// HeadSprite selects the head variant. Rotation follows the heading.
func HeadSprite(snap entity.Snapshot, food types.Point) (Sprite, types.Rotation) {
	rot := snap.Direction.Rotation()
	switch {
	case !snap.Alive:
		return DeadHead, rot
	case FoodAhead(snap.Grid, snap.Head, snap.Direction, food):
		return MouthOpenHead, rot
	default:
		return Head, rot
	}
}
