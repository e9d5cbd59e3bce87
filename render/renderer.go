package render

import (
	"image/color"

	"torus-snake/game/entity"
	"torus-snake/game/types"
)

// Background is the colour every frame is cleared to
var Background = color.RGBA{R: 0x1E, G: 0x1E, B: 0x1E, A: 0xFF}

// Canvas is the drawing surface of a frontend.
type Canvas interface {
	Clear(c color.RGBA)
	DrawSprite(s Sprite, cell types.Point, rot types.Rotation)
	DrawWall(cell types.Point)
	Present()
}

// Frame is everything needed to draw one picture.
type Frame struct {
	Snake entity.Snapshot
	Food  types.Point
	Walls []types.Point
}

type CommandKind int

const (
	DrawSprite CommandKind = iota
	DrawWall
)

// Command is a single draw call: which sprite, where, and how far to rotate it.
type Command struct {
	Kind     CommandKind
	Sprite   Sprite
	Cell     types.Point
	Rotation types.Rotation
}

// Plan lists the draw calls for a frame in painting order: walls, food, body tail to neck, head.
func Plan(f Frame) []Command {
	snap := f.Snake
	cmds := make([]Command, 0, len(f.Walls)+len(snap.Body)+2)

	for _, w := range f.Walls {
		cmds = append(cmds, Command{Kind: DrawWall, Cell: w})
	}
	cmds = append(cmds, Command{Kind: DrawSprite, Sprite: Food, Cell: f.Food})

	body := snap.Body
	next := func(i int) types.Point {
		if i+1 < len(body) {
			return body[i+1]
		}
		return snap.Head
	}

	for i, cell := range body {
		var (
			sprite Sprite
			rot    types.Rotation
		)
		if i == 0 {
			sprite, rot = Tail, TailRotation(snap.Grid, cell, next(i))
		} else {
			sprite, rot = BodySprite(snap.Grid, cell, body[i-1], next(i))
		}
		cmds = append(cmds, Command{Kind: DrawSprite, Sprite: sprite, Cell: cell, Rotation: rot})
	}

	sprite, rot := HeadSprite(snap, f.Food)
	cmds = append(cmds, Command{Kind: DrawSprite, Sprite: sprite, Cell: snap.Head, Rotation: rot})

	return cmds
}

// Renderer paints frames onto a Canvas.
type Renderer struct {
	canvas Canvas
}

func NewRenderer(c Canvas) *Renderer {
	return &Renderer{canvas: c}
}

// Render clears the canvas, issues the frame's draw calls and presents it.
// It returns the plan that was drawn.
func (r *Renderer) Render(f Frame) []Command {
	cmds := Plan(f)

	r.canvas.Clear(Background)
	for _, c := range cmds {
		switch c.Kind {
		case DrawWall:
			r.canvas.DrawWall(c.Cell)
		default:
			r.canvas.DrawSprite(c.Sprite, c.Cell, c.Rotation)
		}
	}
	r.canvas.Present()

	return cmds
}
