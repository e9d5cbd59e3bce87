package types

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Point is an integer cell coordinate on the grid
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid represents the game grid dimensions. Both axes wrap around.
type Grid struct {
	Width  int
	Height int
}

// NewGrid panics on non-positive dimensions: a zero-sized torus has no cells to wrap into.
func NewGrid(width, height int) Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("types: invalid grid %dx%d", width, height))
	}
	return Grid{Width: width, Height: height}
}

// Wrap maps v into [0, n) for any n > 0, including negative v.
func Wrap[T constraints.Integer](v, n T) T {
	return ((v % n) + n) % n
}

// WrapFloat is the floating point counterpart of Wrap.
func WrapFloat(v, n float64) float64 {
	r := math.Mod(v, n)
	if r < 0 {
		r += n
	}
	// -1e-18 + n rounds to n; keep the truncated cell inside the grid
	if r >= n {
		r = math.Nextafter(n, 0)
	}
	return r
}

// WrapPoint normalizes p onto the torus
func (g Grid) WrapPoint(p Point) Point {
	return Point{X: Wrap(p.X, g.Width), Y: Wrap(p.Y, g.Height)}
}

// Equal reports whether a and b name the same cell once both are wrapped.
func (g Grid) Equal(a, b Point) bool {
	return g.WrapPoint(a) == g.WrapPoint(b)
}

// Step returns the wrapped neighbour of p in direction d.
func (g Grid) Step(p Point, d Direction) Point {
	dx, dy := d.Delta()
	return g.WrapPoint(Point{X: p.X + dx, Y: p.Y + dy})
}

func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells is the number of cells on the grid
func (g Grid) Cells() int {
	return g.Width * g.Height
}
