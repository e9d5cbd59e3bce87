package entity

import (
	"fmt"

	"torus-snake/game/types"
)

const (
	DefaultSpeed = 0.1
	initialSize  = 1
)

// Snake is the simulation state of a single snake on a toroidal grid.
// The head moves continuously; the body only changes when the head enters a new cell.
type Snake struct {
	grid      types.Grid
	headX     float64
	headY     float64
	direction types.Direction
	speed     float64
	body      Body
	size      int
	growing   bool
	alive     bool
}

// Snapshot is a read-only copy of the snake handed to the renderer.
type Snapshot struct {
	Grid      types.Grid
	Head      types.Point
	Direction types.Direction
	Body      []types.Point
	Size      int
	Alive     bool
}

// NewSnake places the head in the middle of the grid heading up, with two segments below it.
func NewSnake(grid types.Grid) *Snake {
	return NewSnakeHeading(grid, types.Up)
}

// NewSnakeHeading is NewSnake facing d, with the two segments trailing behind the head.
func NewSnakeHeading(grid types.Grid, d types.Direction) *Snake {
	grid = types.NewGrid(grid.Width, grid.Height)
	cx, cy := grid.Width/2, grid.Height/2
	dx, dy := d.Delta()

	return &Snake{
		grid:      grid,
		headX:     float64(cx),
		headY:     float64(cy),
		direction: d,
		speed:     DefaultSpeed,
		body: NewBody(
			grid.WrapPoint(types.Point{X: cx - 2*dx, Y: cy - 2*dy}),
			grid.WrapPoint(types.Point{X: cx - dx, Y: cy - dy}),
		),
		size:  initialSize,
		alive: true,
	}
}

// Advance performs one simulation step. A dead snake does not move.
func (s *Snake) Advance() {
	if !s.alive {
		return
	}

	prevCell := s.HeadCell()
	s.moveHead()
	currentCell := s.HeadCell()

	// Body and collisions only change at cell granularity
	if currentCell != prevCell {
		s.moveBody(currentCell, prevCell)
	}
}

func (s *Snake) moveHead() {
	dx, dy := s.direction.Delta()
	s.headX = types.WrapFloat(s.headX+float64(dx)*s.speed, float64(s.grid.Width))
	s.headY = types.WrapFloat(s.headY+float64(dy)*s.speed, float64(s.grid.Height))
}

func (s *Snake) moveBody(currentCell, prevCell types.Point) {
	s.body.Append(prevCell)

	if s.growing {
		s.growing = false
		s.size++
	} else {
		s.body.DropTail()
	}

	if s.body.Contains(currentCell) {
		s.alive = false
	}
}

// Grow schedules one segment of growth for the next cell crossing. Repeated calls do not stack.
func (s *Snake) Grow() {
	s.growing = true
}

// Occupies reports whether the head or any body segment covers cell.
func (s *Snake) Occupies(cell types.Point) bool {
	cell = s.grid.WrapPoint(cell)
	return cell == s.HeadCell() || s.body.Contains(cell)
}

// HeadCell is the cell the head currently occupies
func (s *Snake) HeadCell() types.Point {
	return types.Point{X: int(s.headX), Y: int(s.headY)}
}

// Head returns the continuous head coordinate
func (s *Snake) Head() (x, y float64) {
	return s.headX, s.headY
}

func (s *Snake) Direction() types.Direction {
	return s.direction
}

// SetDirection changes the heading; it takes effect on the next Advance.
// No reversal check happens here.
func (s *Snake) SetDirection(d types.Direction) {
	s.direction = d
}

func (s *Snake) Speed() float64 {
	return s.speed
}

func (s *Snake) SetSpeed(speed float64) {
	if speed < 0 {
		panic(fmt.Sprintf("entity: negative speed %v", speed))
	}
	s.speed = speed
}

func (s *Snake) Size() int {
	return s.size
}

func (s *Snake) Alive() bool {
	return s.alive
}

func (s *Snake) Growing() bool {
	return s.growing
}

func (s *Snake) Grid() types.Grid {
	return s.grid
}

// Body returns a copy of the segments, tail first
func (s *Snake) Body() []types.Point {
	return s.body.Cells()
}

func (s *Snake) Snapshot() Snapshot {
	return Snapshot{
		Grid:      s.grid,
		Head:      s.HeadCell(),
		Direction: s.direction,
		Body:      s.body.Cells(),
		Size:      s.size,
		Alive:     s.alive,
	}
}
