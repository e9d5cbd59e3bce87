package types

import (
	"fmt"
	"strings"
)

// Direction is one of the four headings. The numeric order is part of the sprite
// contract: Right, Down, Left, Up map to 0°, 90°, 180°, 270°.
type Direction int

const (
	Right Direction = iota
	Down
	Left
	Up
)

var directions = [...]struct {
	name    string
	dx, dy  int
	quarter int
}{
	Right: {"right", 1, 0, 0},
	Down:  {"down", 0, 1, 1},
	Left:  {"left", -1, 0, 2},
	Up:    {"up", 0, -1, 3},
}

// Directions lists every heading in rotation order
var Directions = []Direction{Right, Down, Left, Up}

func (d Direction) valid() bool {
	return d >= Right && d <= Up
}

// Delta returns the unit displacement vector (Y grows downward).
func (d Direction) Delta() (dx, dy int) {
	if !d.valid() {
		return 0, 0
	}
	info := directions[d]
	return info.dx, info.dy
}

// Rotation returns the clockwise rotation a head sprite needs to face d.
func (d Direction) Rotation() Rotation {
	if !d.valid() {
		return Rotation0
	}
	return Rotation(directions[d].quarter)
}

func (d Direction) Opposite() Direction {
	return d.TurnRight().TurnRight()
}

// TurnRight rotates the heading 90° clockwise
func (d Direction) TurnRight() Direction {
	return Direction(Wrap(int(d)+1, len(directions)))
}

func (d Direction) String() string {
	if !d.valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directions[d].name
}

// ParseDirection accepts the lowercase names produced by String.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range Directions {
		if directions[d].name == s {
			return d, nil
		}
	}
	return Up, fmt.Errorf("unknown direction %q", s)
}

// Rotation is a clockwise rotation in quarter turns.
type Rotation int

const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

func (r Rotation) Degrees() int {
	return int(r) * 90
}
