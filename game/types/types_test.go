package types

import (
	"math"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		v, n, want int
	}{
		{0, 10, 0},
		{9, 10, 9},
		{10, 10, 0},
		{-1, 10, 9},
		{-10, 10, 0},
		{-11, 10, 9},
		{23, 10, 3},
		{-1, 1, 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.v, tt.n); got != tt.want {
			t.Errorf("Wrap(%d, %d) = %d, want %d", tt.v, tt.n, got, tt.want)
		}
	}
}

func TestWrapFloat(t *testing.T) {
	tests := []struct {
		v, n, want float64
	}{
		{0, 10, 0},
		{5.5, 10, 5.5},
		{10, 10, 0},
		{-0.5, 10, 9.5},
		{-10.25, 10, 9.75},
		{21, 10, 1},
	}
	for _, tt := range tests {
		if got := WrapFloat(tt.v, tt.n); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapFloat(%v, %v) = %v, want %v", tt.v, tt.n, got, tt.want)
		}
	}

	// a tiny negative must not round up onto the far edge
	got := WrapFloat(-1e-18, 10)
	if got >= 10 || int(got) != 9 {
		t.Errorf("WrapFloat(-1e-18, 10) = %v, want a value in [9, 10)", got)
	}
}

func TestNewGridPanicsOnEmptyGrid(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewGrid(%d, %d) did not panic", dims[0], dims[1])
				}
			}()
			NewGrid(dims[0], dims[1])
		}()
	}
}

func TestGridEqualAcrossEdges(t *testing.T) {
	g := NewGrid(10, 8)
	tests := []struct {
		a, b Point
		want bool
	}{
		{Point{0, 0}, Point{0, 0}, true},
		{Point{-1, 0}, Point{9, 0}, true},
		{Point{10, 0}, Point{0, 0}, true},
		{Point{3, -1}, Point{3, 7}, true},
		{Point{3, 8}, Point{3, 0}, true},
		{Point{1, 1}, Point{1, 2}, false},
	}
	for _, tt := range tests {
		if got := g.Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGridStep(t *testing.T) {
	g := NewGrid(10, 10)
	tests := []struct {
		from Point
		d    Direction
		want Point
	}{
		{Point{5, 5}, Up, Point{5, 4}},
		{Point{5, 5}, Right, Point{6, 5}},
		{Point{0, 5}, Left, Point{9, 5}},
		{Point{9, 5}, Right, Point{0, 5}},
		{Point{5, 0}, Up, Point{5, 9}},
		{Point{5, 9}, Down, Point{5, 0}},
	}
	for _, tt := range tests {
		if got := g.Step(tt.from, tt.d); got != tt.want {
			t.Errorf("Step(%v, %v) = %v, want %v", tt.from, tt.d, got, tt.want)
		}
	}
}

func TestDirectionRotationOrder(t *testing.T) {
	want := map[Direction]int{Right: 0, Down: 90, Left: 180, Up: 270}
	for d, deg := range want {
		if got := d.Rotation().Degrees(); got != deg {
			t.Errorf("%v rotation = %d, want %d", d, got, deg)
		}
	}
}

func TestDirectionTurns(t *testing.T) {
	for _, d := range Directions {
		if d.TurnRight().TurnRight().TurnRight().TurnRight() != d {
			t.Errorf("%v: four right turns should be identity", d)
		}
		if d.Opposite().Opposite() != d {
			t.Errorf("%v: double opposite should be identity", d)
		}
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		if dx != -ox || dy != -oy {
			t.Errorf("%v opposite delta = (%d,%d), want (%d,%d)", d, ox, oy, -dx, -dy)
		}
	}
	if Up.TurnRight() != Right || Right.TurnRight() != Down || Left.TurnRight() != Up {
		t.Error("unexpected turn result")
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(" " + d.String() + " ")
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Error("expected error for unknown direction")
	}
}
