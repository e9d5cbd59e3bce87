package entity

import (
	"math/rand"
	"reflect"
	"testing"

	"torus-snake/game/types"
)

func newTestSnake(t *testing.T, w, h int, speed float64) *Snake {
	t.Helper()
	s := NewSnake(types.Grid{Width: w, Height: h})
	s.SetSpeed(speed)
	return s
}

func TestNewSnake(t *testing.T) {
	s := NewSnake(types.Grid{Width: 10, Height: 10})

	if got := s.HeadCell(); got != (types.Point{X: 5, Y: 5}) {
		t.Errorf("head = %v, want (5,5)", got)
	}
	want := []types.Point{{X: 5, Y: 7}, {X: 5, Y: 6}}
	if got := s.Body(); !reflect.DeepEqual(got, want) {
		t.Errorf("body = %v, want %v", got, want)
	}
	if s.Direction() != types.Up {
		t.Errorf("direction = %v, want up", s.Direction())
	}
	if s.Size() != 1 || !s.Alive() || s.Growing() {
		t.Errorf("size=%d alive=%v growing=%v", s.Size(), s.Alive(), s.Growing())
	}
	if s.Speed() != DefaultSpeed {
		t.Errorf("speed = %v, want %v", s.Speed(), DefaultSpeed)
	}
}

func TestNewSnakeHeading(t *testing.T) {
	tests := []struct {
		d    types.Direction
		body []types.Point
		next types.Point
	}{
		{types.Right, []types.Point{{X: 3, Y: 5}, {X: 4, Y: 5}}, types.Point{X: 6, Y: 5}},
		{types.Down, []types.Point{{X: 5, Y: 3}, {X: 5, Y: 4}}, types.Point{X: 5, Y: 6}},
		{types.Left, []types.Point{{X: 7, Y: 5}, {X: 6, Y: 5}}, types.Point{X: 4, Y: 5}},
		{types.Up, []types.Point{{X: 5, Y: 7}, {X: 5, Y: 6}}, types.Point{X: 5, Y: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			s := NewSnakeHeading(types.Grid{Width: 10, Height: 10}, tt.d)
			s.SetSpeed(1)
			if got := s.Body(); !reflect.DeepEqual(got, tt.body) {
				t.Errorf("body = %v, want %v", got, tt.body)
			}
			s.Advance()
			if !s.Alive() || s.HeadCell() != tt.next {
				t.Errorf("after advance head = %v alive = %v, want %v alive", s.HeadCell(), s.Alive(), tt.next)
			}
		})
	}
}

func TestNewSnakeWrapsInitialBodyOnShortGrid(t *testing.T) {
	s := NewSnake(types.Grid{Width: 3, Height: 2})
	for _, p := range s.Body() {
		if !s.Grid().Contains(p) {
			t.Errorf("body cell %v outside grid", p)
		}
	}
}

func TestAdvanceSlidesBody(t *testing.T) {
	s := newTestSnake(t, 10, 10, 1)
	s.Advance()

	if got := s.HeadCell(); got != (types.Point{X: 5, Y: 4}) {
		t.Fatalf("head = %v, want (5,4)", got)
	}
	want := []types.Point{{X: 5, Y: 6}, {X: 5, Y: 5}}
	if got := s.Body(); !reflect.DeepEqual(got, want) {
		t.Errorf("body = %v, want %v", got, want)
	}
	if !s.Alive() {
		t.Error("snake died on a plain move")
	}
}

func TestGrowThenAdvance(t *testing.T) {
	s := newTestSnake(t, 10, 10, 1)
	s.Grow()
	s.Grow() // does not stack
	s.Advance()

	want := []types.Point{{X: 5, Y: 7}, {X: 5, Y: 6}, {X: 5, Y: 5}}
	if got := s.Body(); !reflect.DeepEqual(got, want) {
		t.Errorf("body = %v, want %v", got, want)
	}
	if s.Size() != 2 {
		t.Errorf("size = %d, want 2", s.Size())
	}
	if s.Growing() {
		t.Error("growing flag not consumed")
	}

	s.Advance()
	if len(s.Body()) != 3 || s.Size() != 2 {
		t.Errorf("second advance grew again: body=%v size=%d", s.Body(), s.Size())
	}
}

func TestAdvanceWrapsAroundEdges(t *testing.T) {
	tests := []struct {
		name  string
		start types.Point
		dir   types.Direction
		want  types.Point
	}{
		{"left edge", types.Point{X: 0, Y: 5}, types.Left, types.Point{X: 9, Y: 5}},
		{"right edge", types.Point{X: 9, Y: 5}, types.Right, types.Point{X: 0, Y: 5}},
		{"top edge", types.Point{X: 5, Y: 0}, types.Up, types.Point{X: 5, Y: 9}},
		{"bottom edge", types.Point{X: 5, Y: 9}, types.Down, types.Point{X: 5, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSnake(t, 10, 10, 1)
			s.headX, s.headY = float64(tt.start.X), float64(tt.start.Y)
			s.body = NewBody(types.Point{X: 2, Y: 2}, types.Point{X: 2, Y: 3})
			s.SetDirection(tt.dir)
			s.Advance()

			if got := s.HeadCell(); got != tt.want {
				t.Errorf("head = %v, want %v", got, tt.want)
			}
			if !s.Alive() {
				t.Error("unexpected death")
			}
		})
	}
}

func TestSubCellMotionLeavesBodyUntouched(t *testing.T) {
	s := newTestSnake(t, 10, 10, 0.25)
	s.SetDirection(types.Right)
	s.Grow()
	before := s.Body()

	for i := 0; i < 3; i++ {
		s.Advance()
		if got := s.HeadCell(); got != (types.Point{X: 5, Y: 5}) {
			t.Fatalf("tick %d: head = %v, want (5,5)", i, got)
		}
		if !reflect.DeepEqual(s.Body(), before) {
			t.Fatalf("tick %d: body changed mid-cell: %v", i, s.Body())
		}
		if !s.Growing() {
			t.Fatalf("tick %d: growth consumed mid-cell", i)
		}
	}

	if x, y := s.Head(); x != 5.75 || y != 5 {
		t.Fatalf("continuous head = (%v,%v), want (5.75,5)", x, y)
	}

	s.Advance()
	if got := s.HeadCell(); got != (types.Point{X: 6, Y: 5}) {
		t.Fatalf("head = %v, want (6,5)", got)
	}
	if len(s.Body()) != len(before)+1 || s.Growing() {
		t.Errorf("crossing did not apply growth: body=%v", s.Body())
	}
}

func TestSelfCollisionIsPermanent(t *testing.T) {
	s := newTestSnake(t, 10, 10, 1)
	// put a segment where the head is going next
	s.body.Append(types.Point{X: 5, Y: 4})
	s.Advance()

	if s.Alive() {
		t.Fatal("snake survived running into its own body")
	}

	head := s.HeadCell()
	for i := 0; i < 5; i++ {
		s.SetDirection(types.Directions[i%4])
		s.Advance()
		if s.Alive() {
			t.Fatal("snake came back to life")
		}
	}
	if s.HeadCell() != head {
		t.Errorf("dead snake kept moving: %v -> %v", head, s.HeadCell())
	}
}

func TestReversalKillsSnake(t *testing.T) {
	s := newTestSnake(t, 10, 10, 1)
	s.SetDirection(types.Down)
	s.Advance()
	if s.Alive() {
		t.Error("reversing into the neck should be fatal")
	}
}

func TestOccupies(t *testing.T) {
	s := NewSnake(types.Grid{Width: 10, Height: 10})
	for _, p := range []types.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}, {X: 15, Y: 5}} {
		if !s.Occupies(p) {
			t.Errorf("Occupies(%v) = false", p)
		}
	}
	if s.Occupies(types.Point{X: 4, Y: 5}) {
		t.Error("Occupies((4,5)) = true")
	}
}

func TestHeadAlwaysInsideGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		w, h := rng.Intn(12)+1, rng.Intn(12)+1
		s := newTestSnake(t, w, h, []float64{0.1, 0.25, 0.7, 1, 1.5, 3}[rng.Intn(6)])
		for tick := 0; tick < 200; tick++ {
			if rng.Intn(4) == 0 {
				s.SetDirection(types.Directions[rng.Intn(4)])
			}
			s.Advance()
			if head := s.HeadCell(); !s.Grid().Contains(head) {
				t.Fatalf("%dx%d tick %d: head %v outside grid", w, h, tick, head)
			}
		}
	}
}

func TestBodyLengthInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := newTestSnake(t, 40, 40, 1)
	s.SetDirection(types.Right)

	for tick := 0; tick < 30 && s.Alive(); tick++ {
		grow := rng.Intn(3) == 0
		if grow {
			s.Grow()
		}
		length, size := len(s.Body()), s.Size()
		s.Advance()

		wantLen, wantSize := length, size
		if grow {
			wantLen, wantSize = length+1, size+1
		}
		if len(s.Body()) != wantLen || s.Size() != wantSize {
			t.Fatalf("tick %d grow=%v: len=%d size=%d, want %d %d",
				tick, grow, len(s.Body()), s.Size(), wantLen, wantSize)
		}
		if s.Growing() {
			t.Fatalf("tick %d: growing still set", tick)
		}
	}
}

func TestSetSpeedPanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewSnake(types.Grid{Width: 4, Height: 4}).SetSpeed(-1)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewSnake(types.Grid{Width: 10, Height: 10})
	snap := s.Snapshot()
	snap.Body[0] = types.Point{X: 0, Y: 0}
	if s.Body()[0] == (types.Point{X: 0, Y: 0}) {
		t.Error("snapshot aliases the snake body")
	}
	if snap.Head != s.HeadCell() || snap.Direction != s.Direction() || !snap.Alive {
		t.Errorf("snapshot mismatch: %+v", snap)
	}
}
