// Package term renders the game into a terminal. Each grid cell takes two columns
// so cells look roughly square; the line below the grid replaces the window title.
package term

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"

	"torus-snake/game"
	"torus-snake/game/types"
	"torus-snake/render"
)

const cellColumns = 2

type glyph struct {
	r         rune
	joinsEast bool // second column continues the line to the right
}

var (
	tailGlyphs     = [4]glyph{{'╶', true}, {'╷', false}, {'╴', false}, {'╵', false}}
	straightGlyphs = [4]glyph{{'─', true}, {'│', false}, {'─', true}, {'│', false}}
	turnGlyphs     = [4]glyph{{'└', true}, {'┌', true}, {'┐', false}, {'┘', false}}
	headGlyphs     = [4]rune{'▶', '▼', '◀', '▲'}
	mouthGlyphs    = [4]rune{'>', 'v', '<', '^'}
)

// Glyph picks the terminal rune for a sprite drawn at the given rotation.
func Glyph(s render.Sprite, rot types.Rotation) (r rune, joinsEast bool) {
	q := types.Wrap(int(rot), 4)
	switch s {
	case render.Food:
		return '●', false
	case render.Tail:
		return tailGlyphs[q].r, tailGlyphs[q].joinsEast
	case render.Straight:
		return straightGlyphs[q].r, straightGlyphs[q].joinsEast
	case render.Turn:
		return turnGlyphs[q].r, turnGlyphs[q].joinsEast
	case render.Head:
		return headGlyphs[q], false
	case render.MouthOpenHead:
		return mouthGlyphs[q], false
	case render.DeadHead:
		return '✖', false
	}
	return '?', false
}

// Screen is the tcell frontend
type Screen struct {
	screen  tcell.Screen
	grid    types.Grid
	bg      tcell.Style
	title   string
	events  chan tcell.Event
	done    chan struct{}
	stopped chan struct{}
	closed  bool
}

// New takes ownership of an initialised tcell screen.
func New(screen tcell.Screen, grid types.Grid) *Screen {
	s := &Screen{
		screen:  screen,
		grid:    grid,
		bg:      tcell.StyleDefault.Background(toColor(render.Background)),
		events:  make(chan tcell.Event, 64),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.pump()
	return s
}

// Open creates and initialises a terminal screen for grid.
func Open(grid types.Grid) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	screen.HideCursor()
	return New(screen, grid), nil
}

// pump forwards terminal events until the screen is closed.
func (s *Screen) pump() {
	defer close(s.stopped)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

func (s *Screen) Close() {
	select {
	case <-s.done:
		return
	default:
	}
	close(s.done)
	s.screen.Fini()
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (s *Screen) Clear(c color.RGBA) {
	s.bg = tcell.StyleDefault.Background(toColor(c))
	s.screen.Fill(' ', s.bg)
}

func (s *Screen) DrawSprite(sp render.Sprite, cell types.Point, rot types.Rotation) {
	style := s.bg.Foreground(tcell.ColorGreen)
	switch sp {
	case render.Food:
		style = s.bg.Foreground(tcell.ColorRed)
	case render.DeadHead:
		style = s.bg.Foreground(tcell.ColorGray)
	case render.Head, render.MouthOpenHead:
		style = s.bg.Foreground(tcell.ColorLime)
	}

	r, east := Glyph(sp, rot)
	x, y := cell.X*cellColumns, cell.Y
	s.screen.SetContent(x, y, r, nil, style)
	if east {
		s.screen.SetContent(x+1, y, '─', nil, style)
	}
}

func (s *Screen) DrawWall(cell types.Point) {
	style := s.bg.Foreground(tcell.ColorSlateGray)
	for i := 0; i < cellColumns; i++ {
		s.screen.SetContent(cell.X*cellColumns+i, cell.Y, '█', nil, style)
	}
}

func (s *Screen) Present() {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	width, _ := s.screen.Size()
	for i, r := range fitStatus(s.title, width) {
		s.screen.SetContent(i, s.grid.Height, r, nil, style)
	}
	s.screen.Show()
}

// fitStatus shortens the status line to width columns, dropping the game name first.
func fitStatus(title string, width int) []rune {
	r := []rune(title)
	if len(r) > width {
		r = []rune(strings.TrimPrefix(title, "Snake "))
	}
	if width < 0 {
		width = 0
	}
	if len(r) > width {
		r = r[:width]
	}
	return r
}

func (s *Screen) SetTitle(title string) {
	s.title = title
}

func (s *Screen) ShouldClose() bool {
	return s.closed
}

// Poll drains pending terminal events without blocking.
func (s *Screen) Poll() []game.Action {
	var actions []game.Action
	for {
		select {
		case ev := <-s.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a := keyAction(ev); a != game.ActionNone {
					actions = append(actions, a)
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}
		default:
			for _, a := range actions {
				if a == game.ActionQuit {
					s.closed = true
				}
			}
			return actions
		}
	}
}

func keyAction(ev *tcell.EventKey) game.Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.ActionUp
	case tcell.KeyDown:
		return game.ActionDown
	case tcell.KeyLeft:
		return game.ActionLeft
	case tcell.KeyRight:
		return game.ActionRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.ActionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return game.ActionUp
		case 's', 'S':
			return game.ActionDown
		case 'a', 'A':
			return game.ActionLeft
		case 'd', 'D':
			return game.ActionRight
		case 'r', 'R':
			return game.ActionRestart
		case 'q', 'Q':
			return game.ActionQuit
		}
	}
	return game.ActionNone
}
