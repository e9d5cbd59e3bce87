package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"torus-snake/game/manager"
	"torus-snake/game/types"
	"torus-snake/render"
)

// Action is a player request collected by a frontend between frames.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionRestart
	ActionQuit
)

// Direction maps the movement actions onto headings
func (a Action) Direction() (types.Direction, bool) {
	switch a {
	case ActionUp:
		return types.Up, true
	case ActionDown:
		return types.Down, true
	case ActionLeft:
		return types.Left, true
	case ActionRight:
		return types.Right, true
	}
	return types.Up, false
}

// Frontend is a window or terminal: a canvas plus input and a title line.
type Frontend interface {
	render.Canvas
	Poll() []Action
	SetTitle(title string)
	ShouldClose() bool
}

// FrameInfo describes a finished frame to observers.
type FrameInfo struct {
	Session  string
	Frame    uint64
	Score    int
	Size     int
	Alive    bool
	FPS      int
	Events   []manager.Event
	Commands []render.Command
}

// Observer is notified after every rendered frame. Observers must not block.
type Observer interface {
	Observe(info FrameInfo)
}

type Options struct {
	FPS       int
	MaxFrames uint64 // 0 runs until quit
	Logger    *slog.Logger
	Observers []Observer

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

type Game struct {
	UUID      string
	state     *manager.StateManager
	frontend  Frontend
	renderer  *render.Renderer
	opts      Options
	log       *slog.Logger
	frame     uint64
	fps       int
	startTime time.Time
}

func NewGame(state *manager.StateManager, fe Frontend, opts Options) *Game {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.now == nil {
		opts.now = time.Now
	}
	if opts.sleep == nil {
		opts.sleep = sleepContext
	}

	id := uuid.New().String()
	return &Game{
		UUID:     id,
		state:    state,
		frontend: fe,
		renderer: render.NewRenderer(fe),
		opts:     opts,
		log:      opts.Logger.With("session", id),
	}
}

// Title is the window caption shown once per second. The score shown is the snake size.
func Title(size, fps int) string {
	return fmt.Sprintf("Snake Score: %d FPS: %d", size, fps)
}

// Run drives input, simulation and rendering at the target frame rate until the
// frontend closes, the player quits, ctx is cancelled or MaxFrames is reached.
func (g *Game) Run(ctx context.Context) error {
	frameDuration := time.Second / time.Duration(g.opts.FPS)
	g.startTime = g.opts.now()
	titleStamp := g.startTime
	frameCount := 0

	g.log.Info("session started",
		"grid", fmt.Sprintf("%dx%d", g.state.Grid().Width, g.state.Grid().Height),
		"fps", g.opts.FPS)

	for {
		if err := ctx.Err(); err != nil {
			g.log.Info("session stopped", "reason", err, "score", g.state.GetScore())
			return nil
		}
		if g.frontend.ShouldClose() {
			g.log.Info("window closed", "score", g.state.GetScore())
			return nil
		}

		frameStart := g.opts.now()

		if quit := g.handleInput(g.frontend.Poll()); quit {
			g.log.Info("player quit", "score", g.state.GetScore(), "high_score", g.state.GetHighScore())
			return nil
		}
		g.Step()

		frameEnd := g.opts.now()
		frameCount++

		if frameEnd.Sub(titleStamp) >= time.Second {
			g.fps = frameCount
			g.frontend.SetTitle(Title(g.state.Snake().Size(), frameCount))
			frameCount = 0
			titleStamp = frameEnd
		}

		if g.opts.MaxFrames > 0 && g.frame >= g.opts.MaxFrames {
			return nil
		}

		if elapsed := frameEnd.Sub(frameStart); elapsed < frameDuration {
			g.opts.sleep(ctx, frameDuration-elapsed)
		}
	}
}

func (g *Game) handleInput(actions []Action) (quit bool) {
	for _, a := range actions {
		switch a {
		case ActionQuit:
			return true
		case ActionRestart:
			g.state.Reset()
			g.log.Info("session restarted", "high_score", g.state.GetHighScore())
		default:
			if d, ok := a.Direction(); ok {
				g.state.Steer(d)
			}
		}
	}
	return false
}

// Step runs a single tick and renders it
func (g *Game) Step() FrameInfo {
	events := g.state.Update()
	cmds := g.renderer.Render(g.state.Frame())
	g.frame++

	snake := g.state.Snake()
	for _, e := range events {
		switch e {
		case manager.EventAte:
			g.log.Debug("food eaten", "size", snake.Size(), "score", g.state.GetScore())
		case manager.EventDied:
			g.log.Info("snake died", "score", g.state.GetScore(), "size", snake.Size(),
				"survived", g.opts.now().Sub(g.startTime).Round(time.Millisecond))
		}
	}

	info := FrameInfo{
		Session:  g.UUID,
		Frame:    g.frame,
		Score:    g.state.GetScore(),
		Size:     snake.Size(),
		Alive:    snake.Alive(),
		FPS:      g.fps,
		Events:   events,
		Commands: cmds,
	}
	for _, o := range g.opts.Observers {
		o.Observe(info)
	}
	return info
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
