package manager

import (
	"fmt"

	"torus-snake/game/entity"
	"torus-snake/game/types"
	"torus-snake/render"
)

// Event is something noteworthy that happened during a tick.
type Event int

const (
	EventAte Event = iota + 1
	EventDied
)

func (e Event) String() string {
	switch e {
	case EventAte:
		return "ate"
	case EventDied:
		return "died"
	default:
		return "unknown"
	}
}

// Settings are the tunables of a session
type Settings struct {
	Speed          float64
	SpeedIncrement float64
	AllowReversal  bool
	StartDirection string // direction name; empty means up
	Walls          []types.Point
	Seed           uint64
}

// StateManager owns one play session: the snake, its food, the walls and the score.
type StateManager struct {
	grid         types.Grid
	settings     Settings
	collisionMgr *CollisionManager
	foodManager  *FoodManager
	snake        *entity.Snake
	heading      types.Direction
	score        int
	highScore    int
	ticks        uint64
}

func NewStateManager(grid types.Grid, settings Settings) *StateManager {
	grid = types.NewGrid(grid.Width, grid.Height)
	collisionMgr := NewCollisionManager(grid)

	walls := make([]types.Point, 0, len(settings.Walls))
	for _, w := range settings.Walls {
		walls = append(walls, grid.WrapPoint(w))
	}
	settings.Walls = walls

	heading := types.Up
	if settings.StartDirection != "" {
		d, err := types.ParseDirection(settings.StartDirection)
		if err != nil {
			panic(fmt.Sprintf("manager: %v", err))
		}
		heading = d
	}

	sm := &StateManager{
		grid:         grid,
		settings:     settings,
		collisionMgr: collisionMgr,
		foodManager:  NewFoodManager(grid, collisionMgr, settings.Seed),
		heading:      heading,
	}
	sm.Reset()

	return sm
}

// Reset starts over with a fresh snake. The high score survives.
func (sm *StateManager) Reset() {
	sm.snake = entity.NewSnakeHeading(sm.grid, sm.heading)
	sm.snake.SetSpeed(sm.settings.Speed)
	sm.score = 0
	sm.ticks = 0
	sm.foodManager.Place(sm.snake, sm.settings.Walls)
}

// Update advances the session by one tick and reports what happened.
func (sm *StateManager) Update() []Event {
	if !sm.snake.Alive() {
		return nil
	}

	sm.ticks++
	sm.snake.Advance()

	if !sm.snake.Alive() {
		return []Event{EventDied}
	}

	if sm.collisionMgr.IsFoodCollision(sm.snake.HeadCell(), sm.foodManager.Food()) {
		sm.score++
		if sm.score > sm.highScore {
			sm.highScore = sm.score
		}
		sm.snake.Grow()
		sm.snake.SetSpeed(sm.snake.Speed() + sm.settings.SpeedIncrement)
		sm.foodManager.Place(sm.snake, sm.settings.Walls)
		return []Event{EventAte}
	}

	return nil
}

// Steer forwards a direction request to the snake. Unless reversals are allowed, a request
// to turn straight back is dropped since it would run the head into the neck.
func (sm *StateManager) Steer(d types.Direction) {
	if !sm.settings.AllowReversal && d == sm.snake.Direction().Opposite() {
		return
	}
	sm.snake.SetDirection(d)
}

// Frame is the renderer input for the current state
func (sm *StateManager) Frame() render.Frame {
	return render.Frame{
		Snake: sm.snake.Snapshot(),
		Food:  sm.foodManager.Food(),
		Walls: append([]types.Point(nil), sm.settings.Walls...),
	}
}

func (sm *StateManager) Snake() *entity.Snake {
	return sm.snake
}

func (sm *StateManager) Food() types.Point {
	return sm.foodManager.Food()
}

// SetFood overrides the food position
func (sm *StateManager) SetFood(p types.Point) {
	sm.foodManager.SetFood(p)
}

func (sm *StateManager) Grid() types.Grid {
	return sm.grid
}

func (sm *StateManager) GetScore() int {
	return sm.score
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

// Ticks counts the updates of the current snake
func (sm *StateManager) Ticks() uint64 {
	return sm.ticks
}
