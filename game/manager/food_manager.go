package manager

import (
	"golang.org/x/exp/rand"

	"torus-snake/game/types"
)

// maxRandomTries bounds the random search before falling back to a scan of the grid
const maxRandomTries = 64

type FoodManager struct {
	grid         types.Grid
	food         types.Point
	rng          *rand.Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, seed uint64) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
	}
}

// GenerateFood picks a free cell. It returns false when every cell is taken.
func (fm *FoodManager) GenerateFood(snake Occupier, walls []types.Point) (types.Point, bool) {
	for i := 0; i < maxRandomTries; i++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}

		if fm.collisionMgr.ValidateSpawnPosition(food, snake, walls) {
			return food, true
		}
	}

	// Crowded grid: scan from a random offset so the result is not biased to the top-left
	cells := fm.grid.Cells()
	start := fm.rng.Intn(cells)
	for i := 0; i < cells; i++ {
		n := (start + i) % cells
		food := types.Point{X: n % fm.grid.Width, Y: n / fm.grid.Width}
		if fm.collisionMgr.ValidateSpawnPosition(food, snake, walls) {
			return food, true
		}
	}

	return types.Point{}, false
}

// Place moves the food to a new free cell. The food stays put if the grid is full.
func (fm *FoodManager) Place(snake Occupier, walls []types.Point) bool {
	food, ok := fm.GenerateFood(snake, walls)
	if ok {
		fm.food = food
	}
	return ok
}

func (fm *FoodManager) Food() types.Point {
	return fm.food
}

func (fm *FoodManager) SetFood(food types.Point) {
	fm.food = fm.grid.WrapPoint(food)
}
