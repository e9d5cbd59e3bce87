package manager

import "torus-snake/game/types"

// Occupier is anything that can tell whether it covers a cell, usually the snake.
type Occupier interface {
	Occupies(cell types.Point) bool
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food types.Point) bool {
	return cm.grid.Equal(pos, food)
}

// IsWall checks if a position is one of the wall cells. Walls are only an obstacle
// for spawning; the snake passes through them.
func (cm *CollisionManager) IsWall(pos types.Point, walls []types.Point) bool {
	for _, w := range walls {
		if cm.grid.Equal(pos, w) {
			return true
		}
	}
	return false
}

// ValidateSpawnPosition checks if a position is free for placing food
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, snake Occupier, walls []types.Point) bool {
	if !cm.grid.Contains(pos) {
		return false
	}

	if snake != nil && snake.Occupies(pos) {
		return false
	}

	return !cm.IsWall(pos, walls)
}
