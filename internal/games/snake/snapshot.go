package snake

import "github.com/vovakirdan/tui-snake/internal/config"

// Snapshot captures the complete game state for determinism testing and
// for drivers that render outside the simulation.
type Snapshot struct {
	Tick          uint64
	Difficulty    config.DifficultyPreset
	Score         int
	PendingGrowth int
	Moves         int
	Snake         []Cell // Head first
	Dir           Direction
	Items         []Item // Spawn order
	Obstacles     []Cell // Placement order
	State         State
	Cause         Cause
}

// Head returns the snake head, or the zero cell for an empty snake.
func (s Snapshot) Head() Cell {
	if len(s.Snake) == 0 {
		return Cell{}
	}
	return s.Snake[0]
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:          g.tick,
		Difficulty:    g.difficulty,
		Score:         g.score,
		PendingGrowth: g.pendingGrowth,
		Moves:         g.moves,
		Snake:         append([]Cell(nil), g.world.Snake...),
		Dir:           g.direction,
		Items:         append([]Item(nil), g.world.Items...),
		Obstacles:     append([]Cell(nil), g.world.ObstacleCells()...),
		State:         g.state,
		Cause:         g.cause,
	}
}
