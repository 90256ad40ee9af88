package core

// RuntimeConfig contains configuration passed to the game at reset.
type RuntimeConfig struct {
	Seed int64 // RNG seed for deterministic gameplay
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Ate   bool // An item was consumed this tick
}
