// Package config provides YAML-based game configuration loading and
// difficulty presets for the snake game.
package config

import "time"

// SnakeConfig contains all tunable parameters of the game.
type SnakeConfig struct {
	Grid         GridConfig         `yaml:"grid"`
	Items        ItemsConfig        `yaml:"items"`
	Obstacles    ObstaclesConfig    `yaml:"obstacles"`
	Leaderboard  LeaderboardConfig  `yaml:"leaderboard"`
	Difficulties DifficultiesConfig `yaml:"difficulties"`
}

// GridConfig defines the playing field in source units.
type GridConfig struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	CellSize      int `yaml:"cell_size"`
	ExclusionHalf int `yaml:"exclusion_half"` // Half side of the no-spawn square around the center
}

// ItemsConfig defines item population, lifetime and values.
type ItemsConfig struct {
	MaxItems          int `yaml:"max_items"`
	LifetimeMS        int `yaml:"lifetime_ms"`
	SpawnEveryMoves   int `yaml:"spawn_every_moves"`
	PlacementAttempts int `yaml:"placement_attempts"`
	CommonScore       int `yaml:"common_score"`
	CommonGrowth      int `yaml:"common_growth"`
	BonusScore        int `yaml:"bonus_score"`
	BonusGrowth       int `yaml:"bonus_growth"`
}

// ObstaclesConfig defines the obstacle placement budget.
type ObstaclesConfig struct {
	AttemptsPerBlock int `yaml:"attempts_per_block"`
}

// LeaderboardConfig defines the leaderboard size and view timings.
type LeaderboardConfig struct {
	Size          int     `yaml:"size"`
	LockSeconds   float64 `yaml:"lock_seconds"`    // Return is ignored this long after opening the view
	ReturnDelayMS int     `yaml:"return_delay_ms"` // Input cool-down after leaving game over / leaderboard
}

// DifficultiesConfig holds one settings block per preset.
type DifficultiesConfig struct {
	Easy   DifficultySettings `yaml:"easy"`
	Normal DifficultySettings `yaml:"normal"`
	Hard   DifficultySettings `yaml:"hard"`
}

// DifficultySettings is what the simulation consumes from a difficulty.
type DifficultySettings struct {
	Speed          int            `yaml:"speed"` // Moves per second
	RedProbability float64        `yaml:"red_probability"`
	Obstacles      ObstacleBlocks `yaml:"obstacles"`
}

// ObstacleBlocks describes the rectangular obstacle blocks placed at reset.
// Count 0 disables obstacles.
type ObstacleBlocks struct {
	Count  int `yaml:"count"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Enabled reports whether obstacles are placed for this difficulty.
func (o ObstacleBlocks) Enabled() bool {
	return o.Count > 0
}

// ItemLifetime returns the item lifetime as a duration.
func (c SnakeConfig) ItemLifetime() time.Duration {
	return time.Duration(c.Items.LifetimeMS) * time.Millisecond
}

// LeaderboardLock returns how long the leaderboard view ignores "return".
func (c SnakeConfig) LeaderboardLock() time.Duration {
	return time.Duration(c.Leaderboard.LockSeconds * float64(time.Second))
}

// ReturnDelay returns the input cool-down applied after page transitions.
func (c SnakeConfig) ReturnDelay() time.Duration {
	return time.Duration(c.Leaderboard.ReturnDelayMS) * time.Millisecond
}

// Settings returns the settings block for a preset.
// Unknown presets fall back to normal.
func (c SnakeConfig) Settings(preset DifficultyPreset) DifficultySettings {
	switch preset {
	case DifficultyEasy:
		return c.Difficulties.Easy
	case DifficultyHard:
		return c.Difficulties.Hard
	default:
		return c.Difficulties.Normal
	}
}
