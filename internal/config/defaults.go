package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration.
// It mirrors defaults/snake.yaml and is the last fallback when the embedded
// YAML cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Width:         720,
			Height:        480,
			CellSize:      10,
			ExclusionHalf: 100,
		},
		Items: ItemsConfig{
			MaxItems:          20,
			LifetimeMS:        30_000,
			SpawnEveryMoves:   20,
			PlacementAttempts: 1000,
			CommonScore:       10,
			CommonGrowth:      1,
			BonusScore:        20,
			BonusGrowth:       2,
		},
		Obstacles: ObstaclesConfig{
			AttemptsPerBlock: 200,
		},
		Leaderboard: LeaderboardConfig{
			Size:          10,
			LockSeconds:   1.0,
			ReturnDelayMS: 150,
		},
		Difficulties: DifficultiesConfig{
			Easy: DifficultySettings{
				Speed:          20,
				RedProbability: 0.3,
			},
			Normal: DifficultySettings{
				Speed:          30,
				RedProbability: 0.2,
			},
			Hard: DifficultySettings{
				Speed:          40,
				RedProbability: 0.2,
				Obstacles:      ObstacleBlocks{Count: 6, Width: 3, Height: 3},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
