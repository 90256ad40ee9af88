package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default.
// Files only need to carry the keys they override; the rest keeps default values.
func LoadSnake(customPath string) (SnakeConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseSnake(data)
		if err != nil {
			return SnakeConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSnake(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "snake.yaml")); err == nil {
		if cfg, err := parseSnake(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseSnake(defaultSnakeYAML)
	if err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseSnake overlays YAML onto the built-in defaults and validates the result.
func parseSnake(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SnakeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// Validate checks that the configuration describes a playable grid.
func (c SnakeConfig) Validate() error {
	var errs []error

	g := c.Grid
	if g.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell_size must be positive, got %d", g.CellSize))
	} else {
		if g.Width <= 0 || g.Width%g.CellSize != 0 {
			errs = append(errs, fmt.Errorf("grid.width must be a positive multiple of %d, got %d", g.CellSize, g.Width))
		}
		if g.Height <= 0 || g.Height%g.CellSize != 0 {
			errs = append(errs, fmt.Errorf("grid.height must be a positive multiple of %d, got %d", g.CellSize, g.Height))
		}
	}
	if g.ExclusionHalf < 0 {
		errs = append(errs, fmt.Errorf("grid.exclusion_half must not be negative, got %d", g.ExclusionHalf))
	}

	it := c.Items
	if it.MaxItems <= 0 {
		errs = append(errs, fmt.Errorf("items.max_items must be positive, got %d", it.MaxItems))
	}
	if it.LifetimeMS <= 0 {
		errs = append(errs, fmt.Errorf("items.lifetime_ms must be positive, got %d", it.LifetimeMS))
	}
	if it.SpawnEveryMoves <= 0 {
		errs = append(errs, fmt.Errorf("items.spawn_every_moves must be positive, got %d", it.SpawnEveryMoves))
	}
	if it.PlacementAttempts <= 0 {
		errs = append(errs, fmt.Errorf("items.placement_attempts must be positive, got %d", it.PlacementAttempts))
	}
	if c.Obstacles.AttemptsPerBlock <= 0 {
		errs = append(errs, fmt.Errorf("obstacles.attempts_per_block must be positive, got %d", c.Obstacles.AttemptsPerBlock))
	}
	if c.Leaderboard.Size <= 0 {
		errs = append(errs, fmt.Errorf("leaderboard.size must be positive, got %d", c.Leaderboard.Size))
	}
	if c.Leaderboard.LockSeconds < 0 || c.Leaderboard.ReturnDelayMS < 0 {
		errs = append(errs, errors.New("leaderboard timings must not be negative"))
	}

	for _, p := range Presets() {
		s := c.Settings(p)
		if s.Speed <= 0 {
			errs = append(errs, fmt.Errorf("difficulties.%s.speed must be positive, got %d", p, s.Speed))
		}
		if s.RedProbability < 0 || s.RedProbability > 1 {
			errs = append(errs, fmt.Errorf("difficulties.%s.red_probability must be within [0, 1], got %g", p, s.RedProbability))
		}
		if s.Obstacles.Count < 0 {
			errs = append(errs, fmt.Errorf("difficulties.%s.obstacles.count must not be negative", p))
		}
		if s.Obstacles.Enabled() && (s.Obstacles.Width <= 0 || s.Obstacles.Height <= 0) {
			errs = append(errs, fmt.Errorf("difficulties.%s.obstacles block size must be positive", p))
		}
	}

	return errors.Join(errs...)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
