package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"

	// DifficultyUnknown labels leaderboard entries recorded without a difficulty.
	DifficultyUnknown DifficultyPreset = "unknown"
)

// Presets returns the selectable presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParseDifficulty parses a selectable preset name (case-insensitive).
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// NormalizeDifficulty maps any stored label to a known preset,
// using DifficultyUnknown for empty or unrecognized values.
func NormalizeDifficulty(s string) DifficultyPreset {
	if p, err := ParseDifficulty(s); err == nil {
		return p
	}
	return DifficultyUnknown
}

// Label returns the display name of the preset.
func (p DifficultyPreset) Label() string {
	switch p {
	case DifficultyEasy:
		return "Easy"
	case DifficultyNormal:
		return "Normal"
	case DifficultyHard:
		return "Hard"
	default:
		return "Unknown"
	}
}
