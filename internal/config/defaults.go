package config

import (
	_ "embed"
)

//go:embed defaults/cascade.yaml
var defaultCascadeYAML []byte

// DefaultCascadeConfig returns the hardcoded default configuration, used
// when even the embedded YAML fails to parse.
func DefaultCascadeConfig() CascadeConfig {
	return CascadeConfig{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
			Colors: 6,
		},
		Physics: PhysicsConfig{
			Gravity:      30.0,
			MaxFallSpeed: 14.0,
		},
		Spawn: SpawnConfig{
			Weights: []int{1, 1, 1, 1, 1, 1},
		},
		Modes: ModesConfig{
			SprintMoves: 30,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			Level:      0.3,
			MaxAtMoves: 60,
		},
	}
}
