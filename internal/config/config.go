// Package config provides YAML-based configuration loading and difficulty
// presets for the cascade platform.
package config

// CascadeConfig contains all tunable parameters for the puzzle engine and
// its game modes.
type CascadeConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Modes      ModesConfig      `yaml:"modes"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines board geometry and the color pool.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Colors int `yaml:"colors"`
}

// PhysicsConfig defines the fall dynamics in cells per second.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// SpawnConfig defines per-color refill weights. A missing or short list
// falls back to equal weights.
type SpawnConfig struct {
	Weights []int `yaml:"weights"`
}

// ModesConfig defines per-mode rules.
type ModesConfig struct {
	SprintMoves int `yaml:"sprint_moves"`
}

// DifficultyConfig controls how presets reshape the game and how difficulty
// ramps up as a run progresses.
type DifficultyConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Level      float64 `yaml:"level"`        // 0.0 = easy, 1.0 = hard
	MaxAtMoves int     `yaml:"max_at_moves"` // moves until the ramp tops out
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// LevelForPreset maps a preset to its difficulty level.
func LevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyCascadePreset reshapes the config for a named difficulty: harder
// games draw from more colors and allow fewer sprint moves.
func ApplyCascadePreset(cfg *CascadeConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.Level = LevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Board.Colors = 4
		cfg.Modes.SprintMoves = 40
	case DifficultyNormal:
		cfg.Board.Colors = 5
		cfg.Modes.SprintMoves = 30
	case DifficultyHard:
		cfg.Board.Colors = 6
		cfg.Modes.SprintMoves = 25
	}
}
