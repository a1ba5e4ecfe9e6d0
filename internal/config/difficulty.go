package config

// DifficultyManager computes the current difficulty level of a running game.
// The level starts at the configured initial value and ramps toward 1.0 as
// the player spends moves, so long runs face a wider color pool.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.Level, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty level (0.0 to 1.0) after the given number of
// moves. Disabled managers stay at the initial level.
func (d *DifficultyManager) Level(moves int) float64 {
	if !d.cfg.Enabled {
		return d.initialLevel
	}
	maxAt := float64(d.cfg.MaxAtMoves)
	if maxAt <= 0 {
		maxAt = 60
	}
	progress := clampF(float64(moves)/maxAt, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// ColorCount interpolates the active spawn color pool between base and max
// for the level reached after the given number of moves.
func (d *DifficultyManager) ColorCount(base, max, moves int) int {
	if base >= max {
		return base
	}
	level := d.Level(moves)
	n := base + int(level*float64(max-base)+0.5)
	if n > max {
		n = max
	}
	return n
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
