package match3

import (
	"github.com/tilelab/cascade/internal/cascade"
	"github.com/tilelab/cascade/internal/config"
	"github.com/tilelab/cascade/internal/core"
	"github.com/tilelab/cascade/internal/registry"
)

// Mode selects the win condition.
type Mode string

const (
	// ModeEndless plays until no legal moves remain.
	ModeEndless Mode = "endless"
	// ModeSprint gives a fixed move budget and scores what you can.
	ModeSprint Mode = "sprint"
	// ModeQuarry works through obstacle levels: break all the ground.
	ModeQuarry Mode = "quarry"
)

// flashTicks is how long a cleared cell stays highlighted.
const flashTicks = 18

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

// Game adapts the cascade engine to the platform's game interface: cursor
// input, fixed ticks, screen rendering and mode-specific win conditions.
type Game struct {
	mode Mode

	engine *cascade.Engine
	events *cascade.BufferSink
	dt     float64
	tick   uint64

	cursor   cascade.Point
	selected bool
	selCell  cascade.Point

	levelIndex   int
	levelCleared bool
	clearTicks   int

	lastGain   int
	gainTicks  int
	flashes    map[cascade.Point]int
	carryScore int
	moveBudget int

	difficulty   *config.DifficultyManager
	spawner      *cascade.WeightedSpawner
	baseColors   int
	activeColors int

	screenW, screenH int
	paused           bool
	gameOver         bool
	won              bool
	tooSmall         bool
	moveProcessed    bool
}

// New creates an endless game.
func New() *Game {
	return &Game{mode: ModeEndless}
}

// NewSprint creates a move-limited game.
func NewSprint() *Game {
	return &Game{mode: ModeSprint}
}

// NewQuarry creates the obstacle campaign.
func NewQuarry() *Game {
	return &Game{mode: ModeQuarry}
}

func init() {
	registry.Register("match3", func() registry.Game { return New() })
	registry.Register("match3_sprint", func() registry.Game { return NewSprint() })
	registry.Register("match3_quarry", func() registry.Game { return NewQuarry() })
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.mode {
	case ModeSprint:
		return "match3_sprint"
	case ModeQuarry:
		return "match3_quarry"
	default:
		return "match3"
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeSprint:
		return "Cascade (Sprint)"
	case ModeQuarry:
		return "Cascade (Quarry)"
	default:
		return "Cascade"
	}
}

// Reset initializes or restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.gameOver = false
	g.won = false
	g.selected = false
	g.moveProcessed = false
	g.levelCleared = false
	g.clearTicks = 0
	g.lastGain = 0
	g.gainTicks = 0
	g.carryScore = 0
	g.flashes = make(map[cascade.Point]int)

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.dt = 1.0 / float64(tickRate)

	gameCfg, err := config.LoadCascade(configPath)
	if err != nil {
		gameCfg = config.DefaultCascadeConfig()
	}
	if difficultyPreset != "" {
		config.ApplyCascadePreset(&gameCfg, difficultyPreset)
	}
	g.moveBudget = gameCfg.Modes.SprintMoves
	if g.moveBudget <= 0 {
		g.moveBudget = 30
	}

	opts := cascade.DefaultOptions()
	opts.Seed = cfg.Seed
	opts.TickRate = tickRate
	if gameCfg.Board.Width >= 3 && gameCfg.Board.Height >= 3 {
		opts.Width = gameCfg.Board.Width
		opts.Height = gameCfg.Board.Height
	}
	if gameCfg.Board.Colors >= 3 && gameCfg.Board.Colors <= cascade.MaxColors {
		opts.Colors = gameCfg.Board.Colors
	}
	if gameCfg.Physics.Gravity > 0 {
		opts.Gravity = gameCfg.Physics.Gravity
	}
	if gameCfg.Physics.MaxFallSpeed > 0 {
		opts.MaxFallSpeed = gameCfg.Physics.MaxFallSpeed
	}
	g.events = &cascade.BufferSink{}
	opts.Sink = g.events

	if g.mode == ModeQuarry {
		g.levelIndex = clampLevel(g.levelIndex)
		lv := GetLevel(g.levelIndex)
		opts.Width = lv.Width
		opts.Height = lv.Height
		opts.Colors = lv.Colors
	}

	g.difficulty = config.NewDifficultyManager(gameCfg.Difficulty)
	g.baseColors = opts.Colors
	g.activeColors = opts.Colors
	g.spawner = nil
	if g.mode != ModeQuarry {
		// The game owns the spawner so the difficulty ramp can widen the
		// color pool mid-run.
		sp := cascade.NewWeightedSpawner(opts.Colors)
		// Custom spawn weights need at least three live colors or the
		// initial fill cannot stay match-free.
		if weights := gameCfg.Spawn.Weights; liveColors(weights, opts.Colors) >= 3 {
			sp.SetWeights(weights[:min(len(weights), opts.Colors)])
		}
		g.spawner = sp
		opts.Spawner = sp
	}

	eng, err := cascade.New(opts)
	if err != nil {
		// Options are internally consistent; a failure here is a bug.
		panic(err)
	}
	g.engine = eng

	if g.mode == ModeQuarry {
		GetLevel(g.levelIndex).apply(eng.Board())
	}

	g.cursor = cascade.Point{X: opts.Width / 2, Y: opts.Height / 2}
	g.checkScreenSize()
}

// checkScreenSize verifies the board and HUD fit the terminal.
func (g *Game) checkScreenSize() {
	b := g.engine.Board()
	minW := b.W*2 + 4
	minH := b.H + 5
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.moveProcessed = false

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.clearTicks++
		if g.clearTicks >= 120 {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if !g.gameOver && !g.won {
		g.handleInput(in)
	}

	g.engine.Tick(g.dt)
	g.consumeEvents()
	g.decayFlashes()

	if g.engine.Phase() == cascade.PhaseStable {
		g.rampDifficulty()
		g.checkEndConditions()
	}

	return core.StepResult{State: g.State()}
}

// rampDifficulty widens the spawn color pool as the player spends moves.
// Widening only ever adds colors, so earlier refill draws stay valid.
func (g *Game) rampDifficulty() {
	if g.spawner == nil || !g.difficulty.IsEnabled() {
		return
	}
	n := g.difficulty.ColorCount(g.baseColors, cascade.MaxColors, g.engine.Moves())
	if n <= g.activeColors {
		return
	}
	weights := make([]int, n)
	for i := range weights {
		weights[i] = g.spawner.Weights[i]
		if weights[i] <= 0 {
			weights[i] = 1
		}
	}
	g.spawner.SetWeights(weights)
	g.activeColors = n
}

// handleInput moves the cursor and turns select presses into swaps.
func (g *Game) handleInput(in core.InputFrame) {
	b := g.engine.Board()
	moved := g.cursor
	switch {
	case in.Has(core.ActionUp):
		moved.Y--
	case in.Has(core.ActionDown):
		moved.Y++
	case in.Has(core.ActionLeft):
		moved.X--
	case in.Has(core.ActionRight):
		moved.X++
	}
	moved.X = core.Clamp(moved.X, 0, b.W-1)
	moved.Y = core.Clamp(moved.Y, 0, b.H-1)

	if in.Has(core.ActionBack) {
		g.selected = false
	}

	if moved != g.cursor {
		if g.selected && moved.Adjacent(g.selCell) && !g.moveProcessed {
			// Moving off a selected cell attempts the swap.
			g.tryMove(cascade.Move{A: g.selCell, B: moved})
			g.moveProcessed = true
			g.selected = false
		}
		g.cursor = moved
	}

	if in.Has(core.ActionSelect) {
		switch {
		case !g.selected:
			g.selected = true
			g.selCell = g.cursor
		case g.selCell == g.cursor:
			g.selected = false
		case g.selCell.Adjacent(g.cursor) && !g.moveProcessed:
			g.tryMove(cascade.Move{A: g.selCell, B: g.cursor})
			g.moveProcessed = true
			g.selected = false
		default:
			g.selCell = g.cursor
		}
	}
}

// tryMove forwards a swap to the engine when the mode still allows moves.
func (g *Game) tryMove(m cascade.Move) {
	if g.mode == ModeSprint && g.engine.Moves() >= g.moveBudget {
		return
	}
	g.engine.ApplyMove(m)
}

// consumeEvents drains the event buffer into render feedback.
func (g *Game) consumeEvents() {
	gained := 0
	for _, ev := range g.events.Events {
		switch ev.Kind {
		case cascade.EventTileDestroyed, cascade.EventCoverDestroyed, cascade.EventGroundDestroyed:
			g.flashes[ev.At] = flashTicks
		case cascade.EventScore:
			gained += ev.Value
		}
	}
	if gained > 0 {
		g.lastGain = gained
		g.gainTicks = 60
	}
	g.events.Reset()
}

// decayFlashes ages out cell highlights and the score popup.
func (g *Game) decayFlashes() {
	for p, n := range g.flashes {
		if n <= 1 {
			delete(g.flashes, p)
		} else {
			g.flashes[p] = n - 1
		}
	}
	if g.gainTicks > 0 {
		g.gainTicks--
	}
}

// checkEndConditions runs once the board has settled.
func (g *Game) checkEndConditions() {
	switch g.mode {
	case ModeSprint:
		if g.engine.Moves() >= g.moveBudget {
			g.gameOver = true
		}
	case ModeQuarry:
		if !g.levelCleared && groundRemaining(g.engine.Board()) == 0 {
			g.levelCleared = true
			g.clearTicks = 0
		}
	}
	if !g.gameOver && !g.won && !g.levelCleared && len(g.engine.LegalMoves()) == 0 {
		// No moves left on a settled board ends any mode.
		g.gameOver = true
	}
}

// advanceLevel moves the quarry campaign forward.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.clearTicks = 0
	if g.levelIndex >= LevelCount()-1 {
		g.won = true
		return
	}
	g.levelIndex++
	score := g.engine.Score()
	seed := g.engine.Seed()
	g.Reset(core.RuntimeConfig{
		ScreenW:  g.screenW,
		ScreenH:  g.screenH,
		TickRate: int(1.0/g.dt + 0.5),
		Seed:     seed + int64(g.levelIndex),
	})
	// Carry the running score across levels.
	g.carryScore = score
}

// liveColors counts colors with a positive weight among the first n entries.
func liveColors(weights []int, n int) int {
	live := 0
	for i, w := range weights {
		if i >= n {
			break
		}
		if w > 0 {
			live++
		}
	}
	return live
}

// groundRemaining counts live ground cells.
func groundRemaining(b *cascade.Board) int {
	n := 0
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.GroundAt(x, y).Present() {
				n++
			}
		}
	}
	return n
}

// State reports score and status to the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.carryScore + g.engine.Score(),
		Moves:    g.engine.Moves(),
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}
