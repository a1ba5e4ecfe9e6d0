package cascade

import "fmt"

// Phase is the engine's coarse state.
type Phase uint8

const (
	// PhaseStable means the board is settled and waiting for a move.
	PhaseStable Phase = iota
	// PhaseResolving means falls, clears or cascades are in flight.
	PhaseResolving
)

// String returns a short name for the phase.
func (p Phase) String() string {
	if p == PhaseStable {
		return "stable"
	}
	return "resolving"
}

// Options configures a new engine.
type Options struct {
	Width  int
	Height int
	// Colors is how many plain colors the refill draws from.
	Colors int
	Seed   int64

	// Gravity is the downward acceleration in cells per second squared;
	// MaxFallSpeed caps the fall speed in cells per second.
	Gravity      float64
	MaxFallSpeed float64

	// TickRate is the nominal simulation rate used by RunUntilStable.
	TickRate int
	// StableTickCap bounds RunUntilStable against runaway cascades.
	StableTickCap int

	// Spawner overrides the default equal-weight spawner when set.
	Spawner SpawnSource
	// Sink receives board events; nil means discard.
	Sink Sink
}

// DefaultOptions returns the standard 8x8 six-color setup.
func DefaultOptions() Options {
	return Options{
		Width:         8,
		Height:        8,
		Colors:        MaxColors,
		Seed:          1,
		Gravity:       30,
		MaxFallSpeed:  14,
		TickRate:      60,
		StableTickCap: 10000,
	}
}

// Move is a candidate swap of two adjacent cells.
type Move struct {
	A, B Point
}

// Engine drives one board: it applies moves, steps the simulation and
// resolves cascades. An Engine is strictly single-goroutine; to search or
// simulate in parallel, Clone it per worker.
type Engine struct {
	board   *Board
	rng     *Domains
	spawner SpawnSource
	sink    Sink
	opts    Options

	phase Phase
	wave  int
	// cascades counts every resolved wave since creation and never resets.
	cascades int
	score    int
	moves    int
	// focus carries the latest swap cells into the first resolution wave
	// so power-ups spawn where the player acted.
	focus []Point
}

// New creates an engine with a settled, match-free initial board.
func New(opts Options) (*Engine, error) {
	if opts.Width < 3 || opts.Height < 3 {
		return nil, fmt.Errorf("cascade: board %dx%d too small", opts.Width, opts.Height)
	}
	if opts.Colors < 3 || opts.Colors > MaxColors {
		return nil, fmt.Errorf("cascade: color count %d out of range [3, %d]", opts.Colors, MaxColors)
	}
	if opts.Gravity <= 0 || opts.MaxFallSpeed <= 0 {
		return nil, fmt.Errorf("cascade: gravity and fall speed must be positive")
	}
	e := &Engine{
		board:   NewBoard(opts.Width, opts.Height),
		rng:     NewDomains(opts.Seed),
		spawner: opts.Spawner,
		sink:    opts.Sink,
		opts:    opts,
		phase:   PhaseStable,
	}
	if e.spawner == nil {
		e.spawner = NewWeightedSpawner(opts.Colors)
	}
	e.fillInitial()
	return e, nil
}

// fillInitial populates every cell without creating a single match, drawing
// from the refill stream so identical seeds produce identical boards.
func (e *Engine) fillInitial() {
	b := e.board
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			for {
				typ, bomb := e.spawner.Spawn(e.rng.Refill, SpawnContext{Column: x})
				b.Place(x, y, typ, bomb)
				if !b.HasMatchAt(Point{X: x, Y: y}) {
					break
				}
				b.Clear(x, y)
			}
		}
	}
}

// emit forwards an event to the sink, if any.
func (e *Engine) emit(ev Event) {
	if e.sink != nil {
		e.sink.Emit(ev)
	}
}

// Board exposes the engine's board for inspection. Callers must not mutate
// it while the engine is in use.
func (e *Engine) Board() *Board { return e.board }

// Phase returns the engine's current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Score returns the accumulated score.
func (e *Engine) Score() int { return e.score }

// Moves returns how many moves have been accepted.
func (e *Engine) Moves() int { return e.moves }

// Wave returns the current cascade wave, 0 when settled.
func (e *Engine) Wave() int { return e.wave }

// Cascades returns the total number of waves resolved since the engine was
// created. Unlike Wave it never resets, so headless callers can measure
// cascade activity without an event sink.
func (e *Engine) Cascades() int { return e.cascades }

// Seed returns the seed the engine was created with.
func (e *Engine) Seed() int64 { return e.opts.Seed }

// ApplyMove attempts the swap m. It returns false without consuming a move
// when the swap is illegal or produces nothing; special pairs and rainbow
// swaps always consume the move and detonate immediately.
func (e *Engine) ApplyMove(m Move) bool {
	if e.phase != PhaseStable {
		return false
	}
	b := e.board
	if !m.A.Adjacent(m.B) || !b.CanSwap(m.A) || !b.CanSwap(m.B) {
		return false
	}
	ta, tb := b.AtPoint(m.A), b.AtPoint(m.B)

	switch {
	case ta.Special() && tb.Special():
		e.applyCombo(m, ta, tb)
		return true
	case ta.Bomb == BombRainbow:
		e.applyRainbowSwap(m.A, m.B)
		return true
	case tb.Bomb == BombRainbow:
		e.applyRainbowSwap(m.B, m.A)
		return true
	}

	e.swapTiles(m.A, m.B)
	if !b.HasMatchAt(m.A) && !b.HasMatchAt(m.B) {
		e.swapTiles(m.B, m.A)
		return false
	}
	e.emit(Event{Kind: EventSwap, At: m.A, To: m.B})
	e.moves++
	e.focus = []Point{m.A, m.B}
	e.phase = PhaseResolving
	return true
}

// swapTiles exchanges two grid entries and snaps their continuous
// positions. Dynamic covers travel with their tiles.
func (e *Engine) swapTiles(a, b Point) {
	ba := e.board
	ta, tb := ba.AtPoint(a), ba.AtPoint(b)
	ta.PX, ta.PY = float64(b.X), float64(b.Y)
	tb.PX, tb.PY = float64(a.X), float64(a.Y)
	ba.set(b.X, b.Y, ta)
	ba.set(a.X, a.Y, tb)

	ca, cb := ba.CoverAt(a.X, a.Y), ba.CoverAt(b.X, b.Y)
	if (ca.Present() && ca.Dynamic()) || (cb.Present() && cb.Dynamic()) {
		ba.SetCover(a.X, a.Y, cb)
		ba.SetCover(b.X, b.Y, ca)
	}
}

// applyCombo detonates two swapped specials as one combined effect.
func (e *Engine) applyCombo(m Move, ta, tb Tile) {
	e.moves++
	e.phase = PhaseResolving
	e.emit(Event{Kind: EventCombo, At: m.A, To: m.B, Bomb: ta.Bomb})
	e.wave = 1
	e.cascades++
	e.emit(Event{Kind: EventCascade, Value: e.wave})

	cells := e.comboCells(ta.Bomb, tb.Bomb, m.B)

	b := e.board
	for _, p := range [2]Point{m.A, m.B} {
		t := b.AtPoint(p)
		b.Clear(p.X, p.Y)
		e.emit(Event{Kind: EventTileDestroyed, At: p, Tile: t.ID, Type: t.Type, Bomb: t.Bomb})
		e.damageGround(p)
	}
	destroyed := 2 + e.runChain(cells)
	e.scoreChain(destroyed)
}

// applyRainbowSwap detonates a rainbow tile swapped with a plain tile: the
// rainbow and every tile of the partner's color are destroyed.
func (e *Engine) applyRainbowSwap(rainbow, partner Point) {
	b := e.board
	color := b.AtPoint(partner).Type
	e.moves++
	e.phase = PhaseResolving
	e.emit(Event{Kind: EventCombo, At: rainbow, To: partner, Bomb: BombRainbow})
	e.wave = 1
	e.cascades++
	e.emit(Event{Kind: EventCascade, Value: e.wave})

	t := b.AtPoint(rainbow)
	b.Clear(rainbow.X, rainbow.Y)
	e.emit(Event{Kind: EventTileDestroyed, At: rainbow, Tile: t.ID, Type: t.Type, Bomb: t.Bomb})
	e.damageGround(rainbow)

	destroyed := 1 + e.runChain(e.cellsOfColor(color))
	e.scoreChain(destroyed)
}

// scoreChain awards flat per-tile points for move-triggered detonations.
func (e *Engine) scoreChain(destroyed int) {
	pts := destroyed * chainTileValue * e.wave
	e.score += pts
	e.emit(Event{Kind: EventScore, Value: pts})
}

// Tick advances the simulation by dt seconds: refill, gravity, then match
// resolution among resting tiles.
func (e *Engine) Tick(dt float64) {
	e.spawnRefill()
	e.applyGravity(dt)

	if groups := e.board.FindAllMatchGroups(); len(groups) > 0 {
		e.phase = PhaseResolving
		e.resolveWave(groups, e.focus)
		e.focus = nil
		return
	}
	if e.board.Settled() {
		if e.phase != PhaseStable {
			e.phase = PhaseStable
		}
		e.wave = 0
		e.focus = nil
	}
}

// RunUntilStable ticks at the nominal rate until the board settles with no
// pending matches, with event emission disabled for the duration. It returns
// the number of ticks consumed, capped by StableTickCap.
func (e *Engine) RunUntilStable() int {
	sink := e.sink
	e.sink = nil
	defer func() { e.sink = sink }()

	dt := 1.0 / float64(e.opts.TickRate)
	for i := 0; i < e.opts.StableTickCap; i++ {
		e.Tick(dt)
		if e.phase == PhaseStable && e.board.Settled() {
			return i + 1
		}
	}
	return e.opts.StableTickCap
}

// LegalMoves enumerates every currently legal move. Plain swaps are probed
// by swapping in place and checking for a match; special pairs and rainbow
// swaps are legal outright.
func (e *Engine) LegalMoves() []Move {
	var moves []Move
	b := e.board
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			a := Point{X: x, Y: y}
			for _, bp := range [2]Point{{X: x + 1, Y: y}, {X: x, Y: y + 1}} {
				if !b.InBounds(bp.X, bp.Y) || !b.CanSwap(a) || !b.CanSwap(bp) {
					continue
				}
				ta, tb := b.AtPoint(a), b.AtPoint(bp)
				if (ta.Special() && tb.Special()) ||
					ta.Bomb == BombRainbow || tb.Bomb == BombRainbow {
					moves = append(moves, Move{A: a, B: bp})
					continue
				}
				e.swapTiles(a, bp)
				ok := b.HasMatchAt(a) || b.HasMatchAt(bp)
				e.swapTiles(bp, a)
				if ok {
					moves = append(moves, Move{A: a, B: bp})
				}
			}
		}
	}
	return moves
}

// Clone returns an independent engine at the same state. The clone gets a
// nil sink so that mass simulation over clones emits nothing.
func (e *Engine) Clone() *Engine {
	c := &Engine{
		board:    e.board.Clone(),
		rng:      e.rng.Clone(),
		spawner:  e.spawner,
		opts:     e.opts,
		phase:    e.phase,
		wave:     e.wave,
		cascades: e.cascades,
		score:    e.score,
		moves:    e.moves,
	}
	if len(e.focus) > 0 {
		c.focus = append([]Point(nil), e.focus...)
	}
	return c
}

// CloneSeeded returns a clone whose random streams are re-derived from the
// given seed, diverging from the original's future randomness.
func (e *Engine) CloneSeeded(seed int64) *Engine {
	c := e.Clone()
	c.rng = NewDomains(seed)
	c.opts.Seed = seed
	return c
}

// SetSink replaces the event sink. Passing nil silences the engine.
func (e *Engine) SetSink(s Sink) {
	e.sink = s
}
