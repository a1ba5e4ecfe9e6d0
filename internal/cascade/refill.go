package cascade

// SpawnContext describes the board situation behind one spawn request, so
// scripted or biased sources can differentiate columns and game progress.
type SpawnContext struct {
	// Column is the board column the spawned tile will enter.
	Column int
	// Wave is the cascade wave the refill is feeding, 0 between cascades.
	Wave int
	// Moves is how many moves the engine has accepted so far.
	Moves int
}

// SpawnSource decides what the refill stream produces. Implementations must
// be deterministic functions of the stream and context they are handed;
// level setups can swap in biased or scripted sources.
type SpawnSource interface {
	Spawn(r Source, ctx SpawnContext) (TileType, BombKind)
}

// WeightedSpawner draws plain colors with configurable integer weights.
// A zero weight removes the color from the pool.
type WeightedSpawner struct {
	Weights [MaxColors]int
	total   int
}

// NewWeightedSpawner builds a spawner over the first n colors with equal
// weight. n is clamped to [3, MaxColors].
func NewWeightedSpawner(n int) *WeightedSpawner {
	if n < 3 {
		n = 3
	}
	if n > MaxColors {
		n = MaxColors
	}
	s := &WeightedSpawner{}
	for i := 0; i < n; i++ {
		s.Weights[i] = 1
	}
	s.rebalance()
	return s
}

// SetWeights replaces the per-color weights. Entries beyond the slice keep
// weight zero; an all-zero result falls back to equal weights over three
// colors so the spawner can never stall.
func (s *WeightedSpawner) SetWeights(weights []int) {
	s.Weights = [MaxColors]int{}
	for i, w := range weights {
		if i >= MaxColors {
			break
		}
		if w > 0 {
			s.Weights[i] = w
		}
	}
	s.rebalance()
	if s.total <= 0 {
		for i := 0; i < 3; i++ {
			s.Weights[i] = 1
		}
		s.rebalance()
	}
}

// rebalance recomputes the cached weight total.
func (s *WeightedSpawner) rebalance() {
	s.total = 0
	for _, w := range s.Weights {
		s.total += w
	}
}

// Spawn draws one plain color from the weighted pool. The draw ignores the
// context; every column shares one distribution.
func (s *WeightedSpawner) Spawn(r Source, _ SpawnContext) (TileType, BombKind) {
	if s.total <= 0 {
		s.rebalance()
	}
	roll := r.Next(s.total)
	for i, w := range s.Weights {
		if roll < w {
			return FirstColor + TileType(i), BombNone
		}
		roll -= w
	}
	return FirstColor, BombNone
}

// spawnRefill feeds new tiles into empty top-row slots. A fresh tile starts
// one cell above the board and falls in; the half-cell gate keeps spawns in
// a column spaced like any other falling train.
func (e *Engine) spawnRefill() {
	b := e.board
	for x := 0; x < b.W; x++ {
		if !b.At(x, 0).Empty() || b.CoverAt(x, 0).BlocksMove() {
			continue
		}
		if e.slotBlockedByFaller(x, 0) {
			continue
		}
		ctx := SpawnContext{Column: x, Wave: e.wave, Moves: e.moves}
		typ, bomb := e.spawner.Spawn(e.rng.Refill, ctx)
		t := b.newTile(x, 0, typ, bomb)
		t.PY = -1
		t.SrcY = -1
		t.Falling = true
		b.set(x, 0, t)
		e.emit(Event{Kind: EventTileSpawned, At: Point{X: x, Y: 0}, Tile: t.ID, Type: typ, Bomb: bomb})
	}
}
