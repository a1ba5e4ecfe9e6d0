package cascade

// TileView is the render-facing view of one tile.
type TileView struct {
	ID        TileID
	Type      TileType
	Bomb      BombKind
	X, Y      int
	PX, PY    float64
	Falling   bool
	Suspended bool
}

// LayerView is the render-facing view of one cover or ground cell.
type LayerView struct {
	X, Y   int
	Kind   uint8
	Health int
}

// Snapshot is an immutable copy of everything a renderer or a test needs.
// Two engines in identical states produce deeply equal snapshots.
type Snapshot struct {
	W, H   int
	Tiles  []TileView
	Covers []LayerView
	Ground []LayerView
	Score  int
	Moves  int
	Wave   int
	Phase  Phase
}

// Snapshot captures the engine's current state.
func (e *Engine) Snapshot() Snapshot {
	b := e.board
	s := Snapshot{
		W:     b.W,
		H:     b.H,
		Score: e.score,
		Moves: e.moves,
		Wave:  e.wave,
		Phase: e.phase,
	}
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if t := b.At(x, y); !t.Empty() {
				s.Tiles = append(s.Tiles, TileView{
					ID: t.ID, Type: t.Type, Bomb: t.Bomb,
					X: x, Y: y, PX: t.PX, PY: t.PY,
					Falling: t.Falling, Suspended: t.Suspended,
				})
			}
			if c := b.CoverAt(x, y); c.Present() {
				s.Covers = append(s.Covers, LayerView{X: x, Y: y, Kind: uint8(c.Kind), Health: c.Health})
			}
			if g := b.GroundAt(x, y); g.Present() {
				s.Ground = append(s.Ground, LayerView{X: x, Y: y, Kind: uint8(g.Kind), Health: g.Health})
			}
		}
	}
	return s
}
