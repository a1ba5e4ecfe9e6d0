package cascade

// Board holds the layered game state: a tile layer flanked by a cover layer
// above and a ground layer below, all addressed as y*W+x. Boards are value
// containers with no goroutines or hidden references; Clone produces a fully
// independent copy.
type Board struct {
	W, H int

	tiles  []Tile
	covers []Cover
	ground []Ground

	nextID TileID
}

// NewBoard creates an empty board of the given dimensions.
func NewBoard(w, h int) *Board {
	return &Board{
		W:      w,
		H:      h,
		tiles:  make([]Tile, w*h),
		covers: make([]Cover, w*h),
		ground: make([]Ground, w*h),
		nextID: 1,
	}
}

// InBounds returns true if (x, y) is a valid cell.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// idx converts a coordinate to a slice index. Callers must bounds-check.
func (b *Board) idx(x, y int) int {
	return y*b.W + x
}

// At returns the tile at (x, y). Out-of-bounds reads return an empty tile.
func (b *Board) At(x, y int) Tile {
	if !b.InBounds(x, y) {
		return Tile{}
	}
	return b.tiles[b.idx(x, y)]
}

// AtPoint returns the tile at p.
func (b *Board) AtPoint(p Point) Tile {
	return b.At(p.X, p.Y)
}

// set writes the tile at (x, y). Out-of-bounds writes are dropped.
func (b *Board) set(x, y int, t Tile) {
	if !b.InBounds(x, y) {
		return
	}
	b.tiles[b.idx(x, y)] = t
}

// tileRef returns a pointer to the tile at (x, y) for in-place mutation,
// or nil if out of bounds.
func (b *Board) tileRef(x, y int) *Tile {
	if !b.InBounds(x, y) {
		return nil
	}
	return &b.tiles[b.idx(x, y)]
}

// CoverAt returns the cover layer at (x, y).
func (b *Board) CoverAt(x, y int) Cover {
	if !b.InBounds(x, y) {
		return Cover{}
	}
	return b.covers[b.idx(x, y)]
}

// SetCover places a cover layer at (x, y).
func (b *Board) SetCover(x, y int, c Cover) {
	if !b.InBounds(x, y) {
		return
	}
	b.covers[b.idx(x, y)] = c
}

// coverRef returns a pointer to the cover at (x, y), or nil if out of bounds.
func (b *Board) coverRef(x, y int) *Cover {
	if !b.InBounds(x, y) {
		return nil
	}
	return &b.covers[b.idx(x, y)]
}

// GroundAt returns the ground layer at (x, y).
func (b *Board) GroundAt(x, y int) Ground {
	if !b.InBounds(x, y) {
		return Ground{}
	}
	return b.ground[b.idx(x, y)]
}

// SetGround places a ground layer at (x, y).
func (b *Board) SetGround(x, y int, g Ground) {
	if !b.InBounds(x, y) {
		return
	}
	b.ground[b.idx(x, y)] = g
}

// groundRef returns a pointer to the ground at (x, y), or nil if out of bounds.
func (b *Board) groundRef(x, y int) *Ground {
	if !b.InBounds(x, y) {
		return nil
	}
	return &b.ground[b.idx(x, y)]
}

// newTile mints a tile of the given type with a fresh ID, resting at (x, y).
func (b *Board) newTile(x, y int, typ TileType, bomb BombKind) Tile {
	t := Tile{
		ID:   b.nextID,
		Type: typ,
		Bomb: bomb,
		PX:   float64(x),
		PY:   float64(y),
	}
	b.nextID++
	return t
}

// Place mints and sets a resting tile at (x, y). Used by tests and level
// setup; gameplay spawning goes through the refill path.
func (b *Board) Place(x, y int, typ TileType, bomb BombKind) TileID {
	t := b.newTile(x, y, typ, bomb)
	b.set(x, y, t)
	return t.ID
}

// Clear empties the cell at (x, y) without any side effects.
func (b *Board) Clear(x, y int) {
	b.set(x, y, Tile{})
}

// CanMatch returns true if the tile at p may join a match group: a resting
// plain tile whose cover does not forbid matching.
func (b *Board) CanMatch(p Point) bool {
	t := b.AtPoint(p)
	if !t.Matchable() {
		return false
	}
	return !b.CoverAt(p.X, p.Y).BlocksMatch()
}

// CanSwap returns true if the tile at p may be moved by the player.
func (b *Board) CanSwap(p Point) bool {
	t := b.AtPoint(p)
	if t.Empty() || t.Falling {
		return false
	}
	return !b.CoverAt(p.X, p.Y).BlocksSwap()
}

// canFall returns true if the tile at (x, y) is free to move under gravity.
func (b *Board) canFall(x, y int) bool {
	t := b.At(x, y)
	if t.Empty() {
		return false
	}
	return !b.CoverAt(x, y).BlocksMove()
}

// Count returns the number of non-empty tile slots.
func (b *Board) Count() int {
	n := 0
	for i := range b.tiles {
		if b.tiles[i].ID != 0 {
			n++
		}
	}
	return n
}

// CountType returns the number of tiles of the given type.
func (b *Board) CountType(typ TileType) int {
	n := 0
	for i := range b.tiles {
		if b.tiles[i].ID != 0 && b.tiles[i].Type == typ {
			n++
		}
	}
	return n
}

// MostNumerousColor returns the plain color with the most tiles on the board.
// Ties break towards the lower type value so the result is deterministic.
func (b *Board) MostNumerousColor() TileType {
	var counts [MaxColors]int
	for i := range b.tiles {
		t := &b.tiles[i]
		if t.ID != 0 && t.Type.Plain() {
			counts[t.Type-FirstColor]++
		}
	}
	best := FirstColor
	for c := 0; c < MaxColors; c++ {
		if counts[c] > counts[best-FirstColor] {
			best = FirstColor + TileType(c)
		}
	}
	return best
}

// Settled returns true if no tile is falling and no reachable cell is empty.
// An empty cell only counts against settlement when a tile can still arrive
// there: from the open top of its column, from a movable tile somewhere in
// the rows above, or by a diagonal slide. Cells sealed off by movement
// blocking covers are settled as they are, since nothing can ever enter
// them.
func (b *Board) Settled() bool {
	// reach marks cells a movable tile can occupy now or later. Tiles only
	// ever enter a cell from the row above it, straight or diagonally, so a
	// single top-down pass suffices.
	reach := make([]bool, b.W*b.H)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			t := b.At(x, y)
			if t.Falling {
				return false
			}
			if b.CoverAt(x, y).BlocksMove() {
				continue
			}
			if !t.Empty() {
				reach[b.idx(x, y)] = true
				continue
			}
			if y == 0 {
				return false // refill enters here
			}
			for _, dx := range [3]int{x, x - 1, x + 1} {
				if dx >= 0 && dx < b.W && reach[b.idx(dx, y-1)] {
					return false
				}
			}
		}
	}
	return true
}

// Clone returns a deep copy sharing nothing with the original.
func (b *Board) Clone() *Board {
	c := &Board{
		W:      b.W,
		H:      b.H,
		tiles:  make([]Tile, len(b.tiles)),
		covers: make([]Cover, len(b.covers)),
		ground: make([]Ground, len(b.ground)),
		nextID: b.nextID,
	}
	copy(c.tiles, b.tiles)
	copy(c.covers, b.covers)
	copy(c.ground, b.ground)
	return c
}
