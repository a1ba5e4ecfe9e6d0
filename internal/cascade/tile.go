// Package cascade implements the deterministic core of a tile-matching puzzle
// game: a layered board of typed tiles, continuous gravity with diagonal
// resolution, match detection with shape classification, cascading clears,
// bomb effects and combos, and layered cover/ground obstacles. The engine is
// strictly single-threaded; parallelism is achieved by cloning, never by
// sharing state.
package cascade

// Point is a board coordinate. X grows rightwards, Y grows downwards
// (row 0 is the top row, where refilled tiles enter).
type Point struct {
	X, Y int
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Adjacent returns true if q is orthogonally adjacent to p.
func (p Point) Adjacent(q Point) bool {
	dx := p.X - q.X
	dy := p.Y - q.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// TileID uniquely identifies a tile for its whole lifetime.
// IDs increase monotonically and are never reused; 0 means "no tile".
type TileID int64

// TileType is the matchable type of a tile: a plain color or a special marker.
type TileType uint8

const (
	TileEmpty TileType = iota
	TileRed
	TileGreen
	TileBlue
	TileYellow
	TilePurple
	TileOrange
	// TileRainbow matches nothing by itself; it interacts only through
	// power-up and combo rules.
	TileRainbow
)

// FirstColor and the color count bound the plain, matchable tile types.
const (
	FirstColor = TileRed
	MaxColors  = 6
)

// Plain returns true for ordinary color tiles that participate in matching.
func (t TileType) Plain() bool {
	return t >= TileRed && t <= TileOrange
}

// String returns a short name for the tile type.
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileRed:
		return "red"
	case TileGreen:
		return "green"
	case TileBlue:
		return "blue"
	case TileYellow:
		return "yellow"
	case TilePurple:
		return "purple"
	case TileOrange:
		return "orange"
	case TileRainbow:
		return "rainbow"
	default:
		return "unknown"
	}
}

// BombKind is the power-up payload a tile may carry.
type BombKind uint8

const (
	BombNone   BombKind = iota
	BombRow             // clears its entire row
	BombColumn          // clears its entire column
	BombArea            // clears a fixed-radius square around itself
	BombHoming          // clears a small cross plus one random strike
	// BombRainbow marks the rainbow tile's trigger; the tile type is
	// TileRainbow and the two always travel together.
	BombRainbow
)

// String returns a short name for the bomb kind.
func (b BombKind) String() string {
	switch b {
	case BombNone:
		return "none"
	case BombRow:
		return "row"
	case BombColumn:
		return "column"
	case BombArea:
		return "area"
	case BombHoming:
		return "homing"
	case BombRainbow:
		return "rainbow"
	default:
		return "unknown"
	}
}

// Special returns true if this kind participates in swap combos.
func (b BombKind) Special() bool {
	return b != BombNone
}

// Tile is one movable board element. The zero value is an empty cell.
//
// A tile's logical grid slot and its continuous position (PX, PY) converge
// to the same integer coordinates exactly when Falling is false. While
// falling, the grid slot already holds the computed destination and the
// continuous position integrates towards it.
type Tile struct {
	ID   TileID
	Type TileType
	Bomb BombKind

	// Continuous position in cell units, used for motion interpolation.
	PX, PY float64
	// Vel is the downward speed in cells per second along the fall path.
	Vel float64

	// Falling marks a tile actively integrating gravity towards its target.
	Falling bool
	// Suspended marks a tile blocked directly below: a candidate for a
	// diagonal slide.
	Suspended bool

	// Fall bookkeeping, valid while Falling.
	SrcX, SrcY       float64 // continuous position where the fall started
	TargetX, TargetY int     // destination grid slot
	// Following is set when the tile tracks a falling tile directly below
	// it instead of integrating freely; it must not snap to the grid while
	// the tracked tile is still between cells.
	Following bool
}

// Empty returns true if this slot holds no tile.
func (t Tile) Empty() bool {
	return t.ID == 0
}

// Matchable returns true if the tile can take part in ordinary matches:
// a resting plain tile with no power-up. Bomb and rainbow markers interact
// only through power-up rules.
func (t Tile) Matchable() bool {
	return t.Type.Plain() && t.Bomb == BombNone && !t.Falling
}

// Special returns true if the tile is a bomb or rainbow tile.
func (t Tile) Special() bool {
	return t.Bomb.Special()
}
