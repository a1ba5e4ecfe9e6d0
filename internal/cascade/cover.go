package cascade

// CoverKind is the type of an obstacle sitting on top of a tile.
type CoverKind uint8

const (
	CoverNone CoverKind = iota
	// CoverIce is static: it blocks movement and swaps but the tile under
	// it still counts for matches (matching is how ice is broken).
	CoverIce
	// CoverChain is static and additionally blocks matching; the chained
	// tile can only be freed by adjacent clears or bomb effects.
	CoverChain
	// CoverBubble is dynamic: it rides along with its tile during gravity
	// and never blocks matching or swapping.
	CoverBubble
)

// String returns a short name for the cover kind.
func (k CoverKind) String() string {
	switch k {
	case CoverNone:
		return "none"
	case CoverIce:
		return "ice"
	case CoverChain:
		return "chain"
	case CoverBubble:
		return "bubble"
	default:
		return "unknown"
	}
}

// Cover is a per-cell obstacle layer above the tile layer.
// A cover with health > 0 intercepts the first destructive effect targeting
// its cell in a resolution step, protecting the tile underneath.
type Cover struct {
	Kind   CoverKind
	Health int
}

// Present returns true if a live cover occupies the cell.
func (c Cover) Present() bool {
	return c.Kind != CoverNone && c.Health > 0
}

// Dynamic returns true if the cover moves with its tile during gravity.
func (c Cover) Dynamic() bool {
	return c.Kind == CoverBubble
}

// BlocksMove returns true if the covered tile is immobilized.
func (c Cover) BlocksMove() bool {
	return c.Present() && !c.Dynamic()
}

// BlocksMatch returns true if the covered tile may not join match groups.
func (c Cover) BlocksMatch() bool {
	return c.Present() && c.Kind == CoverChain
}

// BlocksSwap returns true if the covered tile may not be swapped.
func (c Cover) BlocksSwap() bool {
	return c.Present() && !c.Dynamic()
}

// GroundKind is the type of an obstacle layer underneath a tile.
type GroundKind uint8

const (
	GroundNone GroundKind = iota
	// GroundDirt breaks after one clear on its cell.
	GroundDirt
	// GroundStone starts at two health and needs two clears.
	GroundStone
)

// String returns a short name for the ground kind.
func (k GroundKind) String() string {
	switch k {
	case GroundNone:
		return "none"
	case GroundDirt:
		return "dirt"
	case GroundStone:
		return "stone"
	default:
		return "unknown"
	}
}

// Ground is a per-cell obstacle layer below the tile layer. It takes one
// point of damage whenever a tile is destroyed on its cell.
type Ground struct {
	Kind   GroundKind
	Health int
}

// Present returns true if a live ground layer occupies the cell.
func (g Ground) Present() bool {
	return g.Kind != GroundNone && g.Health > 0
}
