package cascade

// MatchShape classifies a match group's geometry. The shape decides which
// power-up, if any, the clear leaves behind.
type MatchShape uint8

const (
	// Shape3 is a plain run of three. No power-up.
	Shape3 MatchShape = iota
	// Shape4H is a horizontal run of four. Spawns a column bomb.
	Shape4H
	// Shape4V is a vertical run of four. Spawns a row bomb.
	Shape4V
	// Shape5 is a straight run of five or more. Spawns a rainbow tile.
	Shape5
	// ShapeTL is an intersection of runs (T, L or plus). Spawns an area bomb.
	ShapeTL
	// ShapeSquare is a 2x2 block. Spawns a homing bomb.
	ShapeSquare
)

// String returns a short name for the shape.
func (s MatchShape) String() string {
	switch s {
	case Shape3:
		return "three"
	case Shape4H:
		return "four_h"
	case Shape4V:
		return "four_v"
	case Shape5:
		return "five"
	case ShapeTL:
		return "tl"
	case ShapeSquare:
		return "square"
	default:
		return "unknown"
	}
}

// BombFor returns the power-up spawned by clearing a group of this shape.
func (s MatchShape) BombFor() BombKind {
	switch s {
	case Shape4H:
		// A horizontal run collapses into a bomb that clears the
		// perpendicular line.
		return BombColumn
	case Shape4V:
		return BombRow
	case Shape5:
		return BombRainbow
	case ShapeTL:
		return BombArea
	case ShapeSquare:
		return BombHoming
	default:
		return BombNone
	}
}

// MatchGroup is one connected set of same-type cells forming a match.
type MatchGroup struct {
	Type  TileType
	Shape MatchShape
	Cells []Point
}

// run is a maximal straight or square segment found during scanning.
type run struct {
	cells      []Point
	horizontal bool
	square     bool
}

// FindAllMatchGroups scans the whole board and returns every match group:
// maximal straight runs of three or more and 2x2 squares, merged into
// connected components per type and classified by shape.
//
// Only resting tiles whose cover permits matching participate. Falling
// tiles never match, even when their grid slot lines up.
func (b *Board) FindAllMatchGroups() []MatchGroup {
	runs := b.collectRuns()
	if len(runs) == 0 {
		return nil
	}
	return b.mergeRuns(runs)
}

// collectRuns gathers maximal horizontal runs, vertical runs and squares.
func (b *Board) collectRuns() []run {
	var runs []run
	// Horizontal runs.
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; {
			typ, n := b.runLength(x, y, 1, 0)
			if n >= 3 && typ.Plain() {
				r := run{horizontal: true}
				for i := 0; i < n; i++ {
					r.cells = append(r.cells, Point{X: x + i, Y: y})
				}
				runs = append(runs, r)
			}
			if n == 0 {
				n = 1
			}
			x += n
		}
	}
	// Vertical runs.
	for x := 0; x < b.W; x++ {
		for y := 0; y < b.H; {
			typ, n := b.runLength(x, y, 0, 1)
			if n >= 3 && typ.Plain() {
				r := run{}
				for i := 0; i < n; i++ {
					r.cells = append(r.cells, Point{X: x, Y: y + i})
				}
				runs = append(runs, r)
			}
			if n == 0 {
				n = 1
			}
			y += n
		}
	}
	// 2x2 squares.
	for y := 0; y+1 < b.H; y++ {
		for x := 0; x+1 < b.W; x++ {
			if b.squareAt(x, y) {
				runs = append(runs, run{
					square: true,
					cells: []Point{
						{X: x, Y: y}, {X: x + 1, Y: y},
						{X: x, Y: y + 1}, {X: x + 1, Y: y + 1},
					},
				})
			}
		}
	}
	return runs
}

// runLength measures the maximal same-type run starting at (x, y) in the
// given direction. It returns the run's type and length; length 0 means the
// starting cell cannot match at all.
func (b *Board) runLength(x, y, dx, dy int) (TileType, int) {
	p := Point{X: x, Y: y}
	if !b.CanMatch(p) {
		return TileEmpty, 0
	}
	typ := b.At(x, y).Type
	n := 1
	for {
		q := Point{X: x + n*dx, Y: y + n*dy}
		if !b.CanMatch(q) || b.AtPoint(q).Type != typ {
			return typ, n
		}
		n++
	}
}

// squareAt reports whether a matchable 2x2 block of one type has its
// top-left corner at (x, y).
func (b *Board) squareAt(x, y int) bool {
	p := Point{X: x, Y: y}
	if !b.CanMatch(p) {
		return false
	}
	typ := b.At(x, y).Type
	for _, q := range [3]Point{{X: x + 1, Y: y}, {X: x, Y: y + 1}, {X: x + 1, Y: y + 1}} {
		if !b.CanMatch(q) || b.AtPoint(q).Type != typ {
			return false
		}
	}
	return true
}

// mergeRuns unions runs that share cells into components and classifies
// each component's shape.
func (b *Board) mergeRuns(runs []run) []MatchGroup {
	parent := make([]int, len(runs))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	owner := make(map[Point]int, len(runs)*4)
	for i, r := range runs {
		for _, c := range r.cells {
			if j, ok := owner[c]; ok {
				parent[find(i)] = find(j)
			} else {
				owner[c] = i
			}
		}
	}

	type comp struct {
		cells    map[Point]struct{}
		maxRun   int
		hasH     bool
		hasV     bool
		hasSq    bool
		runCount int
	}
	comps := make(map[int]*comp)
	order := make([]int, 0, len(runs))
	for i, r := range runs {
		root := find(i)
		c, ok := comps[root]
		if !ok {
			c = &comp{cells: make(map[Point]struct{})}
			comps[root] = c
			order = append(order, root)
		}
		for _, p := range r.cells {
			c.cells[p] = struct{}{}
		}
		switch {
		case r.square:
			c.hasSq = true
		case r.horizontal:
			c.hasH = true
		default:
			c.hasV = true
		}
		if !r.square {
			c.runCount++
			if len(r.cells) > c.maxRun {
				c.maxRun = len(r.cells)
			}
		}
	}

	groups := make([]MatchGroup, 0, len(order))
	for _, root := range order {
		c := comps[root]
		cells := make([]Point, 0, len(c.cells))
		for p := range c.cells {
			cells = append(cells, p)
		}
		sortPoints(cells)
		g := MatchGroup{
			Type:  b.AtPoint(cells[0]).Type,
			Cells: cells,
			Shape: classify(c.maxRun, c.hasH, c.hasV, c.hasSq, len(cells)),
		}
		groups = append(groups, g)
	}
	return groups
}

// classify maps a component's structure to its shape.
func classify(maxRun int, hasH, hasV, hasSq bool, size int) MatchShape {
	switch {
	case maxRun >= 5:
		return Shape5
	case hasSq && size == 4:
		return ShapeSquare
	case hasH && hasV:
		return ShapeTL
	case hasSq:
		// A square overlapping a single run still counts as an
		// intersection shape.
		return ShapeTL
	case maxRun == 4 && hasH:
		return Shape4H
	case maxRun == 4:
		return Shape4V
	default:
		return Shape3
	}
}

// sortPoints orders points row-major for deterministic group contents.
func sortPoints(ps []Point) {
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0; j-- {
			a, b := ps[j-1], ps[j]
			if a.Y < b.Y || (a.Y == b.Y && a.X <= b.X) {
				break
			}
			ps[j-1], ps[j] = ps[j], ps[j-1]
		}
	}
}

// HasMatchAt reports whether the tile at p currently sits inside any run of
// three or a 2x2 square. It probes just the lines and squares through p, so
// it is cheap enough to call per candidate move.
func (b *Board) HasMatchAt(p Point) bool {
	if !b.CanMatch(p) {
		return false
	}
	typ := b.AtPoint(p).Type
	// Horizontal line through p.
	n := 1
	for x := p.X - 1; b.CanMatch(Point{X: x, Y: p.Y}) && b.At(x, p.Y).Type == typ; x-- {
		n++
	}
	for x := p.X + 1; b.CanMatch(Point{X: x, Y: p.Y}) && b.At(x, p.Y).Type == typ; x++ {
		n++
	}
	if n >= 3 {
		return true
	}
	// Vertical line through p.
	n = 1
	for y := p.Y - 1; b.CanMatch(Point{X: p.X, Y: y}) && b.At(p.X, y).Type == typ; y-- {
		n++
	}
	for y := p.Y + 1; b.CanMatch(Point{X: p.X, Y: y}) && b.At(p.X, y).Type == typ; y++ {
		n++
	}
	if n >= 3 {
		return true
	}
	// The four squares containing p.
	for _, corner := range [4]Point{
		{X: p.X - 1, Y: p.Y - 1}, {X: p.X, Y: p.Y - 1},
		{X: p.X - 1, Y: p.Y}, {X: p.X, Y: p.Y},
	} {
		if b.squareAt(corner.X, corner.Y) {
			return true
		}
	}
	return false
}
