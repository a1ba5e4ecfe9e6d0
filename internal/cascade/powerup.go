package cascade

// Bomb blast shapes and the swap-combo table. Every function here only
// computes target cells; the actual destruction runs through the resolution
// chain in process.go so that covers, ground and nested bombs behave the
// same no matter what triggered the hit.

// areaRadius is the half-extent of an area bomb's square blast.
const areaRadius = 1

// bombCells returns the blast cells for a bomb of the given kind detonating
// at p. The origin itself is already destroyed by the caller.
func (e *Engine) bombCells(kind BombKind, p Point) []Point {
	switch kind {
	case BombRow:
		return e.rowCells(p.Y)
	case BombColumn:
		return e.colCells(p.X)
	case BombArea:
		return e.squareCells(p, areaRadius)
	case BombHoming:
		cells := e.crossArm(p)
		return append(cells, e.randomOccupied(1)...)
	case BombRainbow:
		// Chain-triggered rainbows wipe the most numerous color.
		return e.cellsOfColor(e.board.MostNumerousColor())
	default:
		return nil
	}
}

// comboCells returns the blast cells for two specials swapped together.
// The pair is normalized so each unordered combination maps to one rule.
func (e *Engine) comboCells(a, b BombKind, origin Point) []Point {
	if comboRank(a) > comboRank(b) {
		a, b = b, a
	}
	switch {
	case isLine(a) && isLine(b):
		// Two lines cross at the origin.
		return append(e.rowCells(origin.Y), e.colCells(origin.X)...)
	case isLine(a) && b == BombArea:
		// A widened cross, three cells thick.
		var cells []Point
		for d := -1; d <= 1; d++ {
			if y := origin.Y + d; y >= 0 && y < e.board.H {
				cells = append(cells, e.rowCells(y)...)
			}
			if x := origin.X + d; x >= 0 && x < e.board.W {
				cells = append(cells, e.colCells(x)...)
			}
		}
		return cells
	case isLine(a) && b == BombHoming:
		cells := append(e.rowCells(origin.Y), e.colCells(origin.X)...)
		return append(cells, e.randomOccupied(3)...)
	case isLine(a) && b == BombRainbow:
		return e.convertAndBlast(BombRow)
	case a == BombArea && b == BombArea:
		// One big blast, double the radius plus one.
		return e.squareCells(origin, 2*areaRadius)
	case a == BombArea && b == BombHoming:
		cells := e.squareCells(origin, areaRadius)
		for _, p := range e.randomOccupied(1) {
			cells = append(cells, e.squareCells(p, areaRadius)...)
		}
		return cells
	case a == BombArea && b == BombRainbow:
		return e.convertAndBlast(BombArea)
	case a == BombHoming && b == BombHoming:
		cells := e.crossArm(origin)
		cells = append(cells, origin)
		for _, p := range e.randomOccupied(4) {
			cells = append(cells, e.crossArm(p)...)
			cells = append(cells, p)
		}
		return cells
	case a == BombHoming && b == BombRainbow:
		return e.convertAndBlast(BombHoming)
	case a == BombRainbow && b == BombRainbow:
		// Everything goes.
		var cells []Point
		for y := 0; y < e.board.H; y++ {
			cells = append(cells, e.rowCells(y)...)
		}
		return cells
	default:
		return nil
	}
}

// comboRank orders bomb kinds for combo normalization.
func comboRank(k BombKind) int {
	switch k {
	case BombRow, BombColumn:
		return 0
	case BombArea:
		return 1
	case BombHoming:
		return 2
	case BombRainbow:
		return 3
	default:
		return -1
	}
}

// isLine reports whether the kind clears a straight line.
func isLine(k BombKind) bool {
	return k == BombRow || k == BombColumn
}

// convertAndBlast implements the rainbow upgrade combos: every tile of the
// most numerous color behaves as a bomb of the given kind and detonates in
// place. Line conversions alternate row and column so the board does not
// collapse into a single stripe direction.
func (e *Engine) convertAndBlast(kind BombKind) []Point {
	color := e.board.MostNumerousColor()
	targets := e.cellsOfColor(color)
	var cells []Point
	for i, p := range targets {
		cells = append(cells, p)
		k := kind
		if kind == BombRow && i%2 == 1 {
			k = BombColumn
		}
		switch k {
		case BombRow:
			cells = append(cells, e.rowCells(p.Y)...)
		case BombColumn:
			cells = append(cells, e.colCells(p.X)...)
		case BombArea:
			cells = append(cells, e.squareCells(p, areaRadius)...)
		case BombHoming:
			cells = append(cells, e.crossArm(p)...)
		}
	}
	return cells
}

// rowCells returns every cell of row y.
func (e *Engine) rowCells(y int) []Point {
	cells := make([]Point, 0, e.board.W)
	for x := 0; x < e.board.W; x++ {
		cells = append(cells, Point{X: x, Y: y})
	}
	return cells
}

// colCells returns every cell of column x.
func (e *Engine) colCells(x int) []Point {
	cells := make([]Point, 0, e.board.H)
	for y := 0; y < e.board.H; y++ {
		cells = append(cells, Point{X: x, Y: y})
	}
	return cells
}

// squareCells returns the square of the given radius centered on p, clipped
// to the board.
func (e *Engine) squareCells(p Point, radius int) []Point {
	var cells []Point
	for y := p.Y - radius; y <= p.Y+radius; y++ {
		for x := p.X - radius; x <= p.X+radius; x++ {
			if e.board.InBounds(x, y) {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}

// crossArm returns the four orthogonal neighbors of p, clipped to the board.
func (e *Engine) crossArm(p Point) []Point {
	var cells []Point
	for _, q := range [4]Point{p.Add(0, -1), p.Add(0, 1), p.Add(-1, 0), p.Add(1, 0)} {
		if e.board.InBounds(q.X, q.Y) {
			cells = append(cells, q)
		}
	}
	return cells
}

// randomOccupied draws up to n distinct occupied resting cells using the
// effects stream. Fewer are returned when the board is nearly empty.
func (e *Engine) randomOccupied(n int) []Point {
	b := e.board
	var pool []Point
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			t := b.At(x, y)
			if !t.Empty() && !t.Falling {
				pool = append(pool, Point{X: x, Y: y})
			}
		}
	}
	var out []Point
	for i := 0; i < n && len(pool) > 0; i++ {
		j := e.rng.Effects.Next(len(pool))
		out = append(out, pool[j])
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return out
}

// cellsOfColor returns every resting cell holding a plain tile of the color.
func (e *Engine) cellsOfColor(color TileType) []Point {
	b := e.board
	var cells []Point
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			t := b.At(x, y)
			if !t.Empty() && !t.Falling && t.Type == color {
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}
