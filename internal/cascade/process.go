package cascade

// Resolution turns detected match groups into board changes: tiles are
// destroyed, power-ups spawn at group origins, destroyed bombs chain into
// further destruction, covers absorb hits and ground layers take damage.
// One call handles one cascade wave; gravity and refill run afterwards and
// may queue up the next wave.

// baseValue is the per-tile score contribution of a group's shape.
func (s MatchShape) baseValue() int {
	switch s {
	case Shape4H, Shape4V:
		return 20
	case ShapeSquare, ShapeTL:
		return 30
	case Shape5:
		return 50
	default:
		return 10
	}
}

// chainTileValue is the per-tile score for destruction caused by bomb
// effects rather than by a match group.
const chainTileValue = 10

// resolveWave clears the given groups as one cascade wave. focus carries
// the player's swap cells for the first wave after a move; it steers where
// spawned power-ups land. Returns the number of tiles destroyed.
func (e *Engine) resolveWave(groups []MatchGroup, focus []Point) int {
	e.wave++
	e.cascades++
	e.emit(Event{Kind: EventCascade, Value: e.wave})

	// Decide power-up origins up front, before any cell is cleared.
	// Spawns stay in group order so tile IDs replay identically.
	type spawn struct {
		at   Point
		bomb BombKind
		typ  TileType
	}
	var spawns []spawn
	for _, g := range groups {
		e.emit(Event{Kind: EventMatch, At: g.Cells[0], Type: g.Type, Value: len(g.Cells)})
		if bomb := g.Shape.BombFor(); bomb != BombNone {
			spawns = append(spawns, spawn{at: groupOrigin(g, focus), bomb: bomb, typ: g.Type})
		}
	}

	var seeds []Point
	for _, g := range groups {
		seeds = append(seeds, g.Cells...)
	}
	destroyed := e.runChain(seeds)

	// Spawn power-ups on the cleared origins. Spawning after the chain has
	// fully run protects fresh bombs from the wave that created them.
	for _, s := range spawns {
		e.spawnBomb(s.at, s.bomb, s.typ)
	}

	// Score the wave: matched tiles at shape value, chained extras flat.
	matched := 0
	for _, g := range groups {
		pts := len(g.Cells) * g.Shape.baseValue() * e.wave
		matched += len(g.Cells)
		e.score += pts
		e.emit(Event{Kind: EventScore, At: g.Cells[0], Type: g.Type, Value: pts})
	}
	if extra := destroyed - matched; extra > 0 {
		pts := extra * chainTileValue * e.wave
		e.score += pts
		e.emit(Event{Kind: EventScore, Value: pts})
	}
	return destroyed
}

// runChain drains a breadth-first destruction queue: destroying a bomb
// enqueues its blast cells, which may destroy further bombs. Each position
// takes at most one hit per wave, which guarantees termination even with
// cyclic blast overlaps and means a cover that breaks mid-wave still
// shields its tile until the next wave. Returns the number of tiles
// destroyed.
func (e *Engine) runChain(queue []Point) int {
	destroyed := 0
	processed := make(map[Point]struct{}, len(queue))
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if _, done := processed[p]; done {
			continue
		}
		processed[p] = struct{}{}
		if hit, chain := e.hitCell(p); hit {
			destroyed++
			queue = append(queue, chain...)
		}
	}
	return destroyed
}

// hitCell applies one destructive hit to p. It returns whether a tile was
// destroyed and, if the tile carried a bomb, the blast cells to chain into.
func (e *Engine) hitCell(p Point) (bool, []Point) {
	b := e.board
	if !b.InBounds(p.X, p.Y) {
		return false, nil
	}
	if c := b.coverRef(p.X, p.Y); c.Present() {
		e.damageCover(p)
		return false, nil
	}
	t := b.AtPoint(p)
	if t.Empty() || t.Falling {
		return false, nil
	}
	b.Clear(p.X, p.Y)
	e.emit(Event{Kind: EventTileDestroyed, At: p, Tile: t.ID, Type: t.Type, Bomb: t.Bomb})
	e.damageGround(p)

	// Chains break from clears next to them, not only from direct hits.
	for _, q := range [4]Point{p.Add(0, -1), p.Add(0, 1), p.Add(-1, 0), p.Add(1, 0)} {
		if c := b.coverRef(q.X, q.Y); c != nil && c.Present() && c.Kind == CoverChain {
			e.damageCover(q)
		}
	}

	var chain []Point
	if t.Special() {
		e.emit(Event{Kind: EventBombTriggered, At: p, Tile: t.ID, Bomb: t.Bomb})
		chain = e.bombCells(t.Bomb, p)
	}
	return true, chain
}

// damageCover applies one point of damage to the cover at p.
func (e *Engine) damageCover(p Point) {
	c := e.board.coverRef(p.X, p.Y)
	c.Health--
	if c.Health <= 0 {
		e.emit(Event{Kind: EventCoverDestroyed, At: p})
		c.Kind = CoverNone
	} else {
		e.emit(Event{Kind: EventCoverDamaged, At: p, Value: c.Health})
	}
}

// damageGround applies one point of clear damage to the ground layer at p.
func (e *Engine) damageGround(p Point) {
	g := e.board.groundRef(p.X, p.Y)
	if g == nil || !g.Present() {
		return
	}
	g.Health--
	if g.Health <= 0 {
		e.emit(Event{Kind: EventGroundDestroyed, At: p})
		g.Kind = GroundNone
	} else {
		e.emit(Event{Kind: EventGroundDamaged, At: p, Value: g.Health})
	}
}

// spawnBomb mints a power-up tile at p. Rainbow bombs ride on a rainbow
// tile; every other kind keeps the color of the group that produced it.
func (e *Engine) spawnBomb(p Point, bomb BombKind, typ TileType) {
	b := e.board
	if bomb == BombRainbow {
		typ = TileRainbow
	}
	t := b.newTile(p.X, p.Y, typ, bomb)
	b.set(p.X, p.Y, t)
	e.emit(Event{Kind: EventBombSpawned, At: p, Tile: t.ID, Type: typ, Bomb: bomb})
}

// groupOrigin picks where a group's power-up spawns: the player's swap cell
// when it belongs to the group, otherwise the group's middle cell.
func groupOrigin(g MatchGroup, focus []Point) Point {
	for _, f := range focus {
		for _, c := range g.Cells {
			if c == f {
				return f
			}
		}
	}
	return g.Cells[len(g.Cells)/2]
}
