package cascade

// Gravity works in two phases each tick. First a grid phase walks every
// column bottom-up and pulls tiles into empty slots: the grid entry moves to
// its destination immediately while the continuous position lags behind and
// integrates towards it. Then an integration phase advances PX/PY for every
// falling tile and snaps the ones that arrive.
//
// A slot vacated by a faller may not be refilled until the faller has
// visually cleared half of it, which caps the gap between two tiles of the
// same column at one cell and makes columns move as trains.

// applyGravity runs one gravity step and returns the cells where tiles
// landed this tick.
func (e *Engine) applyGravity(dt float64) []Point {
	e.pullFalls()
	e.markSuspended()
	return e.integrate(dt)
}

// pullFalls scans bottom-up and moves grid entries into empty slots:
// straight falls first, diagonal slides only where no straight fall can ever
// serve the slot.
func (e *Engine) pullFalls() {
	b := e.board
	for y := b.H - 1; y >= 0; y-- {
		for x := 0; x < b.W; x++ {
			if !b.At(x, y).Empty() || b.CoverAt(x, y).BlocksMove() {
				continue
			}
			if e.slotBlockedByFaller(x, y) {
				continue
			}
			if e.pullStraight(x, y) {
				continue
			}
			e.pullDiagonal(x, y)
		}
	}
}

// slotBlockedByFaller reports whether the tile below the empty slot (x, y)
// is a faller still visually overlapping the slot's lower half.
func (e *Engine) slotBlockedByFaller(x, y int) bool {
	below := e.board.At(x, y+1)
	return below.Falling && below.PY < float64(y)+0.5
}

// pullStraight moves the tile directly above into the empty slot (x, y).
func (e *Engine) pullStraight(x, y int) bool {
	b := e.board
	t := b.tileRef(x, y-1)
	if t == nil || t.Empty() || !b.canFall(x, y-1) {
		return false
	}
	if t.Falling {
		// Extend an ongoing straight fall by one slot. Diagonal legs are
		// one cell long and must land before continuing.
		if t.SrcX != float64(t.TargetX) {
			return false
		}
		t.TargetY = y
	} else {
		t.Falling = true
		t.Suspended = false
		t.SrcX = t.PX
		t.SrcY = t.PY
		t.TargetX = x
		t.TargetY = y
	}
	b.set(x, y, *t)
	b.Clear(x, y-1)
	e.moveDynamicCover(x, y-1, x, y)
	return true
}

// moveDynamicCover carries a bubble along with its tile when the tile's
// grid entry moves from (sx, sy) to (dx, dy).
func (e *Engine) moveDynamicCover(sx, sy, dx, dy int) {
	c := e.board.CoverAt(sx, sy)
	if c.Present() && c.Dynamic() {
		e.board.SetCover(dx, dy, c)
		e.board.SetCover(sx, sy, Cover{})
	}
}

// pullDiagonal slides a suspended neighbor into the empty slot (x, y).
// It only applies when the slot is overhead-clear, meaning no tile higher
// in the column can ever reach it by falling straight.
func (e *Engine) pullDiagonal(x, y int) bool {
	b := e.board
	if !e.overheadClear(x, y) {
		return false
	}
	var donors []int
	for _, dx := range [2]int{x - 1, x + 1} {
		if e.diagonalDonor(dx, y-1) {
			donors = append(donors, dx)
		}
	}
	if len(donors) == 0 {
		return false
	}
	dx := donors[0]
	if len(donors) == 2 {
		dx = donors[e.rng.Physics.Next(2)]
	}
	t := b.tileRef(dx, y-1)
	t.Falling = true
	t.Suspended = false
	t.SrcX = t.PX
	t.SrcY = t.PY
	t.TargetX = x
	t.TargetY = y
	b.set(x, y, *t)
	b.Clear(dx, y-1)
	e.moveDynamicCover(dx, y-1, x, y)
	return true
}

// diagonalDonor reports whether the resting tile at (x, y) is suspended,
// meaning free to move but unable to fall straight down.
func (e *Engine) diagonalDonor(x, y int) bool {
	b := e.board
	t := b.At(x, y)
	if t.Empty() || t.Falling || !b.canFall(x, y) {
		return false
	}
	if y+1 >= b.H {
		return false // resting on the floor
	}
	return !b.At(x, y+1).Empty() || b.CoverAt(x, y+1).BlocksMove()
}

// overheadClear reports whether no tile above (x, y) in the same column can
// reach the slot by falling straight.
func (e *Engine) overheadClear(x, y int) bool {
	b := e.board
	for yy := y - 1; yy >= 0; yy-- {
		if b.CoverAt(x, yy).BlocksMove() {
			return true // the column is plugged above this point
		}
		if !b.At(x, yy).Empty() {
			return !b.canFall(x, yy)
		}
	}
	return true
}

// markSuspended refreshes the Suspended flag on resting tiles so that
// snapshots and renderers can tell which tiles are wedged.
func (e *Engine) markSuspended() {
	b := e.board
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			t := b.tileRef(x, y)
			if t.Empty() || t.Falling {
				continue
			}
			t.Suspended = e.diagonalDonor(x, y) &&
				((b.InBounds(x-1, y+1) && b.At(x-1, y+1).Empty()) ||
					(b.InBounds(x+1, y+1) && b.At(x+1, y+1).Empty()))
		}
	}
}

// integrate advances continuous positions for all falling tiles, bottom-up
// per column so that followers can couple to the tile beneath them within
// the same tick.
func (e *Engine) integrate(dt float64) []Point {
	b := e.board
	var landed []Point
	for y := b.H - 1; y >= 0; y-- {
		for x := 0; x < b.W; x++ {
			t := b.tileRef(x, y)
			if t == nil || t.Empty() || !t.Falling {
				continue
			}
			below := b.At(x, y+1)
			if below.Falling && t.SrcX == float64(t.TargetX) {
				// Ride the tile beneath: stay exactly one cell above it
				// and inherit its speed so the column moves as one train.
				t.Following = true
				t.PY = below.PY - 1
				t.Vel = below.Vel
				continue
			}
			t.Following = false
			t.Vel += e.opts.Gravity * dt
			if t.Vel > e.opts.MaxFallSpeed {
				t.Vel = e.opts.MaxFallSpeed
			}
			t.PY += t.Vel * dt
			if t.SrcX != float64(t.TargetX) {
				span := float64(t.TargetY) - t.SrcY
				progress := 1.0
				if span > 0 {
					progress = (t.PY - t.SrcY) / span
				}
				if progress > 1 {
					progress = 1
				}
				t.PX = t.SrcX + progress*(float64(t.TargetX)-t.SrcX)
			}
			if t.PY >= float64(t.TargetY) {
				t.PX = float64(t.TargetX)
				t.PY = float64(t.TargetY)
				t.Vel = 0
				t.Falling = false
				t.Following = false
				landed = append(landed, Point{X: x, Y: y})
				e.emit(Event{Kind: EventTileLanded, At: Point{X: x, Y: y}, Tile: t.ID, Type: t.Type, Bomb: t.Bomb})
			}
		}
	}
	return landed
}
