package cascade

import "testing"

const testDt = 1.0 / 60.0

func TestStraightFallFillsGap(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	above := b.At(3, 6).ID
	b.Clear(3, 7)

	e.Tick(testDt)

	// The grid entry moves immediately; the continuous position lags.
	bottom := b.At(3, 7)
	if bottom.ID != above {
		t.Fatalf("expected tile %d pulled into the gap, got %d", above, bottom.ID)
	}
	if !bottom.Falling {
		t.Error("pulled tile is not marked falling")
	}
	if bottom.PY >= 7 {
		t.Errorf("continuous position jumped ahead: PY=%f", bottom.PY)
	}

	e.RunUntilStable()
	if got := b.Count(); got != b.W*b.H {
		t.Errorf("column not refilled: %d of %d tiles", got, b.W*b.H)
	}
	if b.At(3, 7).Falling {
		t.Error("tile still falling after RunUntilStable")
	}
}

func TestVacatedSlotWaitsForHalfCell(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	b.Clear(3, 7)

	e.Tick(testDt)

	// The faller has barely moved, so the slot it vacated must still be
	// empty: the tile above may not start falling yet.
	if !b.At(3, 6).Empty() {
		t.Error("slot above refilled before the faller cleared half a cell")
	}

	// After enough ticks the train gets moving and the slot fills.
	for i := 0; i < 600; i++ {
		e.Tick(testDt)
		if !b.At(3, 6).Empty() {
			return
		}
	}
	t.Error("slot above never refilled")
}

func TestColumnSpacingDuringFall(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	b.Clear(3, 5)
	b.Clear(3, 6)
	b.Clear(3, 7)

	for i := 0; i < 600; i++ {
		e.Tick(testDt)
		for y := 0; y < b.H-1; y++ {
			hi, lo := b.At(3, y), b.At(3, y+1)
			if hi.Empty() || lo.Empty() {
				continue
			}
			if gap := lo.PY - hi.PY; gap < 0.5-1e-9 {
				t.Fatalf("tick %d: tiles at rows %d/%d overlap, gap=%f", i, y, y+1, gap)
			}
		}
		if e.Phase() == PhaseStable && b.Settled() {
			break
		}
	}
	if got := b.Count(); got != b.W*b.H {
		t.Errorf("board not refilled: %d of %d", got, b.W*b.H)
	}
}

func TestDiagonalSlideUnderPlug(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	// Plug column 3 at row 3 with an immovable iced tile, then open the
	// cell beneath it. Nothing can fall straight into (3,4); a neighbor
	// has to slide in diagonally.
	b.SetCover(3, 3, Cover{Kind: CoverIce, Health: 9})
	b.Clear(3, 4)

	e.RunUntilStable()

	if b.At(3, 4).Empty() {
		t.Fatal("no tile slid into the plugged column")
	}
	if got := b.Count(); got != b.W*b.H {
		t.Errorf("board not refilled after slide: %d of %d", got, b.W*b.H)
	}
	if !b.CoverAt(3, 3).Present() {
		t.Error("ice cover vanished without being hit")
	}
}

func TestNoDiagonalSlideWhenStraightFallServes(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	neighbor := b.At(2, 6).ID
	straightAbove := b.At(3, 6).ID
	b.Clear(3, 7)

	e.RunUntilStable()

	// The gap is served by the column above it, never by a neighbor.
	if got := b.At(3, 7).ID; got != straightAbove {
		t.Errorf("expected straight fall of tile %d, got %d", straightAbove, got)
	}
	if got := b.At(2, 6).ID; got != neighbor {
		t.Errorf("neighbor tile %d moved, found %d", neighbor, got)
	}
}

func TestImmovableCoverHoldsTile(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	held := b.At(3, 5).ID
	b.SetCover(3, 5, Cover{Kind: CoverIce, Health: 9})
	b.Clear(3, 7)

	e.RunUntilStable()

	if got := b.At(3, 5).ID; got != held {
		t.Errorf("iced tile moved: had %d, found %d", held, got)
	}
}

func TestBubbleCoverRidesItsTile(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	rider := b.At(3, 6).ID
	b.SetCover(3, 6, Cover{Kind: CoverBubble, Health: 1})
	b.Clear(3, 7)

	e.Tick(testDt)

	// A bubble does not block movement, so its tile is pulled down and
	// the bubble rides along.
	if got := b.At(3, 7).ID; got != rider {
		t.Errorf("bubbled tile did not fall: expected %d at bottom, got %d", rider, got)
	}
	if b.CoverAt(3, 7).Kind != CoverBubble {
		t.Error("bubble did not move with its tile")
	}
	if b.CoverAt(3, 6).Present() {
		t.Error("bubble left a copy behind")
	}
}

func TestRefillSpawnsAboveBoard(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	e.SetSink(sink)
	b := e.Board()
	paintNeutral(b)
	b.Clear(3, 0)

	e.Tick(testDt)

	spawned := b.At(3, 0)
	if spawned.Empty() {
		t.Fatal("top slot not refilled")
	}
	if !spawned.Falling {
		t.Error("spawned tile is not falling")
	}
	// A fresh tile starts above the board and falls in.
	if spawned.PY >= 0 {
		t.Errorf("spawned tile did not start above the board: PY=%f", spawned.PY)
	}
	var sawSpawn bool
	for _, ev := range sink.Events {
		if ev.Kind == EventTileSpawned && ev.At.X == 3 {
			sawSpawn = true
		}
	}
	if !sawSpawn {
		t.Error("no spawn event for the refilled column")
	}
}

func TestLandingEmitsEvent(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	e.SetSink(sink)
	b := e.Board()
	paintNeutral(b)
	b.Clear(3, 7)

	for i := 0; i < 1000 && !b.Settled(); i++ {
		e.Tick(testDt)
	}

	var landings int
	for _, ev := range sink.Events {
		if ev.Kind == EventTileLanded {
			landings++
		}
	}
	if landings == 0 {
		t.Error("no landing events during a column collapse")
	}
}

func TestSettledDistinguishesSealedAndOpenHoles(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)

	if !b.Settled() {
		t.Fatal("full resting board not settled")
	}
	b.Clear(0, 3)
	if b.Settled() {
		t.Error("settled with a hole open to the column above")
	}

	// Seal the hole: ice plugs the column above it and freezes both
	// diagonal donors, so no tile can ever arrive.
	for y := 0; y <= 2; y++ {
		b.SetCover(0, y, Cover{Kind: CoverIce, Health: 1})
		b.SetCover(1, y, Cover{Kind: CoverIce, Health: 1})
	}
	if !b.Settled() {
		t.Error("not settled around a sealed, unreachable hole")
	}

	b.Clear(2, 3)
	if b.Settled() {
		t.Error("settled with a reachable hole in an open column")
	}
}

func TestEngineSettlesAroundUnreachableHole(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	for y := 0; y <= 2; y++ {
		b.SetCover(0, y, Cover{Kind: CoverIce, Health: 1})
		b.SetCover(1, y, Cover{Kind: CoverIce, Health: 1})
	}
	b.Clear(0, 3)
	e.phase = PhaseResolving

	ticks := e.RunUntilStable()

	if e.Phase() != PhaseStable {
		t.Fatal("engine stuck resolving around an unreachable hole")
	}
	if ticks >= e.opts.StableTickCap {
		t.Errorf("RunUntilStable burned the full tick cap: %d", ticks)
	}
	if !b.At(0, 3).Empty() {
		t.Error("a tile reached the sealed cell")
	}

	// The rest of the board must still accept moves.
	placeRun(b, Point{4, 4}, Point{5, 4})
	b.Clear(6, 3)
	b.Place(6, 3, TileYellow, BombNone)
	if !e.ApplyMove(Move{A: Point{X: 6, Y: 3}, B: Point{X: 6, Y: 4}}) {
		t.Error("stable engine rejected a legal move")
	}
}
