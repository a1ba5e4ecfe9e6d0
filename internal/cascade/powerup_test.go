package cascade

import "testing"

// findBomb scans the board for a tile carrying the given bomb kind.
func findBomb(b *Board, kind BombKind) (Point, Tile, bool) {
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if t := b.At(x, y); !t.Empty() && t.Bomb == kind {
				return Point{X: x, Y: y}, t, true
			}
		}
	}
	return Point{}, Tile{}, false
}

func countDestroyed(events []Event) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == EventTileDestroyed {
			n++
		}
	}
	return n
}

func TestFourHorizontalSpawnsColumnBomb(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	e.SetSink(sink)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{2, 4}, Point{3, 4}, Point{4, 4}, Point{5, 4})

	e.Tick(testDt)

	p, tile, ok := findBomb(b, BombColumn)
	if !ok {
		t.Fatal("no column bomb spawned from a horizontal four")
	}
	// Without a player focus the bomb lands on the group's middle cell.
	if p != (Point{X: 4, Y: 4}) {
		t.Errorf("bomb at (%d,%d), expected (4,4)", p.X, p.Y)
	}
	if tile.Type != TileYellow {
		t.Errorf("bomb kept wrong color: %v", tile.Type)
	}
	var sawSpawnEvent bool
	for _, ev := range sink.Events {
		if ev.Kind == EventBombSpawned && ev.Bomb == BombColumn {
			sawSpawnEvent = true
		}
	}
	if !sawSpawnEvent {
		t.Error("no bomb spawn event emitted")
	}
}

func TestFourVerticalSpawnsRowBomb(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{4, 1}, Point{4, 2}, Point{4, 3}, Point{4, 4})

	e.Tick(testDt)

	if _, _, ok := findBomb(b, BombRow); !ok {
		t.Fatal("no row bomb spawned from a vertical four")
	}
}

func TestFiveSpawnsRainbow(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{1, 4}, Point{2, 4}, Point{3, 4}, Point{4, 4}, Point{5, 4})

	e.Tick(testDt)

	p, tile, ok := findBomb(b, BombRainbow)
	if !ok {
		t.Fatal("no rainbow spawned from a five")
	}
	if tile.Type != TileRainbow {
		t.Errorf("rainbow bomb on non-rainbow tile: %v", tile.Type)
	}
	if p != (Point{X: 3, Y: 4}) {
		t.Errorf("rainbow at (%d,%d), expected middle cell (3,4)", p.X, p.Y)
	}
}

func TestSquareSpawnsHomingBomb(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{2, 2}, Point{3, 2}, Point{2, 3}, Point{3, 3})

	e.Tick(testDt)

	if _, _, ok := findBomb(b, BombHoming); !ok {
		t.Fatal("no homing bomb spawned from a square")
	}
}

func TestTShapeSpawnsAreaBomb(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{2, 2}, Point{3, 2}, Point{4, 2}, Point{3, 3}, Point{3, 4})

	e.Tick(testDt)

	if _, _, ok := findBomb(b, BombArea); !ok {
		t.Fatal("no area bomb spawned from a T shape")
	}
}

func TestBombSpawnsAtSwapCell(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	// Three yellows in a row plus one a swap away: the player completes
	// a horizontal four and the bomb must land on the swapped cell.
	placeRun(b, Point{2, 4}, Point{3, 4}, Point{4, 4})
	b.Clear(5, 3)
	b.Place(5, 3, TileYellow, BombNone)

	if !e.ApplyMove(Move{A: Point{X: 5, Y: 3}, B: Point{X: 5, Y: 4}}) {
		t.Fatal("swap completing a four was rejected")
	}
	e.Tick(testDt)

	p, _, ok := findBomb(b, BombColumn)
	if !ok {
		t.Fatal("no column bomb after swap-completed four")
	}
	if p != (Point{X: 5, Y: 4}) {
		t.Errorf("bomb at (%d,%d), expected swap cell (5,4)", p.X, p.Y)
	}
}

func TestBombCaughtInBlastTriggersAndChains(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	e.SetSink(sink)
	b := e.Board()
	paintNeutral(b)
	// A green row bomb caught in a rainbow swap's color wipe: destroying
	// it detonates it and clears its whole row.
	b.Clear(0, 0)
	b.Place(0, 0, TileRainbow, BombRainbow)
	bombID := b.At(1, 3).ID
	b.tileRef(1, 3).Bomb = BombRow

	if !e.ApplyMove(Move{A: Point{X: 0, Y: 0}, B: Point{X: 1, Y: 0}}) {
		t.Fatal("rainbow swap with plain tile was rejected")
	}

	var triggered bool
	for _, ev := range sink.Events {
		if ev.Kind == EventBombTriggered && ev.Tile == bombID {
			triggered = true
		}
	}
	if !triggered {
		t.Error("no trigger event for the chained bomb")
	}
	for x := 0; x < b.W; x++ {
		if !b.At(x, 3).Empty() {
			t.Errorf("row cell (%d,3) survived the chained row bomb", x)
		}
	}
	if got := b.CountType(TileGreen); got != 0 {
		t.Errorf("%d green tiles survived the color wipe", got)
	}
}

func TestComboLineLineClearsCross(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	e.SetSink(sink)
	b := e.Board()
	paintNeutral(b)
	b.tileRef(3, 3).Bomb = BombRow
	b.tileRef(4, 3).Bomb = BombColumn

	if !e.ApplyMove(Move{A: Point{X: 3, Y: 3}, B: Point{X: 4, Y: 3}}) {
		t.Fatal("special pair swap was rejected")
	}

	// Full row 3 plus full column 4, overlap counted once.
	want := b.W + b.H - 1
	if got := countDestroyed(sink.Events); got != want {
		t.Errorf("cross destroyed %d tiles, want %d", got, want)
	}
	for x := 0; x < b.W; x++ {
		if !b.At(x, 3).Empty() {
			t.Errorf("row cell (%d,3) survived the cross", x)
		}
	}
	for y := 0; y < b.H; y++ {
		if !b.At(4, y).Empty() {
			t.Errorf("column cell (4,%d) survived the cross", y)
		}
	}
	if e.Moves() != 1 {
		t.Errorf("combo consumed %d moves, want 1", e.Moves())
	}
}

func TestComboLineAreaClearsWideCross(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	e.SetSink(sink)
	b := e.Board()
	paintNeutral(b)
	b.tileRef(3, 3).Bomb = BombRow
	b.tileRef(4, 3).Bomb = BombArea

	if !e.ApplyMove(Move{A: Point{X: 3, Y: 3}, B: Point{X: 4, Y: 3}}) {
		t.Fatal("special pair swap was rejected")
	}

	// Rows 2..4 and columns 3..5, nine overlap cells counted once.
	want := 3*b.W + 3*b.H - 9
	if got := countDestroyed(sink.Events); got != want {
		t.Errorf("wide cross destroyed %d tiles, want %d", got, want)
	}
}

func TestComboAreaAreaClearsBigSquare(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	e.SetSink(sink)
	b := e.Board()
	paintNeutral(b)
	b.tileRef(3, 3).Bomb = BombArea
	b.tileRef(4, 3).Bomb = BombArea

	if !e.ApplyMove(Move{A: Point{X: 3, Y: 3}, B: Point{X: 4, Y: 3}}) {
		t.Fatal("special pair swap was rejected")
	}

	// A 5x5 centered on the second cell, fully inside the board.
	if got := countDestroyed(sink.Events); got != 25 {
		t.Errorf("double area destroyed %d tiles, want 25", got)
	}
}

func TestComboRainbowRainbowClearsBoard(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	for _, p := range [2]Point{{3, 3}, {4, 3}} {
		b.Clear(p.X, p.Y)
		b.Place(p.X, p.Y, TileRainbow, BombRainbow)
	}

	if !e.ApplyMove(Move{A: Point{X: 3, Y: 3}, B: Point{X: 4, Y: 3}}) {
		t.Fatal("double rainbow swap was rejected")
	}
	if got := b.Count(); got != 0 {
		t.Errorf("%d tiles survived a double rainbow", got)
	}
}

func TestRainbowSwapClearsPartnerColor(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	b.Clear(0, 0)
	b.Place(0, 0, TileRainbow, BombRainbow)
	partnerColor := b.At(1, 0).Type
	before := b.CountType(partnerColor)
	if before == 0 {
		t.Fatal("partner color missing from the board")
	}

	if !e.ApplyMove(Move{A: Point{X: 0, Y: 0}, B: Point{X: 1, Y: 0}}) {
		t.Fatal("rainbow swap with plain tile was rejected")
	}

	if got := b.CountType(partnerColor); got != 0 {
		t.Errorf("%d tiles of the partner color survived", got)
	}
	if !b.At(0, 0).Empty() {
		t.Error("rainbow tile survived its own swap")
	}
	if b.CountType(TileRainbow) != 0 {
		t.Error("a rainbow tile remains on the board")
	}
	if e.Score() == 0 {
		t.Error("rainbow swap awarded no score")
	}
}

func TestCoverAbsorbsBombHit(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	e.SetSink(sink)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{1, 4}, Point{2, 4}, Point{3, 4})
	b.tileRef(1, 4).Bomb = BombRow
	protected := b.At(6, 4).ID
	b.SetCover(6, 4, Cover{Kind: CoverIce, Health: 2})

	e.Tick(testDt)

	if got := b.At(6, 4).ID; got != protected {
		t.Errorf("covered tile destroyed: had %d, found %d", protected, got)
	}
	if got := b.CoverAt(6, 4).Health; got != 1 {
		t.Errorf("cover health %d after one hit, want 1", got)
	}
	var damaged, destroyed int
	for _, ev := range sink.Events {
		switch ev.Kind {
		case EventCoverDamaged:
			damaged++
		case EventCoverDestroyed:
			destroyed++
		}
	}
	if damaged != 1 || destroyed != 0 {
		t.Errorf("cover events damaged=%d destroyed=%d, want 1/0", damaged, destroyed)
	}
}

func TestCoverBreaksAndEmitsOnce(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	e.SetSink(sink)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{1, 4}, Point{2, 4}, Point{3, 4})
	b.tileRef(1, 4).Bomb = BombRow
	b.SetCover(6, 4, Cover{Kind: CoverIce, Health: 1})

	e.Tick(testDt)

	if b.CoverAt(6, 4).Present() {
		t.Error("health-1 cover survived a hit")
	}
	if b.At(6, 4).Empty() {
		t.Error("tile destroyed in the same hit that broke its cover")
	}
	var destroyed int
	for _, ev := range sink.Events {
		if ev.Kind == EventCoverDestroyed {
			destroyed++
		}
	}
	if destroyed != 1 {
		t.Errorf("expected exactly one cover destroy event, got %d", destroyed)
	}
}

func TestCoverBrokenMidWaveShieldsItsTile(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	kept := b.At(4, 4).ID
	b.SetCover(4, 4, Cover{Kind: CoverIce, Health: 1})

	// Two effects landing on the same cell in one wave: the first hit
	// breaks the ice, the second must not reach the tile underneath.
	e.runChain([]Point{{X: 4, Y: 4}, {X: 4, Y: 4}})

	if b.CoverAt(4, 4).Present() {
		t.Error("health-1 cover survived the wave")
	}
	if got := b.At(4, 4).ID; got != kept {
		t.Errorf("tile destroyed in the wave that broke its cover: had %d, found %d", kept, got)
	}
}

func TestChainBreaksFromAdjacentClear(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{2, 4}, Point{3, 4}, Point{4, 4})
	chained := b.At(5, 4).ID
	b.SetCover(5, 4, Cover{Kind: CoverChain, Health: 1})

	e.Tick(testDt)

	if b.CoverAt(5, 4).Present() {
		t.Error("chain survived a clear on the neighboring cell")
	}
	if got := b.At(5, 4).ID; got != chained {
		t.Errorf("chained tile destroyed: had %d, found %d", chained, got)
	}
}

func TestGroundTakesDamageFromClears(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	e.SetSink(sink)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{2, 4}, Point{3, 4}, Point{4, 4})
	b.SetGround(2, 4, Ground{Kind: GroundDirt, Health: 1})
	b.SetGround(3, 4, Ground{Kind: GroundStone, Health: 2})

	e.Tick(testDt)

	if b.GroundAt(2, 4).Present() {
		t.Error("dirt survived a clear on its cell")
	}
	stone := b.GroundAt(3, 4)
	if !stone.Present() || stone.Health != 2-1 {
		t.Errorf("stone health %d after one clear, want 1", stone.Health)
	}
	var groundDestroyed, groundDamaged bool
	for _, ev := range sink.Events {
		switch ev.Kind {
		case EventGroundDestroyed:
			groundDestroyed = true
		case EventGroundDamaged:
			groundDamaged = true
		}
	}
	if !groundDestroyed || !groundDamaged {
		t.Errorf("ground events destroyed=%v damaged=%v, want both", groundDestroyed, groundDamaged)
	}
}

func TestSpawnedBombSurvivesItsOwnWave(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	// A horizontal four whose middle cell also sits in a row bomb's
	// blast: the four spawns its bomb after the blast has run, so the
	// fresh bomb survives the wave.
	placeRun(b, Point{2, 4}, Point{3, 4}, Point{4, 4}, Point{5, 4})
	b.tileRef(2, 4).Bomb = BombRow

	e.Tick(testDt)

	if _, _, ok := findBomb(b, BombColumn); !ok {
		t.Error("freshly spawned bomb was destroyed by its own wave")
	}
}

func TestCascadeMultiplierGrowsScore(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{2, 4}, Point{3, 4}, Point{4, 4})

	e.Tick(testDt)

	// Wave 1, three tiles at base value.
	if got := e.Score(); got != 3*10 {
		t.Errorf("first wave score %d, want 30", got)
	}
	if e.Wave() != 1 {
		t.Errorf("wave %d after first resolution, want 1", e.Wave())
	}
}
