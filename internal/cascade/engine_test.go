package cascade

import (
	"reflect"
	"testing"
)

func newTestEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	opts := DefaultOptions()
	opts.Seed = seed
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

// paintNeutral overwrites the board with a three-color pattern that contains
// no runs and no squares, so tests can add exactly the matches they want.
func paintNeutral(b *Board) {
	colors := [3]TileType{TileRed, TileGreen, TileBlue}
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			b.Clear(x, y)
			b.Place(x, y, colors[(x+2*y)%3], BombNone)
		}
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Options)
	}{
		{"tiny board", func(o *Options) { o.Width = 2 }},
		{"too few colors", func(o *Options) { o.Colors = 2 }},
		{"too many colors", func(o *Options) { o.Colors = 7 }},
		{"zero gravity", func(o *Options) { o.Gravity = 0 }},
	}
	for _, tc := range cases {
		opts := DefaultOptions()
		tc.mod(&opts)
		if _, err := New(opts); err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
	}
}

func TestFreshBoardIsFullAndMatchFree(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		e := newTestEngine(t, seed)
		b := e.Board()
		if got := b.Count(); got != b.W*b.H {
			t.Errorf("seed %d: expected %d tiles, got %d", seed, b.W*b.H, got)
		}
		if groups := b.FindAllMatchGroups(); len(groups) != 0 {
			t.Errorf("seed %d: fresh board has %d match groups", seed, len(groups))
		}
		if e.Phase() != PhaseStable {
			t.Errorf("seed %d: fresh engine not stable", seed)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	// Two engines with the same seed, driven by the same greedy-first
	// policy, must stay byte-for-byte identical.
	e1 := newTestEngine(t, 12345)
	e2 := newTestEngine(t, 12345)

	for i := 0; i < 10; i++ {
		m1 := e1.LegalMoves()
		m2 := e2.LegalMoves()
		if !reflect.DeepEqual(m1, m2) {
			t.Fatalf("iteration %d: legal moves diverged", i)
		}
		if len(m1) == 0 {
			break
		}
		if ok1, ok2 := e1.ApplyMove(m1[0]), e2.ApplyMove(m2[0]); ok1 != ok2 {
			t.Fatalf("iteration %d: move acceptance diverged", i)
		}
		e1.RunUntilStable()
		e2.RunUntilStable()
	}

	if e1.Score() != e2.Score() {
		t.Errorf("score diverged: %d vs %d", e1.Score(), e2.Score())
	}
	if !reflect.DeepEqual(e1.Snapshot(), e2.Snapshot()) {
		t.Error("snapshots diverged after identical replay")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	e := newTestEngine(t, 777)
	before := e.Snapshot()
	c := e.Clone()

	moves := e.LegalMoves()
	if len(moves) == 0 {
		t.Skip("no legal moves on this seed")
	}
	e.ApplyMove(moves[0])
	e.RunUntilStable()

	if !reflect.DeepEqual(c.Snapshot(), before) {
		t.Error("mutating the original changed the clone")
	}
}

func TestCloneReplaysIdentically(t *testing.T) {
	e := newTestEngine(t, 4242)
	c := e.Clone()

	moves := e.LegalMoves()
	if len(moves) == 0 {
		t.Skip("no legal moves on this seed")
	}
	e.ApplyMove(moves[0])
	c.ApplyMove(moves[0])
	e.RunUntilStable()
	c.RunUntilStable()

	if !reflect.DeepEqual(e.Snapshot(), c.Snapshot()) {
		t.Error("clone diverged from original under identical input")
	}
}

func TestCloneSeededRedrivesRandomness(t *testing.T) {
	e := newTestEngine(t, 1)
	c := e.CloneSeeded(999)
	if c.Seed() != 999 {
		t.Errorf("expected seed 999, got %d", c.Seed())
	}
	if e.rng.Refill.Next(1000000) == c.rng.Refill.Next(1000000) {
		t.Error("reseeded clone drew the same refill value")
	}
	// The board itself must carry over unchanged.
	if !reflect.DeepEqual(e.Snapshot(), c.Snapshot()) {
		t.Error("CloneSeeded changed board state")
	}
}

func TestApplyMoveRejectsNonAdjacent(t *testing.T) {
	e := newTestEngine(t, 5)
	if e.ApplyMove(Move{A: Point{X: 0, Y: 0}, B: Point{X: 2, Y: 0}}) {
		t.Error("accepted a non-adjacent swap")
	}
	if e.ApplyMove(Move{A: Point{X: 0, Y: 0}, B: Point{X: 1, Y: 1}}) {
		t.Error("accepted a diagonal swap")
	}
	if e.Moves() != 0 {
		t.Errorf("rejected moves consumed the move counter: %d", e.Moves())
	}
}

func TestApplyMoveRevertsDeadSwap(t *testing.T) {
	e := newTestEngine(t, 5)
	paintNeutral(e.Board())
	before := e.Snapshot()

	// The neutral pattern has no matches anywhere, so every plain swap
	// is dead and must revert.
	if e.ApplyMove(Move{A: Point{X: 3, Y: 3}, B: Point{X: 4, Y: 3}}) {
		t.Error("accepted a swap that produces no match")
	}
	if !reflect.DeepEqual(e.Snapshot(), before) {
		t.Error("dead swap left the board changed")
	}
	if e.Phase() != PhaseStable {
		t.Error("dead swap changed the phase")
	}
}

func TestApplyMoveAcceptsMatchingSwap(t *testing.T) {
	e := newTestEngine(t, 5)
	b := e.Board()
	paintNeutral(b)
	// Yellow pair with a third yellow one swap away.
	b.Clear(2, 4)
	b.Place(2, 4, TileYellow, BombNone)
	b.Clear(3, 4)
	b.Place(3, 4, TileYellow, BombNone)
	b.Clear(4, 3)
	b.Place(4, 3, TileYellow, BombNone)

	if !e.ApplyMove(Move{A: Point{X: 4, Y: 3}, B: Point{X: 4, Y: 4}}) {
		t.Fatal("rejected a swap that completes a run of three")
	}
	if e.Moves() != 1 {
		t.Errorf("expected 1 move consumed, got %d", e.Moves())
	}
	if e.Phase() != PhaseResolving {
		t.Error("accepted swap did not enter resolving phase")
	}

	e.RunUntilStable()
	if e.Score() == 0 {
		t.Error("resolved swap awarded no score")
	}
	if got := b.Count(); got != b.W*b.H {
		t.Errorf("board not refilled after cascade: %d of %d", got, b.W*b.H)
	}
}

func TestLegalMovesProbeDoesNotMutate(t *testing.T) {
	e := newTestEngine(t, 31337)
	before := e.Snapshot()
	e.LegalMoves()
	if !reflect.DeepEqual(e.Snapshot(), before) {
		t.Error("LegalMoves mutated the board")
	}
}

func TestTileConservation(t *testing.T) {
	// Over many moves the board must always come back full: every
	// destroyed tile is replaced, none duplicated.
	e := newTestEngine(t, 99)
	b := e.Board()
	for i := 0; i < 20; i++ {
		moves := e.LegalMoves()
		if len(moves) == 0 {
			break
		}
		e.ApplyMove(moves[i%len(moves)])
		e.RunUntilStable()
		if got := b.Count(); got != b.W*b.H {
			t.Fatalf("move %d: board has %d tiles, want %d", i, got, b.W*b.H)
		}
		seen := make(map[TileID]bool)
		for y := 0; y < b.H; y++ {
			for x := 0; x < b.W; x++ {
				id := b.At(x, y).ID
				if seen[id] {
					t.Fatalf("move %d: duplicate tile id %d", i, id)
				}
				seen[id] = true
			}
		}
	}
}

func TestWaveResetsWhenStable(t *testing.T) {
	e := newTestEngine(t, 7)
	moves := e.LegalMoves()
	if len(moves) == 0 {
		t.Skip("no legal moves on this seed")
	}
	e.ApplyMove(moves[0])
	e.RunUntilStable()
	if e.Wave() != 0 {
		t.Errorf("wave counter not reset after settling: %d", e.Wave())
	}
	if e.Phase() != PhaseStable {
		t.Error("engine not stable after RunUntilStable")
	}
}

func TestRunUntilStableRespectsCap(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 3
	opts.StableTickCap = 5
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// A stable board settles well inside any cap.
	if ticks := e.RunUntilStable(); ticks > 5 {
		t.Errorf("RunUntilStable exceeded cap: %d ticks", ticks)
	}
}

func TestBufferSinkCollectsEvents(t *testing.T) {
	sink := &BufferSink{}
	opts := DefaultOptions()
	opts.Seed = 11
	opts.Sink = sink
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	moves := e.LegalMoves()
	if len(moves) == 0 {
		t.Skip("no legal moves on this seed")
	}
	e.ApplyMove(moves[0])
	for i := 0; e.Phase() == PhaseResolving && i < 10000; i++ {
		e.Tick(1.0 / 60)
	}
	if len(sink.Events) == 0 {
		t.Fatal("no events emitted for a full move resolution")
	}

	var sawSwap, sawMatch, sawDestroy, sawSpawn bool
	for _, ev := range sink.Events {
		switch ev.Kind {
		case EventSwap:
			sawSwap = true
		case EventMatch:
			sawMatch = true
		case EventTileDestroyed:
			sawDestroy = true
		case EventTileSpawned:
			sawSpawn = true
		}
	}
	if !sawSwap || !sawMatch || !sawDestroy || !sawSpawn {
		t.Errorf("missing event kinds: swap=%v match=%v destroy=%v spawn=%v",
			sawSwap, sawMatch, sawDestroy, sawSpawn)
	}
}

func TestRunUntilStableEmitsNothing(t *testing.T) {
	sink := &BufferSink{}
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	placeRun(b, Point{2, 4}, Point{3, 4}, Point{4, 4})
	e.SetSink(sink)

	e.RunUntilStable()

	if len(sink.Events) != 0 {
		t.Errorf("headless run emitted %d events", len(sink.Events))
	}
	if e.Score() == 0 {
		t.Error("headless run resolved nothing")
	}
	if e.Cascades() == 0 {
		t.Error("cascade counter not advanced by a headless run")
	}

	// The sink must come back for live ticking afterwards.
	placeRun(b, Point{2, 2}, Point{3, 2}, Point{4, 2})
	e.Tick(1.0 / 60)
	if len(sink.Events) == 0 {
		t.Error("sink not restored after a headless run")
	}
}

func TestStreamDeterminism(t *testing.T) {
	a := NewStream(42)
	b := NewStream(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Next(1000), b.Next(1000); x != y {
			t.Fatalf("draw %d: same seed diverged: %d vs %d", i, x, y)
		}
	}
	c := NewStream(43)
	same := true
	a = NewStream(42)
	for i := 0; i < 10; i++ {
		if a.Next(1000000) != c.Next(1000000) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical sequences")
	}
}

func TestWeightedSpawnerRespectsZeroWeights(t *testing.T) {
	s := NewWeightedSpawner(MaxColors)
	for i := 1; i < MaxColors; i++ {
		s.Weights[i] = 0
	}
	s.rebalance()
	r := NewStream(1)
	for i := 0; i < 50; i++ {
		typ, bomb := s.Spawn(r, SpawnContext{})
		if typ != TileRed || bomb != BombNone {
			t.Fatalf("draw %d: expected plain red, got %v/%v", i, typ, bomb)
		}
	}
}

// stripeSpawner keys each spawn to its column so refill placement shows up
// in the tile types.
type stripeSpawner struct{}

func (stripeSpawner) Spawn(_ Source, ctx SpawnContext) (TileType, BombKind) {
	return FirstColor + TileType(ctx.Column%3), BombNone
}

func TestSpawnSourceSeesItsColumn(t *testing.T) {
	e := newTestEngine(t, 1)
	b := e.Board()
	paintNeutral(b)
	e.spawner = stripeSpawner{}
	b.Clear(1, 0)
	b.Clear(2, 0)

	e.Tick(testDt)

	for _, x := range []int{1, 2} {
		want := FirstColor + TileType(x%3)
		if got := b.At(x, 0).Type; got != want {
			t.Errorf("column %d spawned %v, want %v", x, got, want)
		}
	}
}
