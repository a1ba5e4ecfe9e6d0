package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "nested", "sub", "test.db"))
	if err != nil {
		t.Fatalf("Open should create parent directories: %v", err)
	}
	store.Close()
}

func TestSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	scores := []int{120, 450, 300, 90, 600}
	for i, sc := range scores {
		if _, err := store.SaveScore("match3", sc, 10+i, int64(i+1)); err != nil {
			t.Fatalf("SaveScore failed: %v", err)
		}
	}

	top, err := store.TopScores("match3", 3)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	want := []int{600, 450, 300}
	for i, e := range top {
		if e.Score != want[i] {
			t.Errorf("entry %d: score %d, want %d", i, e.Score, want[i])
		}
		if e.GameID != "match3" {
			t.Errorf("entry %d: game_id %q", i, e.GameID)
		}
	}
}

func TestTopScoresIsolatesGames(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("match3", 100, 5, 1)
	store.SaveScore("match3_sprint", 999, 30, 1)

	top, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(top) != 1 || top[0].Score != 100 {
		t.Errorf("scores leaked across games: %+v", top)
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	if hs, err := store.HighScore("match3"); err != nil || hs != 0 {
		t.Errorf("empty table: high score %d, err %v", hs, err)
	}

	store.SaveScore("match3", 250, 8, 7)
	store.SaveScore("match3", 175, 6, 8)

	hs, err := store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore failed: %v", err)
	}
	if hs != 250 {
		t.Errorf("high score %d, want 250", hs)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("match3", 100, 5, 1)
	store.SaveScore("match3_sprint", 200, 30, 1)

	if err := store.ClearScores("match3"); err != nil {
		t.Fatalf("ClearScores failed: %v", err)
	}

	top, _ := store.TopScores("match3", 10)
	if len(top) != 0 {
		t.Errorf("match3 scores not cleared: %+v", top)
	}
	other, _ := store.TopScores("match3_sprint", 10)
	if len(other) != 1 {
		t.Error("ClearScores removed scores of another game")
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("match3", 100, 5, 1)
	store.SaveScore("match3", 300, 12, 2)

	stats, err := store.GetGameStats("match3")
	if err != nil {
		t.Fatalf("GetGameStats failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("games count %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("high score %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("avg score %f, want 200", stats.AvgScore)
	}
}

func TestSaveAndRecentSimRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		run := SimRun{
			Policy:     "greedy",
			Games:      1000,
			Seed:       int64(i + 1),
			MeanScore:  1500.5 + float64(i),
			StdDev:     320.2,
			MeanMoves:  42.1,
			MeanWaves:  1.8,
			DurationMS: 2500,
		}
		if _, err := store.SaveSimRun(run); err != nil {
			t.Fatalf("SaveSimRun failed: %v", err)
		}
	}

	runs, err := store.RecentSimRuns(2)
	if err != nil {
		t.Fatalf("RecentSimRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Most recent first.
	if runs[0].Seed != 3 || runs[1].Seed != 2 {
		t.Errorf("unexpected order: seeds %d, %d", runs[0].Seed, runs[1].Seed)
	}
	if runs[0].Policy != "greedy" || runs[0].Games != 1000 {
		t.Errorf("run fields not round-tripped: %+v", runs[0])
	}
	if runs[0].MeanScore != 1502.5 {
		t.Errorf("mean score %f, want 1502.5", runs[0].MeanScore)
	}
}
