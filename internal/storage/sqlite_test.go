package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-caves/internal/cave"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{CaveID: "intro/A", Player: "ann", Score: 100},
		{CaveID: "intro/A", Player: "bob", Score: 50, Level: 2},
		{CaveID: "intro/A", Player: "cid", Score: 200},
		{CaveID: "intro/B", Player: "ann", Score: 500},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("intro/A", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("score %d = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Player != "cid" || scores[2].Level != 2 {
		t.Errorf("entries lost fields: %+v", scores)
	}

	other, err := store.TopScores("intro/B", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 score for B, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{CaveID: "test", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("empty")
	if err != nil || high != 0 {
		t.Errorf("HighScore(empty) = %d, %v", high, err)
	}

	store.SaveScore(ScoreEntry{CaveID: "c", Score: 30})
	store.SaveScore(ScoreEntry{CaveID: "c", Score: 70})
	if high, _ := store.HighScore("c"); high != 70 {
		t.Errorf("HighScore = %d, want 70", high)
	}

	if err := store.ClearScores("c"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("c", 10); len(scores) != 0 {
		t.Errorf("scores left after clear: %v", scores)
	}
}

func TestStoreReplays(t *testing.T) {
	store := openTestStore(t)

	r := cave.Replay{
		Seed:     0xDEADBEEF,
		Level:    2,
		Checksum: 0xFFFF0001,
		Moves: []cave.Move{
			{Dir: cave.Right}, {Dir: cave.Right}, {Dir: cave.Up, Fire: true}, {Suicide: true},
		},
		Player:   "ann",
		Success:  true,
		Score:    120,
		Duration: 1500 * time.Millisecond,
		Comment:  "first try",
	}
	id, err := store.SaveReplay("intro/A", r)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	store.SaveReplay("intro/A", cave.Replay{Seed: 1})
	store.SaveReplay("intro/B", cave.Replay{Seed: 2})

	got, err := store.ReplayByID(id)
	if err != nil || got == nil {
		t.Fatalf("ReplayByID() = %v, %v", got, err)
	}
	if got.CaveID != "intro/A" {
		t.Errorf("CaveID = %q", got.CaveID)
	}
	got.Replay.Date = time.Time{}
	if !reflect.DeepEqual(got.Replay, r) {
		t.Errorf("replay = %+v\nwant %+v", got.Replay, r)
	}

	missing, err := store.ReplayByID(id + 100)
	if err != nil || missing != nil {
		t.Errorf("missing replay = %v, %v", missing, err)
	}

	list, err := store.Replays("intro/A", 0)
	if err != nil {
		t.Fatalf("Replays() failed: %v", err)
	}
	if len(list) != 2 || list[0].Replay.Seed != 1 {
		t.Errorf("Replays() = %d entries, newest seed %d", len(list), list[0].Replay.Seed)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{CaveID: "a", Score: 10})
	store.SaveScore(ScoreEntry{CaveID: "a", Score: 30})
	store.SaveScore(ScoreEntry{CaveID: "b", Score: 5})

	stats, err := store.GetCaveStats("a")
	if err != nil {
		t.Fatalf("GetCaveStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v", stats)
	}

	empty, err := store.GetCaveStats("none")
	if err != nil || empty.GamesCount != 0 {
		t.Errorf("empty stats = %+v, %v", empty, err)
	}

	all, err := store.GetAllCavesStats()
	if err != nil {
		t.Fatalf("GetAllCavesStats() failed: %v", err)
	}
	if len(all) != 2 || all["b"].HighScore != 5 {
		t.Errorf("all stats = %v", all)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.caves/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".caves", "test.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}
