package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/config"
	"github.com/vovakirdan/tui-caves/internal/core"
	"github.com/vovakirdan/tui-caves/internal/games/caves"
	"github.com/vovakirdan/tui-caves/internal/storage"
)

// shortCave is a cave the player leaves with two steps right.
func shortCave(t *testing.T) *cave.Definition {
	t.Helper()
	rows := []string{
		"WWWWW",
		"W@dXW",
		"WWWWW",
	}
	d := cave.NewDefinition(5, 3)
	d.Name = "Short"
	d.DiamondValue = 10
	d.Map = make([][]cave.Element, len(rows))
	for y, row := range rows {
		for _, ch := range row {
			e, ok := cave.ElementByChar(ch)
			if !ok {
				t.Fatalf("unknown map character %q", ch)
			}
			d.Map[y] = append(d.Map[y], e)
		}
	}
	d.SetAllLevels(func(l *cave.LevelParams) {
		l.HatchingDelayFrame = 1
		l.Diamonds = 1
	})
	return d
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 60, ScreenH: 12, TickRate: 60, Seed: 3, Player: "ann"}
	m := NewModel(caves.New("test/1", shortCave(t)), cfg, Options{
		Keys:  config.KeysArrows,
		Store: store,
		Log:   log.New(io.Discard),
	})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, TickMsg{Loop: m.loop})
}

func TestModelSavesScoreAndReplay(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, store)

	right := tea.KeyMsg{Type: tea.KeyRight}
	m = tick(t, update(t, m, right))
	m = tick(t, update(t, m, right))

	st := m.State()
	if !st.GameOver || !st.Won || st.Score != 10 {
		t.Fatalf("state = %+v, want won with 10 points", st)
	}

	// further ticks must not store the result again
	m = tick(t, m)

	scores, err := store.TopScores("test/1", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 10 || scores[0].Player != "ann" {
		t.Errorf("scores = %+v", scores)
	}

	replays, err := store.Replays("test/1", 10)
	if err != nil {
		t.Fatalf("Replays: %v", err)
	}
	if len(replays) != 1 {
		t.Fatalf("got %d replays, want 1", len(replays))
	}
	r := replays[0].Replay
	if got := cave.EncodeMoves(r.Moves); got != "r2" || !r.Success || r.Seed != 3 {
		t.Errorf("replay = %+v (moves %q)", r, got)
	}
	v, err := cave.Verify(shortCave(t), &r)
	if err != nil || !v.Match {
		t.Errorf("Verify = %+v, %v", v, err)
	}
}

func TestModelIgnoresStaleTicks(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg{Loop: m.loop + 1000})
	if m.State().Score != 0 {
		t.Fatalf("stale tick advanced the game: %+v", m.State())
	}
	m = tick(t, m)
	if m.State().Score != 10 {
		t.Errorf("score = %d after a real tick, want 10", m.State().Score)
	}
}

func TestModelRestartKeepsFixedSeed(t *testing.T) {
	m := newTestModel(t, nil)
	right := tea.KeyMsg{Type: tea.KeyRight}
	m = tick(t, update(t, m, right))
	m = tick(t, update(t, m, right))
	if !m.State().GameOver {
		t.Fatal("game not over")
	}

	m = tick(t, update(t, m, runes("r")))
	if m.State().GameOver || m.State().Score != 0 {
		t.Errorf("state after restart = %+v", m.State())
	}
	if m.config.Seed != 3 {
		t.Errorf("seed = %d, want the fixed seed 3", m.config.Seed)
	}
	if m.saved {
		t.Error("saved flag survived the restart")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	m := newTestModel(t, nil)
	m = tick(t, update(t, m, tea.KeyMsg{Type: tea.KeyRight}))
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.State().Score != 10 {
		t.Errorf("resize reset the game: %+v", m.State())
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30-helpHeight {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := update(t, newTestModel(t, nil), tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Back() || !m.Quitting() {
		t.Errorf("esc: back=%v quitting=%v", m.Back(), m.Quitting())
	}

	m = update(t, newTestModel(t, nil), runes("q"))
	if m.Back() || !m.Quitting() {
		t.Errorf("q: back=%v quitting=%v", m.Back(), m.Quitting())
	}
	if m.View() != "" {
		t.Error("view not empty after quit")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, nil)
	view := m.View()
	if !strings.Contains(view, "Short") {
		t.Errorf("view lacks the cave name:\n%s", view)
	}
	if !strings.Contains(view, "move") {
		t.Errorf("view lacks key help:\n%s", view)
	}
}

func TestSanitizeFileName(t *testing.T) {
	if got := sanitizeFileName("set/12"); got != "set_12" {
		t.Errorf("sanitizeFileName = %q", got)
	}
}
