package caves

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/core"
)

// mapDefinition builds a definition from its map characters; the player
// hatches after one frame.
func mapDefinition(t *testing.T, rows ...string) *cave.Definition {
	t.Helper()
	d := cave.NewDefinition(len([]rune(rows[0])), len(rows))
	d.Name = "Test"
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
	d.SetAllLevels(func(l *cave.LevelParams) { l.HatchingDelayFrame = 1 })
	return d
}

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func newSession(t *testing.T, d *cave.Definition) *Session {
	t.Helper()
	s := New("test/1", d)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	s.Reset(core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 7, Player: "ann"})
	if err := s.Err(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return s
}

func TestSessionExitRecordsReplay(t *testing.T) {
	d := mapDefinition(t,
		"WWWWW",
		"W@dXW",
		"WWWWW",
	)
	d.DiamondValue = 10
	d.SetAllLevels(func(l *cave.LevelParams) { l.Diamonds = 1 })
	s := newSession(t, d)

	res := s.Step(input(core.ActionRight))
	if res.State.GameOver || res.State.Score != 10 {
		t.Fatalf("after first move state = %+v", res.State)
	}
	if res.Next != 200*time.Millisecond {
		t.Errorf("Next = %v, want the cave frame time", res.Next)
	}
	if s.Replay() != nil {
		t.Fatal("replay available before the game ended")
	}

	res = s.Step(input(core.ActionRight))
	if !res.State.GameOver || !res.State.Won {
		t.Fatalf("state = %+v, want won", res.State)
	}

	r := s.Replay()
	if r == nil {
		t.Fatal("no replay after the game ended")
	}
	if !r.Success || r.Score != 10 || r.Player != "ann" || r.Seed != 7 || len(r.Moves) != 2 {
		t.Errorf("replay = %+v", r)
	}
	if r.Duration != 400*time.Millisecond {
		t.Errorf("duration = %v", r.Duration)
	}
	if got := cave.EncodeMoves(r.Moves); got != "r2" {
		t.Errorf("moves = %q, want r2", got)
	}

	v, err := cave.Verify(d, r)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !v.Match || v.State != cave.PlayerExited {
		t.Errorf("verify = %+v", v)
	}

	// a finished session ignores further input
	before := s.Snapshot()
	s.Step(input(core.ActionLeft))
	if after := s.Snapshot(); after != before {
		t.Errorf("finished session advanced: %+v -> %+v", before, after)
	}
}

func TestSessionSuicideEndsGame(t *testing.T) {
	s := newSession(t, mapDefinition(t,
		"WWWWW",
		"W   W",
		"W @ W",
		"W   W",
		"WWWWW",
	))

	steps := 0
	for ; steps < 100 && !s.State().GameOver; steps++ {
		s.Step(input(core.ActionSuicide))
	}
	st := s.State()
	if !st.GameOver || st.Won {
		t.Fatalf("state after %d steps = %+v", steps, st)
	}
	r := s.Replay()
	if r == nil || r.Success || len(r.Moves) != steps {
		t.Fatalf("replay = %+v, want %d moves", r, steps)
	}
	v, err := cave.Verify(s.def, r)
	if err != nil || !v.Match || v.State != cave.PlayerDied {
		t.Errorf("verify = %+v, %v", v, err)
	}
}

func TestSessionTimeout(t *testing.T) {
	d := mapDefinition(t,
		"WWW",
		"W@W",
		"WWW",
	)
	d.SetAllLevels(func(l *cave.LevelParams) {
		l.Time = 1
		l.Speed = 200
	})
	s := newSession(t, d)
	for i := 0; i < 20 && !s.State().GameOver; i++ {
		s.Step(core.NewInputFrame())
	}
	if snap := s.Snapshot(); snap.State != "timeout" || snap.Frame != 6 {
		t.Errorf("snapshot = %+v, want timeout at frame 6", snap)
	}
}

func TestSessionPause(t *testing.T) {
	s := newSession(t, mapDefinition(t,
		"WWWWW",
		"W@ .W",
		"WWWWW",
	))
	s.Step(core.NewInputFrame())

	res := s.Step(input(core.ActionPause, core.ActionRight))
	if !res.State.Paused {
		t.Fatal("pause not toggled")
	}
	frame := s.Snapshot().Frame
	s.Step(input(core.ActionRight))
	if got := s.Snapshot(); got.Frame != frame || got.PlayerX != 1 {
		t.Errorf("paused session moved: %+v", got)
	}

	s.Step(input(core.ActionPause))
	s.Step(input(core.ActionRight))
	if got := s.Snapshot(); got.PlayerX != 2 || got.Frame != frame+1 {
		t.Errorf("after unpause snapshot = %+v", got)
	}
}

func TestSessionDeterminism(t *testing.T) {
	d := cave.NewDefinition(30, 12)
	d.RandomFill = [4]cave.Element{cave.Stone, cave.Diamond, cave.Firefly1, cave.Space}
	d.RandomProb = [4]int{60, 20, 5, 0}
	d.Objects = append(d.Objects, cave.PointObject(3, 3, cave.Inbox))
	d.SetAllLevels(func(l *cave.LevelParams) {
		l.RandSeed = -1
		l.HatchingDelayFrame = 1
	})

	run := func() Snapshot {
		s := newSession(t, d)
		for i := 0; i < 200; i++ {
			var in core.InputFrame
			switch i % 7 {
			case 0, 1:
				in = input(core.ActionRight)
			case 2, 3:
				in = input(core.ActionDown)
			case 4:
				in = input(core.ActionLeft, core.ActionFire)
			}
			s.Step(in)
		}
		return s.Snapshot()
	}

	first, second := run(), run()
	if first != second {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", first, second)
	}
}

func TestMoveFrom(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		want    cave.Move
	}{
		{"nothing", nil, cave.Move{Dir: cave.Still}},
		{"up", []core.Action{core.ActionUp}, cave.Move{Dir: cave.Up}},
		{"diagonal", []core.Action{core.ActionDown, core.ActionLeft}, cave.Move{Dir: cave.DownLeft}},
		{"opposites cancel", []core.Action{core.ActionUp, core.ActionDown, core.ActionRight}, cave.Move{Dir: cave.Right}},
		{"snap", []core.Action{core.ActionFire, core.ActionLeft}, cave.Move{Dir: cave.Left, Fire: true}},
		{"suicide", []core.Action{core.ActionSuicide}, cave.Move{Suicide: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MoveFrom(input(tc.actions...)); got != tc.want {
				t.Errorf("MoveFrom(%v) = %+v, want %+v", tc.actions, got, tc.want)
			}
		})
	}
}

func TestSessionRender(t *testing.T) {
	s := newSession(t, mapDefinition(t,
		"WWWWW",
		"W@dXW",
		"WWWWW",
	))
	dst := core.NewScreen(40, 10)
	s.Render(dst)

	if hud := dst.Row(0); !strings.Contains(hud, "Test") || !strings.Contains(hud, "Score 000000") {
		t.Errorf("status line = %q", hud)
	}
	if hud := dst.Row(1); !strings.Contains(hud, "Diamonds 00/10") || !strings.Contains(hud, "Time 150") {
		t.Errorf("diamond line = %q", hud)
	}
	if got := dst.GetCell(0, hudHeight); got.Rune != '█' {
		t.Errorf("steel wall drawn as %+v", got)
	}
	if got := dst.GetCell(2, hudHeight+1); got != Glyph(cave.Diamond) {
		t.Errorf("diamond drawn as %+v", got)
	}

	s.Step(input(core.ActionPause))
	s.Render(dst)
	if !strings.Contains(dst.String(), "Paused") {
		t.Error("pause overlay missing")
	}
}

func TestSessionRenderGateOpen(t *testing.T) {
	d := mapDefinition(t,
		"WWWWW",
		"W@dXW",
		"WWWWW",
	)
	d.SetAllLevels(func(l *cave.LevelParams) { l.Diamonds = 1 })
	s := newSession(t, d)
	s.Step(input(core.ActionRight))

	dst := core.NewScreen(40, 10)
	s.Render(dst)
	if hud := dst.Row(1); !strings.Contains(hud, "Diamonds 01/**") {
		t.Errorf("diamond line = %q, want collected first and ** once the gate is open", hud)
	}
}

func TestSessionRenderError(t *testing.T) {
	s := New("bad/1", cave.NewDefinition(0, 0))
	s.Reset(core.DefaultConfig())
	if s.Err() == nil {
		t.Fatal("a 0x0 cave should not render")
	}
	if !s.State().GameOver {
		t.Error("an unrenderable cave should be over")
	}
	dst := core.NewScreen(60, 10)
	s.Render(dst)
	if !strings.Contains(dst.String(), "Cannot play this cave") {
		t.Errorf("error overlay missing:\n%s", dst.String())
	}
}

func TestGlyphCoversEveryElement(t *testing.T) {
	for e := cave.Element(0); e < cave.Unknown; e++ {
		if g := Glyph(e); g.Rune == '?' {
			t.Errorf("%v has no picture", e)
		}
	}
}
