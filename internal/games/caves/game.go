// Package caves turns a cave definition into a playable game session for
// the platform: input frames become engine moves, every move is recorded,
// and the finished game yields a verifiable replay.
package caves

import (
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/core"
)

// scrollMargin is how close the player may come to the edge of the view
// before it scrolls.
const scrollMargin = 4

// Session is one cave being played. It implements core.Game.
type Session struct {
	id  string
	def *cave.Definition
	cfg core.RuntimeConfig

	cave *cave.Cave
	seed uint32
	err  error

	moves    []cave.Move
	elapsed  time.Duration
	paused   bool
	finished *cave.Replay

	scrollX, scrollY int

	now func() time.Time
}

// New creates a session for def. id is the cave ID scores and replays are
// stored under.
func New(id string, def *cave.Definition) *Session {
	return &Session{id: id, def: def, now: time.Now}
}

// ID returns the cave ID.
func (s *Session) ID() string {
	return s.id
}

// Title returns the cave name.
func (s *Session) Title() string {
	return s.def.Name
}

// Reset renders the cave for cfg.Level with cfg.Seed and arms it for play.
func (s *Session) Reset(cfg core.RuntimeConfig) {
	s.cfg = cfg
	s.seed = uint32(cfg.Seed)
	s.moves = nil
	s.elapsed = 0
	s.paused = false
	s.finished = nil
	s.scrollX, s.scrollY = 0, 0

	level := core.Clamp(cfg.Level, 0, cave.NumLevels-1)
	c, err := cave.Render(s.def, level, s.seed)
	if err != nil {
		s.cave, s.err = nil, fmt.Errorf("caves: rendering %s: %w", s.id, err)
		return
	}
	c.SetupForPlay()
	s.cave, s.err = c, nil
}

// Err returns the error of the last Reset, if the cave could not be rendered.
func (s *Session) Err() error {
	return s.err
}

// Cave returns the running cave, nil before Reset or after a render error.
func (s *Session) Cave() *cave.Cave {
	return s.cave
}

// Step runs one engine frame with the move derived from in. A paused or
// finished session does not advance, and neither does the step that toggles
// the pause.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if s.cave == nil || s.finished != nil {
		return core.StepResult{State: s.State()}
	}
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
		return core.StepResult{State: s.State()}
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	m := MoveFrom(in)
	s.cave.Iterate(m.Dir, m.Fire, m.Suicide)
	s.moves = append(s.moves, m)
	frame := time.Duration(s.cave.FrameTime) * time.Millisecond
	s.elapsed += frame

	if over(s.cave.PlayerState) {
		s.finish()
	}
	return core.StepResult{State: s.State(), Next: frame}
}

func over(st cave.PlayerState) bool {
	return st == cave.PlayerTimeout || st == cave.PlayerDied || st == cave.PlayerExited
}

func (s *Session) finish() {
	c := s.cave
	s.finished = &cave.Replay{
		Seed:     s.seed,
		Level:    c.Level,
		Checksum: cave.Checksum(c),
		Moves:    slices.Clone(s.moves),
		Player:   s.cfg.Player,
		Date:     s.now(),
		Success:  c.PlayerState == cave.PlayerExited,
		Score:    c.Score,
		Duration: s.elapsed,
	}
}

// Replay returns the recording of the finished game, or nil while the game
// is still running.
func (s *Session) Replay() *cave.Replay {
	return s.finished
}

// State returns score and progress. A cave that failed to render is over.
func (s *Session) State() core.GameState {
	if s.cave == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    s.cave.Score,
		GameOver: s.finished != nil,
		Won:      s.cave.PlayerState == cave.PlayerExited,
		Paused:   s.paused,
	}
}

// MoveFrom converts the actions of an input frame to an engine move.
// Opposite directions cancel out.
func MoveFrom(in core.InputFrame) cave.Move {
	dx, dy := 0, 0
	if in.Has(core.ActionLeft) {
		dx--
	}
	if in.Has(core.ActionRight) {
		dx++
	}
	if in.Has(core.ActionUp) {
		dy--
	}
	if in.Has(core.ActionDown) {
		dy++
	}
	return cave.Move{
		Dir:     direction(dx, dy),
		Fire:    in.Has(core.ActionFire),
		Suicide: in.Has(core.ActionSuicide),
	}
}

func direction(dx, dy int) cave.Direction {
	switch {
	case dx == 0 && dy < 0:
		return cave.Up
	case dx > 0 && dy < 0:
		return cave.UpRight
	case dx > 0 && dy == 0:
		return cave.Right
	case dx > 0 && dy > 0:
		return cave.DownRight
	case dx == 0 && dy > 0:
		return cave.Down
	case dx < 0 && dy > 0:
		return cave.DownLeft
	case dx < 0 && dy == 0:
		return cave.Left
	case dx < 0 && dy < 0:
		return cave.UpLeft
	}
	return cave.Still
}
