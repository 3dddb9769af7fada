package caves

import "github.com/vovakirdan/tui-caves/internal/cave"

// Snapshot captures the session state for determinism checks.
type Snapshot struct {
	Frame    int
	Score    int
	PlayerX  int
	PlayerY  int
	Diamonds int
	TimeLeft int
	State    string
	Checksum uint32
	Moves    int
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	if s.cave == nil {
		return Snapshot{State: "error"}
	}
	c := s.cave
	return Snapshot{
		Frame:    c.Frame,
		Score:    c.Score,
		PlayerX:  c.PlayerX,
		PlayerY:  c.PlayerY,
		Diamonds: c.DiamondsCollected,
		TimeLeft: c.TimeSeconds(),
		State:    c.PlayerState.String(),
		Checksum: cave.Checksum(c),
		Moves:    len(s.moves),
	}
}
