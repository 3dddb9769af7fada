package cave

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadReplay is returned for an undecodable movement stream.
var ErrBadReplay = errors.New("cave: bad replay")

// Move is the input of one frame.
type Move struct {
	Dir     Direction
	Fire    bool
	Suicide bool
}

// Replay is a recorded game: the render seed and level, the moves, and the
// checksum of the grid after the last move.
type Replay struct {
	Seed     uint32
	Level    int
	Checksum uint32
	Moves    []Move
	Player   string
	Date     time.Time
	Success  bool
	Score    int
	Duration time.Duration
	Comment  string
}

var moveCodes = [9]string{".", "u", "ur", "r", "dr", "d", "dl", "l", "ul"}

// stillFire is the code of firing without moving; "." has no upper case.
const stillFire = "F"

func moveCode(m Move) string {
	var b strings.Builder
	if m.Suicide {
		b.WriteByte('k')
	}
	switch {
	case m.Fire && m.Dir == Still:
		b.WriteString(stillFire)
	case m.Fire:
		b.WriteString(strings.ToUpper(moveCodes[m.Dir]))
	default:
		b.WriteString(moveCodes[m.Dir])
	}
	return b.String()
}

// EncodeMoves run-length encodes moves: one space-separated token per run
// of identical moves, with the run length appended when it is above one.
func EncodeMoves(moves []Move) string {
	var tokens []string
	for i := 0; i < len(moves); {
		j := i + 1
		for j < len(moves) && moves[j] == moves[i] {
			j++
		}
		tok := moveCode(moves[i])
		if n := j - i; n > 1 {
			tok += strconv.Itoa(n)
		}
		tokens = append(tokens, tok)
		i = j
	}
	return strings.Join(tokens, " ")
}

// DecodeMoves expands a stream produced by EncodeMoves.
func DecodeMoves(s string) ([]Move, error) {
	var moves []Move
	for _, tok := range strings.Fields(s) {
		m, n, err := decodeToken(tok)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			moves = append(moves, m)
		}
	}
	return moves, nil
}

func decodeToken(tok string) (Move, int, error) {
	var m Move
	rest := tok
	if strings.HasPrefix(rest, "k") {
		m.Suicide = true
		rest = rest[1:]
	}
	end := strings.IndexFunc(rest, func(r rune) bool { return r >= '0' && r <= '9' })
	code, count := rest, ""
	if end >= 0 {
		code, count = rest[:end], rest[end:]
	}

	switch {
	case code == stillFire:
		m.Fire = true
	case code != "" && code == strings.ToUpper(code) && code != ".":
		m.Fire = true
		code = strings.ToLower(code)
		fallthrough
	default:
		found := false
		for d, mc := range moveCodes {
			if mc == code {
				m.Dir = Direction(d)
				found = true
				break
			}
		}
		if !found {
			return Move{}, 0, fmt.Errorf("%w: unknown move %q", ErrBadReplay, tok)
		}
	}

	n := 1
	if count != "" {
		v, err := strconv.Atoi(count)
		if err != nil || v < 1 {
			return Move{}, 0, fmt.Errorf("%w: bad repeat count in %q", ErrBadReplay, tok)
		}
		n = v
	}
	return m, n, nil
}

// Checksum is an Adler-32 style sum over the serialization character of
// every cell in row-major order. It does not depend on element numbering.
func Checksum(c *Cave) uint32 {
	const mod = 65521
	a, b := uint32(1), uint32(0)
	for _, cell := range c.cells {
		a = (a + uint32(table[cell.Elem].Char)) % mod
		b = (b + a) % mod
	}
	return b<<16 | a
}

// VerifyResult is the outcome of replaying a recording.
type VerifyResult struct {
	Checksum uint32 // checksum of the replayed grid
	Match    bool   // equal to the recorded checksum
	Score    int
	State    PlayerState
	Frames   int
}

// Verify renders def with the replay's seed and level, plays the moves and
// compares the resulting checksum. A mismatch is reported in the result,
// not as an error.
func Verify(def *Definition, r *Replay) (VerifyResult, error) {
	c, err := Play(def, r.Level, r.Seed, r.Moves)
	if err != nil {
		return VerifyResult{}, err
	}
	sum := Checksum(c)
	return VerifyResult{
		Checksum: sum,
		Match:    sum == r.Checksum,
		Score:    c.Score,
		State:    c.PlayerState,
		Frames:   c.Frame,
	}, nil
}

// Play renders def and runs moves from a fresh start, returning the cave
// after the last move. It is how recordings are finalized.
func Play(def *Definition, level int, seed uint32, moves []Move) (*Cave, error) {
	c, err := Render(def, level, seed)
	if err != nil {
		return nil, err
	}
	c.SetupForPlay()
	for _, m := range moves {
		c.Iterate(m.Dir, m.Fire, m.Suicide)
	}
	return c, nil
}
