package cave

import "fmt"

// Direction is one of the eight compass moves or Still.
// The values go clockwise starting from Up, so a quarter turn is ±2.
type Direction uint8

const (
	Still Direction = iota
	Up
	UpRight
	Right
	DownRight
	Down
	DownLeft
	Left
	UpLeft
)

var (
	dirDX = [9]int{0, 0, 1, 1, 1, 0, -1, -1, -1}
	dirDY = [9]int{0, -1, -1, 0, 1, 1, 1, 0, -1}

	dirNames = [9]string{"still", "up", "upright", "right", "downright", "down", "downleft", "left", "upleft"}
)

// DX returns the horizontal component of the move.
func (d Direction) DX() int { return dirDX[d] }

// DY returns the vertical component of the move.
func (d Direction) DY() int { return dirDY[d] }

// String returns the lower-case direction name.
func (d Direction) String() string {
	if d > UpLeft {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return dirNames[d]
}

// rotate turns a non-still direction by n eighths clockwise (negative n turns counterclockwise).
func (d Direction) rotate(n int) Direction {
	if d == Still {
		return Still
	}
	return Direction((int(d)-1+n%8+8)%8 + 1)
}

// CW4 is the direction a quarter turn clockwise.
func (d Direction) CW4() Direction { return d.rotate(2) }

// CCW4 is the direction a quarter turn counterclockwise.
func (d Direction) CCW4() Direction { return d.rotate(-2) }

// CW8 is the direction an eighth turn clockwise.
func (d Direction) CW8() Direction { return d.rotate(1) }

// CCW8 is the direction an eighth turn counterclockwise.
func (d Direction) CCW8() Direction { return d.rotate(-1) }

// Opposite is the reverse direction.
func (d Direction) Opposite() Direction { return d.rotate(4) }

// Diagonal reports whether the move changes both coordinates.
func (d Direction) Diagonal() bool {
	return d == UpRight || d == DownRight || d == DownLeft || d == UpLeft
}

// ParseDirection converts a direction name back to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for i, n := range dirNames {
		if n == s {
			return Direction(i), true
		}
	}
	return Still, false
}

// creature facing order: sub-variant index 0..3
var creatureDirs = [4]Direction{Left, Up, Right, Down}

// creatures walking backwards use the reversed facing table
var creatureDirsBackwards = [4]Direction{Right, Down, Left, Up}

// biters use their own facing order
var biterDirs = [4]Direction{Up, Right, Down, Left}
