// Package core provides the platform-neutral types shared by games and the
// terminal front end: the screen buffer, input frames and runtime config.
// It contains no Bubble Tea dependency so game logic stays testable.
package core

// Rect is an axis-aligned rectangle of screen or cave cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Follow scrolls a view of size view over a world of size world so that
// target stays at least margin cells away from the view's edges, starting
// from the current offset. The result keeps the view inside the world; a
// world smaller than the view gets offset 0.
func Follow(offset, target, view, world, margin int) int {
	if world <= view {
		return 0
	}
	margin = min(margin, (view-1)/2)
	if target-offset < margin {
		offset = target - margin
	}
	if target-offset >= view-margin {
		offset = target - view + margin + 1
	}
	return Clamp(offset, 0, world-view)
}
