package cave

// CellFlag holds the transient per-cell markers.
type CellFlag uint8

const (
	// Scanned marks a cell written during the current frame's scan;
	// the scan skips it once and clears the mark.
	Scanned CellFlag = 1 << iota
	// Covered marks an element standing on something (box mechanics).
	Covered
)

// Cell is one grid position: an element plus its transient flags.
type Cell struct {
	Elem  Element
	Flags CellFlag
}

// C wraps an element in an unflagged cell.
func C(e Element) Cell {
	return Cell{Elem: e}
}

// Element strips the flags and returns the pure element identity.
func (c Cell) Element() Element {
	return c.Elem
}

// IsScanned reports whether the cell was already processed this frame.
func (c Cell) IsScanned() bool {
	return c.Flags&Scanned != 0
}

// IsCovered reports whether the covered marker is set.
func (c Cell) IsCovered() bool {
	return c.Flags&Covered != 0
}
