package cave

import "fmt"

// ObjectKind selects the drawing operation of an Object.
type ObjectKind uint8

const (
	ObjPoint ObjectKind = iota
	ObjLine
	ObjRectangle
	ObjFilledRect
	ObjRaster
	ObjJoin
	ObjFloodFillReplace
	ObjFloodFillBorder
	ObjMaze
	ObjMazeUnicursal
	ObjMazeBraid
	ObjRandomFill
	ObjCopyPaste
)

var objectKindNames = []string{
	"point", "line", "rectangle", "fillrect", "raster", "join",
	"floodfill_replace", "floodfill_border", "maze", "maze_unicursal",
	"maze_braid", "random_fill", "copy_paste",
}

func (k ObjectKind) String() string {
	if int(k) < len(objectKindNames) {
		return objectKindNames[k]
	}
	return fmt.Sprintf("object(%d)", uint8(k))
}

// ParseObjectKind converts an object kind name.
func ParseObjectKind(s string) (ObjectKind, bool) {
	for i, n := range objectKindNames {
		if n == s {
			return ObjectKind(i), true
		}
	}
	return 0, false
}

// Object is a deferred drawing instruction applied when a cave is rendered.
// The meaning of the fields depends on Kind:
//
//	Point             X1,Y1 Elem
//	Line              X1,Y1 to X2,Y2 Elem
//	Rectangle         X1,Y1 to X2,Y2 outline Elem
//	FilledRect        outline Elem, inside Fill
//	Raster            X1,Y1 to X2,Y2 every DX,DY cells Elem
//	Join              for every Elem, Fill at offset DX,DY
//	FloodFillReplace  region of Elem around X1,Y1 becomes Fill
//	FloodFillBorder   region around X1,Y1 bounded by Elem becomes Fill
//	Maze*             X1,Y1 to X2,Y2, walls Elem, paths Fill
//	RandomFill        X1,Y1 to X2,Y2 from Fill/RandomFill, only over Mask
//	CopyPaste         X1,Y1 to X2,Y2 copied to DX,DY
type Object struct {
	Kind   ObjectKind
	Levels [NumLevels]bool

	X1, Y1, X2, Y2 int
	DX, DY         int

	Elem Element
	Fill Element

	// maze and random fill
	Seed         [NumLevels]int // -1 takes a seed from the cave's generator
	HorizPercent int            // maze: chance of trying a horizontal carve first
	WallWidth    int
	PathWidth    int
	RandomFill   [4]Element
	RandomProb   [4]int // 0..255
	Mask         Element
	C64Random    bool

	// copy-paste
	Mirror bool
	Flip   bool
}

// AllLevels is a level mask enabling an object on every level.
var AllLevels = [NumLevels]bool{true, true, true, true, true}

// NewObject returns an object of kind k enabled on all levels, with the
// defaults of an empty cave editor object.
func NewObject(k ObjectKind) Object {
	return Object{
		Kind:         k,
		Levels:       AllLevels,
		Seed:         [NumLevels]int{-1, -1, -1, -1, -1},
		HorizPercent: 50,
		WallWidth:    1,
		PathWidth:    1,
		DX:           1,
		DY:           1,
		Elem:         Steel,
		Fill:         Space,
		Mask:         None,
		RandomFill:   [4]Element{Space, Space, Space, Space},
	}
}

// PointObject places a single element.
func PointObject(x, y int, e Element) Object {
	o := NewObject(ObjPoint)
	o.X1, o.Y1, o.Elem = x, y, e
	return o
}

// LineObject draws e from x1,y1 to x2,y2.
func LineObject(x1, y1, x2, y2 int, e Element) Object {
	o := NewObject(ObjLine)
	o.X1, o.Y1, o.X2, o.Y2, o.Elem = x1, y1, x2, y2, e
	return o
}

// RectObject draws the outline of a rectangle.
func RectObject(x1, y1, x2, y2 int, e Element) Object {
	o := NewObject(ObjRectangle)
	o.X1, o.Y1, o.X2, o.Y2, o.Elem = x1, y1, x2, y2, e
	return o
}

// FilledRectObject draws a rectangle outlined with e and filled with fill.
func FilledRectObject(x1, y1, x2, y2 int, e, fill Element) Object {
	o := NewObject(ObjFilledRect)
	o.X1, o.Y1, o.X2, o.Y2, o.Elem, o.Fill = x1, y1, x2, y2, e, fill
	return o
}

// Active reports whether the object is drawn on level.
func (o *Object) Active(level int) bool {
	return level >= 0 && level < NumLevels && o.Levels[level]
}

func ordered(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// draw applies the object to the cave. idx is the object's position in the
// definition's list and is recorded as the drawing object of every cell.
func (c *Cave) draw(o *Object, idx int) {
	switch o.Kind {
	case ObjPoint:
		c.drawStore(o.X1, o.Y1, o.Elem, idx)
	case ObjLine:
		c.drawLine(o, idx)
	case ObjRectangle:
		c.drawRect(o, idx, false)
	case ObjFilledRect:
		c.drawRect(o, idx, true)
	case ObjRaster:
		c.drawRaster(o, idx)
	case ObjJoin:
		c.drawJoin(o, idx)
	case ObjFloodFillReplace:
		c.floodFillReplace(o, idx)
	case ObjFloodFillBorder:
		c.floodFillBorder(o, idx)
	case ObjMaze, ObjMazeUnicursal, ObjMazeBraid:
		c.drawMaze(o, idx)
	case ObjRandomFill:
		c.drawRandomFill(o, idx)
	case ObjCopyPaste:
		c.drawCopyPaste(o, idx)
	default:
		panic(fmt.Sprintf("cave: no drawing operation for %v", o.Kind))
	}
}

// drawLine uses Bresenham stepping, both endpoints included.
func (c *Cave) drawLine(o *Object, idx int) {
	x, y := o.X1, o.Y1
	dx := abs(o.X2 - o.X1)
	dy := -abs(o.Y2 - o.Y1)
	sx, sy := 1, 1
	if o.X1 > o.X2 {
		sx = -1
	}
	if o.Y1 > o.Y2 {
		sy = -1
	}
	err := dx + dy
	for {
		c.drawStore(x, y, o.Elem, idx)
		if x == o.X2 && y == o.Y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func (c *Cave) drawRect(o *Object, idx int, filled bool) {
	x1, x2 := ordered(o.X1, o.X2)
	y1, y2 := ordered(o.Y1, o.Y2)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			border := x == x1 || x == x2 || y == y1 || y == y2
			switch {
			case border:
				c.drawStore(x, y, o.Elem, idx)
			case filled:
				c.drawStore(x, y, o.Fill, idx)
			}
		}
	}
}

func (c *Cave) drawRaster(o *Object, idx int) {
	x1, x2 := ordered(o.X1, o.X2)
	y1, y2 := ordered(o.Y1, o.Y2)
	dx, dy := max(o.DX, 1), max(o.DY, 1)
	for y := y1; y <= y2; y += dy {
		for x := x1; x <= x2; x += dx {
			c.drawStore(x, y, o.Elem, idx)
		}
	}
}

// drawJoin puts Fill at a fixed offset from every Elem. The scan runs against
// the offset so that freshly written cells are not found again. Crossing the
// right or left edge moves to the next or previous row.
func (c *Cave) drawJoin(o *Object, idx int) {
	put := func(x, y int) {
		nx, ny := x+o.DX, y+o.DY
		for nx >= c.W {
			nx -= c.W
			ny++
		}
		for nx < 0 {
			nx += c.W
			ny--
		}
		c.drawStore(nx, ny, o.Fill, idx)
	}
	if o.DY*c.W+o.DX < 0 {
		for y := 0; y < c.H; y++ {
			for x := 0; x < c.W; x++ {
				if c.rows[y][x].Elem == o.Elem {
					put(x, y)
				}
			}
		}
		return
	}
	for y := c.H - 1; y >= 0; y-- {
		for x := c.W - 1; x >= 0; x-- {
			if c.rows[y][x].Elem == o.Elem {
				put(x, y)
			}
		}
	}
}

var fillDirs = [4]Direction{Left, Up, Right, Down}

// floodFillReplace replaces the 4-connected region of Elem containing
// X1,Y1 with Fill.
func (c *Cave) floodFillReplace(o *Object, idx int) {
	if o.Elem == o.Fill || !c.inside(o.X1, o.Y1) || c.rows[o.Y1][o.X1].Elem != o.Elem {
		return
	}
	stack := []Point{{o.X1, o.Y1}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !c.inside(p.X, p.Y) || c.rows[p.Y][p.X].Elem != o.Elem {
			continue
		}
		c.drawStore(p.X, p.Y, o.Fill, idx)
		for i := len(fillDirs) - 1; i >= 0; i-- {
			d := fillDirs[i]
			stack = append(stack, Point{p.X + d.DX(), p.Y + d.DY()})
		}
	}
}

// floodFillBorder paints everything reachable from X1,Y1 that is not Elem,
// then turns every cell attributed to this object into Fill.
func (c *Cave) floodFillBorder(o *Object, idx int) {
	stack := []Point{{o.X1, o.Y1}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !c.inside(p.X, p.Y) {
			continue
		}
		i := p.Y*c.W + p.X
		if c.objectOrder[i] == idx || c.cells[i].Elem == o.Elem {
			continue
		}
		c.drawStore(p.X, p.Y, o.Elem, idx)
		for j := len(fillDirs) - 1; j >= 0; j-- {
			d := fillDirs[j]
			stack = append(stack, Point{p.X + d.DX(), p.Y + d.DY()})
		}
	}
	for i := range c.cells {
		if c.objectOrder[i] == idx {
			c.cells[i] = C(o.Fill)
		}
	}
}

// objectSeed returns the seed of a randomized object on the current level.
func (c *Cave) objectSeed(o *Object) uint32 {
	s := o.Seed[c.Level]
	if s < 0 {
		return uint32(c.Random.IntRange(0, 1<<16))
	}
	return uint32(s)
}

// pickRandom applies the fill thresholds: later candidates override earlier
// ones when the random byte is below their probability.
func pickRandom(randm int, base Element, fill [4]Element, prob [4]int) Element {
	e := base
	for i := 0; i < 4; i++ {
		if randm < prob[i] {
			e = fill[i]
		}
	}
	return e
}

func (c *Cave) drawRandomFill(o *Object, idx int) {
	seed := c.objectSeed(o)
	var next func() int
	if o.C64Random {
		r := NewC64Random(uint16(seed))
		next = r.Next
	} else {
		r := NewRandom(seed)
		next = func() int { return r.IntRange(0, 256) }
	}
	x1, x2 := ordered(o.X1, o.X2)
	y1, y2 := ordered(o.Y1, o.Y2)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			e := pickRandom(next(), o.Fill, o.RandomFill, o.RandomProb)
			if o.Mask == None || c.Get(x, y) == o.Mask {
				c.drawStore(x, y, e, idx)
			}
		}
	}
}

func (c *Cave) drawCopyPaste(o *Object, idx int) {
	x1, x2 := ordered(o.X1, o.X2)
	y1, y2 := ordered(o.Y1, o.Y2)
	w, h := x2-x1+1, y2-y1+1
	clip := make([]Element, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			clip[y*w+x] = c.Get(x1+x, y1+y)
		}
	}
	for y := 0; y < h; y++ {
		ty := y
		if o.Flip {
			ty = h - 1 - y
		}
		for x := 0; x < w; x++ {
			tx := x
			if o.Mirror {
				tx = w - 1 - x
			}
			c.drawStore(o.DX+tx, o.DY+ty, clip[y*w+x], idx)
		}
	}
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
