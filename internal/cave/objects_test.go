package cave

import (
	"testing"

	"github.com/zyedidia/generic/mapset"
)

// blankDefinition is a w×h cave of space with a steel border.
func blankDefinition(w, h int) *Definition {
	d := NewDefinition(w, h)
	d.InitialFill = Space
	d.SetAllLevels(func(l *LevelParams) { l.RandSeed = 0 })
	return d
}

func TestRenderBorderAndFill(t *testing.T) {
	c := mustRender(t, NewDefinition(8, 6))
	for x := 0; x < 8; x++ {
		if c.Get(x, 0) != Steel || c.Get(x, 5) != Steel {
			t.Fatalf("border missing at column %d", x)
		}
	}
	if got := c.Get(3, 3); got != Dirt {
		t.Errorf("fill = %v, want %v", got, Dirt)
	}
}

func TestRenderRejectsBadDefinitions(t *testing.T) {
	d := NewDefinition(4, 4)
	d.Map = [][]Element{{Space}}
	if _, err := Render(d, 0, 0); err == nil {
		t.Error("map with wrong shape rendered")
	}
	if _, err := Render(NewDefinition(4, 4), NumLevels, 0); err == nil {
		t.Error("out of range level rendered")
	}
}

func TestRenderObjects(t *testing.T) {
	d := blankDefinition(12, 10)
	lvl2 := PointObject(8, 8, Clock)
	lvl2.Levels = [NumLevels]bool{false, true}
	d.Objects = []Object{
		FilledRectObject(1, 1, 4, 4, Brick, Dirt),
		LineObject(6, 1, 10, 1, Stone),
		PointObject(2, 2, Diamond),
		lvl2,
	}
	c := mustRender(t, d)

	tests := []struct {
		x, y int
		want Element
		obj  int
	}{
		{1, 1, Brick, 0},
		{4, 4, Brick, 0},
		{3, 3, Dirt, 0},
		{2, 2, Diamond, 2},
		{6, 1, Stone, 1},
		{10, 1, Stone, 1},
		{8, 8, Space, -1},
	}
	for _, tt := range tests {
		if got := c.Get(tt.x, tt.y); got != tt.want {
			t.Errorf("(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
		if got := c.ObjectAt(tt.x, tt.y); got != tt.obj {
			t.Errorf("object at (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.obj)
		}
	}

	c2, err := Render(d, 1, 0)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if got := c2.Get(8, 8); got != Clock {
		t.Errorf("level 2 object missing: %v", got)
	}
	if d.Objects[0].Kind != ObjFilledRect {
		t.Error("Render modified the definition")
	}
}

func TestFloodFills(t *testing.T) {
	d := blankDefinition(10, 8)
	replace := NewObject(ObjFloodFillReplace)
	replace.X1, replace.Y1, replace.Elem, replace.Fill = 2, 2, Space, Dirt
	border := NewObject(ObjFloodFillBorder)
	border.X1, border.Y1, border.Elem, border.Fill = 6, 4, Brick, Diamond
	d.Objects = []Object{
		RectObject(5, 3, 8, 6, Brick),
		replace,
		border,
	}
	c := mustRender(t, d)

	if got := c.Get(1, 1); got != Dirt {
		t.Errorf("outside region = %v, want dirt", got)
	}
	if got := c.Get(6, 4); got != Diamond {
		t.Errorf("bordered region = %v, want diamond", got)
	}
	if got := c.Get(5, 3); got != Brick {
		t.Errorf("border = %v, want brick", got)
	}
	if got := c.Get(0, 0); got != Steel {
		t.Errorf("steel border touched: %v", got)
	}
}

func TestRandomFillObjectIsSeeded(t *testing.T) {
	d := blankDefinition(16, 10)
	o := NewObject(ObjRandomFill)
	o.X1, o.Y1, o.X2, o.Y2 = 1, 1, 14, 8
	o.Fill = Dirt
	o.RandomFill = [4]Element{Stone, Diamond, Space, Space}
	o.RandomProb = [4]int{100, 30, 0, 0}
	o.Seed = [NumLevels]int{77, 77, 77, 77, 77}
	d.Objects = []Object{o}

	a, _ := Render(d, 0, 1)
	b, _ := Render(d, 0, 2)
	if Checksum(a) != Checksum(b) {
		t.Error("fixed object seed must not depend on the render seed")
	}
	if a.Count(Stone) == 0 || a.Count(Dirt) == 0 {
		t.Errorf("random fill produced %d stones, %d dirt", a.Count(Stone), a.Count(Dirt))
	}
}

func TestCopyPaste(t *testing.T) {
	d := blankDefinition(10, 6)
	cp := NewObject(ObjCopyPaste)
	cp.X1, cp.Y1, cp.X2, cp.Y2 = 1, 1, 2, 1
	cp.DX, cp.DY = 5, 3
	cp.Mirror = true
	d.Objects = []Object{
		PointObject(1, 1, Stone),
		PointObject(2, 1, Diamond),
		cp,
	}
	c := mustRender(t, d)
	if c.Get(5, 3) != Diamond || c.Get(6, 3) != Stone {
		t.Errorf("mirrored paste = %v %v", c.Get(5, 3), c.Get(6, 3))
	}
}

// mazeDegree counts the open sides of the room at x, y.
func mazeDegree(m [][]bool, x, y int) int {
	h, w := len(m), len(m[0])
	n := 0
	if x > 0 && m[y][x-1] {
		n++
	}
	if x < w-1 && m[y][x+1] {
		n++
	}
	if y > 0 && m[y-1][x] {
		n++
	}
	if y < h-1 && m[y+1][x] {
		n++
	}
	return n
}

func reachable(m [][]bool) int {
	seen := mapset.New[Point]()
	stack := []Point{{0, 0}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p.Y < 0 || p.X < 0 || p.Y >= len(m) || p.X >= len(m[0]) || !m[p.Y][p.X] || seen.Has(p) {
			continue
		}
		seen.Put(p)
		stack = append(stack, Point{p.X + 1, p.Y}, Point{p.X - 1, p.Y}, Point{p.X, p.Y + 1}, Point{p.X, p.Y - 1})
	}
	return seen.Size()
}

func TestPerfectMazeIsTree(t *testing.T) {
	const w, h = 9, 7
	for seed := uint32(0); seed < 10; seed++ {
		m := generateMaze(NewRandom(seed), w, h, 50, false)
		rooms, passages, open := 0, 0, 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !m[y][x] {
					continue
				}
				open++
				if x%2 == 0 && y%2 == 0 {
					rooms++
				} else {
					passages++
				}
			}
		}
		if rooms != (w+1)/2*((h+1)/2) {
			t.Fatalf("seed %d: %d rooms carved", seed, rooms)
		}
		if passages != rooms-1 {
			t.Errorf("seed %d: %d passages for %d rooms, not a tree", seed, passages, rooms)
		}
		if got := reachable(m); got != open {
			t.Errorf("seed %d: %d of %d cells reachable", seed, got, open)
		}
	}
}

func TestPerfectMazeHasDeadEnds(t *testing.T) {
	const w, h = 11, 9
	for seed := uint32(0); seed < 10; seed++ {
		m := generateMaze(NewRandom(seed), w, h, 50, false)
		deadEnds := 0
		for y := 0; y < h; y += 2 {
			for x := 0; x < w; x += 2 {
				if mazeDegree(m, x, y) == 1 {
					deadEnds++
				}
			}
		}
		if deadEnds == 0 {
			t.Errorf("seed %d: perfect maze without dead ends", seed)
		}
	}
}

func TestBraidMazeHasNoDeadEnds(t *testing.T) {
	const w, h = 11, 9
	for seed := uint32(0); seed < 10; seed++ {
		m := generateMaze(NewRandom(seed), w, h, 50, true)
		for y := 0; y < h; y += 2 {
			for x := 0; x < w; x += 2 {
				if d := mazeDegree(m, x, y); d < 2 {
					t.Fatalf("seed %d: dead end at (%d,%d)", seed, x, y)
				}
			}
		}
	}
}

func TestMazeObjectDeterministic(t *testing.T) {
	d := blankDefinition(21, 13)
	for _, k := range []ObjectKind{ObjMaze, ObjMazeBraid, ObjMazeUnicursal} {
		o := NewObject(k)
		o.X1, o.Y1, o.X2, o.Y2 = 1, 1, 19, 11
		o.Elem, o.Fill = Brick, Space
		d.Objects = []Object{o}
		a, _ := Render(d, 0, 5)
		b, _ := Render(d, 0, 5)
		if Checksum(a) != Checksum(b) {
			t.Errorf("%v: same seed rendered differently", k)
		}
		if a.Count(Brick) == 0 || a.Count(Space) == 0 {
			t.Errorf("%v: maze has %d walls and %d paths", k, a.Count(Brick), a.Count(Space))
		}
	}
}
