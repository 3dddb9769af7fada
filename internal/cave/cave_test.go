package cave

import "testing"

var testChars = map[rune]Element{
	' ': Space,
	'.': Dirt,
	'W': Steel,
	'w': Brick,
	'r': Stone,
	'd': Diamond,
	'P': Inbox,
	'@': Player,
	'a': Amoeba,
	'X': PreOutbox,
	'M': MagicWall,
}

// mapDefinition builds a definition from a picture of the cave. The player
// hatches after one frame.
func mapDefinition(t *testing.T, rows ...string) *Definition {
	t.Helper()
	w := len([]rune(rows[0]))
	d := NewDefinition(w, len(rows))
	d.Map = make([][]Element, len(rows))
	for y, row := range rows {
		for _, ch := range row {
			e, ok := testChars[ch]
			if !ok {
				t.Fatalf("unknown map character %q", ch)
			}
			d.Map[y] = append(d.Map[y], e)
		}
	}
	d.SetAllLevels(func(l *LevelParams) { l.HatchingDelayFrame = 1 })
	return d
}

func mustRender(t *testing.T, d *Definition) *Cave {
	t.Helper()
	c, err := Render(d, 0, 0)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	return c
}

func TestAddressingWrap(t *testing.T) {
	c := mustRender(t, NewDefinition(6, 4))
	c.Set(5, 2, Diamond)
	if got := c.Get(-1, 2); got != Diamond {
		t.Errorf("Get(-1, 2) = %v, want %v", got, Diamond)
	}
	c.Set(3, 0, Stone)
	if got := c.Get(3, 4); got != Stone {
		t.Errorf("Get(3, 4) = %v, want %v", got, Stone)
	}
	if got := c.Get(9, -4); got != Stone {
		t.Errorf("Get(9, -4) = %v, want %v", got, Stone)
	}
}

func TestAddressingLineshift(t *testing.T) {
	d := NewDefinition(6, 4)
	d.Lineshift = true
	c := mustRender(t, d)

	tests := []struct {
		x, y   int
		wx, wy int
	}{
		{6, 0, 0, 1},
		{-1, 1, 5, 0},
		{-1, 0, 5, 3},
		{6, 3, 0, 0},
		{13, 0, 1, 2},
	}
	for _, tt := range tests {
		x, y := c.addr(tt.x, tt.y)
		if x != tt.wx || y != tt.wy {
			t.Errorf("addr(%d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.y, x, y, tt.wx, tt.wy)
		}
	}
}

func TestRowsAliasCells(t *testing.T) {
	c := mustRender(t, NewDefinition(5, 3))
	c.Row(1)[2] = C(Diamond)
	if got := c.cells[1*5+2].Element(); got != Diamond {
		t.Errorf("row slice does not alias the grid: got %v", got)
	}
}

func TestPlayerHistoryNewestFirst(t *testing.T) {
	c := mustRender(t, NewDefinition(5, 3))
	for i := 0; i < historySize+3; i++ {
		c.rememberPlayer(i, 0)
	}
	h := c.PlayerHistory()
	if len(h) != historySize {
		t.Fatalf("history length = %d, want %d", len(h), historySize)
	}
	if h[0].X != historySize+2 {
		t.Errorf("newest entry = %d, want %d", h[0].X, historySize+2)
	}
	if h[len(h)-1].X != 3 {
		t.Errorf("oldest entry = %d, want 3", h[len(h)-1].X)
	}
}

func TestCoverUncover(t *testing.T) {
	c := mustRender(t, NewDefinition(4, 4))
	c.CoverAll()
	if !c.CellAt(2, 2).IsCovered() {
		t.Fatal("cell not covered after CoverAll")
	}
	if c.Get(2, 2) != Dirt {
		t.Errorf("covered cell reads %v, want %v", c.Get(2, 2), Dirt)
	}
	r := NewRandom(1)
	for i := 0; i < 1000; i++ {
		if !c.UncoverRandom(r, 4) {
			break
		}
	}
	if c.UncoverRandom(r, 0) {
		t.Error("cells still covered after uncovering")
	}
}
