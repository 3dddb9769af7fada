package cave

import "testing"

func TestSlime(t *testing.T) {
	tests := []struct {
		name        string
		predictable bool
		perm        int // millionths, or mask bits when predictable
		seed        int
		passes      bool
	}{
		{"random always", false, 1000000, -1, true},
		{"random never", false, 0, -1, false},
		{"predictable open", true, 0, 1, true},
		{"predictable closed", true, 8, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mapDefinition(t,
				"WWW",
				"WrW",
				"W W",
				"W W",
				"WWW",
			)
			d.SlimePredictable = tt.predictable
			d.SetAllLevels(func(l *LevelParams) {
				l.SlimePermeability = tt.perm
				l.SlimePermeabilityC64 = tt.perm
				l.SlimeSeedC64 = tt.seed
			})
			c := mustRender(t, d)
			c.Set(1, 2, Slime)
			c.Iterate(Still, false, false)

			if tt.passes {
				if c.Get(1, 3) != StoneF || c.Get(1, 1) != Space {
					t.Errorf("column = %v %v %v, want the stone through the slime",
						c.Get(1, 1), c.Get(1, 2), c.Get(1, 3))
				}
				return
			}
			if c.Get(1, 1) != Stone || c.Get(1, 3) != Space {
				t.Errorf("column = %v %v %v, want the stone held back",
					c.Get(1, 1), c.Get(1, 2), c.Get(1, 3))
			}
		})
	}
}

func TestAcidEatsDirt(t *testing.T) {
	tests := []struct {
		name   string
		ratio  int
		spread bool
	}{
		{"spreads", 1000000, true},
		{"waits", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mapDefinition(t,
				"WWWWW",
				"W . W",
				"W.  W",
				"W   W",
				"WWWWW",
			)
			d.AcidSpreadRatio = tt.ratio
			c := mustRender(t, d)
			c.Set(2, 2, Acid)
			c.Iterate(Still, false, false)

			want := map[Point]Element{{2, 2}: Acid, {2, 1}: Dirt, {1, 2}: Dirt, {3, 2}: Space}
			if tt.spread {
				want = map[Point]Element{{2, 2}: Explode3, {2, 1}: Acid, {1, 2}: Acid, {3, 2}: Space}
			}
			for p, e := range want {
				if got := c.Get(p.X, p.Y); got != e {
					t.Errorf("(%d,%d) = %v, want %v", p.X, p.Y, got, e)
				}
			}
		})
	}
}

func TestConveyorCarriesStone(t *testing.T) {
	tests := []struct {
		name    string
		belt    Element
		changed bool
		active  bool
		want    Point
	}{
		{"left belt", ConveyorLeft, false, true, Point{1, 2}},
		{"right belt", ConveyorRight, false, true, Point{3, 2}},
		{"left belt reversed", ConveyorLeft, true, true, Point{3, 2}},
		{"stopped belt", ConveyorLeft, false, false, Point{2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mapDefinition(t,
				"WWWWW",
				"W   W",
				"W r W",
				"W   W",
				"WWWWW",
			)
			d.ConveyorBeltsChanged = tt.changed
			d.ConveyorBeltsActive = tt.active
			c := mustRender(t, d)
			c.Set(2, 3, tt.belt)
			c.Iterate(Still, false, false)

			if got := c.Get(tt.want.X, tt.want.Y); got != Stone {
				t.Errorf("(%d,%d) = %v, want the stone", tt.want.X, tt.want.Y, got)
			}
			if n := c.Count(Stone); n != 1 {
				t.Errorf("%d stones, want 1", n)
			}
		})
	}
}

func TestReplicator(t *testing.T) {
	for _, active := range []bool{true, false} {
		d := mapDefinition(t,
			"WWWWW",
			"W d W",
			"W   W",
			"W   W",
			"WWWWW",
		)
		d.ReplicatorsActive = active
		c := mustRender(t, d)
		c.Set(2, 2, Replicator)

		c.Iterate(Still, false, false)
		want := 1
		if active {
			want = 2
			if got := c.Get(2, 3); got != Diamond {
				t.Errorf("below the replicator = %v, want a copy of the diamond", got)
			}
		}
		if n := c.Count(Diamond); n != want {
			t.Errorf("active=%v: %d diamonds after one frame, want %d", active, n, want)
		}
		// the replicator waits before the next copy
		c.Set(2, 3, Space)
		c.Iterate(Still, false, false)
		if n := c.Count(Diamond); n != 1 {
			t.Errorf("active=%v: %d diamonds while waiting, want 1", active, n)
		}
	}
}

func isBladder(e Element) bool {
	return e >= Bladder && e <= Bladder8
}

func TestBladderRises(t *testing.T) {
	c := mustRender(t, mapDefinition(t,
		"WWW",
		"W W",
		"W W",
		"W W",
		"WWW",
	))
	c.Set(1, 3, Bladder)
	for i := 0; i < 8; i++ {
		c.Iterate(Still, false, false)
	}
	if got := c.Get(1, 3); got != Bladder8 {
		t.Fatalf("bladder after 8 frames = %v, want %v", got, Bladder8)
	}
	c.Iterate(Still, false, false)
	if c.Get(1, 2) != Bladder || c.Get(1, 3) != Space {
		t.Errorf("column = %v %v, want the bladder one row higher", c.Get(1, 2), c.Get(1, 3))
	}
}

func TestBladderTurnsIntoClock(t *testing.T) {
	c := mustRender(t, mapDefinition(t,
		"WWW",
		"W W",
		"W W",
		"WWW",
	))
	c.Set(1, 1, Bladder8)
	c.Set(1, 2, Voodoo)
	c.Iterate(Still, false, false)
	if got := c.Get(1, 1); got != PreClock1 {
		t.Fatalf("bladder beside a voodoo = %v, want %v", got, PreClock1)
	}
	for i := 0; i < 4; i++ {
		c.Iterate(Still, false, false)
	}
	if got := c.Get(1, 1); got != Clock {
		t.Errorf("after the birth = %v, want %v", got, Clock)
	}
}

func TestBladderSpender(t *testing.T) {
	c := mustRender(t, openBox(t))
	c.Set(2, 1, BladderSpender)
	c.Iterate(Still, false, false)
	if c.Get(2, 2) != Bladder || c.Get(2, 1) != PreSteel1 {
		t.Fatalf("spender column = %v %v", c.Get(2, 1), c.Get(2, 2))
	}
	for i := 0; i < 4; i++ {
		c.Iterate(Still, false, false)
	}
	if got := c.Get(2, 1); got != Steel {
		t.Errorf("spent spender = %v, want %v", got, Steel)
	}
	if n := c.Count(BladderSpender); n != 0 {
		t.Errorf("%d spenders left", n)
	}
}

func TestExpandingWalls(t *testing.T) {
	horiz := []Point{{1, 2}, {2, 2}, {3, 2}}
	vert := []Point{{2, 1}, {2, 2}, {2, 3}}
	tests := []struct {
		name    string
		elem    Element
		changed bool
		want    []Point
	}{
		{"horizontal", HExpandingWall, false, horiz},
		{"horizontal switched", HExpandingWall, true, vert},
		{"vertical", VExpandingWall, false, vert},
		{"vertical switched", VExpandingWall, true, horiz},
		{"steel horizontal", HExpandingSteelWall, false, horiz},
		{"both ways", ExpandingWall, false, []Point{{1, 2}, {2, 2}, {3, 2}, {2, 1}, {2, 3}}},
		{"both ways ignores the switch", ExpandingWall, true, []Point{{1, 2}, {2, 2}, {3, 2}, {2, 1}, {2, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := openBox(t)
			d.ExpandingWallChanged = tt.changed
			c := mustRender(t, d)
			c.Set(2, 2, tt.elem)
			c.Iterate(Still, false, false)

			if n := c.Count(tt.elem); n != len(tt.want) {
				t.Errorf("%d wall cells, want %d", n, len(tt.want))
			}
			for _, p := range tt.want {
				if got := c.Get(p.X, p.Y); got != tt.elem {
					t.Errorf("(%d,%d) = %v, want %v", p.X, p.Y, got, tt.elem)
				}
			}
		})
	}
}

func TestExpandingWallSwitch(t *testing.T) {
	c := mustRender(t, mapDefinition(t,
		"WWWWW",
		"W@  W",
		"W   W",
		"W   W",
		"WWWWW",
	))
	c.Set(2, 1, ExpandingWallSwitch)

	c.Iterate(Right, false, false)
	if !c.ExpandingWallChangedNow {
		t.Fatal("touching the switch did not flip the walls")
	}
	if c.Get(1, 1) != Player || c.Get(2, 1) != ExpandingWallSwitch {
		t.Fatalf("the switch moved: %v %v", c.Get(1, 1), c.Get(2, 1))
	}

	c.Set(2, 2, HExpandingWall)
	c.Iterate(Still, false, false)
	if got := c.Get(2, 3); got != HExpandingWall {
		t.Errorf("below the switched wall = %v, want it to grow downwards", got)
	}
	if c.Get(1, 2) != Space || c.Get(3, 2) != Space {
		t.Errorf("switched wall grew sideways: %v %v", c.Get(1, 2), c.Get(3, 2))
	}
}

func TestIterateLineshift(t *testing.T) {
	tests := []struct {
		lineshift bool
		grown     Point
		empty     Point
	}{
		{false, Point{0, 1}, Point{0, 2}},
		{true, Point{0, 2}, Point{0, 1}},
	}
	for _, tt := range tests {
		d := mapDefinition(t,
			"    ",
			"    ",
			"    ",
			"    ",
		)
		d.Lineshift = tt.lineshift
		c := mustRender(t, d)
		c.Set(3, 1, HExpandingWall)
		c.Iterate(Still, false, false)

		if got := c.Get(tt.grown.X, tt.grown.Y); got != HExpandingWall {
			t.Errorf("lineshift=%v: (%d,%d) = %v, want the wall", tt.lineshift, tt.grown.X, tt.grown.Y, got)
		}
		if got := c.Get(tt.empty.X, tt.empty.Y); got != Space {
			t.Errorf("lineshift=%v: (%d,%d) = %v, want space", tt.lineshift, tt.empty.X, tt.empty.Y, got)
		}
		if got := c.Get(2, 1); got != HExpandingWall {
			t.Errorf("lineshift=%v: left of the wall = %v", tt.lineshift, got)
		}
	}
}
