package cave

import "testing"

func TestPushBladder(t *testing.T) {
	tests := []struct {
		name   string
		dir    Direction
		bricks []Point
		want   Point // where the bladder ends up; the player stays put when it is the start
	}{
		{"straight on", Right, nil, Point{4, 2}},
		{"upper diagonal first", Right, []Point{{4, 2}}, Point{3, 1}},
		{"lower diagonal", Right, []Point{{4, 2}, {3, 1}}, Point{3, 3}},
		{"stuck", Right, []Point{{4, 2}, {3, 1}, {3, 3}}, Point{3, 2}},
		{"downwards", Down, nil, Point{1, 3}},
		{"upwards", Up, nil, Point{3, 1}},
		{"leftwards", Left, nil, Point{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustRender(t, mapDefinition(t,
				"WWWWWW",
				"W    W",
				"W @  W",
				"W    W",
				"WWWWWW",
			))
			bx, by := 2+tt.dir.DX(), 2+tt.dir.DY()
			c.Set(bx, by, Bladder)
			for _, p := range tt.bricks {
				c.Set(p.X, p.Y, Brick)
			}
			c.Iterate(tt.dir, false, false)

			if got := c.Get(tt.want.X, tt.want.Y); !isBladder(got) {
				t.Fatalf("(%d,%d) = %v, want the bladder", tt.want.X, tt.want.Y, got)
			}
			if n := c.Count(Bladder) + c.Count(Bladder1); n != 1 {
				t.Errorf("%d bladders, want 1", n)
			}
			player := Point{bx, by}
			if tt.want == player {
				player = Point{2, 2}
			}
			if got := c.Get(player.X, player.Y); got != Player {
				t.Errorf("(%d,%d) = %v, want the player", player.X, player.Y, got)
			}
		})
	}
}

func TestTeleporter(t *testing.T) {
	c := mustRender(t, mapDefinition(t,
		"WWWWWWW",
		"W  @  W",
		"W     W",
		"W     W",
		"WWWWWWW",
	))
	c.Set(2, 1, Teleporter)
	c.Set(3, 3, Teleporter)

	c.Iterate(Left, false, false)
	if got := c.Get(2, 3); got != Player {
		t.Fatalf("beside the other teleporter = %v, want the player", got)
	}
	if got := c.Get(3, 1); got != Space {
		t.Errorf("old position = %v, want space", got)
	}
	if c.Get(2, 1) != Teleporter || c.Get(3, 3) != Teleporter {
		t.Error("teleporters moved")
	}
}

func TestKeysOpenDoors(t *testing.T) {
	tests := []struct {
		name    string
		withKey bool
		want    Point
	}{
		{"with key", true, Point{3, 1}},
		{"without key", false, Point{2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustRender(t, mapDefinition(t,
				"WWWWWW",
				"W@   W",
				"WWWWWW",
			))
			if tt.withKey {
				c.Set(2, 1, Key1)
			}
			c.Set(3, 1, Door1)
			c.Iterate(Right, false, false)
			c.Iterate(Right, false, false)

			if got := c.Get(tt.want.X, tt.want.Y); got != Player {
				t.Fatalf("(%d,%d) = %v, want the player", tt.want.X, tt.want.Y, got)
			}
			if !tt.withKey && c.Get(3, 1) != Door1 {
				t.Errorf("door = %v, want it closed", c.Get(3, 1))
			}
			if c.Keys[0] != 0 {
				t.Errorf("keys left = %d, want 0", c.Keys[0])
			}
		})
	}
}

func TestPotEnablesGravitySwitch(t *testing.T) {
	d := mapDefinition(t,
		"WWWWWW",
		"W@   W",
		"WWWWWW",
	)
	d.GravityChangeTime = 1
	c := mustRender(t, d)
	c.Set(2, 1, Pot)
	c.Set(4, 1, GravitySwitch)
	c.Skeletons = 5

	c.Iterate(Right, false, false)
	if c.Get(2, 1) != PlayerStirring || !c.GravityDisabled {
		t.Fatalf("at the pot: %v, gravity disabled %v", c.Get(2, 1), c.GravityDisabled)
	}
	if c.Skeletons != 0 {
		t.Errorf("skeletons = %d, want 0", c.Skeletons)
	}

	c.Iterate(Still, true, false)
	if c.Get(2, 1) != Player || c.GravityDisabled || !c.GravitySwitchActive {
		t.Fatalf("after stirring: %v, disabled %v, switch %v",
			c.Get(2, 1), c.GravityDisabled, c.GravitySwitchActive)
	}

	c.Iterate(Right, false, false)
	c.Iterate(Right, false, false)
	if c.Get(3, 1) != Player || c.Get(4, 1) != GravitySwitch {
		t.Fatalf("at the switch: %v %v", c.Get(3, 1), c.Get(4, 1))
	}
	if c.GravitySwitchActive {
		t.Error("switch still active after use")
	}

	// one second at 200ms frames
	for i := 0; i < 3; i++ {
		c.Iterate(Still, false, false)
	}
	if c.GravityNow != Down {
		t.Fatalf("gravity = %v before the delay, want %v", c.GravityNow, Down)
	}
	c.Iterate(Still, false, false)
	if c.GravityNow != Right {
		t.Errorf("gravity = %v, want %v", c.GravityNow, Right)
	}
}

func TestPotNeedsSkeletons(t *testing.T) {
	c := mustRender(t, mapDefinition(t,
		"WWWW",
		"W@ W",
		"WWWW",
	))
	c.Set(2, 1, Pot)
	c.Skeletons = 4
	c.Iterate(Right, false, false)
	if c.Get(1, 1) != Player || c.Get(2, 1) != Pot {
		t.Errorf("short of skeletons: %v %v", c.Get(1, 1), c.Get(2, 1))
	}
}

func TestPneumaticHammer(t *testing.T) {
	d := mapDefinition(t,
		"WWWWW",
		"W@  W",
		"WwwwW",
		"W   W",
		"WWWWW",
	)
	d.HammeredWallsReappear = true
	d.HammeredWallReappearFrame = 3
	c := mustRender(t, d)
	c.GotHammer = true

	c.Iterate(Right, true, false)
	if c.Get(2, 1) != PneumaticActiveRight || c.Get(1, 1) != PlayerPneumaticRight {
		t.Fatalf("hammer start: %v %v", c.Get(1, 1), c.Get(2, 1))
	}

	want := []Element{Brick, Brick, Brick, Brick, Space, Space, Space, Brick}
	for i, w := range want {
		c.Iterate(Still, false, false)
		if got := c.Get(2, 2); got != w {
			t.Fatalf("frame %d: wall = %v, want %v", i+2, got, w)
		}
	}
	if c.Get(1, 1) != Player || c.Get(2, 1) != Space {
		t.Errorf("after the stroke: %v %v", c.Get(1, 1), c.Get(2, 1))
	}
}

func TestHammerNeedsFooting(t *testing.T) {
	c := mustRender(t, mapDefinition(t,
		"WWWWW",
		"W@  W",
		"W wwW",
		"WWWWW",
	))
	c.GotHammer = true
	c.Iterate(Right, true, false)
	if c.HammerActiveDelay != 0 {
		t.Errorf("hammer started with nothing under the player")
	}
}

func TestTwoPlayersScannedOnce(t *testing.T) {
	for _, first := range []bool{false, true} {
		d := mapDefinition(t,
			"WWWWWWW",
			"W@r  @W",
			"WWWWWWW",
		)
		d.PushingStoneProb = 1000000
		d.ActiveIsFirstFound = first
		c := mustRender(t, d)
		c.Iterate(Right, false, false)

		want := []Element{Steel, Space, Player, Stone, Space, Player, Steel}
		for x, w := range want {
			if got := c.Get(x, 1); got != w {
				t.Errorf("first=%v: (%d,1) = %v, want %v", first, x, got, w)
			}
		}
		wantX := 5
		if first {
			wantX = 2
		}
		if c.PlayerX != wantX {
			t.Errorf("first=%v: player x = %d, want %d", first, c.PlayerX, wantX)
		}
	}
}
