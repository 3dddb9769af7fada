package cave

import "testing"

func TestFrameTime(t *testing.T) {
	tests := []struct {
		name         string
		sched        Scheduling
		intermission bool
		reappear     bool
		speed        int
		hw           int
		ck           int
		extra        int
		want         int
	}{
		{"milliseconds", SchedMilliseconds, false, false, 150, 0, 0, 0, 150},
		{"bd1", SchedBD1, false, false, 0, 12, 0, 0, 131},
		{"bd1 intermission", SchedBD1, true, false, 0, 0, 5200, 2600, 67},
		{"bd1 atari", SchedBD1Atari, false, false, 0, 6, 0, 0, 93},
		{"bd1 atari intermission", SchedBD1Atari, true, false, 0, 6, 0, 0, 82},
		{"bd2 element cost", SchedBD2, false, false, 0, 1, 30000, 2600, 92},
		{"bd2 hardware delay", SchedBD2, false, false, 0, 6, 0, 0, 120},
		{"plck", SchedPLCK, false, false, 0, 3, 10000, 0, 75},
		{"atari bd2 and plck", SchedBD2PLCKAtari, false, false, 0, 0, 0, 0, 40},
		{"crazy dream", SchedCrDr, false, false, 0, 0, 0, 0, 130},
		{"crazy dream reappearing walls", SchedCrDr, false, true, 0, 0, 0, 0, 190},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustRender(t, NewDefinition(3, 3))
			c.Scheduling = tt.sched
			c.Intermission = tt.intermission
			c.HammeredWallsReappear = tt.reappear
			c.Speed = tt.speed
			c.HWDelay = tt.hw
			c.CKDelay = tt.ck
			c.CKDelayExtra = tt.extra
			if got := c.frameTime(); got != tt.want {
				t.Errorf("frameTime() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIterateUsesScheduling(t *testing.T) {
	d := mapDefinition(t,
		"WWW",
		"W@W",
		"WWW",
	)
	d.Scheduling = SchedBD2
	d.SetAllLevels(func(l *LevelParams) { l.HWDelay = 6 })
	c := mustRender(t, d)
	c.Iterate(Still, false, false)
	if c.FrameTime != 120 {
		t.Errorf("frame time = %d, want 120", c.FrameTime)
	}
}
