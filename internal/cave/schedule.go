package cave

// frameTime returns the length of the frame just computed, in milliseconds.
// Millisecond scheduling uses the level speed. The legacy modes estimate
// how long the original machine spent on the scan: a delay loop driven by
// the hardware delay constant plus the accumulated element cost.
func (c *Cave) frameTime() int {
	ck := c.CKDelay
	hw := c.HWDelay
	switch c.Scheduling {
	case SchedBD1:
		if c.Intermission {
			return int(60 + 3.66*float64(hw) + float64(ck+c.CKDelayExtra)/1000)
		}
		return int(88 + 3.66*float64(hw) + float64(ck+c.CKDelayExtra)/1000)
	case SchedBD1Atari:
		if c.Intermission {
			return int(65 + 2.88*float64(hw) + float64(ck)/1000)
		}
		return int(74 + 3.2*float64(hw) + float64(ck)/1000)
	case SchedBD2:
		return max(60+(ck+c.CKDelayExtra)/1000, hw*20)
	case SchedPLCK:
		return max(65+ck/1000, hw*20)
	case SchedBD2PLCKAtari:
		return max(40+ck/1000, hw*20)
	case SchedCrDr:
		if c.HammeredWallsReappear {
			ck += 60000
		}
		return max(130+ck/1000, hw*20)
	default:
		return c.Speed
	}
}
