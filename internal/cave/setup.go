package cave

// SetupForPlay arms the runtime state of a freshly rendered cave: it scales
// the level times to internal units, defers the diamond requirement when it
// depends on the map, computes the animation surcharge of legacy scheduling
// and locates the starting position. Iterate calls it on the first frame if
// the caller has not.
func (c *Cave) SetupForPlay() {
	lp := &c.Levels[c.Level]

	c.TimingFactor = 1000
	if c.PALTiming {
		c.TimingFactor = 1200
	}
	tf := c.TimingFactor

	c.Time = lp.Time * tf
	c.MaxTimeUnits = c.MaxTime * tf
	c.TimeBonus = lp.BonusTime * tf
	c.TimePenalty = lp.PenaltyTime * tf
	c.Speed = lp.Speed
	c.HWDelay = lp.HWDelay
	c.HatchingDelayFrame = lp.HatchingDelayFrame
	c.HatchingDelayTime = lp.HatchingDelayTime * tf

	c.DiamondsNeeded = lp.Diamonds
	c.diamondsDeferred = lp.Diamonds <= 0
	c.DiamondValueNow = c.DiamondValue

	c.AmoebaTime = lp.AmoebaTime * tf
	c.AmoebaMaxCount = lp.AmoebaThreshold
	c.AmoebaState = AmoebaSleeping
	c.Amoeba2Time = lp.Amoeba2Time * tf
	c.Amoeba2MaxCount = lp.Amoeba2Threshold
	c.Amoeba2State = AmoebaSleeping

	c.MagicWallTime = lp.MagicWallTime * tf
	c.MagicWallState = MagicWallDormant

	c.SlimePermeability = lp.SlimePermeability
	c.SlimePermeabilityC64 = SlimePermeabilityC64(lp.SlimePermeabilityC64)

	c.BiterDelay = c.BiterDelayFrame
	c.ConveyorActive = c.ConveyorBeltsActive
	c.ConveyorChanged = c.ConveyorBeltsChanged
	c.ReplicatorActive = c.ReplicatorsActive
	c.GravityNow = c.Gravity
	c.GravityNext = c.Gravity
	c.ExpandingWallChangedNow = c.ExpandingWallChanged

	// every animated kind on the map slows the legacy machines down
	var amoeba, firefly, butterfly, slime bool
	for _, cell := range c.cells {
		switch e := cell.Elem; {
		case e == Amoeba:
			amoeba = true
		case e >= Firefly1 && e <= AltFirefly4:
			firefly = true
		case e >= Butterfly1 && e <= AltButterfly4:
			butterfly = true
		case e == Slime:
			slime = true
		}
	}
	c.CKDelayExtra = 0
	for _, present := range []bool{amoeba, firefly, butterfly, slime} {
		if present {
			c.CKDelayExtra += 2600
		}
	}

	found := false
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			e := c.rows[y][x].Elem
			if e != Inbox && !e.Is(FlagPlayer) {
				continue
			}
			if !found || !c.ActiveIsFirstFound {
				c.PlayerX, c.PlayerY = x, y
			}
			found = true
		}
	}
	c.historyLen, c.historyNext = 0, 0
	if found {
		c.rememberPlayer(c.PlayerX, c.PlayerY)
	}

	c.PlayerState = PlayerNotYet
	c.PlayerSeenAgo = 0
	c.ready = true
}
