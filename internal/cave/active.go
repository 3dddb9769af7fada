package cave

func (c *Cave) processActive(x, y int, e Element) {
	switch {
	case e == MagicWall:
		if c.MagicWallState == MagicWallActive {
			c.magicWallSoundPlays = true
		}
	case e == Amoeba:
		c.amoeba(x, y)
	case e == Amoeba2:
		c.amoeba2(x, y)
	case e == Slime:
		c.slime(x, y)
	case e == Acid:
		c.acid(x, y)
	case e == Water:
		for _, d := range fourDirs {
			if c.isSpace(x, y, d) {
				c.storeDir(x, y, d, Water1)
				c.playSound(SoundWater)
			}
		}
	case e >= HExpandingWall && e <= ExpandingSteelWall:
		c.expandingWall(x, y, e)
	case e == ConveyorLeft || e == ConveyorRight:
		c.conveyor(x, y, e)
	case e == Replicator:
		c.replicator(x, y)
	case e == Bladder:
		c.store(x, y, Bladder1)
	case e >= Bladder1 && e <= Bladder7:
		c.next(x, y)
	case e == Bladder8:
		c.bladder(x, y)
	case e == BladderSpender:
		g := c.GravityNow
		if c.isSpace(x, y, g) {
			c.storeDir(x, y, g, Bladder)
			c.store(x, y, PreSteel1)
			c.playSound(SoundBladderSpender)
		}
	case e == PneumaticActiveLeft || e == PneumaticActiveRight:
		c.hammer(x, y)
	}
}

// amoeba grows into a random consumable neighbor. Growth only starts once
// the amoeba is awake; the terminal states convert it in place.
func (c *Cave) amoeba(x, y int) {
	c.amoebaCount++
	switch c.AmoebaState {
	case AmoebaTooBig:
		c.store(x, y, c.AmoebaTooBigEffect)
		return
	case AmoebaEnclosed:
		c.store(x, y, c.AmoebaEnclosedEffect)
		return
	}
	if !c.amoebaCouldGrow {
		for _, d := range fourDirs {
			if c.has(x, y, d, FlagAmoebaConsumable) {
				c.amoebaCouldGrow = true
				break
			}
		}
	}
	if c.AmoebaState == AmoebaAwake && c.Random.Chance(c.AmoebaGrowthProb) {
		d := fourDirs[c.Random.IntRange(0, 4)]
		if c.has(x, y, d, FlagAmoebaConsumable) {
			c.storeDir(x, y, d, Amoeba)
		}
	}
}

func (c *Cave) amoeba2(x, y int) {
	c.amoeba2Count++
	if c.Amoeba2ExplodesByAmoeba {
		for _, d := range fourDirs {
			if c.get(x, y, d) == Amoeba {
				c.explode(x, y)
				return
			}
		}
	}
	switch c.Amoeba2State {
	case AmoebaTooBig:
		c.store(x, y, c.Amoeba2TooBigEffect)
		return
	case AmoebaEnclosed:
		c.store(x, y, c.Amoeba2EnclosedEffect)
		return
	}
	if !c.amoeba2CouldGrow {
		for _, d := range fourDirs {
			if c.has(x, y, d, FlagAmoebaConsumable) {
				c.amoeba2CouldGrow = true
				break
			}
		}
	}
	if c.Amoeba2State == AmoebaAwake && c.Random.Chance(c.Amoeba2GrowthProb) {
		d := fourDirs[c.Random.IntRange(0, 4)]
		if c.has(x, y, d, FlagAmoebaConsumable) {
			c.storeDir(x, y, d, Amoeba2)
		}
	}
}

// slimePasses draws the permeability test. Predictable slime uses the
// hardware generator so imported caves behave as on the original machine.
func (c *Cave) slimePasses() bool {
	if c.SlimePredictable {
		return c.C64.Next()&c.SlimePermeabilityC64 == 0
	}
	return c.Random.Chance(c.SlimePermeability)
}

// slime lets elements through: falling ones downwards, rising ones upwards.
func (c *Cave) slime(x, y int) {
	if !c.slimePasses() {
		return
	}
	g := c.GravityNow
	og := g.Opposite()
	if c.isSpace(x, y, g) {
		above := c.get(x, y, og)
		for i, eats := range c.SlimeEats {
			if above == eats {
				c.storeDir(x, y, g, c.SlimeConverts[i])
				c.storeDir(x, y, og, Space)
				c.playSound(SoundSlime)
				return
			}
		}
		if above == WaitingStone || above == ChasingStone {
			c.storeDir(x, y, g, above)
			c.storeDir(x, y, og, Space)
			c.playSound(SoundSlime)
		}
		return
	}
	if c.isSpace(x, y, og) {
		var to Element
		switch c.get(x, y, g) {
		case Bladder:
			to = Bladder1
		case FlyingStone:
			to = FlyingStoneF
		case FlyingDiamond:
			to = FlyingDiamondF
		default:
			return
		}
		c.storeDir(x, y, og, to)
		c.storeDir(x, y, g, Space)
		c.playSound(SoundSlime)
	}
}

// acid eats into its neighbors and burns out.
func (c *Cave) acid(x, y int) {
	if c.Random.IntRange(0, 1000000) >= c.AcidSpreadRatio {
		return
	}
	c.store(x, y, c.AcidTurnsTo)
	for _, d := range fourDirs {
		if c.get(x, y, d) == c.AcidEatsThis {
			c.storeDir(x, y, d, Acid)
			c.playSound(SoundAcidSpread)
		}
	}
}

// expandingWall grows into neighboring space. The switch swaps the axis of
// the horizontal and vertical kinds.
func (c *Cave) expandingWall(x, y int, e Element) {
	var dirs []Direction
	switch e {
	case HExpandingWall, HExpandingSteelWall, VExpandingWall, VExpandingSteelWall:
		horizontal := e == HExpandingWall || e == HExpandingSteelWall
		if c.ExpandingWallChangedNow {
			horizontal = !horizontal
		}
		if horizontal {
			dirs = []Direction{Left, Right}
		} else {
			dirs = []Direction{Up, Down}
		}
	default:
		dirs = []Direction{Up, Down, Left, Right}
	}
	for _, d := range dirs {
		if c.isSpace(x, y, d) {
			c.storeDir(x, y, d, e)
			c.playElementSound(e)
		}
	}
}

// conveyor carries the element lying on top of it (or hanging below it,
// with gravity pointing up) one step along the belt.
func (c *Cave) conveyor(x, y int, e Element) {
	if c.GravityDisabled || !c.ConveyorActive {
		return
	}
	left := e != ConveyorRight
	if c.ConveyorChanged {
		left = !left
	}
	turn := Direction.CW8
	if left {
		turn = Direction.CCW8
	}
	g := c.GravityNow

	carries := func(d Direction) bool {
		n := c.atDir(x, y, d)
		if n.Flags&Scanned != 0 {
			return false
		}
		if g == Down && d == Up && n.Elem.Is(FlagConveyorTop) {
			return true
		}
		if g == Up && d == Up && n.Elem.Is(FlagConveyorBottom) {
			return true
		}
		if g == Down && d == Down && n.Elem.Is(FlagConveyorBottom) {
			return true
		}
		if g == Up && d == Down && n.Elem.Is(FlagConveyorTop) {
			return true
		}
		return false
	}
	for _, d := range [2]Direction{Up, Down} {
		to := turn(d)
		if carries(d) && c.isSpace(x, y, to) {
			c.storeDir(x, y, to, c.get(x, y, d))
			c.storeDir(x, y, d, Space)
		}
	}
}

// replicator copies the element above it into the space below.
func (c *Cave) replicator(x, y int) {
	if c.ReplicatorWaitFrame != 0 || !c.ReplicatorActive || c.GravityDisabled {
		return
	}
	g := c.GravityNow
	src := c.get(x, y, g.Opposite())
	if c.isSpace(x, y, g) && src != Space && !src.Is(FlagPlayer) {
		c.storeDir(x, y, g, src)
		c.playSound(SoundReplicator)
	}
}

// bladder rises against gravity once ripe, sliding around sloped
// obstacles, and turns into a clock when it touches its converter.
func (c *Cave) bladder(x, y int) {
	for _, d := range fourDirs {
		if c.get(x, y, d) == c.BladderConvertsBy {
			c.store(x, y, PreClock1)
			c.playSound(SoundBladderConvert)
			return
		}
	}
	g := Down
	if c.GravityAffectsAll {
		g = c.GravityNow
	}
	up := g.Opposite()
	switch {
	case c.isSpace(x, y, up):
		c.move(x, y, up, Bladder)
		c.playSound(SoundBladderMove)
	case c.sloped(x, y, up, g) && c.isSpace(x, y, up.CW4()) && c.isSpace(x, y, up.CW8()):
		c.move(x, y, up.CW8(), Bladder)
		c.playSound(SoundBladderMove)
	case c.sloped(x, y, up, g) && c.isSpace(x, y, up.CCW4()) && c.isSpace(x, y, up.CCW8()):
		c.move(x, y, up.CCW8(), Bladder)
		c.playSound(SoundBladderMove)
	}
}

// hammer finishes a pneumatic hammer stroke on the wall below it.
func (c *Cave) hammer(x, y int) {
	if c.HammerActiveDelay != 0 {
		return
	}
	c.store(x, y, Space)
	below := c.get(x, y, Down)
	if h := below.Hammered(); h != None {
		c.storeDir(x, y, Down, h)
		if c.HammeredWallsReappear {
			bx, by := c.addr(x, y+1)
			c.hammered[by*c.W+bx] = c.HammeredWallReappearFrame
		}
	}
}
