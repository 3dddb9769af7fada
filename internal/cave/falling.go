package cave

// slopeFlag is the slope a cell needs for things to roll off it in d.
func slopeFlag(d Direction) Flag {
	switch d {
	case Up:
		return FlagSlopedUp
	case Down:
		return FlagSlopedDown
	case Left:
		return FlagSlopedLeft
	case Right:
		return FlagSlopedRight
	}
	return 0
}

// sloped reports whether the neighbor of x, y in dir is sloped towards slop.
func (c *Cave) sloped(x, y int, dir, slop Direction) bool {
	return c.has(x, y, dir, slopeFlag(slop))
}

// fallingTo maps a resting element to its falling form.
var fallingTo = map[Element]Element{
	Stone:         StoneF,
	MegaStone:     MegaStoneF,
	Diamond:       DiamondF,
	Nut:           NutF,
	NitroPack:     NitroPackF,
	DirtBall:      DirtBallF,
	DirtLoose:     DirtLooseF,
	WaitingStone:  ChasingStone,
	FlyingStone:   FlyingStoneF,
	FlyingDiamond: FlyingDiamondF,
}

func (c *Cave) processFalling(x, y int, e Element) {
	g := c.GravityNow
	switch e {
	case Stone, MegaStone, Diamond, Nut, NitroPack, DirtBall, DirtLoose, WaitingStone:
		c.startFall(x, y, e, g)
	case FlyingStone, FlyingDiamond:
		c.startFall(x, y, e, g.Opposite())

	case StoneF:
		c.fallingStone(x, y, e, g, c.MagicStoneTo, c.StoneBounceEffect)
	case MegaStoneF:
		c.fallingStone(x, y, e, g, c.MagicMegaStoneTo, MegaStone)
	case FlyingStoneF:
		c.fallingStone(x, y, e, g.Opposite(), c.MagicFlyingStoneTo, FlyingStone)
	case DiamondF:
		c.fallingDiamond(x, y, e, g, c.MagicDiamondTo, c.DiamondBounceEffect)
	case FlyingDiamondF:
		c.fallingDiamond(x, y, e, g.Opposite(), c.MagicFlyingDiamondTo, FlyingDiamond)
	case NutF:
		if c.magic(x, y, e, g, c.MagicNutTo) || c.crush(x, y, g) {
			return
		}
		c.rollOrStop(x, y, e, g, Nut)
	case DirtBallF:
		c.rollOrStop(x, y, e, g, DirtBall)
	case DirtLooseF:
		c.rollOrStop(x, y, e, g, DirtLoose)

	case NitroPackF:
		switch {
		case c.isSpace(x, y, g):
			c.move(x, y, g, e)
		case c.get(x, y, g) == Dirt:
			c.playElementSound(NitroPack)
			c.store(x, y, NitroPack)
		default:
			c.explode(x, y)
		}
	case NitroPackExplode:
		c.explode(x, y)

	case FallingWall:
		if !c.isSpace(x, y, g) {
			return
		}
		// the wall only starts falling when the player is somewhere below
		// with nothing but space in between
		for i, yy := 1, y; i < c.H; i++ {
			yy += g.DY()
			xx := x + i*g.DX()
			below := c.Get(xx, yy)
			if below == Space {
				continue
			}
			if below == Player || below == PlayerGlued || below == PlayerBomb {
				c.move(x, y, g, FallingWallF)
			}
			break
		}
	case FallingWallF:
		switch below := c.get(x, y, g); {
		case below == Player || below == PlayerGlued || below == PlayerBomb:
			c.explode(x, y)
		case below == Space:
			c.move(x, y, g, e)
		default:
			c.playElementSound(e)
			c.store(x, y, FallingWall)
		}
	}
}

// startFall makes a resting element fall or roll off a slope. Nothing
// starts falling while the player stirs the pot.
func (c *Cave) startFall(x, y int, e Element, g Direction) {
	if c.GravityDisabled {
		return
	}
	f := fallingTo[e]
	if c.isSpace(x, y, g) {
		c.move(x, y, g, f)
		return
	}
	if !c.sloped(x, y, g, g.Opposite()) {
		return
	}
	switch {
	case c.sloped(x, y, g, g.CW4()) && c.isSpace(x, y, g.CW4()) && c.isSpace(x, y, g.CW8()):
		c.move(x, y, g.CW4(), f)
	case c.sloped(x, y, g, g.CCW4()) && c.isSpace(x, y, g.CCW4()) && c.isSpace(x, y, g.CCW8()):
		c.move(x, y, g.CCW4(), f)
	}
}

func (c *Cave) fallingStone(x, y int, e Element, g Direction, magicTo, bounce Element) {
	below := c.get(x, y, g)
	switch {
	case below == Voodoo && c.VoodooDiesByStone:
		c.explode(x+g.DX(), y+g.DY())
		return
	case below == Nut || below == NutF:
		c.store(x, y, c.StoneBounceEffect)
		c.storeDir(x, y, g, c.NutCrackEffect)
		c.playSound(SoundNutCrack)
		return
	}
	if c.magic(x, y, e, g, magicTo) || c.crush(x, y, g) {
		return
	}
	c.rollOrStop(x, y, e, g, bounce)
}

func (c *Cave) fallingDiamond(x, y int, e Element, g Direction, magicTo, bounce Element) {
	if c.get(x, y, g) == Voodoo && c.VoodooCollectsDiamonds {
		c.playerGetElement(Diamond)
		c.store(x, y, Space)
		return
	}
	if c.magic(x, y, e, g, magicTo) || c.crush(x, y, g) {
		return
	}
	c.rollOrStop(x, y, e, g, bounce)
}

// magic converts a falling element passing through an active magic wall.
// The first hit activates a dormant wall.
func (c *Cave) magic(x, y int, e Element, g Direction, to Element) bool {
	if c.get(x, y, g) != MagicWall {
		return false
	}
	c.playSound(SoundDiamond)
	if c.MagicWallState == MagicWallDormant {
		c.MagicWallState = MagicWallActive
	}
	if c.MagicWallState == MagicWallActive && c.Get(x+2*g.DX(), y+2*g.DY()) == Space {
		c.storeAt2(x, y, g, to)
	}
	c.store(x, y, Space)
	return true
}

// storeAt2 writes two steps away in d, marked scanned.
func (c *Cave) storeAt2(x, y int, d Direction, e Element) {
	c.storeDir(x+d.DX(), y+d.DY(), d, e)
}

// crush explodes an explodable element hit from above. Voodoos are only
// hurt by stones when the cave says so.
func (c *Cave) crush(x, y int, g Direction) bool {
	below := c.get(x, y, g)
	if !below.Is(FlagExplodable) || below == Voodoo {
		return false
	}
	c.explode(x+g.DX(), y+g.DY())
	return true
}

// rollOrStop keeps a falling element moving, rolls it off a slope or lets
// it land as bouncing.
func (c *Cave) rollOrStop(x, y int, e Element, g Direction, bouncing Element) {
	if c.isSpace(x, y, g) {
		c.move(x, y, g, e)
		return
	}
	if c.sloped(x, y, g, g.Opposite()) {
		if c.sloped(x, y, g, g.CW4()) && c.isSpace(x, y, g.CW8()) && c.isSpace(x, y, g.CW4()) {
			c.move(x, y, g.CW4(), e)
			return
		}
		if c.sloped(x, y, g, g.CCW4()) && c.isSpace(x, y, g.CCW8()) && c.isSpace(x, y, g.CCW4()) {
			c.move(x, y, g.CCW4(), e)
			return
		}
	}
	c.playElementSound(e)
	c.store(x, y, bouncing)
}
