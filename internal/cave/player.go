package cave

// processPlayer handles every player state. dir and fire are the input of
// the frame.
func (c *Cave) processPlayer(x, y int, e Element, dir Direction, fire bool) {
	if c.KillPlayer || c.VoodooTouched {
		c.explode(x, y)
		return
	}
	c.PlayerSeenAgo = 0
	if c.PlayerState != PlayerExited {
		c.PlayerState = PlayerLiving
	}

	switch e {
	case Player:
		if fire && c.GotHammer && dir == Left && c.startHammer(x, y, Left, DownLeft, PneumaticActiveLeft, PlayerPneumaticLeft) {
			return
		}
		if fire && c.GotHammer && dir == Right && c.startHammer(x, y, Right, DownRight, PneumaticActiveRight, PlayerPneumaticRight) {
			return
		}
		c.playerMove(x, y, e, dir, fire, true)

	case PlayerBomb:
		if fire && dir != Still {
			if c.isSpace(x, y, dir) {
				c.storeDir(x, y, dir, BombTick1)
				c.store(x, y, Player)
				c.playSound(SoundBombPlace)
			}
			return
		}
		c.playerMove(x, y, e, dir, fire, false)

	case PlayerStirring:
		c.playSound(SoundStirring)
		if fire {
			c.GravityDisabled = false
			c.store(x, y, Player)
			c.GravitySwitchActive = true
		}

	case PlayerGlued:
		// stays put until a falling wall or an explosion ends it

	case PlayerPneumaticLeft, PlayerPneumaticRight:
		if c.HammerActiveDelay == 0 {
			c.store(x, y, Player)
		} else {
			c.hammerSoundFrame = true
		}
	}
}

// startHammer begins hammering the wall below-beside the player when there
// is room to stand the hammer in.
func (c *Cave) startHammer(x, y int, side, target Direction, hammer, player Element) bool {
	if !c.isSpace(x, y, side) || c.isSpace(x, y, Down) {
		return false
	}
	if c.get(x, y, target).Hammered() == None {
		return false
	}
	c.HammerActiveDelay = c.PneumaticHammerFrame
	c.storeDir(x, y, side, hammer)
	c.store(x, y, player)
	return true
}

// playerMove moves, digs, collects or pushes in dir. With fire held the
// player snaps: it takes what is next to it without moving.
func (c *Cave) playerMove(x, y int, e Element, dir Direction, fire, pickup bool) {
	if dir == Still {
		return
	}
	what := c.get(x, y, dir)
	if what == Teleporter {
		c.doTeleporter(x, y, e, dir)
		return
	}

	remains := what
	pushed := c.doPush(x, y, dir, fire)
	switch {
	case pushed:
		remains = Space
	case what == Bomb && pickup:
		c.storeDir(x, y, dir, Space)
		c.playSound(SoundBombCollect)
		if fire {
			c.store(x, y, PlayerBomb)
		} else {
			c.move(x, y, dir, PlayerBomb)
		}
		return
	case what == Pot:
		if !fire && !c.GravitySwitchActive && c.Skeletons >= c.SkeletonsNeededForPot {
			c.Skeletons -= c.SkeletonsNeededForPot
			c.move(x, y, dir, PlayerStirring)
			c.GravityDisabled = true
		}
		return
	case what == GravitySwitch:
		if c.GravitySwitchActive && !dir.Diagonal() {
			c.GravityWillChange = c.GravityChangeTime * c.TimingFactor
			c.GravityNext = dir
			c.GravitySwitchActive = false
			c.playSound(SoundSwitch)
		}
		return
	default:
		remains = c.playerGetElement(what)
	}

	if remains == what && remains != Space {
		return
	}
	if remains == Space && fire && !pushed {
		remains = c.SnapElement
	}
	if remains != Space || fire {
		c.storeDir(x, y, dir, remains)
	} else {
		c.move(x, y, dir, e)
	}
}

// doTeleporter moves the player to the next teleporter in row-major order
// that has room on its dir side.
func (c *Cave) doTeleporter(px, py int, e Element, dir Direction) {
	tx, ty := px, py
	for {
		tx++
		if tx >= c.W {
			tx = 0
			ty++
			if ty >= c.H {
				ty = 0
			}
		}
		if tx == px && ty == py {
			return
		}
		if c.rows[ty][tx].Elem == Teleporter && c.isSpace(tx, ty, dir) {
			c.storeDir(tx, ty, dir, e)
			c.store(px, py, Space)
			c.playSound(SoundTeleporter)
			return
		}
	}
}

// doPush tries to push the element next to the player in dir.
func (c *Cave) doPush(x, y int, dir Direction, fire bool) bool {
	what := c.get(x, y, dir)
	g := c.GravityNow
	x2, y2 := x+2*dir.DX(), y+2*dir.DY()

	switch what {
	case Stone, NitroPack, WaitingStone, ChasingStone, MegaStone, FlyingStone, Nut:
		if dir != g.CW4() && dir != g.CCW4() {
			return false
		}
		prob := c.PushingStoneProb
		if c.SweetEaten {
			prob = c.PushingStoneProbSweet
		}
		switch what {
		case WaitingStone:
			prob = 1000000
		case ChasingStone:
			if c.SweetEaten {
				prob = 1000000
			}
		case MegaStone:
			prob = 0
			if c.MegaStonesPushableWithSweet && c.SweetEaten {
				prob = 1000000
			}
		}
		if c.Get(x2, y2) != Space || c.Random.IntRange(0, 1000000) >= prob {
			return false
		}
		c.playElementSound(what)
		c.storeDir(x+dir.DX(), y+dir.DY(), dir, what)
		return true

	case Bladder, Bladder1, Bladder2, Bladder3, Bladder4, Bladder5, Bladder6, Bladder7, Bladder8:
		bg := Down
		if c.GravityAffectsAll {
			bg = g
		}
		if dir == Still || dir.Diagonal() {
			return false
		}
		// straight on, else one of the two cells diagonal to the player
		// in the push direction; beside gravity the upper one goes first
		side1, side2 := dir.CW8(), dir.CCW8()
		if along(side2, bg) < along(side1, bg) {
			side1, side2 = side2, side1
		}
		if c.Get(x2, y2) == Space {
			c.storeDir(x+dir.DX(), y+dir.DY(), dir, Bladder)
			c.playSound(SoundBladderMove)
			return true
		}
		for _, d := range [2]Direction{side1, side2} {
			if c.isSpace(x, y, d) {
				c.storeDir(x, y, d, Bladder)
				c.playSound(SoundBladderMove)
				return true
			}
		}
		return false

	case Box:
		if !fire || dir.Diagonal() || c.Get(x2, y2) != Space {
			return false
		}
		c.storeDir(x+dir.DX(), y+dir.DY(), dir, Box)
		c.playSound(SoundBox)
		return true
	}
	return false
}

// along is the component of d in the direction of g.
func along(d, g Direction) int {
	return d.DX()*g.DX() + d.DY()*g.DY()
}

// playerGetElement collects or digs what the player walks into and returns
// what remains of it: Space when the player may step there, the element
// itself when it stays.
func (c *Cave) playerGetElement(e Element) Element {
	switch e {
	case DiamondKey:
		c.DiamondKeyCollected = true
		c.playSound(SoundKeyCollect)
		return Space

	case Key1, Key2, Key3:
		c.Keys[e-Key1]++
		c.playSound(SoundKeyCollect)
		return Space
	case Door1, Door2, Door3:
		i := e - Door1
		if c.Keys[i] == 0 {
			return e
		}
		c.Keys[i]--
		c.playSound(SoundDoorOpen)
		return Space

	case CreatureSwitch:
		c.CreaturesBackwards = !c.CreaturesBackwards
		c.playSound(SoundSwitch)
		return e
	case ExpandingWallSwitch:
		c.ExpandingWallChangedNow = !c.ExpandingWallChangedNow
		c.playSound(SoundSwitch)
		return e
	case BiterSwitch:
		c.BiterDelay = (c.BiterDelay + 1) % 4
		c.playSound(SoundSwitch)
		return e
	case ReplicatorSwitch:
		c.ReplicatorActive = !c.ReplicatorActive
		c.playSound(SoundSwitch)
		return e
	case ConveyorSwitch:
		c.ConveyorActive = !c.ConveyorActive
		c.playSound(SoundSwitch)
		return e
	case ConveyorDirSwitch:
		c.ConveyorChanged = !c.ConveyorChanged
		c.playSound(SoundSwitch)
		return e

	case Dirt, Dirt2, DirtSlopedUpRight, DirtSlopedUpLeft, DirtSlopedDownLeft, DirtSlopedDownRight,
		DirtBall, DirtLoose, SteelEatable, BrickEatable:
		c.playSound(SoundWalkEarth)
		return Space

	case Sweet:
		c.SweetEaten = true
		c.playSound(SoundSweetCollect)
		return Space
	case PneumaticHammer:
		c.GotHammer = true
		c.playSound(SoundPneumaticCollect)
		return Space
	case Clock:
		c.Time = min(c.Time+c.TimeBonus, c.MaxTimeUnits)
		c.playSound(SoundClockCollect)
		return Space

	case Diamond, FlyingDiamond:
		c.addScore(c.DiamondValueNow)
		c.DiamondsCollected++
		c.playSound(SoundDiamondCollect)
		if c.DiamondsCollected == c.DiamondsNeeded {
			c.openGate()
		}
		return Space

	case Skeleton:
		c.Skeletons++
		for i := 0; i < c.SkeletonsWorthDiamonds; i++ {
			c.playerGetElement(Diamond)
		}
		c.playSound(SoundSkeletonCollect)
		return Space

	case Outbox, InvisOutbox:
		c.PlayerState = PlayerExited
		c.playSound(SoundFinished)
		return Space

	case Space, Lava:
		c.playSound(SoundWalkEmpty)
		return Space
	}
	return e
}
