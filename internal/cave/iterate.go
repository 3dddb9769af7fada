package cave

import "fmt"

// behavior is the group of rules that evolves an element during a scan.
type behavior uint8

const (
	bhMissing  behavior = iota // no group assigned: a table error
	bhInert                    // never changes on its own
	bhPlayer                   // player states
	bhFalling                  // stones, diamonds and the like
	bhCreature                 // things that walk or chase
	bhActive                   // amoeba, walls, belts and other cave-wide machinery
	bhChain                    // multi-stage sequences and one-shot conversions
)

var behaviors = buildBehaviors()

func buildBehaviors() []behavior {
	b := make([]behavior, NumElements)
	set := func(g behavior, es ...Element) {
		for _, e := range es {
			b[e] = g
		}
	}
	span := func(g behavior, first, last Element) {
		for e := first; e <= last; e++ {
			b[e] = g
		}
	}

	set(bhInert, Space, Dirt, Dirt2, DirtSlopedUpRight, DirtSlopedUpLeft, DirtSlopedDownLeft,
		DirtSlopedDownRight, DirtGlued)
	span(bhInert, Brick, SteelExplodable)
	set(bhInert, Outbox, InvisOutbox)
	span(bhInert, ExpandingWallSwitch, GravitySwitch)
	set(bhInert, Box, TimePenalty, Gravestone, StoneGlued, DiamondGlued, DiamondKey, Clock, Sweet,
		PneumaticHammer, Skeleton, Pot, Key1, Key2, Key3, Door1, Door2, Door3, Teleporter,
		Voodoo, Bomb, Unknown, None)

	set(bhPlayer, Player, PlayerBomb, PlayerGlued, PlayerStirring, PlayerPneumaticLeft, PlayerPneumaticRight)

	set(bhFalling, DirtBall, DirtBallF, DirtLoose, DirtLooseF, FallingWall, FallingWallF)
	span(bhFalling, Stone, WaitingStone)

	set(bhCreature, Ghost, ChasingStone)
	span(bhCreature, Firefly1, Biter4)

	set(bhActive, MagicWall, Acid, Water)
	span(bhActive, HExpandingWall, ExpandingSteelWall)
	span(bhActive, Amoeba, BladderSpender)
	set(bhActive, PneumaticActiveLeft, PneumaticActiveRight)
	set(bhInert, Lava)

	set(bhChain, Inbox, PreOutbox, PreInvisOutbox, TrappedDiamond)
	span(bhChain, Water1, Water16)
	span(bhChain, BombTick1, BombTick7)
	span(bhChain, PrePlayer1, PrePlayer3)
	span(bhChain, Explode1, NutCrack4)
	return b
}

// validateBehaviors reports the first element without a behavior group.
func validateBehaviors() error {
	for i, g := range behaviors {
		if g == bhMissing {
			return fmt.Errorf("cave: element %s has no behavior", Element(i))
		}
	}
	return nil
}

// Iterate advances the cave by one frame. dir is the requested movement,
// fire and suicide are the button states. Side effects of the frame (sound
// cues, score delta, player state, gate state) are read from the cave
// afterwards.
func (c *Cave) Iterate(dir Direction, fire, suicide bool) {
	if !c.ready {
		c.SetupForPlay()
	}

	c.sound.clear()
	c.ScoreDelta = 0
	c.hammerSoundFrame = false
	c.amoebaSoundPlaying = false
	c.magicWallSoundPlays = false

	// without diagonal movement the horizontal component wins
	if !c.DiagonalMovements {
		switch dir {
		case UpRight, DownRight:
			dir = Right
		case UpLeft, DownLeft:
			dir = Left
		}
	}

	c.countdowns(dir)

	if suicide && c.PlayerState == PlayerLiving && c.Get(c.PlayerX, c.PlayerY).Is(FlagPlayer) {
		c.store(c.PlayerX, c.PlayerY, Explode1)
	}

	c.scan(dir, fire)
	c.postScan()
	c.locatePlayer()

	c.FrameTime = c.frameTime()
	c.setAmbientSound()
	c.advanceTimers()
	c.hatch()

	if c.PlayerState == PlayerLiving && c.Hatched && c.Time == 0 {
		c.sound.clear()
		c.PlayerState = PlayerTimeout
		c.playSound(SoundTimeout)
	}

	c.LastDirection = dir
	switch dir {
	case Left, UpLeft, DownLeft:
		c.LastHorizontal = Left
	case Right, UpRight, DownRight:
		c.LastHorizontal = Right
	}
	c.Frame++
}

// countdowns runs the per-frame bookkeeping that precedes the scan.
func (c *Cave) countdowns(dir Direction) {
	c.PlayerSeenAgo++
	if c.HammerActiveDelay > 0 {
		c.HammerActiveDelay--
	}
	c.InboxFlash = !c.InboxFlash
	if c.GateOpenFlash > 0 {
		c.GateOpenFlash--
	}
	if c.HammeredWallsReappear {
		for i, n := range c.hammered {
			if n == 0 {
				continue
			}
			c.hammered[i] = n - 1
			if n == 1 {
				c.store(i%c.W, i/c.W, Brick)
				c.playSound(SoundWallReappear)
			}
		}
	}
	if c.AmoebaState == AmoebaSleeping && c.Hatched && dir != Still {
		c.AmoebaState = AmoebaAwake
	}
	if c.Amoeba2State == AmoebaSleeping && c.Hatched && dir != Still {
		c.Amoeba2State = AmoebaAwake
	}
	c.amoebaCount, c.amoeba2Count = 0, 0
	c.amoebaCouldGrow, c.amoeba2CouldGrow = false, false
	c.CKDelay = 0
}

// scan is the main pass over the grid. A cell carrying the scanned mark was
// written by an earlier cell in this frame: the mark is removed and the
// cell is skipped.
func (c *Cave) scan(dir Direction, fire bool) {
	ymin, ymax := 0, c.H-1
	if !c.BorderScan {
		ymin, ymax = 1, c.H-2
	}
	for y := ymin; y <= ymax; y++ {
		for x := 0; x < c.W; x++ {
			cell := &c.rows[y][x]
			if cell.Flags&Scanned != 0 {
				cell.Flags &^= Scanned
				continue
			}
			e := cell.Elem
			c.CKDelay += table[e].Cost
			switch behaviors[e] {
			case bhInert:
			case bhPlayer:
				c.processPlayer(x, y, e, dir, fire)
			case bhFalling:
				c.processFalling(x, y, e)
			case bhCreature:
				c.processCreature(x, y, e)
			case bhActive:
				c.processActive(x, y, e)
			case bhChain:
				c.processChain(x, y, e)
			default:
				panic(fmt.Sprintf("cave: no behavior for %s at %d,%d", e, x, y))
			}
		}
	}
}

// postScan decides the amoeba states, collapses short explosions, clears
// every scanned mark and turns time penalties into gravestones.
func (c *Cave) postScan() {
	c.settleAmoeba()

	if c.ShortExplosions {
		for i := range c.cells {
			if c.cells[i].Elem.Is(FlagExplosionFirstStage) {
				c.cells[i].Elem++
				c.cells[i].Flags &^= Scanned
			}
		}
	}

	penalty := 0
	for i := range c.cells {
		c.cells[i].Flags &^= Scanned
		if c.cells[i].Elem == TimePenalty {
			c.cells[i].Elem = Gravestone
			penalty += c.TimePenalty
		}
	}
	if penalty > 0 && c.Hatched {
		c.Time = max(c.Time-penalty, 0)
	}
}

// settleAmoeba promotes the amoeba states after the scan. A state change to
// too big or enclosed converts every remaining amoeba cell at once.
func (c *Cave) settleAmoeba() {
	if c.amoebaCount > 0 && c.AmoebaState == AmoebaAwake {
		c.amoebaSoundPlaying = true
	}
	before := c.AmoebaState
	if c.AmoebaState == AmoebaAwake {
		if c.amoebaCount >= c.AmoebaMaxCount {
			c.AmoebaState = AmoebaTooBig
		}
		if !c.amoebaCouldGrow {
			c.AmoebaState = AmoebaEnclosed
		}
	}
	if c.MagicWallStopsAmoeba && c.MagicWallState == MagicWallActive && c.AmoebaState < AmoebaTooBig {
		c.AmoebaState = AmoebaEnclosed
	}
	if before != c.AmoebaState {
		c.convertAll(Amoeba, c.amoebaTerminal())
	}

	before = c.Amoeba2State
	if c.Amoeba2State == AmoebaAwake {
		if c.amoeba2Count >= c.Amoeba2MaxCount {
			c.Amoeba2State = AmoebaTooBig
		}
		if !c.amoeba2CouldGrow {
			c.Amoeba2State = AmoebaEnclosed
		}
	}
	if before != c.Amoeba2State {
		c.convertAll(Amoeba2, c.amoeba2Terminal())
	}
}

func (c *Cave) amoebaTerminal() Element {
	if c.AmoebaState == AmoebaTooBig {
		return c.AmoebaTooBigEffect
	}
	return c.AmoebaEnclosedEffect
}

func (c *Cave) amoeba2Terminal() Element {
	if c.Amoeba2State == AmoebaTooBig {
		return c.Amoeba2TooBigEffect
	}
	return c.Amoeba2EnclosedEffect
}

func (c *Cave) convertAll(from, to Element) {
	for i := range c.cells {
		if c.cells[i].Elem == from {
			c.cells[i].Elem = to
		}
	}
}

// locatePlayer updates the tracked position if a player was processed this
// frame and resolves the liveness state.
func (c *Cave) locatePlayer() {
	if c.PlayerSeenAgo == 0 {
		found := false
		for y := 0; y < c.H && !(found && c.ActiveIsFirstFound); y++ {
			for x := 0; x < c.W; x++ {
				if c.rows[y][x].Elem.Is(FlagPlayer) {
					c.PlayerX, c.PlayerY = x, y
					found = true
					if c.ActiveIsFirstFound {
						break
					}
				}
			}
		}
		c.rememberPlayer(c.PlayerX, c.PlayerY)
	}
	if c.PlayerState == PlayerLiving && (c.PlayerSeenAgo > 15 || c.KillPlayer) {
		c.PlayerState = PlayerDied
	}
}

// advanceTimers consumes the frame time: the cave clock and the one-shot
// countdowns of gravity, creature direction, magic wall and amoeba.
func (c *Cave) advanceTimers() {
	ft := c.FrameTime
	if c.Hatched {
		c.Time = max(c.Time-ft, 0)
	}
	if c.GravityWillChange > 0 {
		c.GravityWillChange = max(c.GravityWillChange-ft, 0)
		if c.GravityWillChange == 0 {
			c.GravityNow = c.GravityNext
			c.playSound(SoundGravityChange)
		}
	}
	if c.CreaturesDirectionChangeTime > 0 {
		c.CreaturesDirectionChangeTime = max(c.CreaturesDirectionChangeTime-ft, 0)
		if c.CreaturesDirectionChangeTime == 0 {
			c.playSound(SoundSwitch)
			c.CreaturesBackwards = !c.CreaturesBackwards
			c.CreaturesDirectionChangeTime = c.CreaturesAutoTurnTime * c.TimingFactor
		}
	}
	if c.MagicWallState == MagicWallActive && (c.Hatched || !c.MagicTimerWaitsHatch) {
		c.MagicWallTime = max(c.MagicWallTime-ft, 0)
		if c.MagicWallTime == 0 {
			c.MagicWallState = MagicWallExpired
		}
	}
	if c.AmoebaTimerImmediate || (c.AmoebaState == AmoebaAwake && (c.Hatched || !c.AmoebaTimerWaitsHatch)) {
		c.AmoebaTime = max(c.AmoebaTime-ft, 0)
		if c.AmoebaTime == 0 {
			c.AmoebaGrowthProb = c.AmoebaFastGrowthProb
		}
	}
	if c.AmoebaTimerImmediate || (c.Amoeba2State == AmoebaAwake && (c.Hatched || !c.AmoebaTimerWaitsHatch)) {
		c.Amoeba2Time = max(c.Amoeba2Time-ft, 0)
		if c.Amoeba2Time == 0 {
			c.Amoeba2GrowthProb = c.Amoeba2FastGrowthProb
		}
	}

	if c.BiterWaitFrame == 0 {
		c.BiterWaitFrame = c.BiterDelay
	} else {
		c.BiterWaitFrame--
	}
	if c.ReplicatorWaitFrame == 0 {
		c.ReplicatorWaitFrame = c.ReplicatorDelayFrame
	} else {
		c.ReplicatorWaitFrame--
	}
}

// hatch counts down to the moment the player appears. Millisecond
// scheduling counts frames; the legacy schedulings count time.
func (c *Cave) hatch() {
	start := false
	if c.Scheduling == SchedMilliseconds {
		if c.HatchingDelayFrame > 0 {
			c.HatchingDelayFrame--
			start = c.HatchingDelayFrame == 0
		}
	} else if c.HatchingDelayTime > 0 {
		c.HatchingDelayTime -= c.FrameTime
		if c.HatchingDelayTime <= 0 {
			c.HatchingDelayTime = 0
			start = true
		}
	}
	if !start {
		return
	}
	c.Hatched = true
	c.countDiamonds()
	if c.CreaturesAutoTurnTime > 0 {
		c.CreaturesDirectionChangeTime = c.CreaturesAutoTurnTime * c.TimingFactor
		if c.CreaturesAutoTurnOnStart {
			c.CreaturesBackwards = !c.CreaturesBackwards
		}
	}
	c.playSound(SoundStart)
}

// countDiamonds resolves a deferred diamond requirement: 0 means every
// diamond present, -n means all but n.
func (c *Cave) countDiamonds() {
	if !c.diamondsDeferred {
		return
	}
	c.diamondsDeferred = false
	n := c.DiamondsNeeded
	for _, cell := range c.cells {
		switch cell.Elem {
		case Diamond, DiamondF, FlyingDiamond, FlyingDiamondF:
			n++
		}
	}
	c.DiamondsNeeded = max(n, 0)
	if c.DiamondsNeeded == 0 {
		c.openGate()
	}
}

func (c *Cave) openGate() {
	if c.GateOpen {
		return
	}
	c.GateOpen = true
	c.DiamondValueNow = c.ExtraDiamondValue
	c.GateOpenFlash = 1
	c.playSound(SoundCrack)
}

func (c *Cave) addScore(n int) {
	c.Score += n
	c.ScoreDelta += n
}

// processChain advances multi-stage sequences and the elements that wait
// for a cave-wide event.
func (c *Cave) processChain(x, y int, e Element) {
	switch {
	case e == Inbox:
		if c.Hatched {
			c.store(x, y, Player)
			c.PlayerState = PlayerLiving
			c.PlayerSeenAgo = 0
		}
	case e == PreOutbox:
		if c.GateOpen {
			c.store(x, y, Outbox)
		}
	case e == PreInvisOutbox:
		if c.GateOpen {
			c.store(x, y, InvisOutbox)
		}
	case e == TrappedDiamond:
		if c.DiamondKeyCollected {
			c.store(x, y, Diamond)
		}
	case e == Water16:
		c.store(x, y, Water)
	case e == BombTick7:
		c.explode(x, y)
	case e == PrePlayer3:
		c.store(x, y, Player)
		c.PlayerState = PlayerLiving
		c.PlayerSeenAgo = 0
	case e == Explode5:
		c.store(x, y, c.ExplosionEffect)
	case e == PreDiamond5:
		c.store(x, y, c.DiamondBirthEffect)
	case e == PreStone4:
		c.store(x, y, Stone)
	case e == PreSteel4:
		c.store(x, y, Steel)
	case e == PreClock4:
		c.store(x, y, Clock)
	case e == NitroExplode4:
		c.store(x, y, c.NitroExplosionEffect)
	case e == Amoeba2Explode4:
		c.store(x, y, c.Amoeba2ExplodeEffect)
	case e == BombExplode4:
		c.store(x, y, c.BombExplosionEffect)
	case e == GhostExplode4:
		c.store(x, y, ghostExplodeTo[c.Random.IntRange(0, len(ghostExplodeTo))])
	case e == NutCrack4:
		c.store(x, y, Diamond)
	case e == PreDiamond1:
		c.playSound(SoundDiamondBirth)
		c.next(x, y)
	default:
		c.next(x, y)
	}
}

// what a ghost leaves behind
var ghostExplodeTo = []Element{
	Space, Space, Dirt, Dirt, Clock, Clock, PreOutbox, Bomb, Bomb, Player,
	Ghost, Bladder, Diamond, Sweet, WaitingStone, Biter1,
}
