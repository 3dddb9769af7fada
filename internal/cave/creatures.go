package cave

// creatureKind is a family of four-facing walkers.
type creatureKind struct {
	base     Element
	explodes bool // explodes next to anything that blows up flies
}

func creatureOf(e Element) (creatureKind, bool) {
	switch {
	case e >= Firefly1 && e <= Firefly4:
		return creatureKind{Firefly1, true}, true
	case e >= AltFirefly1 && e <= AltFirefly4:
		return creatureKind{AltFirefly1, true}, true
	case e >= Butterfly1 && e <= Butterfly4:
		return creatureKind{Butterfly1, true}, true
	case e >= AltButterfly1 && e <= AltButterfly4:
		return creatureKind{AltButterfly1, true}, true
	case e >= Stonefly1 && e <= Stonefly4:
		return creatureKind{Stonefly1, true}, true
	case e >= Cow1 && e <= Cow4:
		return creatureKind{Cow1, false}, true
	}
	return creatureKind{}, false
}

var fourDirs = [4]Direction{Up, Down, Left, Right}

func (c *Cave) processCreature(x, y int, e Element) {
	switch {
	case e == Ghost:
		c.ghost(x, y)
	case e == ChasingStone:
		c.chasingStone(x, y)
	case e >= Dragonfly1 && e <= Dragonfly4:
		c.dragonfly(x, y, e)
	case e >= CowEnclosed1 && e <= CowEnclosed7:
		c.cowEnclosed(x, y, e)
	case e >= Biter1 && e <= Biter4:
		c.biter(x, y, e)
	default:
		k, ok := creatureOf(e)
		if !ok {
			return
		}
		if k.base == Cow1 && c.enclosed(x, y) {
			c.store(x, y, CowEnclosed1)
			return
		}
		c.walker(x, y, e, k)
	}
}

// enclosed reports whether none of the four neighbors is space.
func (c *Cave) enclosed(x, y int) bool {
	for _, d := range fourDirs {
		if c.isSpace(x, y, d) {
			return false
		}
	}
	return true
}

// turns returns the facings of a creature: the one it tries first and the
// one it falls back to when blocked.
func (c *Cave) turns(e, base Element) (dir, dirn, dirp int, dirs *[4]Direction) {
	ccw := e.Is(FlagCCW)
	dirs = &creatureDirs
	if c.CreaturesBackwards {
		ccw = !ccw
		dirs = &creatureDirsBackwards
	}
	dir = int(e - base)
	if ccw {
		return dir, (dir + 3) & 3, (dir + 1) & 3, dirs
	}
	return dir, (dir + 1) & 3, (dir + 3) & 3, dirs
}

// walker moves fireflies, butterflies, stoneflies and cows along walls.
func (c *Cave) walker(x, y int, e Element, k creatureKind) {
	if k.explodes {
		for _, d := range fourDirs {
			if c.get(x, y, d) == Voodoo {
				c.VoodooTouched = true
			}
		}
		for _, d := range fourDirs {
			if c.has(x, y, d, FlagBlowsUpFlies) {
				c.explode(x, y)
				return
			}
		}
	}
	dir, dirn, dirp, dirs := c.turns(e, k.base)
	switch {
	case c.isSpace(x, y, dirs[dirn]):
		c.move(x, y, dirs[dirn], k.base+Element(dirn))
	case c.isSpace(x, y, dirs[dir]):
		c.move(x, y, dirs[dir], e)
	default:
		c.store(x, y, k.base+Element(dirp))
	}
}

func (c *Cave) dragonfly(x, y int, e Element) {
	for _, d := range fourDirs {
		if c.has(x, y, d, FlagBlowsUpFlies) {
			c.explode(x, y)
			return
		}
	}
	dir, dirn, _, dirs := c.turns(e, Dragonfly1)
	if c.isSpace(x, y, dirs[dir]) {
		c.move(x, y, dirs[dir], e)
	} else {
		c.store(x, y, Dragonfly1+Element(dirn))
	}
}

// cowEnclosed counts down a trapped cow. It wakes up if room appears and
// becomes a skeleton at the end.
func (c *Cave) cowEnclosed(x, y int, e Element) {
	if !c.enclosed(x, y) {
		c.store(x, y, Cow1)
		return
	}
	if e == CowEnclosed7 {
		c.store(x, y, Skeleton)
		return
	}
	c.next(x, y)
}

func (c *Cave) ghost(x, y int) {
	for _, d := range fourDirs {
		if c.has(x, y, d, FlagBlowsUpFlies) {
			c.explode(x, y)
			return
		}
	}
	for i := 0; i < 4; i++ {
		d := fourDirs[c.Random.IntRange(0, 4)]
		if c.isSpace(x, y, d) {
			c.move(x, y, d, Ghost)
			return
		}
	}
}

// biter eats its way along. The food list is tried in order; for each food
// the biter looks ahead, then to its preferred side, then the other side.
func (c *Cave) biter(x, y int, e Element) {
	if c.BiterWaitFrame != 0 {
		return
	}
	dir := int(e - Biter1)
	dirn := (dir + 3) & 3
	dirp := (dir + 1) & 3
	food := [4]Element{Dirt, c.BiterEats, Space, Stone}

	made := None
	for _, f := range food {
		for _, d := range [3]int{dir, dirn, dirp} {
			if c.get(x, y, biterDirs[d]) == f {
				c.move(x, y, biterDirs[d], Biter1+Element(d))
				made = f
				break
			}
		}
		if made != None {
			break
		}
	}
	switch made {
	case None:
		c.store(x, y, Biter1+Element(dirp))
	case Stone:
		// the stone is pushed behind
		c.store(x, y, Stone)
	}
	if made != None && made != Space {
		c.playSound(SoundBiterEat)
	}
}

// chasingStone rolls after the player. It falls like a stone when there is
// room below; otherwise it moves one step towards the newest remembered
// player position, choosing the axis by a coin flip.
func (c *Cave) chasingStone(x, y int) {
	g := c.GravityNow
	if !c.GravityDisabled && c.isSpace(x, y, g) {
		c.move(x, y, g, ChasingStone)
		return
	}

	px, py := c.PlayerX, c.PlayerY
	if h := c.PlayerHistory(); len(h) > 0 {
		px, py = h[0].X, h[0].Y
	}

	horizontal := c.Random.Bool()
	moved := false
	for i := 3; i > 0 && !moved; i-- {
		if horizontal {
			switch {
			case px < x && c.isSpace(x, y, Left):
				c.move(x, y, Left, ChasingStone)
				moved = true
			case px > x && c.isSpace(x, y, Right):
				c.move(x, y, Right, ChasingStone)
				moved = true
			}
		} else {
			switch {
			case py < y && c.isSpace(x, y, Up):
				c.move(x, y, Up, ChasingStone)
				moved = true
			case py > y && c.isSpace(x, y, Down):
				c.move(x, y, Down, ChasingStone)
				moved = true
			}
		}
		horizontal = !horizontal
	}
	if moved {
		return
	}

	// stuck on both axes: squeeze through the diagonal towards the player
	var d Direction
	switch {
	case px < x && py < y:
		d = UpLeft
	case px > x && py < y:
		d = UpRight
	case px < x && py > y:
		d = DownLeft
	case px > x && py > y:
		d = DownRight
	default:
		return
	}
	if c.isSpace(x, y, d) {
		c.move(x, y, d, ChasingStone)
	}
}
