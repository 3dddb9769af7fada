package cave

// explode blows up the element at x, y. The element decides the pattern
// and what the explosion leaves behind.
func (c *Cave) explode(x, y int) {
	switch e := c.Get(x, y); {
	case e == Ghost:
		c.ghostExplode(x, y)
	case e == Bomb || e == BombTick7:
		c.bombExplode(x, y)
	case e == Voodoo:
		c.playSound(SoundVoodooExplosion)
		c.creatureExplode(x, y, Explode1)
	case e == NitroPack || e == NitroPackF || e == NitroPackExplode:
		c.nitroExplode(x, y)
	case e == Amoeba2:
		c.creatureExplode(x, y, Amoeba2Explode1)
	case e >= Butterfly1 && e <= AltButterfly4:
		c.creatureExplode(x, y, PreDiamond1)
	case e >= Stonefly1 && e <= Stonefly4:
		c.creatureExplode(x, y, PreStone1)
	default:
		c.creatureExplode(x, y, Explode1)
	}
}

// cellExplode turns one cell into an explosion stage. Indestructible cells
// are left alone; a voodoo may take the player with it.
func (c *Cave) cellExplode(x, y int, to Element) {
	p := c.at(x, y)
	e := p.Elem
	if e.Is(FlagNonExplodable) {
		return
	}
	switch {
	case e == Voodoo && c.VoodooAnyHurtKillsPlayer:
		c.VoodooTouched = true
		c.KillPlayer = true
	case e == Voodoo && !c.VoodooDisappearInExplosion:
		to = TimePenalty
	case e == NitroPack || e == NitroPackF:
		to = NitroPackExplode
	}
	// the explosion is written absolutely: cells already scanned keep the
	// new stage unprocessed until next frame
	p.Elem = to
	p.Flags |= Scanned
}

// creatureExplode covers the 3×3 block around x, y.
func (c *Cave) creatureExplode(x, y int, to Element) {
	c.CKDelay += 1200
	c.playSound(SoundExplosion)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.cellExplode(x+dx, y+dy, to)
		}
	}
}

// nitroExplode is a 3×3 explosion that also restarts its own center.
func (c *Cave) nitroExplode(x, y int) {
	c.CKDelay += 1200
	c.playSound(SoundNitroExplosion)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.cellExplode(x+dx, y+dy, NitroExplode1)
		}
	}
	p := c.at(x, y)
	p.Elem = NitroExplode1
	p.Flags |= Scanned
}

// tryExplodeSkipVoodoo is the bomb variant of cellExplode: a voodoo only
// goes when voodoos disappear in explosions.
func (c *Cave) tryExplodeSkipVoodoo(x, y int, to Element) {
	p := c.at(x, y)
	e := p.Elem
	if e.Is(FlagNonExplodable) {
		return
	}
	if e == Voodoo {
		if c.VoodooAnyHurtKillsPlayer {
			c.VoodooTouched = true
			c.KillPlayer = true
		}
		if !c.VoodooDisappearInExplosion {
			return
		}
	}
	p.Elem = to
	p.Flags |= Scanned
}

// bombExplode blows a plus-shaped hole.
func (c *Cave) bombExplode(x, y int) {
	c.CKDelay += 1200
	c.playSound(SoundBombExplosion)
	c.tryExplodeSkipVoodoo(x, y, BombExplode1)
	for _, d := range [4]Direction{Up, Down, Left, Right} {
		c.tryExplodeSkipVoodoo(x+d.DX(), y+d.DY(), BombExplode1)
	}
}

// ghostExplode hits the center and the four diagonals.
func (c *Cave) ghostExplode(x, y int) {
	c.CKDelay += 650
	c.playSound(SoundGhostExplosion)
	c.tryExplodeSkipVoodoo(x, y, GhostExplode1)
	for _, d := range [4]Direction{UpLeft, UpRight, DownLeft, DownRight} {
		c.tryExplodeSkipVoodoo(x+d.DX(), y+d.DY(), GhostExplode1)
	}
}
