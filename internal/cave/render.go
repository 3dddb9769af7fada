package cave

import (
	"errors"
	"fmt"
)

// ErrBadDefinition is returned when a definition cannot be rendered.
var ErrBadDefinition = errors.New("cave: bad definition")

// Render materializes the grid of def for a difficulty level. The result
// depends only on its arguments: rendering twice with the same seed gives
// identical caves. def is not modified.
func Render(def *Definition, level int, seed uint32) (*Cave, error) {
	Init()
	if def.W < 1 || def.H < 1 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadDefinition, def.W, def.H)
	}
	if level < 0 || level >= NumLevels {
		return nil, fmt.Errorf("%w: level %d out of range", ErrBadDefinition, level)
	}
	if def.Map != nil {
		if len(def.Map) != def.H {
			return nil, fmt.Errorf("%w: map has %d rows, want %d", ErrBadDefinition, len(def.Map), def.H)
		}
		for y, row := range def.Map {
			if len(row) != def.W {
				return nil, fmt.Errorf("%w: map row %d has %d cells, want %d", ErrBadDefinition, y, len(row), def.W)
			}
		}
	}

	c := newCave(def, level)
	c.RenderSeed = seed
	c.Random = NewRandom(seed)
	lp := &c.Levels[level]

	if c.Map != nil {
		for y, row := range c.Map {
			for x, e := range row {
				c.rows[y][x] = C(e)
			}
		}
	} else {
		c.randomFill(lp)
	}

	slimeSeed := lp.SlimeSeedC64
	if slimeSeed < 0 {
		slimeSeed = c.Random.IntRange(0, 1<<16)
	}
	c.C64 = NewC64Random(uint16(slimeSeed))

	for i := range c.Objects {
		o := &c.Objects[i]
		if o.Active(level) {
			c.draw(o, i)
		}
	}
	return c, nil
}

// randomFill synthesizes the map: rows 1..h-2 are filled from the weighted
// candidates, then the whole frame is drawn with the border element. The
// first and last columns still consume a random number each, as the
// original generators did, so imported caves come out identical.
func (c *Cave) randomFill(lp *LevelParams) {
	seed := lp.RandSeed
	if seed < 0 {
		seed = c.Random.IntRange(0, 1<<16)
	}
	var next func() int
	if lp.RandomC64 {
		r := NewC64Random(uint16(seed))
		next = r.Next
	} else {
		r := NewRandom(uint32(seed))
		next = func() int { return r.IntRange(0, 256) }
	}
	for i := range c.cells {
		c.cells[i] = C(c.InitialFill)
	}
	for y := 1; y < c.H-1; y++ {
		for x := 0; x < c.W; x++ {
			c.rows[y][x] = C(pickRandom(next(), c.InitialFill, c.RandomFill, c.RandomProb))
		}
	}
	for y := 0; y < c.H; y++ {
		c.rows[y][0] = C(c.InitialBorder)
		c.rows[y][c.W-1] = C(c.InitialBorder)
	}
	for x := 0; x < c.W; x++ {
		c.rows[0][x] = C(c.InitialBorder)
		c.rows[c.H-1][x] = C(c.InitialBorder)
	}
}
