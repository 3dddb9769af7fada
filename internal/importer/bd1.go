package importer

import (
	"fmt"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

// Cave layout of the first engine. Per-level values take five bytes.
const (
	bd1Index       = 0 // cave number; every fifth cave is an intermission
	bd1AmoebaMagic = 1 // amoeba and magic wall time
	bd1Value       = 2
	bd1ExtraValue  = 3
	bd1Seeds       = 4
	bd1Diamonds    = 9
	bd1Time        = 14
	bd1Colors      = 19 // five colour bytes, not used
	bd1RandomElems = 24
	bd1RandomProbs = 28
	bd1Objects     = 32

	bd1End = 0xFF
)

// object opcodes, in the top two bits of the element byte
const (
	bd1OpPoint = iota
	bd1OpLine
	bd1OpFillRect
	bd1OpRect
)

var bd1OpLen = [4]int{3, 5, 6, 5}

// bd1HWDelay is the delay loop constant of each difficulty level.
var bd1HWDelay = [cave.NumLevels]int{12, 6, 3, 1, 0}

type bd1Variant struct {
	codes codeTable
	sched cave.Scheduling
}

func init() {
	register := func(tag, magic, title string, v bd1Variant) {
		registry.Register(registry.Format{
			Tag:   registry.Tag(tag),
			Magic: magic,
			Title: title,
			Decode: func(data []byte, ctx *registry.Context) (*cave.Definition, int, error) {
				return decodeBD1(data, ctx, v)
			},
		})
	}
	register("bd1", "GDashBD1", "Boulder Dash 1 (C64)", bd1Variant{bd1Codes, cave.SchedBD1})
	register("bd1atari", "GDashB1A", "Boulder Dash 1 (Atari)", bd1Variant{bd1AtariCodes, cave.SchedBD1Atari})
	register("dc1", "GDashDC1", "Deluxe Caves 1", bd1Variant{deluxeCodes, cave.SchedBD1})
}

func decodeBD1(data []byte, ctx *registry.Context, v bd1Variant) (*cave.Definition, int, error) {
	if err := need(data, bd1Objects+1, "cave header"); err != nil {
		return nil, 0, err
	}
	index := int(data[bd1Index])
	intermission := index%5 == 4
	def := legacyDefinition(intermission)
	def.Name = bd1Name(index)
	def.Scheduling = v.sched
	def.DiamondValue = int(data[bd1Value])
	def.ExtraDiamondValue = int(data[bd1ExtraValue])

	for l := range def.Levels {
		lp := &def.Levels[l]
		lp.RandSeed = int(data[bd1Seeds+l])
		lp.RandomC64 = true
		lp.Diamonds = legacyDiamonds(data[bd1Diamonds+l])
		lp.Time = int(data[bd1Time+l])
		lp.AmoebaTime = legacyTimer(int(data[bd1AmoebaMagic]))
		lp.MagicWallTime = legacyTimer(int(data[bd1AmoebaMagic]))
		lp.HWDelay = bd1HWDelay[l]
	}
	for i := range def.RandomFill {
		def.RandomFill[i] = v.codes.lookup(data[bd1RandomElems+i]&0x3F, ctx)
		def.RandomProb[i] = int(data[bd1RandomProbs+i])
	}

	pos := bd1Objects
	for {
		if pos >= len(data) {
			return nil, 0, fmt.Errorf("%w: object list not terminated", ErrTruncated)
		}
		b := data[pos]
		if b == bd1End {
			pos++
			break
		}
		op := int(b>>6) & 3
		if err := need(data[pos:], bd1OpLen[op], "object"); err != nil {
			return nil, 0, err
		}
		args := data[pos+1 : pos+bd1OpLen[op]]
		e := v.codes.lookup(b&0x3F, ctx)
		x, y := int(args[0]), legacyRow(args[1])
		checkPoint(ctx, def, x, y)

		switch op {
		case bd1OpPoint:
			def.Objects = append(def.Objects, cave.PointObject(x, y, e))
		case bd1OpLine:
			n, d := int(args[2]), cave.Direction(args[3]&7+1)
			x2, y2 := x+d.DX()*(n-1), y+d.DY()*(n-1)
			checkPoint(ctx, def, x2, y2)
			def.Objects = append(def.Objects, cave.LineObject(x, y, x2, y2, e))
		case bd1OpFillRect:
			x2, y2 := x+int(args[2])-1, y+int(args[3])-1
			checkPoint(ctx, def, x2, y2)
			fill := v.codes.lookup(args[4]&0x3F, ctx)
			def.Objects = append(def.Objects, cave.FilledRectObject(x, y, x2, y2, e, fill))
		case bd1OpRect:
			x2, y2 := x+int(args[2])-1, y+int(args[3])-1
			checkPoint(ctx, def, x2, y2)
			def.Objects = append(def.Objects, cave.RectObject(x, y, x2, y2, e))
		}
		pos += bd1OpLen[op]
	}
	return def, pos, nil
}

// bd1Name names caves the way the game listed them: sixteen lettered caves
// with an intermission after every fourth.
func bd1Name(index int) string {
	if index%5 == 4 {
		return fmt.Sprintf("Intermission %d", index/5+1)
	}
	n := index - index/5
	if n < 26 {
		return string(rune('A' + n))
	}
	return fmt.Sprintf("Cave %d", n+1)
}
