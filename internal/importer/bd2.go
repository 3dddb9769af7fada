package importer

import (
	"fmt"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

// Cave layout of the second engine.
const (
	bd2Index       = 0
	bd2Flags       = 1
	bd2Diamonds    = 2
	bd2Time        = 7
	bd2Value       = 12
	bd2ExtraValue  = 13
	bd2AmoebaTime  = 14
	bd2MagicTime   = 15
	bd2Seeds       = 16
	bd2RandomElems = 21
	bd2RandomProbs = 25
	bd2Spare       = 29
	bd2Objects     = 30

	bd2End = 0xFF
)

const (
	bd2OpPoint    = 0 // x y elem
	bd2OpLine     = 1 // x y len dir elem
	bd2OpRect     = 2 // x1 y1 x2 y2 elem
	bd2OpFillRect = 3 // x1 y1 x2 y2 elem fill
	bd2OpRaster   = 4 // x1 y1 nx ny dx dy elem
	bd2OpBitmap   = 5 // elem addrlo addrhi n bits...
	bd2OpJoin     = 6 // elem fill dx dy
)

// fixed lengths including the opcode; the bitmap adds its bit bytes
var bd2OpLen = map[byte]int{
	bd2OpPoint:    4,
	bd2OpLine:     6,
	bd2OpRect:     6,
	bd2OpFillRect: 7,
	bd2OpRaster:   8,
	bd2OpBitmap:   5,
	bd2OpJoin:     5,
}

const bd2FlagIntermission = 1 << 0

func init() {
	registry.Register(registry.Format{
		Tag:   "bd2",
		Magic: "GDashBD2",
		Title: "Boulder Dash 2 (C64)",
		Decode: func(data []byte, ctx *registry.Context) (*cave.Definition, int, error) {
			return decodeBD2(data, ctx, bd2Codes, cave.SchedBD2)
		},
	})
	registry.Register(registry.Format{
		Tag:   "bd2atari",
		Magic: "GDashB2A",
		Title: "Boulder Dash 2 (Atari)",
		Decode: func(data []byte, ctx *registry.Context) (*cave.Definition, int, error) {
			return decodeBD2(data, ctx, bd2AtariCodes, cave.SchedBD2PLCKAtari)
		},
	})
}

func decodeBD2(data []byte, ctx *registry.Context, codes codeTable, sched cave.Scheduling) (*cave.Definition, int, error) {
	if err := need(data, bd2Objects+1, "cave header"); err != nil {
		return nil, 0, err
	}
	def := legacyDefinition(data[bd2Flags]&bd2FlagIntermission != 0)
	def.Name = fmt.Sprintf("Cave %d", int(data[bd2Index])+1)
	def.Scheduling = sched
	def.DiamondValue = int(data[bd2Value])
	def.ExtraDiamondValue = int(data[bd2ExtraValue])
	for l := range def.Levels {
		lp := &def.Levels[l]
		lp.Diamonds = legacyDiamonds(data[bd2Diamonds+l])
		lp.Time = int(data[bd2Time+l])
		lp.RandSeed = int(data[bd2Seeds+l])
		lp.RandomC64 = true
		lp.AmoebaTime = legacyTimer(int(data[bd2AmoebaTime]))
		lp.MagicWallTime = legacyTimer(int(data[bd2MagicTime]))
		lp.HWDelay = bd1HWDelay[l]
	}
	for i := range def.RandomFill {
		def.RandomFill[i] = codes.lookup(data[bd2RandomElems+i], ctx)
		def.RandomProb[i] = int(data[bd2RandomProbs+i])
	}

	pos := bd2Objects
	for {
		if pos >= len(data) {
			return nil, 0, fmt.Errorf("%w: object list not terminated", ErrTruncated)
		}
		op := data[pos]
		if op == bd2End {
			pos++
			break
		}
		n, known := bd2OpLen[op]
		if !known {
			warn(ctx, "unknown object opcode", "opcode", op, "offset", pos)
			pos++
			continue
		}
		if err := need(data[pos:], n, "object"); err != nil {
			return nil, 0, err
		}
		a := data[pos+1 : pos+n]
		switch op {
		case bd2OpPoint:
			x, y := int(a[0]), int(a[1])
			checkPoint(ctx, def, x, y)
			def.Objects = append(def.Objects, cave.PointObject(x, y, codes.lookup(a[2], ctx)))
		case bd2OpLine:
			x, y, length := int(a[0]), int(a[1]), int(a[2])
			d := cave.Direction(a[3]&7 + 1)
			x2, y2 := x+d.DX()*(length-1), y+d.DY()*(length-1)
			checkPoint(ctx, def, x, y)
			checkPoint(ctx, def, x2, y2)
			def.Objects = append(def.Objects, cave.LineObject(x, y, x2, y2, codes.lookup(a[4], ctx)))
		case bd2OpRect, bd2OpFillRect:
			x1, y1, x2, y2 := int(a[0]), int(a[1]), int(a[2]), int(a[3])
			checkPoint(ctx, def, x1, y1)
			checkPoint(ctx, def, x2, y2)
			e := codes.lookup(a[4], ctx)
			if op == bd2OpRect {
				def.Objects = append(def.Objects, cave.RectObject(x1, y1, x2, y2, e))
			} else {
				def.Objects = append(def.Objects, cave.FilledRectObject(x1, y1, x2, y2, e, codes.lookup(a[5], ctx)))
			}
		case bd2OpRaster:
			o := cave.NewObject(cave.ObjRaster)
			o.X1, o.Y1 = int(a[0]), int(a[1])
			o.DX, o.DY = max(int(a[4]), 1), max(int(a[5]), 1)
			o.X2, o.Y2 = o.X1+(int(a[2])-1)*o.DX, o.Y1+(int(a[3])-1)*o.DY
			o.Elem = codes.lookup(a[6], ctx)
			checkPoint(ctx, def, o.X1, o.Y1)
			checkPoint(ctx, def, o.X2, o.Y2)
			def.Objects = append(def.Objects, o)
		case bd2OpBitmap:
			bits := int(a[3])
			if err := need(data[pos:], n+bits, "bitmap"); err != nil {
				return nil, 0, err
			}
			e := codes.lookup(a[0], ctx)
			addr := int(a[1]) | int(a[2])<<8
			for _, b := range data[pos+n : pos+n+bits] {
				for bit := 7; bit >= 0; bit-- {
					if b&(1<<bit) != 0 {
						x, y := addr%def.W, addr/def.W
						checkPoint(ctx, def, x, y)
						def.Objects = append(def.Objects, cave.PointObject(x, y, e))
					}
					addr++
				}
			}
			n += bits
		case bd2OpJoin:
			o := cave.NewObject(cave.ObjJoin)
			o.Elem = codes.lookup(a[0], ctx)
			o.Fill = codes.lookup(a[1], ctx)
			o.DX, o.DY = int(int8(a[2])), int(int8(a[3]))
			def.Objects = append(def.Objects, o)
		}
		pos += n
	}
	return def, pos, nil
}
