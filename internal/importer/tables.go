package importer

import (
	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

// codeTable translates the byte codes of one format into elements. Codes
// the format never uses map to cave.Unknown.
type codeTable []cave.Element

func newCodeTable(size int, entries map[byte]cave.Element) codeTable {
	t := make(codeTable, size)
	for i := range t {
		t[i] = cave.Unknown
	}
	for code, e := range entries {
		t[code] = e
	}
	return t
}

// with returns a copy of t with entries overridden.
func (t codeTable) with(entries map[byte]cave.Element) codeTable {
	out := append(codeTable(nil), t...)
	for code, e := range entries {
		if int(code) >= len(out) {
			grown := make(codeTable, int(code)+1)
			copy(grown, out)
			for i := len(out); i < len(grown); i++ {
				grown[i] = cave.Unknown
			}
			out = grown
		}
		out[code] = e
	}
	return out
}

// lookup translates code, logging codes the table does not know.
func (t codeTable) lookup(code byte, ctx *registry.Context) cave.Element {
	if int(code) < len(t) && t[code] != cave.Unknown {
		return t[code]
	}
	warn(ctx, "unknown element code", "code", code)
	return cave.Unknown
}

// The 6-bit element codes of the C64 engine. Codes with the scanned bit set
// (the odd ones of each pair) load as their unscanned element.
var bd1Codes = newCodeTable(64, map[byte]cave.Element{
	0x00: cave.Space,
	0x01: cave.Dirt,
	0x02: cave.Brick,
	0x03: cave.MagicWall,
	0x04: cave.PreOutbox,
	0x05: cave.Outbox,
	0x07: cave.Steel,
	0x08: cave.Firefly1, 0x09: cave.Firefly2, 0x0A: cave.Firefly3, 0x0B: cave.Firefly4,
	0x0C: cave.Firefly1, 0x0D: cave.Firefly2, 0x0E: cave.Firefly3, 0x0F: cave.Firefly4,
	0x10: cave.Stone, 0x11: cave.Stone,
	0x12: cave.StoneF, 0x13: cave.StoneF,
	0x14: cave.Diamond, 0x15: cave.Diamond,
	0x16: cave.DiamondF, 0x17: cave.DiamondF,
	0x18: cave.Explode1, 0x19: cave.Explode2, 0x1A: cave.Explode3,
	0x1B: cave.PreDiamond1, 0x1C: cave.PreDiamond2, 0x1D: cave.PreDiamond3, 0x1E: cave.PreDiamond4, 0x1F: cave.PreDiamond5,
	0x20: cave.Explode4, 0x21: cave.Explode5,
	0x25: cave.Inbox,
	0x26: cave.PrePlayer1, 0x27: cave.PrePlayer2, 0x28: cave.PrePlayer3,
	0x30: cave.Butterfly1, 0x31: cave.Butterfly2, 0x32: cave.Butterfly3, 0x33: cave.Butterfly4,
	0x34: cave.Butterfly1, 0x35: cave.Butterfly2, 0x36: cave.Butterfly3, 0x37: cave.Butterfly4,
	0x38: cave.Player, 0x39: cave.Player,
	0x3A: cave.Amoeba, 0x3B: cave.Amoeba,
})

// The Atari port reused the free codes for its hidden outbox and a
// horizontal expanding wall.
var bd1AtariCodes = bd1Codes.with(map[byte]cave.Element{
	0x05: cave.PreInvisOutbox,
	0x06: cave.HExpandingWall,
})

// Deluxe Caves kept the C64 engine and added slime and expanding walls.
var deluxeCodes = bd1Codes.with(map[byte]cave.Element{
	0x06: cave.HExpandingWall,
	0x22: cave.VExpandingWall,
	0x23: cave.ExpandingWall,
	0x3C: cave.Slime,
	0x3D: cave.Voodoo,
})

// Boulder Dash 2 kept the first engine's codes and filled in the gaps.
var bd2Codes = bd1Codes.with(map[byte]cave.Element{
	0x05: cave.PreInvisOutbox,
	0x06: cave.SteelExplodable,
	0x22: cave.HExpandingWall,
	0x23: cave.VExpandingWall,
	0x24: cave.ExpandingWall,
	0x29: cave.Acid,
	0x2A: cave.Slime,
	0x2B: cave.Bomb,
	0x2C: cave.Clock,
	0x2D: cave.Voodoo,
	0x2E: cave.Gravestone,
	0x2F: cave.Bladder,
	0x3C: cave.Stonefly1, 0x3D: cave.Stonefly2, 0x3E: cave.Stonefly3, 0x3F: cave.Stonefly4,
})

var bd2AtariCodes = bd2Codes.with(map[byte]cave.Element{
	0x2E: cave.TimePenalty,
	0x2F: cave.Brick,
})

// Construction Kit maps pack one cell per nybble.
var plckNybbles = newCodeTable(16, map[byte]cave.Element{
	0x0: cave.Space,
	0x1: cave.Dirt,
	0x2: cave.Brick,
	0x3: cave.MagicWall,
	0x4: cave.PreOutbox,
	0x5: cave.HExpandingWall,
	0x6: cave.Steel,
	0x7: cave.Firefly1,
	0x8: cave.Stone,
	0x9: cave.Diamond,
	0xA: cave.Butterfly1,
	0xB: cave.Inbox,
	0xC: cave.Amoeba,
	0xD: cave.Voodoo,
	0xE: cave.Slime,
	0xF: cave.PreInvisOutbox,
})

var plckAtariNybbles = plckNybbles.with(map[byte]cave.Element{
	0x5: cave.ExpandingWall,
	0xF: cave.Gravestone,
})

// Crazy Light stores one byte per cell.
var crliCodes = newCodeTable(128, map[byte]cave.Element{
	0x00: cave.Space,
	0x01: cave.Dirt,
	0x02: cave.Brick,
	0x03: cave.MagicWall,
	0x04: cave.PreOutbox,
	0x05: cave.PreInvisOutbox,
	0x06: cave.SteelExplodable,
	0x07: cave.Steel,
	0x08: cave.Firefly1, 0x09: cave.Firefly2, 0x0A: cave.Firefly3, 0x0B: cave.Firefly4,
	0x10: cave.Stone,
	0x12: cave.StoneF,
	0x14: cave.Diamond,
	0x16: cave.DiamondF,
	0x18: cave.HExpandingWall,
	0x19: cave.VExpandingWall,
	0x1A: cave.ExpandingWall,
	0x1B: cave.Acid,
	0x1C: cave.Slime,
	0x1D: cave.Bomb,
	0x1E: cave.Clock,
	0x1F: cave.Voodoo,
	0x20: cave.Ghost,
	0x21: cave.Bladder,
	0x22: cave.BladderSpender,
	0x23: cave.Key1, 0x24: cave.Key2, 0x25: cave.Key3,
	0x26: cave.Door1, 0x27: cave.Door2, 0x28: cave.Door3,
	0x29: cave.Inbox,
	0x2A: cave.Lava,
	0x2B: cave.Nut,
	0x2C: cave.Sweet,
	0x2D: cave.DirtGlued,
	0x2E: cave.StoneGlued,
	0x2F: cave.DiamondGlued,
	0x30: cave.Butterfly1, 0x31: cave.Butterfly2, 0x32: cave.Butterfly3, 0x33: cave.Butterfly4,
	0x34: cave.Stonefly1, 0x35: cave.Stonefly2, 0x36: cave.Stonefly3, 0x37: cave.Stonefly4,
	0x38: cave.Player,
	0x3A: cave.Amoeba,
	0x3B: cave.Amoeba2,
	0x3C: cave.Dragonfly1, 0x3D: cave.Dragonfly2, 0x3E: cave.Dragonfly3, 0x3F: cave.Dragonfly4,
	0x40: cave.Biter1, 0x41: cave.Biter2, 0x42: cave.Biter3, 0x43: cave.Biter4,
	0x44: cave.Cow1, 0x45: cave.Cow2, 0x46: cave.Cow3, 0x47: cave.Cow4,
	0x48: cave.Water,
	0x49: cave.Skeleton,
	0x4A: cave.Pot,
	0x4B: cave.PneumaticHammer,
	0x4C: cave.Teleporter,
	0x4D: cave.Box,
	0x4E: cave.FallingWall,
	0x4F: cave.NitroPack,
})

// Crazy Dream 7 added belts, replicators and the switches.
var cd7Codes = crliCodes.with(map[byte]cave.Element{
	0x50: cave.ConveyorLeft,
	0x51: cave.ConveyorRight,
	0x52: cave.Replicator,
	0x53: cave.ConveyorSwitch,
	0x54: cave.ConveyorDirSwitch,
	0x55: cave.ReplicatorSwitch,
	0x56: cave.CreatureSwitch,
	0x57: cave.ExpandingWallSwitch,
	0x58: cave.BiterSwitch,
	0x59: cave.DiamondKey,
	0x5A: cave.TrappedDiamond,
})

// Crazy Dream 9 added gravity, flying stones and sloped walls.
var cd9Codes = cd7Codes.with(map[byte]cave.Element{
	0x5B: cave.GravitySwitch,
	0x5C: cave.FlyingStone,
	0x5D: cave.FlyingDiamond,
	0x5E: cave.MegaStone,
	0x5F: cave.WaitingStone,
	0x60: cave.ChasingStone,
	0x61: cave.BrickSlopedUpRight,
	0x62: cave.BrickSlopedUpLeft,
	0x63: cave.BrickSlopedDownLeft,
	0x64: cave.BrickSlopedDownRight,
	0x65: cave.SteelSlopedUpRight,
	0x66: cave.SteelSlopedUpLeft,
	0x67: cave.SteelSlopedDownLeft,
	0x68: cave.SteelSlopedDownRight,
	0x69: cave.BrickEatable,
	0x6A: cave.SteelEatable,
})

// 1stB shares the Crazy Light numbering up to its own extensions.
var firstBCodes = crliCodes.with(map[byte]cave.Element{
	0x50: cave.AltFirefly1, 0x51: cave.AltFirefly2, 0x52: cave.AltFirefly3, 0x53: cave.AltFirefly4,
	0x54: cave.AltButterfly1, 0x55: cave.AltButterfly2, 0x56: cave.AltButterfly3, 0x57: cave.AltButterfly4,
	0x58: cave.Dirt2,
	0x59: cave.BrickNonSliceable,
})
