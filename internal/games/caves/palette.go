package caves

import (
	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/core"
)

func cell(r rune, c core.Color) core.Cell {
	return core.Cell{Rune: r, Color: c}
}

func between(e, first, last cave.Element) bool {
	return e >= first && e <= last
}

// Glyph returns the terminal picture of an element. Closed exits look like
// steel wall, as on the original machines.
func Glyph(e cave.Element) core.Cell {
	switch {
	case e == cave.Space:
		return cell(' ', core.ColorDefault)
	case e == cave.DirtBall || e == cave.DirtBallF:
		return cell('o', core.ColorBrown)
	case between(e, cave.Dirt, cave.DirtLooseF):
		return cell('░', core.ColorBrown)
	case e == cave.MagicWall:
		return cell('▒', core.ColorBrightMagenta)
	case between(e, cave.Brick, cave.BrickNonSliceable),
		between(e, cave.HExpandingWall, cave.ExpandingWall),
		e == cave.FallingWall, e == cave.FallingWallF:
		return cell('▒', core.ColorRed)
	case between(e, cave.Steel, cave.PreOutbox),
		e == cave.PreInvisOutbox, e == cave.InvisOutbox,
		between(e, cave.HExpandingSteelWall, cave.ExpandingSteelWall),
		e == cave.BladderSpender:
		return cell('█', core.ColorGray)
	case e == cave.Outbox:
		return cell('▣', core.ColorBrightWhite)
	case e == cave.Inbox:
		return cell('▣', core.ColorYellow)
	case between(e, cave.ExpandingWallSwitch, cave.GravitySwitch):
		return cell('/', core.ColorCyan)
	case e == cave.Acid:
		return cell('%', core.ColorBrightGreen)
	case e == cave.Box:
		return cell('#', core.ColorBrown)
	case e == cave.TimePenalty, e == cave.Gravestone:
		return cell('┼', core.ColorGray)
	case e == cave.StoneGlued:
		return cell('O', core.ColorGray)
	case e == cave.DiamondGlued, e == cave.TrappedDiamond:
		return cell('◆', core.ColorGray)
	case e == cave.DiamondKey:
		return cell('◆', core.ColorBrightYellow)
	case e == cave.Clock:
		return cell('T', core.ColorBrightWhite)
	case e == cave.Sweet:
		return cell('s', core.ColorBrightMagenta)
	case e == cave.PneumaticHammer:
		return cell('h', core.ColorWhite)
	case e == cave.Skeleton:
		return cell('k', core.ColorWhite)
	case e == cave.Pot:
		return cell('u', core.ColorWhite)
	case between(e, cave.Water, cave.Water16):
		return cell('~', core.ColorBlue)
	case between(e, cave.Key1, cave.Key3):
		return cell('¤', keyColor(int(e-cave.Key1)))
	case between(e, cave.Door1, cave.Door3):
		return cell('▮', keyColor(int(e-cave.Door1)))
	case e == cave.Stone, e == cave.StoneF:
		return cell('O', core.ColorWhite)
	case e == cave.FlyingStone, e == cave.FlyingStoneF:
		return cell('o', core.ColorWhite)
	case e == cave.MegaStone, e == cave.MegaStoneF:
		return cell('Ø', core.ColorWhite)
	case e == cave.Diamond, e == cave.DiamondF:
		return cell('◆', core.ColorBrightCyan)
	case e == cave.FlyingDiamond, e == cave.FlyingDiamondF:
		return cell('◇', core.ColorBrightCyan)
	case e == cave.Nut, e == cave.NutF:
		return cell('•', core.ColorBrown)
	case between(e, cave.NitroPack, cave.NitroPackExplode):
		return cell('!', core.ColorBrightRed)
	case e == cave.WaitingStone:
		return cell('O', core.ColorDarkGray)
	case e == cave.ChasingStone:
		return cell('O', core.ColorBrightRed)
	case e == cave.Amoeba:
		return cell('▓', core.ColorBrightGreen)
	case e == cave.Amoeba2:
		return cell('▓', core.ColorGreen)
	case e == cave.Slime:
		return cell('≈', core.ColorGreen)
	case e == cave.Replicator:
		return cell('¤', core.ColorBrightBlue)
	case e == cave.ConveyorLeft:
		return cell('<', core.ColorGray)
	case e == cave.ConveyorRight:
		return cell('>', core.ColorGray)
	case e == cave.Lava:
		return cell('▓', core.ColorBrightRed)
	case between(e, cave.Bladder, cave.Bladder8):
		return cell('o', core.ColorBrightMagenta)
	case e == cave.Teleporter:
		return cell('0', core.ColorBrightBlue)
	case e == cave.Voodoo:
		return cell('@', core.ColorMagenta)
	case e == cave.Ghost:
		return cell('g', core.ColorWhite)
	case between(e, cave.Firefly1, cave.AltFirefly4):
		return cell('■', core.ColorOrange)
	case between(e, cave.Butterfly1, cave.AltButterfly4):
		return cell('╳', core.ColorBrightMagenta)
	case between(e, cave.Stonefly1, cave.Stonefly4):
		return cell('■', core.ColorWhite)
	case between(e, cave.Dragonfly1, cave.Dragonfly4):
		return cell('▲', core.ColorBrightGreen)
	case between(e, cave.Cow1, cave.CowEnclosed7):
		return cell('C', core.ColorBrown)
	case between(e, cave.Biter1, cave.Biter4):
		return cell('b', core.ColorGreen)
	case e == cave.Bomb:
		return cell('●', core.ColorWhite)
	case between(e, cave.BombTick1, cave.BombTick7):
		return cell('●', core.ColorBrightRed)
	case between(e, cave.PrePlayer1, cave.PrePlayer3):
		return cell('@', core.ColorYellow)
	case between(e, cave.Player, cave.PlayerPneumaticRight):
		return cell('@', core.ColorBrightYellow)
	case e == cave.PneumaticActiveLeft, e == cave.PneumaticActiveRight:
		return cell('=', core.ColorWhite)
	case between(e, cave.PreDiamond1, cave.PreDiamond5):
		return cell('*', core.ColorBrightCyan)
	case between(e, cave.PreStone1, cave.PreStone4), between(e, cave.PreClock1, cave.PreClock4):
		return cell('*', core.ColorWhite)
	case between(e, cave.PreSteel1, cave.PreSteel4):
		return cell('*', core.ColorGray)
	case between(e, cave.Explode1, cave.Explode5), between(e, cave.NitroExplode1, cave.GhostExplode4):
		return cell('*', core.ColorBrightRed)
	case between(e, cave.NutCrack1, cave.NutCrack4):
		return cell('•', core.ColorYellow)
	}
	return cell('?', core.ColorDarkGray)
}

func keyColor(i int) core.Color {
	return [...]core.Color{core.ColorBrightYellow, core.ColorBrightCyan, core.ColorBrightMagenta}[i]
}
