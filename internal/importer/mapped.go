package importer

import "github.com/vovakirdan/tui-caves/internal/cave"

// Full-map formats store every cell of a 40×22 cave. Intermissions use
// the top left corner.
const (
	mapW = 40
	mapH = 22
)

// flag bits shared by the full-map formats
const (
	flagIntermission = 1 << iota
	flagDiagonal
	flagSlimePredictable
	flagPAL
)

// mapParams are the cave parameters every full-map format stores once for
// all difficulty levels.
type mapParams struct {
	time            int
	diamonds        int
	value           int
	extraValue      int
	amoebaTime      int
	magicTime       int
	slimeBits       int
	flags           byte
	hwDelay         int
	amoebaThreshold int
}

func newMapDefinition(p mapParams, sched cave.Scheduling) *cave.Definition {
	def := legacyDefinition(p.flags&flagIntermission != 0)
	def.Scheduling = sched
	def.DiamondValue = p.value
	def.ExtraDiamondValue = p.extraValue
	def.DiagonalMovements = p.flags&flagDiagonal != 0
	def.SlimePredictable = p.flags&flagSlimePredictable != 0
	def.PALTiming = p.flags&flagPAL != 0
	def.SetAllLevels(func(lp *cave.LevelParams) {
		lp.Time = p.time
		lp.Diamonds = p.diamonds
		lp.AmoebaTime = legacyTimer(p.amoebaTime)
		lp.MagicWallTime = legacyTimer(p.magicTime)
		lp.SlimePermeabilityC64 = p.slimeBits
		lp.HWDelay = p.hwDelay
		if p.amoebaThreshold > 0 {
			lp.AmoebaThreshold = p.amoebaThreshold
		}
	})
	return def
}

// readMap fills def.Map from cell, which returns the element stored at
// index y*mapW+x.
func readMap(def *cave.Definition, cell func(i int) cave.Element) {
	def.Map = make([][]cave.Element, def.H)
	for y := range def.Map {
		row := make([]cave.Element, def.W)
		for x := range row {
			row[x] = cell(y*mapW + x)
		}
		def.Map[y] = row
	}
}

func le16(b []byte) int {
	return int(b[0]) | int(b[1])<<8
}
