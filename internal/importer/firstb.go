package importer

import (
	"fmt"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

// 1stB caves are unpacked 0x400-byte blocks: one byte per cell, then the
// parameters at 0x370.
const (
	firstBCaveLen = 0x400

	firstBTime             = 0x370 // two bytes
	firstBDiamonds         = 0x372 // two bytes
	firstBValue            = 0x374
	firstBExtraValue       = 0x375
	firstBAmoebaTime       = 0x376
	firstBMagicTime        = 0x377
	firstBSlime            = 0x378
	firstBFlags            = 0x379
	firstBHWDelay          = 0x37A
	firstBAmoebaThreshold  = 0x37B // two bytes
	firstBName             = 0x380
	firstBNameLen          = 16
	firstBPushingProb      = 0x390 // 1/255 steps
	firstBPushingProbSweet = 0x391
	firstBGravityTime      = 0x392
	firstBAmoeba2Time      = 0x393
	firstBAmoeba2Threshold = 0x394 // two bytes
	firstBBonusTime        = 0x396
	firstBPenaltyTime      = 0x397
)

func init() {
	registry.Register(registry.Format{
		Tag:    "1stb",
		Magic:  "GDash1ST",
		Title:  "1stB",
		Decode: decodeFirstB,
	})
}

func decodeFirstB(data []byte, ctx *registry.Context) (*cave.Definition, int, error) {
	if err := need(data, firstBCaveLen, "1stB cave"); err != nil {
		return nil, 0, err
	}
	def := newMapDefinition(mapParams{
		time:            le16(data[firstBTime:]),
		diamonds:        le16(data[firstBDiamonds:]),
		value:           int(data[firstBValue]),
		extraValue:      int(data[firstBExtraValue]),
		amoebaTime:      int(data[firstBAmoebaTime]),
		magicTime:       int(data[firstBMagicTime]),
		slimeBits:       int(data[firstBSlime]),
		flags:           data[firstBFlags],
		hwDelay:         int(data[firstBHWDelay]),
		amoebaThreshold: le16(data[firstBAmoebaThreshold:]),
	}, cave.SchedCrDr)
	def.Name = fixedString(data[firstBName : firstBName+firstBNameLen])
	if def.Name == "" {
		def.Name = fmt.Sprintf("Cave %d", ctx.Index+1)
	}
	def.PushingStoneProb = int(data[firstBPushingProb]) * 1000000 / 255
	def.PushingStoneProbSweet = int(data[firstBPushingProbSweet]) * 1000000 / 255
	def.GravityChangeTime = int(data[firstBGravityTime])

	amoeba2Time := int(data[firstBAmoeba2Time])
	amoeba2Threshold := le16(data[firstBAmoeba2Threshold:])
	bonus, penalty := int(data[firstBBonusTime]), int(data[firstBPenaltyTime])
	def.SetAllLevels(func(lp *cave.LevelParams) {
		lp.Amoeba2Time = amoeba2Time
		if amoeba2Threshold > 0 {
			lp.Amoeba2Threshold = amoeba2Threshold
		}
		lp.BonusTime = bonus
		lp.PenaltyTime = penalty
	})
	readMap(def, func(i int) cave.Element {
		return firstBCodes.lookup(data[i], ctx)
	})
	return def, firstBCaveLen, nil
}
