package importer

import (
	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

// legacyTimer maps a stored amoeba or magic wall time of zero to 999: the
// original timers decremented before testing, so zero underflowed. The
// cave time is stored as is.
func legacyTimer(t int) int {
	if t == 0 {
		return 999
	}
	return t
}

// legacyDiamonds reads a diamond count stored modulo 100; zero stands for
// a full hundred.
func legacyDiamonds(b byte) int {
	d := int(b) % 100
	if d == 0 {
		return 100
	}
	return d
}

// legacyRow converts a stored row. The first engine counted the two status
// lines above the cave.
func legacyRow(b byte) int {
	return int(b) - 2
}

// checksumHack repairs a known cave whose published dumps lost objects.
// The cave is recognized by format, name and the XOR of its raw bytes.
type checksumHack struct {
	tag  registry.Tag
	name string
	sum  byte
	fix  func(def *cave.Definition)
}

// checksumHacks lists the registered repairs. A repair is only added
// together with the dump it was taken from; none are registered yet.
var checksumHacks []checksumHack

func xorSum(raw []byte) byte {
	var s byte
	for _, b := range raw {
		s ^= b
	}
	return s
}

// applyChecksumHack runs the fix registered for the decoded cave, if any.
func applyChecksumHack(tag registry.Tag, raw []byte, def *cave.Definition, ctx *registry.Context) bool {
	sum := xorSum(raw)
	for _, h := range checksumHacks {
		if h.tag != tag || h.name != def.Name || h.sum != sum {
			continue
		}
		h.fix(def)
		if ctx != nil && ctx.Log != nil {
			ctx.Log.Info("applied cave fix", "cave", def.Name, "checksum", sum)
		}
		return true
	}
	return false
}
