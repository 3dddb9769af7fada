package importer

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

// Crazy Light and the Crazy Dream editors store run-length packed caves
// that unpack to crliCaveLen bytes: a version byte, one byte per cell and
// the parameters. A packed byte with the top bit set is a run of its low
// seven bits (0 means 128) of the next byte.
const (
	crliCaveLen = 0x3A0

	crliVersion         = 0
	crliMap             = 1
	crliTime            = 881 // two bytes
	crliDiamonds        = 883 // two bytes
	crliValue           = 885
	crliExtraValue      = 886
	crliAmoebaTime      = 887
	crliMagicTime       = 888
	crliSlime           = 889
	crliFlags           = 890
	crliHWDelay         = 891
	crliAmoebaThreshold = 892 // two bytes
	crliName            = 894
	crliNameLen         = 16

	// Crazy Dream 7
	crliAcidEats    = 910
	crliAcidSpread  = 911 // 1/255 steps
	crliBiterDelay  = 912
	crliSkeletons   = 913
	crliPushingProb = 914 // 1/255 steps

	// Crazy Dream 9
	crliGravity     = 915
	crliHammerFrame = 916
	crliFlags2      = 917
)

const (
	flag2HammeredReappear = 1 << iota
	flag2GravitySwitch
	flag2ConveyorsStopped
)

var crliGravities = []cave.Direction{cave.Down, cave.Up, cave.Left, cave.Right}

type crliVariant struct {
	codes    codeTable
	versions mapset.Set[byte]
	level    int // 0 Crazy Light, 1 Crazy Dream 7, 2 Crazy Dream 9
}

func versions(vs ...byte) mapset.Set[byte] {
	s := mapset.New[byte]()
	for _, v := range vs {
		s.Put(v)
	}
	return s
}

func init() {
	for _, f := range []struct {
		tag, magic, title string
		v                 crliVariant
	}{
		{"crli", "GDashCRL", "Crazy Light", crliVariant{crliCodes, versions(1, 2), 0}},
		{"cd7", "GDashCD7", "Crazy Dream 7", crliVariant{cd7Codes, versions(7), 1}},
		{"cd9", "GDashCD9", "Crazy Dream 9", crliVariant{cd9Codes, versions(9), 2}},
	} {
		v := f.v
		registry.Register(registry.Format{
			Tag:   registry.Tag(f.tag),
			Magic: f.magic,
			Title: f.title,
			Decode: func(data []byte, ctx *registry.Context) (*cave.Definition, int, error) {
				return decodeCRLI(data, ctx, v)
			},
		})
	}
}

func decodeCRLI(data []byte, ctx *registry.Context, v crliVariant) (*cave.Definition, int, error) {
	raw, used, err := crliUnpack(data, crliCaveLen)
	if err != nil {
		return nil, 0, err
	}
	if !v.versions.Has(raw[crliVersion]) {
		warn(ctx, "unknown editor version", "version", raw[crliVersion])
	}

	def := newMapDefinition(mapParams{
		time:            le16(raw[crliTime:]),
		diamonds:        le16(raw[crliDiamonds:]),
		value:           int(raw[crliValue]),
		extraValue:      int(raw[crliExtraValue]),
		amoebaTime:      int(raw[crliAmoebaTime]),
		magicTime:       int(raw[crliMagicTime]),
		slimeBits:       int(raw[crliSlime]),
		flags:           raw[crliFlags],
		hwDelay:         int(raw[crliHWDelay]),
		amoebaThreshold: le16(raw[crliAmoebaThreshold:]),
	}, cave.SchedCrDr)
	def.Name = fixedString(raw[crliName : crliName+crliNameLen])
	if def.Name == "" {
		def.Name = fmt.Sprintf("Cave %d", ctx.Index+1)
	}
	readMap(def, func(i int) cave.Element {
		return v.codes.lookup(raw[crliMap+i], ctx)
	})

	if v.level >= 1 {
		def.AcidEatsThis = v.codes.lookup(raw[crliAcidEats], ctx)
		def.AcidSpreadRatio = int(raw[crliAcidSpread]) * 1000000 / 255
		def.BiterDelayFrame = int(raw[crliBiterDelay])
		def.SkeletonsNeededForPot = int(raw[crliSkeletons])
		def.PushingStoneProb = int(raw[crliPushingProb]) * 1000000 / 255
	}
	if v.level >= 2 {
		g := int(raw[crliGravity])
		if g < len(crliGravities) {
			def.Gravity = crliGravities[g]
		} else {
			warn(ctx, "unknown gravity", "gravity", g)
		}
		def.PneumaticHammerFrame = int(raw[crliHammerFrame])
		f2 := raw[crliFlags2]
		def.HammeredWallsReappear = f2&flag2HammeredReappear != 0
		def.GravitySwitchActive = f2&flag2GravitySwitch != 0
		def.ConveyorBeltsActive = f2&flag2ConveyorsStopped == 0
	}
	return def, used, nil
}

// crliUnpack expands size bytes and reports the packed length.
func crliUnpack(data []byte, size int) ([]byte, int, error) {
	out := make([]byte, 0, size)
	pos := 0
	for len(out) < size {
		if pos >= len(data) {
			return nil, 0, fmt.Errorf("%w: packed cave ends after %d of %d bytes", ErrTruncated, len(out), size)
		}
		b := data[pos]
		if b&0x80 == 0 {
			out = append(out, b)
			pos++
			continue
		}
		if pos+1 >= len(data) {
			return nil, 0, fmt.Errorf("%w: run at offset %d", ErrTruncated, pos)
		}
		n := int(b & 0x7F)
		if n == 0 {
			n = 128
		}
		if len(out)+n > size {
			return nil, 0, fmt.Errorf("%w: run of %d overflows the cave", ErrMalformed, n)
		}
		for range n {
			out = append(out, data[pos+1])
		}
		pos += 2
	}
	return out, pos, nil
}
