package importer

import (
	"fmt"
	"slices"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

// A Construction Kit cave is a fixed 0x200-byte block: the map packed two
// cells per byte, high nybble first, then the parameters.
const (
	plckCaveLen = 0x200

	plckTime            = 0x1B8
	plckDiamonds        = 0x1B9
	plckValue           = 0x1BA
	plckExtraValue      = 0x1BB
	plckAmoebaTime      = 0x1BC
	plckMagicTime       = 0x1BD
	plckSlime           = 0x1BE
	plckFlags           = 0x1BF
	plckHWDelay         = 0x1C0
	plckAmoebaThreshold = 0x1C1 // in units of four cells
	plckName            = 0x1C2
	plckNameLen         = 16
	plckVersion         = 0x1F0
	plckVersionLen      = 4
)

var plckVersions = []string{"", "V3.0", "V4.0"}

// Dream Land Builder packs Construction Kit caves: plckRunEscape is
// followed by a count (0 means 256) and the repeated byte.
const plckRunEscape = 0xBF

func init() {
	registry.Register(registry.Format{
		Tag:   "plck",
		Magic: "GDashPLC",
		Title: "Construction Kit (C64)",
		Decode: func(data []byte, ctx *registry.Context) (*cave.Definition, int, error) {
			return decodePLCK(data, ctx, plckNybbles, cave.SchedPLCK)
		},
	})
	registry.Register(registry.Format{
		Tag:   "plckatari",
		Magic: "GDashPCA",
		Title: "Construction Kit (Atari)",
		Decode: func(data []byte, ctx *registry.Context) (*cave.Definition, int, error) {
			return decodePLCK(data, ctx, plckAtariNybbles, cave.SchedBD2PLCKAtari)
		},
	})
	registry.Register(registry.Format{
		Tag:    "dlb",
		Magic:  "GDashDLB",
		Title:  "Dream Land Builder",
		Decode: decodeDLB,
	})
}

func decodePLCK(data []byte, ctx *registry.Context, codes codeTable, sched cave.Scheduling) (*cave.Definition, int, error) {
	if err := need(data, plckCaveLen, "construction kit cave"); err != nil {
		return nil, 0, err
	}
	version := fixedString(data[plckVersion : plckVersion+plckVersionLen])
	if !slices.Contains(plckVersions, version) {
		warn(ctx, "unknown construction kit version", "version", version)
	}

	def := newMapDefinition(mapParams{
		time:            int(data[plckTime]),
		diamonds:        int(data[plckDiamonds]),
		value:           int(data[plckValue]),
		extraValue:      int(data[plckExtraValue]),
		amoebaTime:      int(data[plckAmoebaTime]),
		magicTime:       int(data[plckMagicTime]),
		slimeBits:       int(data[plckSlime]),
		flags:           data[plckFlags],
		hwDelay:         int(data[plckHWDelay]),
		amoebaThreshold: int(data[plckAmoebaThreshold]) * 4,
	}, sched)
	def.Name = fixedString(data[plckName : plckName+plckNameLen])
	if def.Name == "" {
		def.Name = fmt.Sprintf("Cave %d", ctx.Index+1)
	}
	readMap(def, func(i int) cave.Element {
		b := data[i/2]
		if i%2 == 0 {
			b >>= 4
		}
		return codes.lookup(b&0x0F, ctx)
	})
	return def, plckCaveLen, nil
}

func decodeDLB(data []byte, ctx *registry.Context) (*cave.Definition, int, error) {
	raw, used, err := unpackDLB(data)
	if err != nil {
		return nil, 0, err
	}
	def, _, err := decodePLCK(raw, ctx, plckNybbles, cave.SchedPLCK)
	if err != nil {
		return nil, 0, err
	}
	return def, used, nil
}

// unpackDLB expands one packed cave and reports the packed length.
func unpackDLB(data []byte) ([]byte, int, error) {
	out := make([]byte, 0, plckCaveLen)
	pos := 0
	for len(out) < plckCaveLen {
		if pos >= len(data) {
			return nil, 0, fmt.Errorf("%w: packed cave ends after %d of %d bytes", ErrTruncated, len(out), plckCaveLen)
		}
		b := data[pos]
		if b != plckRunEscape {
			out = append(out, b)
			pos++
			continue
		}
		if pos+2 >= len(data) {
			return nil, 0, fmt.Errorf("%w: run at offset %d", ErrTruncated, pos)
		}
		n := int(data[pos+1])
		if n == 0 {
			n = 256
		}
		if len(out)+n > plckCaveLen {
			return nil, 0, fmt.Errorf("%w: run of %d overflows the cave", ErrMalformed, n)
		}
		for range n {
			out = append(out, data[pos+2])
		}
		pos += 3
	}
	return out, pos, nil
}
