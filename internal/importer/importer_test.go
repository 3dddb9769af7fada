package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

// bd1Cave builds a first-engine cave with the given object bytes.
func bd1Cave(index byte, objects ...byte) []byte {
	b := make([]byte, bd1Objects)
	b[bd1Index] = index
	b[bd1AmoebaMagic] = 20
	b[bd1Value] = 10
	b[bd1ExtraValue] = 15
	for l := 0; l < cave.NumLevels; l++ {
		b[bd1Seeds+l] = byte(l + 1)
		b[bd1Diamonds+l] = byte(12 + l)
		b[bd1Time+l] = byte(150 - 10*l)
	}
	b[bd1RandomElems] = 0x10 // stone
	b[bd1RandomProbs] = 0x40
	b = append(b, objects...)
	return append(b, bd1End)
}

func encode(t *testing.T, tag registry.Tag, caves ...[]byte) []byte {
	t.Helper()
	buf, err := Encode(tag, bytes.Join(caves, nil))
	if err != nil {
		t.Fatalf("Encode(%q): %v", tag, err)
	}
	return buf
}

func TestImportBD1(t *testing.T) {
	buf := encode(t, "bd1", bd1Cave(0,
		0x14, 10, 5, // diamond at 10,3
		0x40|0x02, 1, 4, 5, 2, // brick line to the right from 1,2
		0x80|0x07, 20, 10, 4, 3, 0x01, // steel box filled with dirt
		0xC0|0x02, 30, 12, 5, 5, // brick outline
	))

	tag, ok := DetectFormat(buf)
	if !ok || tag != "bd1" {
		t.Fatalf("DetectFormat = %q, %v; want bd1", tag, ok)
	}
	defs, err := Import(buf, Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("got %d caves, want 1", len(defs))
	}
	def := defs[0]
	if def.W != 40 || def.H != 22 || def.Intermission {
		t.Errorf("size %dx%d intermission=%v, want 40x22", def.W, def.H, def.Intermission)
	}
	if def.Name != "A" {
		t.Errorf("Name = %q, want A", def.Name)
	}
	if def.Scheduling != cave.SchedBD1 || !def.Lineshift {
		t.Errorf("scheduling %v lineshift %v", def.Scheduling, def.Lineshift)
	}
	if def.DiamondValue != 10 || def.ExtraDiamondValue != 15 {
		t.Errorf("values %d/%d", def.DiamondValue, def.ExtraDiamondValue)
	}
	lp := def.Levels[1]
	if lp.Time != 140 || lp.Diamonds != 13 || lp.RandSeed != 2 || !lp.RandomC64 || lp.AmoebaTime != 20 {
		t.Errorf("level 1 params = %+v", lp)
	}
	if def.RandomFill[0] != cave.Stone || def.RandomProb[0] != 0x40 {
		t.Errorf("random fill %v/%d", def.RandomFill[0], def.RandomProb[0])
	}

	want := []cave.Object{
		cave.PointObject(10, 3, cave.Diamond),
		cave.LineObject(1, 2, 5, 2, cave.Brick),
		cave.FilledRectObject(20, 8, 23, 10, cave.Steel, cave.Dirt),
		cave.RectObject(30, 10, 34, 14, cave.Brick),
	}
	if len(def.Objects) != len(want) {
		t.Fatalf("got %d objects, want %d", len(def.Objects), len(want))
	}
	for i := range want {
		if def.Objects[i] != want[i] {
			t.Errorf("object %d = %+v, want %+v", i, def.Objects[i], want[i])
		}
	}

	if _, err := cave.Render(def, 0, 0); err != nil {
		t.Fatalf("Render: %v", err)
	}
}

func TestImportBD1Intermission(t *testing.T) {
	defs, err := Import(encode(t, "bd1", bd1Cave(4)), Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	def := defs[0]
	if !def.Intermission || def.W != 20 || def.H != 12 {
		t.Errorf("intermission=%v size %dx%d, want 20x12", def.Intermission, def.W, def.H)
	}
	if def.Name != "Intermission 1" {
		t.Errorf("Name = %q", def.Name)
	}
}

func TestImportSeveralCaves(t *testing.T) {
	defs, err := Import(encode(t, "bd1", bd1Cave(0), bd1Cave(1), bd1Cave(5)), Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	var names []string
	for _, d := range defs {
		names = append(names, d.Name)
	}
	if got := strings.Join(names, ","); got != "A,B,E" {
		t.Errorf("names = %s, want A,B,E", got)
	}

	defs, err = Import(encode(t, "bd1", bd1Cave(0), bd1Cave(1), bd1Cave(5)), Options{MaxCaves: 2})
	if err != nil || len(defs) != 2 {
		t.Errorf("MaxCaves: got %d caves, err %v", len(defs), err)
	}
}

func TestImportLegacyQuirks(t *testing.T) {
	c := bd1Cave(0)
	c[bd1Time] = 0
	c[bd1AmoebaMagic] = 0
	c[bd1Diamonds] = 0
	c[bd1Diamonds+1] = 105
	defs, err := Import(encode(t, "bd1", c), Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	lp := defs[0].Levels[0]
	if lp.Time != 0 {
		t.Errorf("cave time 0 loads as %d, want 0", lp.Time)
	}
	if lp.AmoebaTime != 999 || lp.MagicWallTime != 999 {
		t.Errorf("timers 0 load as amoeba %d, magic wall %d, want 999", lp.AmoebaTime, lp.MagicWallTime)
	}
	if got := defs[0].Levels[0].Diamonds; got != 100 {
		t.Errorf("diamonds 0 load as %d, want 100", got)
	}
	if got := defs[0].Levels[1].Diamonds; got != 5 {
		t.Errorf("diamonds 105 load as %d, want 5", got)
	}
}

func TestImportErrors(t *testing.T) {
	good := encode(t, "bd1", bd1Cave(0))

	if _, err := Import([]byte("NotACaveFile"), Options{}); !errors.Is(err, ErrUnrecognized) {
		t.Errorf("unknown magic: err = %v", err)
	}
	if _, ok := DetectFormat([]byte("GDash")); ok {
		t.Error("DetectFormat accepted a short buffer")
	}
	if _, err := Import(good[:10], Options{}); !errors.Is(err, ErrTruncated) {
		t.Errorf("short header: err = %v", err)
	}
	if _, err := Import(good[:len(good)-1], Options{}); !errors.Is(err, ErrTruncated) {
		t.Errorf("short payload: err = %v", err)
	}

	// the second cave has no terminator
	unterminated := bd1Cave(1, 0x14, 10, 5)
	buf := encode(t, "bd1", bd1Cave(0), unterminated[:len(unterminated)-1])
	defs, err := Import(buf, Options{})
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("unterminated: err = %v", err)
	}
	if len(defs) != 1 {
		t.Errorf("unterminated: kept %d caves, want 1", len(defs))
	}

	if _, err := Import(encode(t, "bd1"), Options{}); !errors.Is(err, ErrMalformed) {
		t.Errorf("empty payload: err = %v", err)
	}
}

func bd2Cave(index byte, objects ...byte) []byte {
	b := make([]byte, bd2Objects)
	b[bd2Index] = index
	for l := 0; l < cave.NumLevels; l++ {
		b[bd2Diamonds+l] = 20
		b[bd2Time+l] = 120
	}
	b[bd2Value] = 5
	b = append(b, objects...)
	return append(b, bd2End)
}

func TestImportBD2UnknownOpcode(t *testing.T) {
	var logbuf bytes.Buffer
	buf := encode(t, "bd2", bd2Cave(0,
		0x77,
		bd2OpPoint, 3, 4, 0x14,
		bd2OpBitmap, 0x07, 40, 0, 1, 0xA0,
	))
	defs, err := Import(buf, Options{Logger: log.New(&logbuf)})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	def := defs[0]
	want := []cave.Object{
		cave.PointObject(3, 4, cave.Diamond),
		cave.PointObject(0, 1, cave.Steel),
		cave.PointObject(2, 1, cave.Steel),
	}
	if len(def.Objects) != len(want) {
		t.Fatalf("got %d objects, want %d", len(def.Objects), len(want))
	}
	for i := range want {
		if def.Objects[i] != want[i] {
			t.Errorf("object %d = %+v, want %+v", i, def.Objects[i], want[i])
		}
	}
	if !strings.Contains(logbuf.String(), "unknown object opcode") {
		t.Errorf("log = %q, want the unknown opcode reported", logbuf.String())
	}
}

func TestChecksumHack(t *testing.T) {
	saved := checksumHacks
	t.Cleanup(func() { checksumHacks = saved })
	fixed := cave.PointObject(38, 20, cave.PreOutbox)
	checksumHacks = []checksumHack{{
		tag:  "bd2",
		name: "Cave 9",
		sum:  0x5A,
		fix: func(def *cave.Definition) {
			def.Objects = append(def.Objects, fixed)
		},
	}}

	c := bd2Cave(8)
	c[bd2Spare] ^= xorSum(c) ^ 0x5A

	tests := []struct {
		name  string
		tweak func(b []byte)
		want  int
	}{
		{"matching checksum", func([]byte) {}, 1},
		{"other checksum", func(b []byte) { b[bd2Spare] ^= 1 }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := append([]byte(nil), c...)
			tt.tweak(b)
			defs, err := Import(encode(t, "bd2", b), Options{})
			if err != nil {
				t.Fatalf("Import: %v", err)
			}
			def := defs[0]
			if def.Name != "Cave 9" {
				t.Fatalf("Name = %q", def.Name)
			}
			if len(def.Objects) != tt.want {
				t.Fatalf("objects after import = %+v, want %d", def.Objects, tt.want)
			}
			if tt.want == 1 && def.Objects[0] != fixed {
				t.Errorf("object = %+v, want %+v", def.Objects[0], fixed)
			}
		})
	}
}

func plckCave(name string, flags byte) []byte {
	b := make([]byte, plckCaveLen)
	for i := 0; i < mapW*mapH/2; i++ {
		b[i] = 0x11 // dirt
	}
	b[0] = 0x6B      // steel, inbox
	b[mapW/2] = 0x90 // diamond at 0,1
	b[plckTime] = 150
	b[plckDiamonds] = 7
	b[plckAmoebaThreshold] = 50
	b[plckFlags] = flags
	copy(b[plckName:], name)
	copy(b[plckVersion:], "V3.0")
	return b
}

func TestImportPLCK(t *testing.T) {
	defs, err := Import(encode(t, "plck", plckCave("TEST", flagDiagonal), plckCave("", flagIntermission)), Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d caves, want 2", len(defs))
	}
	def := defs[0]
	if def.Name != "TEST" || !def.DiagonalMovements {
		t.Errorf("name %q diagonal %v", def.Name, def.DiagonalMovements)
	}
	if def.Map[0][0] != cave.Steel || def.Map[0][1] != cave.Inbox || def.Map[1][0] != cave.Diamond || def.Map[5][5] != cave.Dirt {
		t.Errorf("map corner = %v %v %v", def.Map[0][0], def.Map[0][1], def.Map[1][0])
	}
	lp := def.Levels[2]
	if lp.Time != 150 || lp.Diamonds != 7 || lp.AmoebaThreshold != 200 || lp.AmoebaTime != 999 || lp.MagicWallTime != 999 {
		t.Errorf("params %+v", lp)
	}

	inter := defs[1]
	if inter.Name != "Cave 2" || inter.W != 20 || len(inter.Map) != 12 || len(inter.Map[0]) != 20 {
		t.Errorf("intermission %q %dx%d", inter.Name, inter.W, inter.H)
	}
	if _, err := cave.Render(inter, 0, 0); err != nil {
		t.Errorf("Render: %v", err)
	}
}

// packDLB packs runs of three or more, and every escape byte, as runs.
func packDLB(raw []byte) []byte {
	var out []byte
	for i := 0; i < len(raw); {
		n := 1
		for i+n < len(raw) && raw[i+n] == raw[i] && n < 255 {
			n++
		}
		if n < 3 && raw[i] != plckRunEscape {
			out = append(out, raw[i:i+n]...)
		} else {
			out = append(out, plckRunEscape, byte(n), raw[i])
		}
		i += n
	}
	return out
}

func TestImportDLB(t *testing.T) {
	a, b := plckCave("ONE", 0), plckCave("TWO", 0)
	b[100] = plckRunEscape
	packed := packDLB(a)
	if len(packed) >= len(a) {
		t.Fatalf("packing did not shrink the cave: %d bytes", len(packed))
	}
	defs, err := Import(encode(t, "dlb", packed, packDLB(b)), Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(defs) != 2 || defs[0].Name != "ONE" || defs[1].Name != "TWO" {
		t.Fatalf("got %d caves", len(defs))
	}
	if defs[0].Map[0][1] != cave.Inbox {
		t.Errorf("map[0][1] = %v, want inbox", defs[0].Map[0][1])
	}

	if _, _, err := unpackDLB([]byte{1, plckRunEscape, 0, 1, plckRunEscape, 0, 1}); !errors.Is(err, ErrMalformed) {
		t.Errorf("overflowing run: err = %v", err)
	}
}

func crliPack(raw []byte) []byte {
	var out []byte
	for i := 0; i < len(raw); {
		n := 1
		for i+n < len(raw) && raw[i+n] == raw[i] && n < 128 {
			n++
		}
		if n == 1 && raw[i]&0x80 == 0 {
			out = append(out, raw[i])
		} else {
			out = append(out, 0x80|byte(n&0x7F), raw[i])
		}
		i += n
	}
	return out
}

func crliCave(version byte) []byte {
	b := make([]byte, crliCaveLen)
	b[crliVersion] = version
	for i := 0; i < mapW*mapH; i++ {
		b[crliMap+i] = 0x01
	}
	b[crliMap] = 0x07
	b[crliMap+1] = 0x29
	b[crliMap+2] = 0x4C
	b[crliTime], b[crliTime+1] = 0x2C, 0x01 // 300
	b[crliDiamonds] = 25
	b[crliFlags] = flagSlimePredictable
	b[crliSlime] = 3
	copy(b[crliName:], "Crazy")
	b[crliAcidSpread] = 255
	b[crliGravity] = 1
	b[crliFlags2] = flag2GravitySwitch | flag2ConveyorsStopped
	return b
}

func TestImportCrazyDream(t *testing.T) {
	defs, err := Import(encode(t, "cd9", crliPack(crliCave(9))), Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	def := defs[0]
	if def.Name != "Crazy" || def.Map[0][0] != cave.Steel || def.Map[0][1] != cave.Inbox || def.Map[0][2] != cave.Teleporter {
		t.Errorf("name %q map %v %v %v", def.Name, def.Map[0][0], def.Map[0][1], def.Map[0][2])
	}
	if def.Levels[0].Time != 300 || def.Levels[0].Diamonds != 25 || def.Levels[0].SlimePermeabilityC64 != 3 || !def.SlimePredictable {
		t.Errorf("params %+v", def.Levels[0])
	}
	if def.Gravity != cave.Up || !def.GravitySwitchActive || def.ConveyorBeltsActive {
		t.Errorf("gravity %v switch %v conveyors %v", def.Gravity, def.GravitySwitchActive, def.ConveyorBeltsActive)
	}
	if def.AcidSpreadRatio != 1000000 {
		t.Errorf("acid spread = %d", def.AcidSpreadRatio)
	}

	// Crazy Light ignores the extensions
	defs, err = Import(encode(t, "crli", crliPack(crliCave(2))), Options{})
	if err != nil {
		t.Fatalf("Import crli: %v", err)
	}
	if defs[0].Gravity != cave.Down || defs[0].AcidSpreadRatio != cave.NewDefinition(1, 1).AcidSpreadRatio {
		t.Errorf("crli read extension bytes")
	}
}

func TestImportCrazyLightUnknownVersion(t *testing.T) {
	var logbuf bytes.Buffer
	defs, err := Import(encode(t, "crli", crliPack(crliCave(5))), Options{Logger: log.New(&logbuf)})
	if err != nil || len(defs) != 1 {
		t.Fatalf("Import: %d caves, %v", len(defs), err)
	}
	if !strings.Contains(logbuf.String(), "unknown editor version") {
		t.Errorf("log = %q", logbuf.String())
	}
}

func TestCrliUnpack(t *testing.T) {
	raw := []byte{1, 1, 1, 1, 0x90, 2, 3}
	packed := crliPack(raw)
	got, used, err := crliUnpack(append(packed, 0xEE), len(raw))
	if err != nil {
		t.Fatalf("crliUnpack: %v", err)
	}
	if !bytes.Equal(got, raw) || used != len(packed) {
		t.Errorf("got %v used %d, want %v used %d", got, used, raw, len(packed))
	}
	if _, _, err := crliUnpack([]byte{0x85, 1}, 3); !errors.Is(err, ErrMalformed) {
		t.Errorf("overflow: err = %v", err)
	}
	if _, _, err := crliUnpack([]byte{1, 0x82}, 5); !errors.Is(err, ErrTruncated) {
		t.Errorf("cut run: err = %v", err)
	}
}

func TestImportFirstB(t *testing.T) {
	b := make([]byte, firstBCaveLen)
	for i := 0; i < mapW*mapH; i++ {
		b[i] = 0x58 // second dirt
	}
	b[firstBTime], b[firstBTime+1] = 0x2C, 0x01
	b[firstBDiamonds] = 40
	b[firstBAmoeba2Time] = 33
	b[firstBBonusTime] = 12
	copy(b[firstBName:], "First")
	defs, err := Import(encode(t, "1stb", b), Options{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	def := defs[0]
	if def.Name != "First" || def.Map[3][3] != cave.Dirt2 {
		t.Errorf("name %q map %v", def.Name, def.Map[3][3])
	}
	lp := def.Levels[4]
	if lp.Time != 300 || lp.Diamonds != 40 || lp.Amoeba2Time != 33 || lp.BonusTime != 12 {
		t.Errorf("params %+v", lp)
	}
}

func TestFormatsRegistered(t *testing.T) {
	for _, tag := range []registry.Tag{
		"bd1", "bd1atari", "dc1", "bd2", "bd2atari", "plck", "plckatari",
		"dlb", "crli", "cd7", "cd9", "1stb",
	} {
		if !registry.Exists(tag) {
			t.Errorf("format %q not registered", tag)
		}
	}
}
