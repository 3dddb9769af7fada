package cave

import (
	"fmt"
	"strings"
	"sync"

	"github.com/zyedidia/generic/mapset"
)

// Flag is a bit-set of behavioral element properties.
type Flag uint32

const (
	FlagExplodable          Flag = 1 << iota // explodes when hit by a falling object
	FlagNonExplodable                        // survives any explosion
	FlagSlopedUp                             // things roll off upwards
	FlagSlopedDown                           // things roll off downwards
	FlagSlopedLeft                           // things roll off to the left
	FlagSlopedRight                          // things roll off to the right
	FlagCCW                                  // creature prefers counterclockwise turns
	FlagPlayer                               // one of the player states
	FlagBlowsUpFlies                         // touching creatures explode
	FlagAmoebaConsumable                     // amoeba may grow into it
	FlagConveyorTop                          // moved by a belt when lying on top
	FlagConveyorBottom                       // moved by a belt when hanging below
	FlagExplosionFirstStage                  // first stage of a multi-frame explosion
	FlagHammerable                           // the pneumatic hammer can break it
	FlagDirt                                 // dirt-like, the player digs through it
	FlagVisualEffect                         // only a visual transition stage
	FlagAnimated                             // display index lives in the animated space

	FlagSloped = FlagSlopedUp | FlagSlopedDown | FlagSlopedLeft | FlagSlopedRight
)

// AnimatedBase is the first display index of the animated index space.
// Static elements use indices below it.
const AnimatedBase = 1000

// Properties describes one element.
type Properties struct {
	Name     string  // cave-file name
	Char     rune    // canonical serialization character, also used by Checksum
	Flags    Flag    // behavior flags
	Cost     int     // estimated processing time in microseconds (legacy scheduling)
	Display  int     // display index for the renderer
	Hammered Element // what remains after the pneumatic hammer, None if not hammerable
}

// Has reports whether all bits of f are set.
func (p Properties) Has(f Flag) bool {
	return p.Flags&f == f
}

var table = buildTable()

// PropertiesOf returns the properties of the element held by a cell.
// The transient cell flags are masked off before the lookup.
func PropertiesOf(c Cell) Properties {
	return table[c.Element()]
}

// Props returns the properties of an element.
func (e Element) Props() Properties {
	if int(e) >= NumElements {
		return table[Unknown]
	}
	return table[e]
}

// Is reports whether the element has all bits of f.
func (e Element) Is(f Flag) bool {
	return e.Props().Flags&f == f
}

func buildTable() []Properties {
	t := make([]Properties, NumElements)
	for i := range t {
		t[i].Hammered = None
	}

	def := func(e Element, name string, ch rune, cost int, f Flag) {
		t[e].Name = name
		t[e].Char = ch
		t[e].Cost = cost
		t[e].Flags = f
	}
	// seq defines n numbered stages with consecutive characters from ch.
	seq := func(first Element, n int, name string, ch rune, cost int, f Flag) {
		for i := 0; i < n; i++ {
			def(first+Element(i), fmt.Sprintf("%s%d", name, i+1), ch+rune(i), cost, f)
		}
	}

	def(Space, "SPACE", ' ', 0, FlagAmoebaConsumable)
	def(Dirt, "DIRT", '.', 0, FlagDirt|FlagAmoebaConsumable)
	def(Dirt2, "DIRT2", ',', 0, FlagDirt|FlagAmoebaConsumable)
	def(DirtSlopedUpRight, "DIRTSLOPEDUPRIGHT", 'Ā', 0, FlagDirt|FlagAmoebaConsumable|FlagSlopedUp|FlagSlopedRight)
	def(DirtSlopedUpLeft, "DIRTSLOPEDUPLEFT", 'ā', 0, FlagDirt|FlagAmoebaConsumable|FlagSlopedUp|FlagSlopedLeft)
	def(DirtSlopedDownLeft, "DIRTSLOPEDDOWNLEFT", 'Ă', 0, FlagDirt|FlagAmoebaConsumable|FlagSlopedDown|FlagSlopedLeft)
	def(DirtSlopedDownRight, "DIRTSLOPEDDOWNRIGHT", 'ă', 0, FlagDirt|FlagAmoebaConsumable|FlagSlopedDown|FlagSlopedRight)
	def(DirtGlued, "DIRTGLUED", 'Ą', 0, FlagHammerable)
	def(DirtBall, "DIRTBALL", 'ą', 120, FlagSloped|FlagConveyorTop)
	def(DirtBallF, "DIRTBALLf", 'Ć', 200, FlagConveyorTop)
	def(DirtLoose, "DIRTLOOSE", 'ć', 120, FlagDirt|FlagAmoebaConsumable|FlagConveyorTop)
	def(DirtLooseF, "DIRTLOOSEf", 'Ĉ', 200, FlagDirt|FlagConveyorTop)

	def(Brick, "BRICK", 'w', 0, FlagSloped|FlagHammerable)
	def(BrickSlopedUpRight, "WALLSLOPEDUPRIGHT", 'ĉ', 0, FlagSlopedUp|FlagSlopedRight|FlagHammerable)
	def(BrickSlopedUpLeft, "WALLSLOPEDUPLEFT", 'Ċ', 0, FlagSlopedUp|FlagSlopedLeft|FlagHammerable)
	def(BrickSlopedDownLeft, "WALLSLOPEDDOWNLEFT", 'ċ', 0, FlagSlopedDown|FlagSlopedLeft|FlagHammerable)
	def(BrickSlopedDownRight, "WALLSLOPEDDOWNRIGHT", 'Č', 0, FlagSlopedDown|FlagSlopedRight|FlagHammerable)
	def(BrickEatable, "BRICKEATABLE", 'č', 0, FlagDirt|FlagSloped|FlagHammerable)
	def(BrickNonSliceable, "BRICKNONSLICEABLE", 'Ď', 0, FlagSloped)
	def(MagicWall, "MAGICWALL", 'M', 0, FlagAnimated|FlagHammerable)
	def(Steel, "STEELWALL", 'W', 0, FlagNonExplodable)
	def(SteelSlopedUpRight, "STEELWALLSLOPEDUPRIGHT", 'ď', 0, FlagNonExplodable|FlagSlopedUp|FlagSlopedRight)
	def(SteelSlopedUpLeft, "STEELWALLSLOPEDUPLEFT", 'Đ', 0, FlagNonExplodable|FlagSlopedUp|FlagSlopedLeft)
	def(SteelSlopedDownLeft, "STEELWALLSLOPEDDOWNLEFT", 'đ', 0, FlagNonExplodable|FlagSlopedDown|FlagSlopedLeft)
	def(SteelSlopedDownRight, "STEELWALLSLOPEDDOWNRIGHT", 'Ē', 0, FlagNonExplodable|FlagSlopedDown|FlagSlopedRight)
	def(SteelEatable, "STEELWALLEATABLE", 'ē', 0, FlagNonExplodable|FlagDirt)
	def(SteelExplodable, "STEELWALLDESTRUCTABLE", 'Ĕ', 0, 0)

	def(PreOutbox, "OUTBOX", 'X', 0, FlagNonExplodable)
	def(Outbox, "OUTBOXopen", 'ĕ', 0, FlagNonExplodable|FlagAnimated)
	def(PreInvisOutbox, "HIDDENOUTBOX", 'H', 0, FlagNonExplodable)
	def(InvisOutbox, "HIDDENOUTBOXopen", 'Ė', 0, FlagNonExplodable)
	def(Inbox, "INBOX", 'P', 0, FlagNonExplodable|FlagAnimated)

	def(HExpandingWall, "HEXPANDINGWALL", 'x', 150, FlagSloped|FlagHammerable)
	def(VExpandingWall, "VEXPANDINGWALL", 'v', 150, FlagSloped|FlagHammerable)
	def(ExpandingWall, "EXPANDINGWALL", 'V', 150, FlagSloped|FlagHammerable)
	def(HExpandingSteelWall, "HEXPANDINGSTEELWALL", 'ė', 150, FlagNonExplodable)
	def(VExpandingSteelWall, "VEXPANDINGSTEELWALL", 'Ę', 150, FlagNonExplodable)
	def(ExpandingSteelWall, "EXPANDINGSTEELWALL", 'ę', 150, FlagNonExplodable)

	def(ExpandingWallSwitch, "EXPANDINGWALLSWITCH", 'Ě', 0, FlagNonExplodable)
	def(CreatureSwitch, "FFLYBFLYSWITCH", 'ě', 0, FlagNonExplodable)
	def(BiterSwitch, "BITERSWITCH", 'Ĝ', 0, FlagNonExplodable)
	def(ReplicatorSwitch, "REPLICATORSWITCH", 'ĝ', 0, FlagNonExplodable)
	def(ConveyorSwitch, "CONVEYORSWITCH", 'Ğ', 0, FlagNonExplodable)
	def(ConveyorDirSwitch, "CONVEYORDIRECTIONSWITCH", 'ğ', 0, FlagNonExplodable)
	def(GravitySwitch, "GRAVITYSWITCH", 'Ġ', 0, FlagNonExplodable)

	def(Acid, "ACID", 'A', 200, FlagAnimated)
	def(FallingWall, "FALLINGWALL", 'ġ', 100, FlagHammerable)
	def(FallingWallF, "FALLINGWALLf", 'Ģ', 200, 0)
	def(Box, "SOKOBANBOX", 'ģ', 0, 0)
	def(TimePenalty, "TIMEPENALTY", 'Ĥ', 0, FlagNonExplodable)
	def(Gravestone, "GRAVESTONE", 'G', 0, FlagNonExplodable)
	def(StoneGlued, "GLUEDBOULDER", 'ĥ', 0, FlagSloped|FlagHammerable)
	def(DiamondGlued, "GLUEDDIAMOND", 'Ħ', 0, FlagSloped|FlagHammerable)
	def(DiamondKey, "DIAMONDCHANGER", 'ħ', 0, FlagSloped)
	def(TrappedDiamond, "TRAPPEDDIAMOND", 'Ĩ', 0, FlagNonExplodable|FlagSloped)
	def(Clock, "CLOCK", 'T', 0, FlagSloped)
	def(Sweet, "SWEET", 'ĩ', 0, FlagSloped)
	def(PneumaticHammer, "PNEUMATIC_HAMMER", 'Ī', 0, 0)
	def(Skeleton, "SKELETON", 'ī', 0, 0)
	def(Pot, "POT", 'Ĭ', 0, 0)

	def(Water, "WATER", '~', 100, FlagAnimated)
	seq(Water1, 16, "WATER", 'ĭ', 50, FlagVisualEffect)
	def(Key1, "KEY1", 'Ľ', 0, 0)
	def(Key2, "KEY2", 'ľ', 0, 0)
	def(Key3, "KEY3", 'Ŀ', 0, 0)
	def(Door1, "DOOR1", 'ŀ', 0, FlagSloped)
	def(Door2, "DOOR2", 'Ł', 0, FlagSloped)
	def(Door3, "DOOR3", 'ł', 0, FlagSloped)

	def(Stone, "BOULDER", 'r', 120, FlagSloped|FlagConveyorTop)
	def(StoneF, "BOULDERf", 'R', 200, FlagConveyorTop)
	def(FlyingStone, "FLYINGBOULDER", 'Ń', 120, FlagSloped|FlagConveyorBottom)
	def(FlyingStoneF, "FLYINGBOULDERf", 'ń', 200, FlagConveyorBottom)
	def(MegaStone, "MEGABOULDER", 'Ņ', 120, FlagSloped|FlagConveyorTop)
	def(MegaStoneF, "MEGABOULDERf", 'ņ', 200, FlagConveyorTop)
	def(Diamond, "DIAMOND", 'd', 120, FlagSloped|FlagConveyorTop|FlagAnimated)
	def(DiamondF, "DIAMONDf", 'D', 200, FlagConveyorTop|FlagAnimated)
	def(FlyingDiamond, "FLYINGDIAMOND", 'Ň', 120, FlagSloped|FlagConveyorBottom|FlagAnimated)
	def(FlyingDiamondF, "FLYINGDIAMONDf", 'ň', 200, FlagConveyorBottom|FlagAnimated)
	def(Nut, "NUT", 'ŉ', 120, FlagSloped|FlagConveyorTop)
	def(NutF, "NUTf", 'Ŋ', 200, FlagConveyorTop)
	def(NitroPack, "NITRO", 'ŋ', 120, FlagExplodable|FlagConveyorTop)
	def(NitroPackF, "NITROf", 'Ō', 200, FlagExplodable|FlagConveyorTop)
	def(NitroPackExplode, "NITROtriggered", 'ō', 100, FlagExplodable)
	def(WaitingStone, "WAITINGBOULDER", 'Ŏ', 120, FlagSloped|FlagConveyorTop)
	def(ChasingStone, "CHASINGBOULDER", 'ŏ', 300, FlagSloped|FlagConveyorTop)

	def(Amoeba, "AMOEBA", 'a', 260, FlagBlowsUpFlies|FlagAnimated)
	def(Amoeba2, "AMOEBA2", 'Ő', 260, FlagExplodable|FlagAnimated)
	def(Slime, "SLIME", 's', 200, FlagAnimated)
	def(Replicator, "REPLICATOR", 'ő', 200, FlagAnimated)
	def(ConveyorLeft, "CONVEYORLEFT", 'Œ', 200, FlagAnimated)
	def(ConveyorRight, "CONVEYORRIGHT", 'œ', 200, FlagAnimated)
	def(Lava, "LAVA", 'L', 0, FlagNonExplodable|FlagAnimated)
	def(Bladder, "BLADDER", 'Ŕ', 150, FlagConveyorBottom)
	seq(Bladder1, 8, "BLADDER", 'ŕ', 150, FlagConveyorBottom)
	def(BladderSpender, "BLADDERSPENDER", 'ŝ', 150, 0)
	def(Teleporter, "TELEPORTER", 'Ş', 0, FlagAnimated)
	def(Voodoo, "VOODOO", 'F', 0, FlagBlowsUpFlies|FlagExplodable)
	def(Ghost, "GHOST", 'g', 300, FlagExplodable|FlagAnimated)

	creature := func(first Element, name string, chars string, f Flag) {
		for i, ch := range []rune(chars) {
			def(first+Element(i), fmt.Sprintf("%s%d", name, i+1), ch, 350, f|FlagExplodable|FlagAnimated)
		}
	}
	creature(Firefly1, "FIREFLY", "qQoO", FlagCCW)
	creature(AltFirefly1, "ALTFIREFLY", "şŠšŢ", 0)
	creature(Butterfly1, "BUTTERFLY", "cCbB", 0)
	creature(AltButterfly1, "ALTBUTTERFLY", "ţŤťŦ", FlagCCW)
	creature(Stonefly1, "STONEFLY", "ŧŨũŪ", 0)
	creature(Dragonfly1, "DRAGONFLY", "ūŬŭŮ", FlagCCW)
	creature(Cow1, "COW", "ůŰűŲ", FlagCCW)
	seq(CowEnclosed1, 7, "COWENCLOSED", 'ų', 200, FlagExplodable|FlagAnimated)
	creature(Biter1, "BITER", "źŻżŽ", 0)

	def(Bomb, "BOMB", 'ž', 0, FlagExplodable)
	seq(BombTick1, 7, "BOMBTICK", 'ſ', 100, FlagExplodable)

	seq(PrePlayer1, 3, "PREROCKFORD", 'Ɔ', 100, FlagVisualEffect|FlagAnimated)
	def(Player, "ROCKFORD", '@', 400, FlagPlayer|FlagExplodable|FlagBlowsUpFlies|FlagAnimated)
	def(PlayerBomb, "ROCKFORDwithbomb", 'Ɖ', 400, FlagPlayer|FlagExplodable|FlagBlowsUpFlies|FlagAnimated)
	def(PlayerGlued, "ROCKFORDglued", 'Ɗ', 400, FlagPlayer|FlagExplodable|FlagBlowsUpFlies|FlagAnimated)
	def(PlayerStirring, "ROCKFORDstirring", 'Ƌ', 400, FlagPlayer|FlagExplodable|FlagBlowsUpFlies|FlagAnimated)
	def(PlayerPneumaticLeft, "ROCKFORDhammerleft", 'ƌ', 400, FlagPlayer|FlagExplodable|FlagBlowsUpFlies|FlagAnimated)
	def(PlayerPneumaticRight, "ROCKFORDhammerright", 'ƍ', 400, FlagPlayer|FlagExplodable|FlagBlowsUpFlies|FlagAnimated)
	def(PneumaticActiveLeft, "HAMMERleft", 'Ǝ', 100, FlagAnimated)
	def(PneumaticActiveRight, "HAMMERright", 'Ə', 100, FlagAnimated)

	seq(Explode1, 5, "EXPLOSION", 'Ɛ', 80, FlagVisualEffect)
	seq(PreDiamond1, 5, "DIAMONDBIRTH", 'ƕ', 80, FlagVisualEffect)
	seq(PreStone1, 4, "BOULDERBIRTH", 'ƚ', 80, FlagVisualEffect)
	seq(PreSteel1, 4, "STEELBIRTH", 'ƞ', 80, FlagVisualEffect)
	seq(PreClock1, 4, "CLOCKBIRTH", 'Ƣ', 80, FlagVisualEffect)
	seq(NitroExplode1, 4, "NITROEXPLOSION", 'Ʀ', 80, FlagVisualEffect)
	seq(Amoeba2Explode1, 4, "AMOEBA2EXPLOSION", 'ƪ', 80, FlagVisualEffect)
	seq(BombExplode1, 4, "BOMBEXPLOSION", 'Ʈ', 80, FlagVisualEffect)
	seq(GhostExplode1, 4, "GHOSTEXPLOSION", 'Ʋ', 80, FlagVisualEffect)
	seq(NutCrack1, 4, "NUTCRACK", 'ƶ', 80, FlagVisualEffect)
	for _, first := range []Element{Explode1, PreDiamond1, PreStone1, PreSteel1, PreClock1,
		NitroExplode1, Amoeba2Explode1, BombExplode1, GhostExplode1} {
		t[first].Flags |= FlagExplosionFirstStage
	}

	def(Unknown, "UNKNOWN", '?', 0, 0)
	def(None, "NONE", 'ƺ', 0, 0)

	// hammer results
	for _, e := range []Element{Brick, BrickSlopedUpRight, BrickSlopedUpLeft, BrickSlopedDownLeft,
		BrickSlopedDownRight, BrickEatable, MagicWall, HExpandingWall, VExpandingWall, ExpandingWall, FallingWall} {
		t[e].Hammered = Space
	}
	t[DirtGlued].Hammered = Dirt
	t[StoneGlued].Hammered = Stone
	t[DiamondGlued].Hammered = Diamond

	// display indices: static elements keep their own number, animated ones
	// are numbered separately from AnimatedBase
	anim := AnimatedBase
	for i := range t {
		if t[i].Flags&FlagAnimated != 0 {
			t[i].Display = anim
			anim++
		} else {
			t[i].Display = i
		}
	}
	return t
}

var (
	initOnce sync.Once
	byName   map[string]Element
	byChar   map[rune]Element
)

// Init validates the element table and builds the name and character
// indexes. It is safe to call more than once; Render and the lookup
// functions call it. A broken table panics: it is a build error, not a
// data error.
func Init() {
	initOnce.Do(func() {
		if err := ValidateTable(); err != nil {
			panic(err)
		}
		byName = make(map[string]Element, NumElements)
		byChar = make(map[rune]Element, NumElements)
		for i, p := range table {
			byName[strings.ToUpper(p.Name)] = Element(i)
			byChar[p.Char] = Element(i)
		}
	})
}

// ValidateTable checks the element table invariants: every element has an
// entry, names and characters are unique, every hammerable element has a
// result, and static and animated display indices never collide.
func ValidateTable() error {
	if len(table) != NumElements {
		return fmt.Errorf("cave: element table has %d entries, want %d", len(table), NumElements)
	}
	names := mapset.New[string]()
	chars := mapset.New[rune]()
	displays := mapset.New[int]()
	for i, p := range table {
		e := Element(i)
		if p.Name == "" {
			return fmt.Errorf("cave: element %d has no table entry", i)
		}
		upper := strings.ToUpper(p.Name)
		if names.Has(upper) {
			return fmt.Errorf("cave: duplicate element name %q", p.Name)
		}
		names.Put(upper)
		if chars.Has(p.Char) {
			return fmt.Errorf("cave: duplicate character %q for %s", p.Char, p.Name)
		}
		if p.Char == 0 {
			return fmt.Errorf("cave: element %s has no character", e)
		}
		chars.Put(p.Char)
		if p.Flags&FlagHammerable != 0 && p.Hammered == None {
			return fmt.Errorf("cave: hammerable element %s has no hammered result", e)
		}
		animated := p.Flags&FlagAnimated != 0
		if animated != (p.Display >= AnimatedBase) {
			return fmt.Errorf("cave: display index %d of %s is in the wrong index space", p.Display, e)
		}
		if displays.Has(p.Display) {
			return fmt.Errorf("cave: display index %d of %s collides", p.Display, e)
		}
		displays.Put(p.Display)
	}
	return validateBehaviors()
}

// ElementByName looks an element up by its cave-file name, case-insensitively.
func ElementByName(name string) (Element, bool) {
	Init()
	e, ok := byName[strings.ToUpper(name)]
	return e, ok
}

// ElementByChar looks an element up by its serialization character.
func ElementByChar(ch rune) (Element, bool) {
	Init()
	e, ok := byChar[ch]
	return e, ok
}

// Hammered returns what remains of e after the pneumatic hammer, or None.
func (e Element) Hammered() Element {
	return e.Props().Hammered
}
