package cave

import "maps"

// NumLevels is the number of difficulty levels a cave defines parameters for.
const NumLevels = 5

// Scheduling selects how the length of a frame is computed.
type Scheduling uint8

const (
	SchedMilliseconds Scheduling = iota // fixed per-level frame time
	SchedBD1                            // C64 Boulder Dash 1 delay loop
	SchedBD1Atari                       // Atari Boulder Dash 1
	SchedBD2                            // C64 Boulder Dash 2 / Rockford
	SchedPLCK                           // C64 Construction Kit
	SchedBD2PLCKAtari                   // Atari Boulder Dash 2 and Construction Kit
	SchedCrDr                           // Crazy Dream
)

var schedNames = []string{"ms", "bd1", "bd1atari", "bd2", "plck", "bd2plckatari", "crdr"}

// String returns the scheduling name used in cave files.
func (s Scheduling) String() string {
	if int(s) < len(schedNames) {
		return schedNames[s]
	}
	return "unknown"
}

// ParseScheduling converts a scheduling name.
func ParseScheduling(s string) (Scheduling, bool) {
	for i, n := range schedNames {
		if n == s {
			return Scheduling(i), true
		}
	}
	return SchedMilliseconds, false
}

// LevelParams holds the parameters that differ between difficulty levels.
type LevelParams struct {
	Time                 int  // seconds
	Diamonds             int  // diamonds needed; 0 means all present, -n means all but n
	Speed                int  // frame time in milliseconds (SchedMilliseconds)
	HWDelay              int  // hardware delay constant (legacy scheduling)
	RandSeed             int  // random fill seed, -1 picks one from the render seed
	RandomC64            bool // random fill uses the hardware generator
	AmoebaTime           int  // seconds of slow growth
	AmoebaThreshold      int  // amoeba count that makes it too big
	Amoeba2Time          int  // seconds of slow growth for amoeba 2
	Amoeba2Threshold     int  // amoeba 2 count that makes it too big
	MagicWallTime        int  // seconds the magic wall stays active
	SlimePermeability    int  // unpredictable slime, millionths
	SlimePermeabilityC64 int  // predictable slime, number of mask bits
	SlimeSeedC64         int  // hardware generator seed for slime, -1 picks one
	HatchingDelayFrame   int  // frames before the player appears (SchedMilliseconds)
	HatchingDelayTime    int  // seconds before the player appears (legacy scheduling)
	BonusTime            int  // seconds a clock adds
	PenaltyTime          int  // seconds a destroyed voodoo costs
}

// Definition is a cave as authored or imported: parameters plus either a map
// or a list of construction objects. It is not modified during play.
type Definition struct {
	Name         string
	Author       string
	Description  string
	Date         string
	W, H         int
	Intermission bool
	Selectable   bool

	Levels [NumLevels]LevelParams

	// Map is an authored grid, row-major; nil means random fill.
	Map [][]Element

	InitialFill   Element
	InitialBorder Element
	RandomFill    [4]Element
	RandomProb    [4]int // 0..255, compared against the generator output

	Objects []Object
	Replays []Replay
	Scores  []HighScore

	// Tags keeps unrecognized key/value pairs of newer cave files.
	Tags map[string]string

	// engine switches
	Lineshift          bool
	BorderScan         bool // scan the first and last rows too
	DiagonalMovements  bool
	ShortExplosions    bool
	ActiveIsFirstFound bool
	PALTiming          bool
	Scheduling         Scheduling
	MaxTime            int

	DiamondValue      int
	ExtraDiamondValue int

	ExplosionEffect      Element
	DiamondBirthEffect   Element
	BombExplosionEffect  Element
	NitroExplosionEffect Element
	Amoeba2ExplodeEffect Element
	StoneBounceEffect    Element
	DiamondBounceEffect  Element
	NutCrackEffect       Element
	SnapElement          Element

	MagicStoneTo            Element
	MagicDiamondTo          Element
	MagicMegaStoneTo        Element
	MagicNutTo              Element
	MagicFlyingStoneTo      Element
	MagicFlyingDiamondTo    Element
	MagicWallStopsAmoeba    bool
	MagicTimerWaitsHatch    bool
	AmoebaTooBigEffect      Element
	AmoebaEnclosedEffect    Element
	Amoeba2TooBigEffect     Element
	Amoeba2EnclosedEffect   Element
	Amoeba2ExplodesByAmoeba bool
	AmoebaGrowthProb        int // millionths, slow phase
	AmoebaFastGrowthProb    int // millionths, after AmoebaTime
	Amoeba2GrowthProb       int
	Amoeba2FastGrowthProb   int
	AmoebaTimerImmediate    bool // timer runs before the amoeba awakes
	AmoebaTimerWaitsHatch   bool

	SlimePredictable bool
	SlimeEats        [3]Element
	SlimeConverts    [3]Element

	AcidEatsThis    Element
	AcidSpreadRatio int // millionths
	AcidTurnsTo     Element

	VoodooCollectsDiamonds     bool
	VoodooDiesByStone          bool
	VoodooDisappearInExplosion bool
	VoodooAnyHurtKillsPlayer   bool

	CreaturesBackwards          bool
	CreaturesAutoTurnTime       int // seconds, 0 disables
	CreaturesAutoTurnOnStart    bool
	ExpandingWallChanged        bool
	BiterDelayFrame             int
	BiterEats                   Element
	BladderConvertsBy           Element
	ConveyorBeltsActive         bool
	ConveyorBeltsChanged        bool
	ReplicatorsActive           bool
	ReplicatorDelayFrame        int
	Gravity                     Direction
	GravitySwitchActive         bool
	GravityChangeTime           int // seconds
	GravityAffectsAll           bool
	PneumaticHammerFrame        int
	HammeredWallsReappear       bool
	HammeredWallReappearFrame   int
	SkeletonsNeededForPot       int
	SkeletonsWorthDiamonds      int
	PushingStoneProb            int // millionths
	PushingStoneProbSweet       int // millionths
	MegaStonesPushableWithSweet bool
}

// NewDefinition returns a w×h definition with the engine defaults of the
// original C64 game: steel border, dirt fill, 200ms frames, 150 seconds.
func NewDefinition(w, h int) *Definition {
	d := &Definition{
		Name:          "Cave",
		W:             w,
		H:             h,
		Selectable:    true,
		InitialFill:   Dirt,
		InitialBorder: Steel,
		RandomFill:    [4]Element{Space, Space, Space, Space},
		Tags:          map[string]string{},

		BorderScan: true,
		MaxTime:    999,

		DiamondValue:      0,
		ExtraDiamondValue: 0,

		ExplosionEffect:      Space,
		DiamondBirthEffect:   Diamond,
		BombExplosionEffect:  Brick,
		NitroExplosionEffect: Space,
		Amoeba2ExplodeEffect: Space,
		StoneBounceEffect:    Stone,
		DiamondBounceEffect:  Diamond,
		NutCrackEffect:       NutCrack1,
		SnapElement:          Space,

		MagicStoneTo:          DiamondF,
		MagicDiamondTo:        StoneF,
		MagicMegaStoneTo:      NitroPackF,
		MagicNutTo:            StoneF,
		MagicFlyingStoneTo:    FlyingDiamondF,
		MagicFlyingDiamondTo:  FlyingStoneF,
		AmoebaTooBigEffect:    Stone,
		AmoebaEnclosedEffect:  Diamond,
		Amoeba2TooBigEffect:   Stone,
		Amoeba2EnclosedEffect: Diamond,
		AmoebaGrowthProb:      31250,
		AmoebaFastGrowthProb:  250000,
		Amoeba2GrowthProb:     31250,
		Amoeba2FastGrowthProb: 250000,

		SlimeEats:     [3]Element{Diamond, Stone, Nut},
		SlimeConverts: [3]Element{DiamondF, StoneF, NutF},

		AcidEatsThis:    Dirt,
		AcidSpreadRatio: 31250,
		AcidTurnsTo:     Explode3,

		VoodooCollectsDiamonds:     false,
		VoodooDiesByStone:          false,
		VoodooDisappearInExplosion: true,
		VoodooAnyHurtKillsPlayer:   false,

		BiterEats:                 Diamond,
		BladderConvertsBy:         Voodoo,
		ConveyorBeltsActive:       true,
		ReplicatorsActive:         true,
		ReplicatorDelayFrame:      4,
		Gravity:                   Down,
		GravitySwitchActive:       false,
		GravityChangeTime:         10,
		PneumaticHammerFrame:      5,
		HammeredWallReappearFrame: 100,
		SkeletonsNeededForPot:     5,
		SkeletonsWorthDiamonds:    0,
		PushingStoneProb:          250000,
		PushingStoneProbSweet:     1000000,
	}
	for i := range d.Levels {
		d.Levels[i] = LevelParams{
			Time:                 150,
			Diamonds:             10,
			Speed:                200,
			HWDelay:              0,
			RandSeed:             0,
			AmoebaTime:           999,
			AmoebaThreshold:      200,
			Amoeba2Time:          999,
			Amoeba2Threshold:     200,
			MagicWallTime:        999,
			SlimePermeability:    1000000,
			SlimePermeabilityC64: 0,
			SlimeSeedC64:         -1,
			HatchingDelayFrame:   21,
			HatchingDelayTime:    2,
			BonusTime:            30,
			PenaltyTime:          30,
		}
	}
	return d
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	c := *d
	if d.Map != nil {
		c.Map = make([][]Element, len(d.Map))
		for y := range d.Map {
			c.Map[y] = append([]Element(nil), d.Map[y]...)
		}
	}
	c.Objects = append([]Object(nil), d.Objects...)
	c.Replays = append([]Replay(nil), d.Replays...)
	c.Scores = append([]HighScore(nil), d.Scores...)
	c.Tags = maps.Clone(d.Tags)
	return &c
}

// SetAllLevels applies fn to the parameters of every level.
func (d *Definition) SetAllLevels(fn func(l *LevelParams)) {
	for i := range d.Levels {
		fn(&d.Levels[i])
	}
}

// HighScore is one entry of a cave's highscore table.
type HighScore struct {
	Name  string
	Score int
}
