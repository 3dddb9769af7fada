package cave

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// PlayerState is the liveness of the player in a running cave.
type PlayerState uint8

const (
	PlayerNotYet PlayerState = iota // inbox not hatched yet
	PlayerLiving
	PlayerTimeout
	PlayerDied
	PlayerExited
)

var playerStateNames = []string{"notyet", "living", "timeout", "died", "exited"}

func (s PlayerState) String() string {
	if int(s) < len(playerStateNames) {
		return playerStateNames[s]
	}
	return "unknown"
}

// AmoebaState is the cave-wide state of one amoeba kind.
type AmoebaState uint8

const (
	AmoebaSleeping AmoebaState = iota
	AmoebaAwake
	AmoebaTooBig
	AmoebaEnclosed
)

var amoebaStateNames = []string{"sleeping", "awake", "toobig", "enclosed"}

func (s AmoebaState) String() string {
	if int(s) < len(amoebaStateNames) {
		return amoebaStateNames[s]
	}
	return "unknown"
}

// MagicWallState tracks the magic wall lifecycle.
type MagicWallState uint8

const (
	MagicWallDormant MagicWallState = iota
	MagicWallActive
	MagicWallExpired
)

// historySize is the number of remembered player positions.
const historySize = 16

// Cave is a rendered, playable cave. It carries a private copy of the
// definition it was rendered from; the iteration engine mutates only this
// copy. A Cave is not safe for concurrent use.
type Cave struct {
	Definition

	Level      int    // difficulty level, 0..NumLevels-1
	RenderSeed uint32 // seed the cave was rendered with

	cells       []Cell   // W*H cells, row-major
	rows        [][]Cell // row slices into cells
	objectOrder []int    // index of the object that last drew each cell, -1 if none
	hammered    []int    // per-cell hammered-wall reappear countdown, 0 if none

	Random *Random    // general generator, reseeded per render
	C64    *C64Random // hardware generator, used by predictable slime

	// player
	PlayerX, PlayerY    int
	PlayerState         PlayerState
	PlayerSeenAgo       int
	KillPlayer          bool // forced death, e.g. a destroyed voodoo
	VoodooTouched       bool
	Keys                [3]int
	GotHammer           bool
	SweetEaten          bool
	Skeletons           int
	DiamondKeyCollected bool
	history             [historySize]Point
	historyLen          int
	historyNext         int
	LastDirection       Direction
	LastHorizontal      Direction

	// score and diamonds
	Score             int
	ScoreDelta        int // points gained during the last frame
	DiamondsCollected int
	DiamondsNeeded    int
	diamondsDeferred  bool
	DiamondValueNow   int // current diamond worth; switches to the extra value once the gate opens
	GateOpen          bool
	GateOpenFlash     int // frames of the gate-open flash left
	InboxFlash        bool

	// timing, all in internal time units (seconds × timing factor)
	TimingFactor       int
	Time               int
	MaxTimeUnits       int
	TimeBonus          int
	TimePenalty        int
	Speed              int // ms per frame, SchedMilliseconds
	HWDelay            int
	FrameTime          int // length of the last frame in ms
	CKDelay            int // element cost accumulated during the last scan
	CKDelayExtra       int // animation surcharge from SetupForPlay
	HatchingDelayFrame int
	HatchingDelayTime  int
	Hatched            bool
	Frame              int

	// amoeba
	AmoebaState         AmoebaState
	AmoebaTime          int
	AmoebaGrowthProb    int
	AmoebaMaxCount      int
	Amoeba2State        AmoebaState
	Amoeba2Time         int
	Amoeba2GrowthProb   int
	Amoeba2MaxCount     int
	amoebaCount         int
	amoeba2Count        int
	amoebaCouldGrow     bool
	amoeba2CouldGrow    bool
	amoebaSoundPlaying  bool
	magicWallSoundPlays bool

	// magic wall and slime
	MagicWallState       MagicWallState
	MagicWallTime        int
	SlimePermeability    int
	SlimePermeabilityC64 int

	// switches and cave-wide flags
	CreaturesDirectionChangeTime int
	ExpandingWallChangedNow      bool
	BiterDelay                   int
	ConveyorActive               bool
	ConveyorChanged              bool
	ReplicatorActive             bool
	ReplicatorWaitFrame          int
	BiterWaitFrame               int
	GravityNow                   Direction
	GravityNext                  Direction
	GravityWillChange            int // time units until the gravity flip, 0 if none
	GravityDisabled              bool
	HammerActiveDelay            int
	hammerSoundFrame             bool

	sound soundState
	ready bool // SetupForPlay has run
}

// newCave allocates the grid for a copy of def. Cells are filled with Space.
func newCave(def *Definition, level int) *Cave {
	c := &Cave{
		Definition: *def.Clone(),
		Level:      level,
	}
	n := def.W * def.H
	c.cells = make([]Cell, n)
	c.rows = make([][]Cell, def.H)
	for y := range c.rows {
		c.rows[y] = c.cells[y*def.W : (y+1)*def.W]
	}
	c.objectOrder = make([]int, n)
	for i := range c.objectOrder {
		c.objectOrder[i] = -1
	}
	c.hammered = make([]int, n)
	return c
}

// Width returns the number of columns.
func (c *Cave) Width() int { return c.W }

// Height returns the number of rows.
func (c *Cave) Height() int { return c.H }

// addr resolves x, y through the cave's addressing mode.
//
// In wrap mode both axes wrap independently. In lineshift mode leaving the
// grid horizontally moves to the previous or next row, which is how the
// original machines laid out screen memory.
func (c *Cave) addr(x, y int) (int, int) {
	if c.Lineshift {
		for x >= c.W {
			x -= c.W
			y++
		}
		for x < 0 {
			x += c.W
			y--
		}
	} else {
		x = ((x % c.W) + c.W) % c.W
	}
	y = ((y % c.H) + c.H) % c.H
	return x, y
}

func (c *Cave) at(x, y int) *Cell {
	x, y = c.addr(x, y)
	return &c.rows[y][x]
}

func (c *Cave) atDir(x, y int, d Direction) *Cell {
	return c.at(x+d.DX(), y+d.DY())
}

// Get returns the element at x, y; coordinates outside the grid are resolved
// by the addressing mode.
func (c *Cave) Get(x, y int) Element {
	return c.at(x, y).Element()
}

// CellAt returns the cell at x, y including its flags.
func (c *Cave) CellAt(x, y int) Cell {
	return *c.at(x, y)
}

// Set writes e at x, y without flags. It is meant for editors and tests.
func (c *Cave) Set(x, y int, e Element) {
	*c.at(x, y) = C(e)
}

// Row returns row y. The slice aliases the grid.
func (c *Cave) Row(y int) []Cell {
	return c.rows[y]
}

// ObjectAt returns the index of the object that drew x, y, or -1.
func (c *Cave) ObjectAt(x, y int) int {
	x, y = c.addr(x, y)
	return c.objectOrder[y*c.W+x]
}

// get returns the neighbor element in direction d.
func (c *Cave) get(x, y int, d Direction) Element {
	return c.atDir(x, y, d).Element()
}

func (c *Cave) isSpace(x, y int, d Direction) bool {
	return c.get(x, y, d) == Space
}

func (c *Cave) has(x, y int, d Direction, f Flag) bool {
	return c.get(x, y, d).Is(f)
}

// store writes the cell's own position. The write is not marked scanned.
// Lava swallows whatever is stored into it.
func (c *Cave) store(x, y int, e Element) {
	p := c.at(x, y)
	if p.Elem == Lava && e != Space {
		c.playElementSound(Lava)
		return
	}
	p.Elem = e
	p.Flags &^= Scanned
}

// storeDir writes a neighbor and marks it scanned so the scan does not
// process it again in this frame.
func (c *Cave) storeDir(x, y int, d Direction, e Element) {
	p := c.atDir(x, y, d)
	if p.Elem == Lava && e != Space {
		c.playElementSound(Lava)
		return
	}
	p.Elem = e
	p.Flags |= Scanned
}

// move stores e in direction d and leaves space behind.
func (c *Cave) move(x, y int, d Direction, e Element) {
	c.storeDir(x, y, d, e)
	c.store(x, y, Space)
}

// next advances x, y to the next element of its sequence.
func (c *Cave) next(x, y int) {
	p := c.at(x, y)
	p.Elem++
}

// drawStore is the construction write: addressing applied, no flags, and
// the drawing object recorded.
func (c *Cave) drawStore(x, y int, e Element, obj int) {
	x, y = c.addr(x, y)
	c.rows[y][x] = C(e)
	c.objectOrder[y*c.W+x] = obj
}

// inside reports whether x, y lies in the grid without addressing.
func (c *Cave) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.W && y < c.H
}

// CurrentGravity returns the gravity direction in effect.
func (c *Cave) CurrentGravity() Direction {
	return c.GravityNow
}

// PlayerHistory returns the remembered player positions, newest first.
func (c *Cave) PlayerHistory() []Point {
	out := make([]Point, 0, c.historyLen)
	for i := 0; i < c.historyLen; i++ {
		idx := (c.historyNext - 1 - i + historySize) % historySize
		out = append(out, c.history[idx])
	}
	return out
}

func (c *Cave) rememberPlayer(x, y int) {
	c.history[c.historyNext] = Point{x, y}
	c.historyNext = (c.historyNext + 1) % historySize
	if c.historyLen < historySize {
		c.historyLen++
	}
}

// TimeSeconds returns the remaining time in whole seconds, rounded up.
func (c *Cave) TimeSeconds() int {
	if c.TimingFactor == 0 {
		return 0
	}
	return (c.Time + c.TimingFactor - 1) / c.TimingFactor
}

// Count returns how many cells hold e.
func (c *Cave) Count(e Element) int {
	n := 0
	for _, cell := range c.cells {
		if cell.Elem == e {
			n++
		}
	}
	return n
}

// Find returns the first position holding e in row-major order.
func (c *Cave) Find(e Element) (Point, bool) {
	for i, cell := range c.cells {
		if cell.Elem == e {
			return Point{i % c.W, i / c.W}, true
		}
	}
	return Point{}, false
}

// CoverAll sets the covered marker on every cell.
func (c *Cave) CoverAll() {
	for i := range c.cells {
		c.cells[i].Flags |= Covered
	}
}

// UncoverRandom clears the covered marker of n random cells and reports
// whether anything is still covered. It uses its own generator so that the
// uncover animation does not disturb gameplay randomness.
func (c *Cave) UncoverRandom(r *Random, n int) bool {
	for i := 0; i < n; i++ {
		idx := r.IntRange(0, len(c.cells))
		c.cells[idx].Flags &^= Covered
	}
	for _, cell := range c.cells {
		if cell.IsCovered() {
			return true
		}
	}
	return false
}

// UncoverAll clears the covered marker on every cell.
func (c *Cave) UncoverAll() {
	for i := range c.cells {
		c.cells[i].Flags &^= Covered
	}
}
