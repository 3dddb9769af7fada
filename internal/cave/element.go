package cave

// Element identifies what occupies a cell.
// Multi-stage sequences (explosions, births, delays) and the four facing
// variants of each creature are laid out contiguously so that the next
// stage or the next facing is always e+1.
type Element uint16

const (
	Space Element = iota
	Dirt
	Dirt2
	DirtSlopedUpRight
	DirtSlopedUpLeft
	DirtSlopedDownLeft
	DirtSlopedDownRight
	DirtGlued
	DirtBall
	DirtBallF
	DirtLoose
	DirtLooseF

	Brick
	BrickSlopedUpRight
	BrickSlopedUpLeft
	BrickSlopedDownLeft
	BrickSlopedDownRight
	BrickEatable
	BrickNonSliceable
	MagicWall
	Steel
	SteelSlopedUpRight
	SteelSlopedUpLeft
	SteelSlopedDownLeft
	SteelSlopedDownRight
	SteelEatable
	SteelExplodable

	PreOutbox
	Outbox
	PreInvisOutbox
	InvisOutbox
	Inbox

	HExpandingWall
	VExpandingWall
	ExpandingWall
	HExpandingSteelWall
	VExpandingSteelWall
	ExpandingSteelWall

	ExpandingWallSwitch
	CreatureSwitch
	BiterSwitch
	ReplicatorSwitch
	ConveyorSwitch
	ConveyorDirSwitch
	GravitySwitch

	Acid
	FallingWall
	FallingWallF
	Box
	TimePenalty
	Gravestone
	StoneGlued
	DiamondGlued
	DiamondKey
	TrappedDiamond
	Clock
	Sweet
	PneumaticHammer
	Skeleton
	Pot

	Water
	Water1
	Water2
	Water3
	Water4
	Water5
	Water6
	Water7
	Water8
	Water9
	Water10
	Water11
	Water12
	Water13
	Water14
	Water15
	Water16

	Key1
	Key2
	Key3
	Door1
	Door2
	Door3

	Stone
	StoneF
	FlyingStone
	FlyingStoneF
	MegaStone
	MegaStoneF
	Diamond
	DiamondF
	FlyingDiamond
	FlyingDiamondF
	Nut
	NutF
	NitroPack
	NitroPackF
	NitroPackExplode
	WaitingStone
	ChasingStone

	Amoeba
	Amoeba2
	Slime
	Replicator
	ConveyorLeft
	ConveyorRight
	Lava
	Bladder
	Bladder1
	Bladder2
	Bladder3
	Bladder4
	Bladder5
	Bladder6
	Bladder7
	Bladder8
	BladderSpender
	Teleporter
	Voodoo
	Ghost

	Firefly1
	Firefly2
	Firefly3
	Firefly4
	AltFirefly1
	AltFirefly2
	AltFirefly3
	AltFirefly4
	Butterfly1
	Butterfly2
	Butterfly3
	Butterfly4
	AltButterfly1
	AltButterfly2
	AltButterfly3
	AltButterfly4
	Stonefly1
	Stonefly2
	Stonefly3
	Stonefly4
	Dragonfly1
	Dragonfly2
	Dragonfly3
	Dragonfly4
	Cow1
	Cow2
	Cow3
	Cow4
	CowEnclosed1
	CowEnclosed2
	CowEnclosed3
	CowEnclosed4
	CowEnclosed5
	CowEnclosed6
	CowEnclosed7
	Biter1
	Biter2
	Biter3
	Biter4

	Bomb
	BombTick1
	BombTick2
	BombTick3
	BombTick4
	BombTick5
	BombTick6
	BombTick7

	PrePlayer1
	PrePlayer2
	PrePlayer3
	Player
	PlayerBomb
	PlayerGlued
	PlayerStirring
	PlayerPneumaticLeft
	PlayerPneumaticRight
	PneumaticActiveLeft
	PneumaticActiveRight

	Explode1
	Explode2
	Explode3
	Explode4
	Explode5
	PreDiamond1
	PreDiamond2
	PreDiamond3
	PreDiamond4
	PreDiamond5
	PreStone1
	PreStone2
	PreStone3
	PreStone4
	PreSteel1
	PreSteel2
	PreSteel3
	PreSteel4
	PreClock1
	PreClock2
	PreClock3
	PreClock4
	NitroExplode1
	NitroExplode2
	NitroExplode3
	NitroExplode4
	Amoeba2Explode1
	Amoeba2Explode2
	Amoeba2Explode3
	Amoeba2Explode4
	BombExplode1
	BombExplode2
	BombExplode3
	BombExplode4
	GhostExplode1
	GhostExplode2
	GhostExplode3
	GhostExplode4
	NutCrack1
	NutCrack2
	NutCrack3
	NutCrack4

	Unknown
	None

	NumElements int = iota
)

// String returns the element's name as used in cave files.
func (e Element) String() string {
	if int(e) >= NumElements {
		return "UNKNOWN"
	}
	return table[e].Name
}

// Valid reports whether e is a known element.
func (e Element) Valid() bool {
	return int(e) < NumElements
}

// in reports whether e lies in the inclusive range [first, last].
func (e Element) in(first, last Element) bool {
	return e >= first && e <= last
}
