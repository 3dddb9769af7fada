package cave

// Sound is a sound cue raised by the engine. The engine only records cues;
// playing them is up to the caller.
type Sound uint8

const (
	SoundNone Sound = iota
	SoundStone
	SoundNutFall
	SoundNutCrack
	SoundDirtBall
	SoundNitroFall
	SoundFallingWall
	SoundExpandingWall
	SoundWalkEarth
	SoundWalkEmpty
	SoundDiamond
	SoundDiamondCollect
	SoundSkeletonCollect
	SoundPneumaticCollect
	SoundBombCollect
	SoundClockCollect
	SoundSweetCollect
	SoundKeyCollect
	SoundDoorOpen
	SoundSwitch
	SoundStirring
	SoundBox
	SoundTeleporter
	SoundGravityChange
	SoundAcidSpread
	SoundBladderMove
	SoundBladderConvert
	SoundBladderSpender
	SoundBiterEat
	SoundSlime
	SoundLava
	SoundReplicator
	SoundWater
	SoundBombPlace
	SoundExplosion
	SoundBombExplosion
	SoundGhostExplosion
	SoundVoodooExplosion
	SoundNitroExplosion
	SoundDiamondBirth
	SoundWallReappear
	SoundCrack // the exit opens
	SoundAmoeba
	SoundMagicWall
	SoundAmoebaMagic
	SoundPneumaticHammer
	SoundCover
	SoundFinished
	SoundTimeout
	SoundStart
	numSounds
)

// soundChannel groups cues so that one cue per channel survives a frame.
type soundChannel uint8

const (
	chanEffect  soundChannel = iota // short one-shot effects
	chanPlayer                      // the player's own actions
	chanAmbient                     // continuous sounds, decided after the scan
	numChannels
)

type soundInfo struct {
	name     string
	channel  soundChannel
	priority int
}

var sounds = [numSounds]soundInfo{
	SoundNone:             {"none", chanEffect, 0},
	SoundStone:            {"stone", chanEffect, 10},
	SoundNutFall:          {"nut", chanEffect, 8},
	SoundNutCrack:         {"nut_crack", chanEffect, 12},
	SoundDirtBall:         {"dirt_ball", chanEffect, 6},
	SoundNitroFall:        {"nitro", chanEffect, 10},
	SoundFallingWall:      {"falling_wall", chanEffect, 10},
	SoundExpandingWall:    {"expanding_wall", chanEffect, 10},
	SoundDiamond:          {"diamond", chanEffect, 10},
	SoundAcidSpread:       {"acid_spread", chanEffect, 3},
	SoundBladderMove:      {"bladder_move", chanEffect, 5},
	SoundBladderConvert:   {"bladder_convert", chanEffect, 8},
	SoundBladderSpender:   {"bladder_spender", chanEffect, 8},
	SoundBiterEat:         {"biter_eat", chanEffect, 5},
	SoundSlime:            {"slime", chanEffect, 5},
	SoundLava:             {"lava", chanEffect, 5},
	SoundReplicator:       {"replicator", chanEffect, 5},
	SoundWater:            {"water", chanEffect, 2},
	SoundExplosion:        {"explosion", chanEffect, 100},
	SoundBombExplosion:    {"bomb_explosion", chanEffect, 100},
	SoundGhostExplosion:   {"ghost_explosion", chanEffect, 100},
	SoundVoodooExplosion:  {"voodoo_explosion", chanEffect, 100},
	SoundNitroExplosion:   {"nitro_explosion", chanEffect, 100},
	SoundDiamondBirth:     {"diamond_birth", chanEffect, 20},
	SoundWallReappear:     {"wall_reappear", chanEffect, 9},
	SoundCrack:            {"crack", chanEffect, 150},
	SoundWalkEarth:        {"walk_earth", chanPlayer, 10},
	SoundWalkEmpty:        {"walk_empty", chanPlayer, 5},
	SoundDiamondCollect:   {"diamond_collect", chanPlayer, 50},
	SoundSkeletonCollect:  {"skeleton_collect", chanPlayer, 50},
	SoundPneumaticCollect: {"pneumatic_collect", chanPlayer, 50},
	SoundBombCollect:      {"bomb_collect", chanPlayer, 50},
	SoundClockCollect:     {"clock_collect", chanPlayer, 50},
	SoundSweetCollect:     {"sweet_collect", chanPlayer, 50},
	SoundKeyCollect:       {"key_collect", chanPlayer, 50},
	SoundDoorOpen:         {"door_open", chanPlayer, 50},
	SoundSwitch:           {"switch", chanPlayer, 40},
	SoundStirring:         {"stirring", chanPlayer, 40},
	SoundBox:              {"box_push", chanPlayer, 20},
	SoundTeleporter:       {"teleporter", chanPlayer, 60},
	SoundGravityChange:    {"gravity_change", chanPlayer, 60},
	SoundBombPlace:        {"bomb_place", chanPlayer, 30},
	SoundAmoeba:           {"amoeba", chanAmbient, 30},
	SoundMagicWall:        {"magic_wall", chanAmbient, 30},
	SoundAmoebaMagic:      {"amoeba_magic", chanAmbient, 40},
	SoundPneumaticHammer:  {"pneumatic_hammer", chanAmbient, 50},
	SoundCover:            {"cover", chanAmbient, 100},
	SoundFinished:         {"finished", chanAmbient, 100},
	SoundTimeout:          {"timeout", chanAmbient, 100},
	SoundStart:            {"start", chanAmbient, 100},
}

func (s Sound) String() string {
	if s < numSounds {
		return sounds[s].name
	}
	return "unknown"
}

type soundState struct {
	channels [numChannels]Sound
}

func (s *soundState) clear() {
	s.channels = [numChannels]Sound{}
}

// playSound records a cue unless its channel already holds one with a
// higher priority.
func (c *Cave) playSound(snd Sound) {
	if snd == SoundNone || snd >= numSounds {
		return
	}
	info := sounds[snd]
	cur := c.sound.channels[info.channel]
	if cur == SoundNone || sounds[cur].priority <= info.priority {
		c.sound.channels[info.channel] = snd
	}
}

// playElementSound raises the cue an element makes when it lands, is
// swallowed or otherwise comes to rest.
func (c *Cave) playElementSound(e Element) {
	switch e {
	case Stone, StoneF, FlyingStone, FlyingStoneF, MegaStone, MegaStoneF, WaitingStone, ChasingStone:
		c.playSound(SoundStone)
	case Nut, NutF:
		c.playSound(SoundNutFall)
	case Diamond, DiamondF, FlyingDiamond, FlyingDiamondF:
		c.playSound(SoundDiamond)
	case DirtBall, DirtBallF, DirtLoose, DirtLooseF:
		c.playSound(SoundDirtBall)
	case NitroPack, NitroPackF:
		c.playSound(SoundNitroFall)
	case FallingWall, FallingWallF:
		c.playSound(SoundFallingWall)
	case HExpandingWall, VExpandingWall, ExpandingWall,
		HExpandingSteelWall, VExpandingSteelWall, ExpandingSteelWall:
		c.playSound(SoundExpandingWall)
	case Bladder, Bladder1, Bladder2, Bladder3, Bladder4, Bladder5, Bladder6, Bladder7, Bladder8:
		c.playSound(SoundBladderMove)
	case Lava:
		c.playSound(SoundLava)
	case Slime:
		c.playSound(SoundSlime)
	case Acid:
		c.playSound(SoundAcidSpread)
	case Replicator:
		c.playSound(SoundReplicator)
	case Water:
		c.playSound(SoundWater)
	case Box:
		c.playSound(SoundBox)
	}
}

// setAmbientSound picks the continuous cue for the frame: the hammer
// overrides the amoeba and magic wall pair, which overrides either alone.
func (c *Cave) setAmbientSound() {
	switch {
	case c.hammerSoundFrame:
		c.playSound(SoundPneumaticHammer)
	case c.amoebaSoundPlaying && c.magicWallSoundPlays:
		c.playSound(SoundAmoebaMagic)
	case c.magicWallSoundPlays:
		c.playSound(SoundMagicWall)
	case c.amoebaSoundPlaying:
		c.playSound(SoundAmoeba)
	}
}

// Sounds returns the cues raised during the last frame, one per channel.
func (c *Cave) Sounds() []Sound {
	out := make([]Sound, 0, numChannels)
	for _, s := range c.sound.channels {
		if s != SoundNone {
			out = append(out, s)
		}
	}
	return out
}
