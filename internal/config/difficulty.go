package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
	DifficultyFixed  DifficultyPreset = "fixed" // the configured level as is
)

// zero-based cave level of each preset
var presetLevels = map[DifficultyPreset]int{
	DifficultyEasy:   0,
	DifficultyNormal: 1,
	DifficultyHard:   3,
	DifficultyExpert: 4,
}

// LevelForPreset returns the cave level for a preset, or -1 for fixed and
// unknown presets.
func LevelForPreset(preset DifficultyPreset) int {
	if l, ok := presetLevels[preset]; ok {
		return l
	}
	return -1
}

// ApplyPreset sets the difficulty of cfg. An unknown preset leaves the
// level untouched.
func ApplyPreset(cfg *EngineConfig, preset DifficultyPreset) {
	cfg.Engine.Difficulty = preset
	if l := LevelForPreset(preset); l >= 0 {
		cfg.Engine.Level = l + 1
	}
}
