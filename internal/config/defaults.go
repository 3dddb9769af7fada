package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the default engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Engine: EngineSection{
			TickRate:   60,
			Level:      1,
			Difficulty: DifficultyNormal,
		},
		Player: PlayerSection{
			Name: "player",
			Keys: KeysArrows,
		},
		Paths: PathsSection{
			Caves: []string{"caves"},
		},
	}
}

// GetDefaultYAML returns the embedded default configuration file.
func GetDefaultYAML() []byte {
	return defaultEngineYAML
}
