// Package config provides YAML-based engine configuration loading and
// difficulty presets for the cave player.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-caves/internal/cave"
)

// EngineConfig contains all configuration of the cave player.
type EngineConfig struct {
	Engine EngineSection `yaml:"engine"`
	Player PlayerSection `yaml:"player"`
	Paths  PathsSection  `yaml:"paths"`
}

// EngineSection defines how caves are run.
type EngineSection struct {
	TickRate   int              `yaml:"tick_rate"`
	Level      int              `yaml:"level"` // 1..5
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Scheduling string           `yaml:"scheduling"` // empty keeps the cave's own
	PALTiming  bool             `yaml:"pal_timing"`
}

// PlayerSection defines the local player.
type PlayerSection struct {
	Name string   `yaml:"name"`
	Keys KeyStyle `yaml:"keys"`
}

// PathsSection lists where caves and scores live.
type PathsSection struct {
	Caves    []string `yaml:"caves"`
	Database string   `yaml:"database"`
}

// KeyStyle names a set of movement keys.
type KeyStyle string

const (
	KeysArrows KeyStyle = "arrows"
	KeysWASD   KeyStyle = "wasd"
	KeysVim    KeyStyle = "vim"
)

// Validate checks the values a YAML file may get wrong.
func (c EngineConfig) Validate() error {
	if c.Engine.TickRate < 1 || c.Engine.TickRate > 240 {
		return fmt.Errorf("config: tick_rate %d out of range 1..240", c.Engine.TickRate)
	}
	if c.Engine.Level < 1 || c.Engine.Level > cave.NumLevels {
		return fmt.Errorf("config: level %d out of range 1..%d", c.Engine.Level, cave.NumLevels)
	}
	if _, ok := presetLevels[c.Engine.Difficulty]; !ok && c.Engine.Difficulty != DifficultyFixed {
		return fmt.Errorf("config: unknown difficulty %q", c.Engine.Difficulty)
	}
	if c.Engine.Scheduling != "" {
		if _, ok := cave.ParseScheduling(c.Engine.Scheduling); !ok {
			return fmt.Errorf("config: unknown scheduling %q", c.Engine.Scheduling)
		}
	}
	switch c.Player.Keys {
	case KeysArrows, KeysWASD, KeysVim:
	default:
		return fmt.Errorf("config: unknown key style %q", c.Player.Keys)
	}
	return nil
}

// Apply returns a copy of def with the engine overrides applied.
func (c EngineConfig) Apply(def *cave.Definition) *cave.Definition {
	out := def.Clone()
	if s, ok := cave.ParseScheduling(c.Engine.Scheduling); ok && c.Engine.Scheduling != "" {
		out.Scheduling = s
	}
	if c.Engine.PALTiming {
		out.PALTiming = true
	}
	return out
}

// LevelIndex returns the zero-based difficulty level to play.
func (c EngineConfig) LevelIndex() int {
	if l, ok := presetLevels[c.Engine.Difficulty]; ok {
		return l
	}
	return min(max(c.Engine.Level, 1), cave.NumLevels) - 1
}
