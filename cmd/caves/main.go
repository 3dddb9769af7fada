// caves plays Boulder Dash style caves in the terminal.
//
// Usage:
//
//	caves list [dir]             - List available caves
//	caves play [cave-id|file]    - Play a cave, or pick one from a menu
//	caves detect <file>          - Identify the format of a cave file
//	caves import <file>          - Decode a legacy cave file
//	caves replay verify <file>   - Check recorded replays
//	caves scores <cave-id>       - Show high scores for a cave
//	caves serve                  - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>     - Set UI tick rate (default from config)
//	--seed <value>   - Set the cave render seed
//	--db <path>      - Set database path (default: ~/.caves/caves.db)
//	--level <n>      - Difficulty level 1..5
//	--config <path>  - Engine configuration file
//	--verbose        - Log debug messages
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/caveset"
	"github.com/vovakirdan/tui-caves/internal/config"
	"github.com/vovakirdan/tui-caves/internal/core"
	"github.com/vovakirdan/tui-caves/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLevel   int
	flagConfig  string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "caves",
	Short: "Caves - dig for diamonds in your terminal",
	Long: `Caves runs Boulder Dash style caves in the terminal.

Caves come from YAML cave-set files and from legacy binary cave files found
in the configured cave directories (./caves and ~/.caves/caves by default).
A cave is addressed as <set>/<n> or <set>/<name>.

Available commands:
  list     - Show all available caves
  play     - Play a cave
  detect   - Identify a cave file format
  import   - Decode a legacy cave file
  replay   - Verify recorded replays
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  caves list
  caves play intro/1
  caves play ./my-caves.yaml --level 3
  caves import old.bd --yaml old.yaml
  caves serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "UI tick rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Cave render seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagLevel, "level", 0, "Difficulty level 1..5 (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger returns the CLI logger; --verbose turns on debug output.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "caves",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
	}
	return logger
}

// loadConfig loads the engine config and applies the global flag overrides.
func loadConfig() (config.EngineConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Engine.TickRate = flagFPS
	}
	if flagLevel > 0 {
		if flagLevel > cave.NumLevels {
			return cfg, fmt.Errorf("--level %d out of range 1..%d", flagLevel, cave.NumLevels)
		}
		cfg.Engine.Level = flagLevel
		cfg.Engine.Difficulty = config.DifficultyFixed
	}
	if flagDBPath != "" {
		cfg.Paths.Database = flagDBPath
	}
	return cfg, nil
}

// newLoader returns a loader over the configured cave directories, the
// user's cave directory and any extra roots.
func newLoader(cfg config.EngineConfig, logger *log.Logger, extra ...string) *caveset.Loader {
	roots := append([]string{}, cfg.Paths.Caves...)
	if user := config.UserPath("caves"); user != "" {
		roots = append(roots, user)
	}
	return caveset.NewLoader(logger, append(roots, extra...)...)
}

// openStore opens the scores database. Failure is only a warning: caves
// still play without one.
func openStore(cfg config.EngineConfig, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.DatabasePath())
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		return nil
	}
	return store
}

// runtimeConfig builds the per-game runtime config.
func runtimeConfig(cfg config.EngineConfig, width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Engine.TickRate,
		Seed:     flagSeed,
		Level:    cfg.LevelIndex(),
		Player:   cfg.Player.Name,
	}
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
