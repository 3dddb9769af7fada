package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/caveset"
	"github.com/vovakirdan/tui-caves/internal/config"
	"github.com/vovakirdan/tui-caves/internal/games/caves"
	"github.com/vovakirdan/tui-caves/internal/platform/tui"
	"github.com/vovakirdan/tui-caves/internal/storage"
)

var flagCaveNum int

var playCmd = &cobra.Command{
	Use:   "play [cave-id|file]",
	Short: "Play a cave",
	Long: `Start playing a cave. Without an argument a menu lists every cave found.

The argument is a cave ID (<set>/<n> or <set>/<name>, a bare set ID
starts its first cave) or a path to a cave file.

Controls (arrows style; see the config for wasd and vim):
  Arrows         - Move
  Shift+Arrows   - Snap (pick up without moving)
  Space          - Fire
  X              - Give up (explode)
  P              - Pause
  R              - Restart
  Esc            - Back to the menu
  Q/Ctrl+C       - Quit
  Ctrl+S         - Screenshot to ~/.caves/screenshots

Examples:
  caves play
  caves play intro/1
  caves play intro/Pyramid --level 2
  caves play ./old.bd --cave 4 --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagCaveNum, "cave", 1, "Cave number when playing a file")
}

func runPlay(_ *cobra.Command, args []string) {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	loader := newLoader(cfg, logger)

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 {
		runMenu(cfg, loader, store, logger)
		return
	}

	id, def, err := resolveCave(loader, args[0], flagCaveNum)
	if err != nil {
		fatal("%v", err)
	}
	if _, err := playCave(cfg, store, logger, id, def); err != nil {
		fatal("running cave: %v", err)
	}
}

// resolveCave finds a cave by file path or by cave ID.
func resolveCave(loader *caveset.Loader, arg string, num int) (string, *cave.Definition, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		set, err := loader.LoadFile(arg)
		if err != nil {
			return "", nil, err
		}
		if num < 1 || num > len(set.Caves) {
			return "", nil, fmt.Errorf("%s has %d caves, no cave %d", arg, len(set.Caves), num)
		}
		return set.CaveID(num - 1), set.Caves[num-1], nil
	}

	set, def, idx, err := loader.Find(arg)
	if errors.Is(err, caveset.ErrNotFound) {
		return "", nil, fmt.Errorf("unknown cave %q; run 'caves list' to see available caves", arg)
	}
	if err != nil {
		return "", nil, err
	}
	return set.CaveID(idx), def, nil
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// playCave runs one cave until the player quits or goes back.
func playCave(cfg config.EngineConfig, store *storage.Store, logger *log.Logger, id string, def *cave.Definition) (back bool, err error) {
	width, height := terminalSize()
	game := caves.New(id, cfg.Apply(def))
	logger.Debug("starting cave", "cave", id, "level", cfg.LevelIndex()+1, "seed", flagSeed)
	return tui.Run(game, runtimeConfig(cfg, width, height), tui.Options{
		Keys:  cfg.Player.Keys,
		Store: store,
		Log:   logger,
	})
}

// runMenu loops between the cave picker, the scoreboard and the game.
func runMenu(cfg config.EngineConfig, loader *caveset.Loader, store *storage.Store, logger *log.Logger) {
	sets, err := loader.LoadAll()
	if err != nil {
		fatal("%v", err)
	}
	items := tui.MenuItemsFromSets(sets)

	width, height := terminalSize()
	rc := runtimeConfig(cfg, width, height)

	for {
		menuResult, err := tui.RunMenu(items, store, rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rc = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(items, store, rc.ScreenW, rc.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		back, err := playCave(cfg, store, logger, menuResult.Item.ID, menuResult.Item.Def)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running cave: %v\n", err)
		}
		if !back {
			return
		}
	}
}
