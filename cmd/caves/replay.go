package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-caves/internal/cave"
	"github.com/vovakirdan/tui-caves/internal/caveset"
)

var flagStored bool

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Work with recorded replays",
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <file|set-id|cave-id>",
	Short: "Replay recordings and compare their checksums",
	Long: `Plays every replay recorded for the caves back against a freshly
rendered cave and compares the checksum of the final grid. Replays come from
the cave-set file itself and, with --stored, from the scores database.

Exits with status 1 when any replay does not match.

Examples:
  caves replay verify ./intro.yaml
  caves replay verify intro/2 --stored`,
	Args: cobra.ExactArgs(1),
	Run:  runReplayVerify,
}

var replayListCmd = &cobra.Command{
	Use:   "list <cave-id>",
	Short: "List the replays stored for a cave",
	Args:  cobra.ExactArgs(1),
	Run:   runReplayList,
}

func init() {
	replayVerifyCmd.Flags().BoolVar(&flagStored, "stored", false, "Also verify replays saved in the scores database")
	replayCmd.AddCommand(replayVerifyCmd)
	replayCmd.AddCommand(replayListCmd)
}

// caveRef is one cave selected on the command line.
type caveRef struct {
	id  string
	def *cave.Definition
}

// selectCaves resolves a file, a set ID or a cave ID to caves.
func selectCaves(loader *caveset.Loader, arg string) ([]caveRef, error) {
	var set *caveset.Set
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		if set, err = loader.LoadFile(arg); err != nil {
			return nil, err
		}
	} else if strings.Contains(arg, "/") {
		s, def, idx, err := loader.Find(arg)
		if err != nil {
			return nil, err
		}
		return []caveRef{{s.CaveID(idx), def}}, nil
	} else {
		sets, err := loader.LoadAll()
		if err != nil {
			return nil, err
		}
		for _, s := range sets {
			if s.ID == arg {
				set = s
			}
		}
		if set == nil {
			return nil, fmt.Errorf("%w: cave set %q", caveset.ErrNotFound, arg)
		}
	}

	refs := make([]caveRef, len(set.Caves))
	for i, d := range set.Caves {
		refs[i] = caveRef{set.CaveID(i), d}
	}
	return refs, nil
}

func runReplayVerify(_ *cobra.Command, args []string) {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	refs, err := selectCaves(newLoader(cfg, logger), args[0])
	if err != nil {
		fatal("%v", err)
	}

	type job struct {
		ref    caveRef
		source string
		replay cave.Replay
	}
	var jobs []job
	for _, ref := range refs {
		for i, r := range ref.def.Replays {
			jobs = append(jobs, job{ref, fmt.Sprintf("file #%d", i+1), r})
		}
	}
	if flagStored {
		if store := openStore(cfg, logger); store != nil {
			for _, ref := range refs {
				entries, err := store.Replays(ref.id, 1000)
				if err != nil {
					logger.Error("reading stored replays", "cave", ref.id, "err", err)
					continue
				}
				for _, e := range entries {
					jobs = append(jobs, job{ref, fmt.Sprintf("db #%d", e.ID), e.Replay})
				}
			}
			store.Close()
		}
	}

	if len(jobs) == 0 {
		fmt.Println("No replays to verify.")
		return
	}

	bad := 0
	for _, j := range jobs {
		res, err := cave.Verify(j.ref.def, &j.replay)
		status := "ok"
		switch {
		case err != nil:
			status = "error: " + err.Error()
			bad++
		case !res.Match:
			status = fmt.Sprintf("MISMATCH (got %08x, want %08x)", res.Checksum, j.replay.Checksum)
			bad++
		}
		fmt.Printf("  %-16s %-9s %-12s lvl %d  %5d frames  %-8s score %-6d %s\n",
			j.ref.id, j.source, j.replay.Player, j.replay.Level+1, res.Frames, res.State, res.Score, status)
	}

	fmt.Printf("\n%d of %d replays verified\n", len(jobs)-bad, len(jobs))
	if bad > 0 {
		os.Exit(1)
	}
}

func runReplayList(_ *cobra.Command, args []string) {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}
	store := openStore(cfg, logger)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.Replays(args[0], 0)
	if err != nil {
		fatal("%v", err)
	}
	if len(entries) == 0 {
		fmt.Printf("No replays stored for %s.\n", args[0])
		return
	}

	fmt.Printf("  %-5s  %-12s  %-3s  %-6s  %-7s  %-8s  %s\n", "ID", "Player", "Lvl", "Score", "Result", "Time", "Date")
	for _, e := range entries {
		r := e.Replay
		result := "lost"
		if r.Success {
			result = "success"
		}
		fmt.Printf("  %-5d  %-12s  %-3d  %-6d  %-7s  %-8s  %s\n",
			e.ID, r.Player, r.Level+1, r.Score, result, r.Duration.Round(100*time.Millisecond), e.CreatedAt.Format("2006-01-02 15:04"))
	}
}
