package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagScoresLimit int
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <cave-id>",
	Short: "Show high scores for a cave",
	Long: `Display the top high scores recorded for the specified cave, followed
by the highscore table the cave file itself carries.

Examples:
  caves scores intro/1
  caves scores intro/1 --limit 25
  caves scores intro/1 --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the recorded scores of the cave")
}

func runScores(_ *cobra.Command, args []string) {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	set, def, idx, err := newLoader(cfg, logger).Find(args[0])
	if err != nil {
		fatal("%v\nRun 'caves list' to see available caves.", err)
	}
	caveID := set.CaveID(idx)

	store := openStore(cfg, logger)
	if store == nil {
		fatal("no scores database")
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(caveID); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Cleared scores of %s.\n", caveID)
		return
	}

	scores, err := store.TopScores(caveID, flagScoresLimit)
	if err != nil {
		fatal("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s (%s)\n\n", def.Name, caveID)

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'caves play %s' to set the first high score!\n", caveID)
	} else {
		fmt.Printf("  %-4s  %-12s  %-8s  %-3s  %s\n", "Rank", "Player", "Score", "Lvl", "Date")
		fmt.Printf("  %-4s  %-12s  %-8s  %-3s  %s\n", "----", "------", "-----", "---", "----")
		for i, e := range scores {
			fmt.Printf("  %-4d  %-12s  %-8d  %-3d  %s\n",
				i+1, e.Player, e.Score, e.Level+1, e.CreatedAt.Format("2006-01-02 15:04"))
		}

		if stats, err := store.GetCaveStats(caveID); err == nil {
			fmt.Printf("\nBest: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
		}
	}

	if len(def.Scores) > 0 {
		fmt.Println("\nFrom the cave file:")
		for i, s := range def.Scores {
			fmt.Printf("  %-4d  %-12s  %d\n", i+1, s.Name, s.Score)
		}
	}
}
