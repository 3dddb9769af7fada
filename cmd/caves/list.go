package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List all available caves",
	Long: `Shows every cave found in the cave directories, or in dir when given.
Caves marked as not selectable (intermissions) are listed in brackets.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func runList(_ *cobra.Command, args []string) {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	loader := newLoader(cfg, logger)
	if len(args) == 1 {
		loader.Roots = args
	}
	sets, err := loader.LoadAll()
	if err != nil {
		fatal("%v", err)
	}

	if len(sets) == 0 {
		fmt.Println("No caves found.")
		fmt.Printf("Searched: %v\n", loader.Roots)
		return
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range sets {
		for i := range s.Caves {
			maxIDLen = max(maxIDLen, len(s.CaveID(i)))
		}
	}

	for _, s := range sets {
		fmt.Printf("%s (%s, %d caves)", s.Name, s.Format, len(s.Caves))
		if s.Author != "" {
			fmt.Printf(" by %s", s.Author)
		}
		fmt.Println()

		for i, d := range s.Caves {
			name := d.Name
			if !d.Selectable {
				name = "[" + name + "]"
			}
			fmt.Printf("  %-*s  %-24s %dx%d\n", maxIDLen, s.CaveID(i), name, d.W, d.H)
		}
		fmt.Println()
	}

	fmt.Println("Run 'caves play <id>' to play a cave.")
}
