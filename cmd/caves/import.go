package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-caves/internal/caveset"
	"github.com/vovakirdan/tui-caves/internal/importer"
)

var (
	flagYAMLOut  string
	flagMaxCaves int
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Decode a legacy cave file",
	Long: `Decodes every cave of a legacy binary cave file and prints a summary.
Problems the decoder can recover from are logged as warnings.
With --yaml the caves are written to a cave-set file that the player loads
like any other.

Examples:
  caves import old.bd
  caves import old.bd --yaml ~/.caves/caves/old.yaml
  caves import old.bd --max 5 -v`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func init() {
	importCmd.Flags().StringVar(&flagYAMLOut, "yaml", "", "Write the caves to this YAML cave-set file")
	importCmd.Flags().IntVar(&flagMaxCaves, "max", 0, "Import at most this many caves (0 = all)")
}

func runImport(_ *cobra.Command, args []string) {
	path := args[0]
	logger := newLogger().With("file", filepath.Base(path))

	data, err := os.ReadFile(path)
	if err != nil {
		fatal("%v", err)
	}
	tag, ok := importer.DetectFormat(data)
	if !ok {
		fatal("%s: %v", path, importer.ErrUnrecognized)
	}

	defs, err := importer.Import(data, importer.Options{Logger: logger, MaxCaves: flagMaxCaves})
	if err != nil {
		if len(defs) == 0 {
			fatal("importing %s: %v", path, err)
		}
		logger.Warn("import stopped early", "err", err, "caves", len(defs))
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	set := &caveset.Set{ID: id, Name: id, Format: string(tag), Caves: defs}

	fmt.Printf("%s: %d caves (%s)\n\n", path, len(defs), tag)
	fmt.Printf("  %-4s  %-24s  %-7s  %-8s  %-5s  %s\n", "#", "Name", "Size", "Diamonds", "Time", "Sched")
	for i, d := range defs {
		l := d.Levels[0]
		name := d.Name
		if !d.Selectable {
			name = "[" + name + "]"
		}
		fmt.Printf("  %-4d  %-24s  %-7s  %-8d  %-5d  %s\n",
			i+1, name, fmt.Sprintf("%dx%d", d.W, d.H), l.Diamonds, l.Time, d.Scheduling)
	}

	if flagYAMLOut == "" {
		return
	}
	out, err := caveset.MarshalYAML(set)
	if err != nil {
		fatal("exporting: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagYAMLOut), 0o755); err != nil {
		fatal("%v", err)
	}
	if err := os.WriteFile(flagYAMLOut, out, 0o644); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("\nWrote %s\n", flagYAMLOut)
}
