package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-caves/internal/importer"
	"github.com/vovakirdan/tui-caves/internal/registry"
)

var flagFormats bool

var detectCmd = &cobra.Command{
	Use:   "detect [file...]",
	Short: "Identify the format of cave files",
	Long: `Reads the magic of each file and names the cave format it holds.
With --formats, lists every format that can be imported.

Examples:
  caves detect old.bd
  caves detect --formats`,
	Run: runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&flagFormats, "formats", false, "List the known formats")
}

func runDetect(_ *cobra.Command, args []string) {
	if flagFormats || len(args) == 0 {
		fmt.Printf("  %-6s  %-10s  %s\n", "Tag", "Magic", "Title")
		fmt.Printf("  %-6s  %-10s  %s\n", "---", "-----", "-----")
		for _, f := range registry.List() {
			fmt.Printf("  %-6s  %-10q  %s\n", f.Tag, f.Magic, f.Title)
		}
		return
	}

	failed := false
	for _, path := range args {
		desc, err := detectFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s: %s\n", path, desc)
	}
	if failed {
		os.Exit(1)
	}
}

// detectFile describes the format of one file.
func detectFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "YAML cave set", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	tag, ok := importer.DetectFormat(data)
	if !ok {
		return "", importer.ErrUnrecognized
	}
	f, _ := registry.Lookup(tag)
	desc := fmt.Sprintf("%s (%s)", f.Title, tag)
	if len(data) >= importer.HeaderLen {
		n := binary.LittleEndian.Uint32(data[registry.MagicLen:importer.HeaderLen])
		desc += fmt.Sprintf(", %d byte payload", n)
	}
	return desc, nil
}
