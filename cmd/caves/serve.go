package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-caves/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the caves SSH server",
	Long: `Start an SSH server that allows users to connect and play caves.

Each SSH connection gets its own session with a cave picker menu. The SSH
user name is recorded with scores and replays; all users share the same
leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.caves/host_key

Examples:
  caves serve                           # Listen on :23234 with auto-generated key
  caves serve --ssh :2222               # Listen on port 2222
  caves serve --host-key ./my_host_key  # Use specific host key
  caves serve --db ./caves.db           # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger()
	cfg, err := loadConfig()
	if err != nil {
		fatal("%v", err)
	}

	sets, err := newLoader(cfg, logger).LoadAll()
	if err != nil {
		fatal("%v", err)
	}
	items := tui.MenuItemsFromSets(sets)
	if len(items) == 0 {
		logger.Warn("no caves found; sessions will see an empty menu", "roots", cfg.Paths.Caves)
	}

	srvCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      cfg.DatabasePath(),
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Caves:       items,
		Engine:      cfg,
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting caves SSH server on %s with %d caves\n", srvCfg.Address, len(items))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
