package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-engine/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the minigame SSH server",
	Long: `Start an SSH server that allows users to connect and play minigames.

Each SSH connection gets its own menu and its own sessions.
Results are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.minigame/host_key

Examples:
  minigame serve                           # Listen on :23235 with auto-generated key
  minigame serve --ssh :2222               # Listen on port 2222
  minigame serve --host-key ./my_host_key  # Use specific host key
  minigame serve --difficulty hard         # Harder sessions for everyone

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	addGameFlags(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	s, err := loadSetup()
	if err != nil {
		fail("loading configuration", err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Game:        s.Config,
		Stages:      s.Catalog.Stages(),
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server", err)
	}

	logger.Print("Starting minigame SSH server", "address", cfg.Address)
	logger.Print("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fail("server", err)
	}
}
