package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-duel/internal/platform/tui"
	"github.com/vovakirdan/snake-duel/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeBot    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the snake duel SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own duel against a bot. Matches are stored
per-server, recorded under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snakeduel/host_key

Examples:
  snakeduel serve                           # Listen on :23234 with auto-generated key
  snakeduel serve --ssh :2222               # Listen on port 2222
  snakeduel serve --host-key ./my_host_key  # Use specific host key
  snakeduel serve --opponent cautious       # Every session faces the cautious bot

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeBot, "opponent", "", "Bot strategy for snake B (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagServeBot != "" && !registry.Exists(flagServeBot) {
		fmt.Fprintf(os.Stderr, "Error: unknown bot %q\n", flagServeBot)
		fmt.Fprintln(os.Stderr, "Run 'snakeduel bots' to see available bots.")
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Duel:        loadDuelConfig(),
		Opponent:    flagServeBot,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting snake duel SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
