package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	sokobancore "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/platform/spectate"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var (
	flagSSHAddr       string
	flagHostKey       string
	flagServeSpectate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a pack picker menu.
Records are stored per server.

With --spectate, every session is streamed to websocket spectators on
the configured spectate address:
  GET /ws?session=ssh-1   live events
  GET /board              latest boards as JSON
  GET /board/ssh-1        latest board as text

Examples:
  sokoban serve
  sokoban serve --ssh :2222
  sokoban serve --host-key ./my_host_key
  sokoban serve --spectate

Users can connect with:
  ssh localhost -p 2323`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().BoolVar(&flagServeSpectate, "spectate", false, "Stream sessions to spectators")
}

func runServe(_ *cobra.Command, _ []string) {
	a, err := setup()
	if err != nil {
		fail(err)
	}

	cfg := tui.SSHServerConfig{
		Address:     a.cfg.SSH.Address,
		HostKeyPath: a.cfg.SSH.HostKeyPath,
		DBPath:      a.cfg.Storage.DBPath,
		IdleTimeout: a.cfg.SSH.IdleTimeout,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *spectate.Hub
	if flagServeSpectate {
		hub = spectate.NewHub(a.logger.WithPrefix("spectate"))
		go func() {
			if err := hub.ListenAndServe(ctx, a.cfg.Spectate.Address); err != nil {
				a.logger.Error("spectator server stopped", "error", err)
			}
		}()
	}

	var sessions atomic.Int64
	cfg.NewGame = func(packID string, start int) (registry.Game, error) {
		if hub == nil {
			return a.newGame(packID, start)
		}
		name := fmt.Sprintf("ssh-%d", sessions.Add(1))
		return a.newGame(packID, start, sokoban.WithLevelHook(func(l *sokobancore.Level) {
			l.Register(hub.Observer(name, l))
		}))
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Starting sokoban SSH server on %s\n", cfg.Address)
	if hub != nil {
		fmt.Printf("Spectators: http://localhost%s/board\n", a.cfg.Spectate.Address)
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
