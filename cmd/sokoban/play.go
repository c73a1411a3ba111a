package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	sokobancore "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/platform/spectate"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var (
	flagLevel    int
	flagSpectate string
)

var playCmd = &cobra.Command{
	Use:   "play [pack]",
	Short: "Play a level pack",
	Long: `Start playing the given pack, or the configured default pack.

Controls:
  Arrows/WASD/HJKL - Move
  Mouse click      - Step onto a neighboring cell
  R                - Restart the level
  Any key          - Continue after a solved level
  Q/Ctrl+C         - Quit

Examples:
  sokoban play
  sokoban play classic --level 2
  sokoban play tutorial --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at (1-indexed)")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve spectators on this address (host:port)")
}

func runPlay(cmd *cobra.Command, args []string) {
	a, err := setup()
	if err != nil {
		fail(err)
	}

	packID := a.cfg.Game.Pack
	if len(args) > 0 {
		packID = args[0]
	}
	if !registry.Exists(packID) {
		fmt.Fprintf(os.Stderr, "Error: unknown pack %q\n", packID)
		fmt.Fprintln(os.Stderr, "Run 'sokoban list' to see available packs.")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var extra []sokoban.Option
	if flagSpectate != "" {
		hub := spectate.NewHub(a.logger.WithPrefix("spectate"))
		go func() {
			if err := hub.ListenAndServe(ctx, flagSpectate); err != nil {
				a.logger.Error("spectator server stopped", "error", err)
			}
		}()
		extra = append(extra, sokoban.WithLevelHook(func(l *sokobancore.Level) {
			l.Register(hub.Observer("local", l))
		}))
	}

	game, err := a.newGame(packID, flagLevel, extra...)
	if err != nil {
		fail(err)
	}

	store := a.openStore()
	runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
