package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	sokobancore "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/platform/mcp"
	"github.com/vovakirdan/tui-sokoban/internal/platform/spectate"
)

var (
	flagMCPPack     string
	flagMCPLevel    int
	flagMCPSpectate string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP tools on stdio",
	Long: `Serve the game as Model Context Protocol tools over stdin/stdout so an
agent can play. Logs go to stderr.

Examples:
  sokoban mcp
  sokoban mcp --pack tutorial --level 2
  sokoban mcp --spectate :8080`,
	Run: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&flagMCPPack, "pack", "", "Pack to load at start")
	mcpCmd.Flags().IntVar(&flagMCPLevel, "level", 1, "Level to load at start (1-indexed)")
	mcpCmd.Flags().StringVar(&flagMCPSpectate, "spectate", "", "Serve spectators on this address (host:port)")
}

func runMCP(_ *cobra.Command, _ []string) {
	a, err := setup()
	if err != nil {
		fail(err)
	}

	opts := []mcp.Option{
		mcp.WithLogger(a.logger.WithPrefix("sokoban-mcp")),
		mcp.WithLevelOptions(a.levelOptions()...),
		mcp.WithLevelOptions(sokobancore.WithTranslator(a.catalog.Translate)),
	}

	if flagMCPSpectate != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		hub := spectate.NewHub(a.logger.WithPrefix("spectate"))
		go func() {
			if err := hub.ListenAndServe(ctx, flagMCPSpectate); err != nil {
				a.logger.Error("spectator server stopped", "error", err)
			}
		}()
		opts = append(opts, mcp.WithLevelHook(func(session string, l *sokobancore.Level) {
			l.Register(hub.Observer(session, l))
		}))
	}

	server := mcp.NewServer(opts...)
	if flagMCPPack != "" {
		if err := server.LoadPack(flagMCPPack, flagMCPLevel); err != nil {
			fail(err)
		}
	}

	if err := server.ServeStdio(); err != nil {
		fail(err)
	}
}
