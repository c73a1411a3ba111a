package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a pack and level from a menu",
	Long: `Start in interactive menu mode.

After a pack ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Choose a pack
  Left/Right   - Choose the start level
  Enter/Space  - Play
  Tab          - Records
  Q            - Quit

Examples:
  sokoban menu
  sokoban menu --theme monochrome`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := setup()
	if err != nil {
		fail(err)
	}

	store := a.openStore()
	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep size changes made while in the menu
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsRecords {
			goBack, recErr := tui.RunRecords(store, cfg.ScreenW, cfg.ScreenH)
			if recErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", recErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.PackID == "" {
			break
		}

		game, err := a.newGame(menuResult.PackID, menuResult.StartLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}

	if store != nil {
		store.Close()
	}
}
