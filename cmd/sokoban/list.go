package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed level packs",
	Long: `Shows every registered level pack with its size and, when the records
database is available, how many of its levels you have solved.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	a, err := setup()
	if err != nil {
		fail(err)
	}

	packs := registry.List()
	if len(packs) == 0 {
		fmt.Println("No packs installed.")
		return
	}

	solved := map[string]int{}
	if store := a.openStore(); store != nil {
		if stats, err := store.GetAllPackStats(); err == nil {
			for id, s := range stats {
				solved[id] = s.Solved
			}
		}
		store.Close()
	}

	fmt.Println("Available packs:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, p := range packs {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "ID", "Solved", "Title")
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "--", "------", "-----")

	for _, p := range packs {
		progress := fmt.Sprintf("%d/%d", solved[p.ID], p.Levels)
		fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, p.ID, progress, p.Title)
	}

	fmt.Println()
	fmt.Println("Run 'sokoban play <id>' to play a pack.")
}
