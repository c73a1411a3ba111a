package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

var flagClear bool

var recordsCmd = &cobra.Command{
	Use:   "records [pack]",
	Short: "Show best results for a pack",
	Long: `Display the fewest moves recorded for each solved level of a pack.

Examples:
  sokoban records
  sokoban records classic
  sokoban records classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every record of the pack")
}

func runRecords(_ *cobra.Command, args []string) {
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

	store, err := storage.Open(a.cfg.Storage.DBPath)
	if err != nil {
		fail(err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearPack(packID); err != nil {
			fail(err)
		}
		fmt.Printf("Records of %s cleared.\n", packID)
		return
	}

	records, err := store.PackRecords(packID)
	if err != nil {
		fail(err)
	}

	pack, err := registry.Create(packID)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Records - %s\n", pack.Title())
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No levels solved yet.")
		fmt.Println()
		fmt.Printf("Play 'sokoban play %s' to set the first record!\n", packID)
		return
	}

	fmt.Printf("  %-5s  %-20s  %-6s  %-6s  %s\n", "Level", "Name", "Moves", "Pushes", "Date")
	fmt.Printf("  %-5s  %-20s  %-6s  %-6s  %s\n", "-----", "----", "-----", "------", "----")

	for _, r := range records {
		fmt.Printf("  %-5d  %-20s  %-6d  %-6d  %s\n",
			r.LevelIndex+1, r.LevelName, r.Moves, r.Pushes, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Solved: %d of %d\n", len(records), pack.Len())
}
