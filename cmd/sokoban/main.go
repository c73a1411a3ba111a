// sokoban is a terminal Sokoban with doors, teleporters, ruts and cracked
// floors.
//
// Usage:
//
//	sokoban list              - List installed level packs
//	sokoban play [pack]       - Play a pack
//	sokoban menu              - Pick packs interactively
//	sokoban check [pack|dir]  - Validate every level of a pack
//	sokoban records [pack]    - Show best results per level
//	sokoban serve             - Start SSH server for remote play
//	sokoban mcp               - Serve MCP tools on stdio
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.sokoban/config.yaml)
//	--log-level <level> - debug, info, warn or error
//	--theme <name>      - Menu theme
//	--db <path>         - Records database path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import embedded packs to register them
	_ "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagTheme    string
	flagDBPath   string
	flagFPS      int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sokoban",
	Short: "Sokoban - push boxes in your terminal",
	Long: `Sokoban is a terminal puzzle game. Push every box onto a target to
solve a level. Levels add doors opened by buttons, one-way ruts,
cracked floors that give way and teleporters.

Available commands:
  list     - Show installed level packs
  play     - Play a pack directly
  menu     - Interactive pack picker
  check    - Validate level files
  records  - View best results
  serve    - Start SSH server for remote play
  mcp      - Serve MCP tools for agents

Examples:
  sokoban list
  sokoban play tutorial --level 3
  sokoban menu --theme monochrome
  sokoban check ./my-levels
  sokoban serve --spectate :8080`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Menu theme")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to records database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Input polls per second")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
}
