package main

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

var (
	colorOK      = color.Style{color.FgGreen, color.OpBold}
	colorWarn    = color.Style{color.FgYellow}
	colorFailed  = color.Style{color.FgRed, color.OpBold}
	colorSubtle  = color.Style{color.FgGray}
	colorHeading = color.Style{color.FgCyan, color.OpBold}
)

var checkCmd = &cobra.Command{
	Use:   "check [pack|dir]...",
	Short: "Validate level packs",
	Long: `Parse every level of the given packs and report errors and warnings.
An argument is a registered pack ID or a directory holding a pack.yaml or
levels.txt. Without arguments every registered pack is checked.

Exits with status 1 when a level fails to parse.

Examples:
  sokoban check
  sokoban check tutorial
  sokoban check ./my-levels`,
	Run: runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	a, err := setup()
	if err != nil {
		fail(err)
	}

	if len(args) == 0 {
		for _, p := range registry.List() {
			args = append(args, p.ID)
		}
	}

	failed := 0
	for _, arg := range args {
		pack, err := openPack(arg)
		if err != nil {
			fmt.Printf("%s %s: %v\n", colorFailed.Sprint("FAIL"), arg, err)
			failed++
			continue
		}

		colorHeading.Printf("%s (%d levels)\n", pack.Title(), pack.Len())
		for _, r := range levels.Check(pack, a.parseOptions()...) {
			label := fmt.Sprintf("%3d %s", r.Index+1, r.Name)
			switch {
			case !r.OK():
				failed++
				fmt.Printf("  %s %s\n", colorFailed.Sprint("FAIL"), label)
				fmt.Printf("       %s\n", colorFailed.Sprint(r.Err))
			case len(r.Warnings) > 0:
				fmt.Printf("  %s %s\n", colorWarn.Sprint("WARN"), label)
				for _, w := range r.Warnings {
					fmt.Printf("       %s\n", colorWarn.Sprint(w))
				}
			default:
				fmt.Printf("  %s %s %s\n", colorOK.Sprint(" OK "), label,
					colorSubtle.Sprintf("%dx%d, %d boxes, %d targets", r.Width, r.Height, r.Boxes, r.Targets))
			}
		}
		fmt.Println()
	}

	if failed > 0 {
		colorFailed.Printf("%d level(s) failed\n", failed)
		os.Exit(1)
	}
	colorOK.Println("All levels OK")
}

// openPack resolves a registered pack ID or a pack directory.
func openPack(arg string) (registry.Pack, error) {
	if registry.Exists(arg) {
		return registry.Create(arg)
	}
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return levels.LoadDir(arg)
	}
	return nil, fmt.Errorf("no pack or directory named %q", arg)
}
