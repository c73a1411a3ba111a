package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-sokoban/internal/config"
	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	sokobancore "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/i18n"
	"github.com/vovakirdan/tui-sokoban/internal/platform/tui"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// app is the state shared by every command.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	catalog *i18n.Catalog
}

// setup loads the config, applies global flags and registers extra packs.
func setup() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sokoban",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	theme, ok := tui.ThemeByName(flagTheme)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", flagTheme, strings.Join(tui.ThemeNames(), ", "))
	}
	tui.SetTheme(theme)

	if cfg.Game.PacksDir != "" {
		dir, err := config.ExpandHome(cfg.Game.PacksDir)
		if err != nil {
			return nil, err
		}
		skipped, err := levels.RegisterDir(dir)
		if err != nil {
			return nil, fmt.Errorf("loading packs from %s: %w", dir, err)
		}
		for _, id := range skipped {
			logger.Warn("pack already registered, skipping", "pack", id, "dir", dir)
		}
	}

	catalog, err := i18n.New(cfg.Game.Language)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, catalog: catalog}, nil
}

// parseOptions caps level sizes at the configured board limits.
func (a *app) parseOptions() []sokobancore.ParseOption {
	return []sokobancore.ParseOption{
		sokobancore.WithMaxRows(a.cfg.Board.MaxRows),
		sokobancore.WithMaxCols(a.cfg.Board.MaxCols),
	}
}

// levelOptions are the options of every Level the commands create.
func (a *app) levelOptions() []sokobancore.LevelOption {
	return []sokobancore.LevelOption{
		sokobancore.WithGreeting(a.cfg.Game.Greeting),
		sokobancore.WithParseOptions(a.parseOptions()...),
	}
}

// newGame builds a game for pack id starting at level start (1-indexed).
func (a *app) newGame(id string, start int, extra ...sokoban.Option) (*sokoban.Game, error) {
	pack, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if start < 1 || start > pack.Len() {
		return nil, fmt.Errorf("level %d out of range 1..%d", start, pack.Len())
	}

	opts := []sokoban.Option{
		sokoban.WithLogger(a.logger),
		sokoban.WithCatalog(a.catalog),
		sokoban.WithStartLevel(start),
		sokoban.WithLevelOptions(a.levelOptions()...),
	}
	return sokoban.New(id, pack, append(opts, extra...)...), nil
}

// openStore opens the records database. Failure only disables records.
func (a *app) openStore() *storage.Store {
	store, err := storage.Open(a.cfg.Storage.DBPath)
	if err != nil {
		a.logger.Warn("could not open records database", "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg
}

// fail prints err and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
