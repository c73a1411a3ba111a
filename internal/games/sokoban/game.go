// Package sokoban provides the Sokoban puzzle game: the controller that
// drives a Level from player commands and the platform adapter that maps
// input frames and draws the board.
package sokoban

import (
	"io"

	"github.com/charmbracelet/log"
	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/i18n"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

// Help is the controls line shown under the board.
const Help = "arrows/wasd move  click step  r reset  q quit"

// Layout constants.
const (
	hudHeight    = 2 // title and separator
	footerHeight = 4 // prompt, message, stats, help
)

// Game adapts a Controller to the platform's Game interface.
type Game struct {
	id    string
	pack  registry.Pack
	ctrl  *Controller
	start int // zero-based entry loaded by Reset

	logger    *log.Logger
	catalog   *i18n.Catalog
	levelOpts []core.LevelOption
	observers []core.Observer
	hooks     []func(*core.Level)

	// Screen dimensions
	screenW int
	screenH int

	// Board layout from the last render
	cellW    int
	offsetX  int
	offsetY  int
	tooSmall bool

	wasComplete bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for level load failures.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithCatalog translates status and help texts.
func WithCatalog(c *i18n.Catalog) Option {
	return func(g *Game) { g.catalog = c }
}

// WithStartLevel starts at level n (1-indexed). 0 means the first level.
func WithStartLevel(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.start = n - 1
		}
	}
}

// WithLevelOptions passes options to every Level the game creates.
func WithLevelOptions(opts ...core.LevelOption) Option {
	return func(g *Game) { g.levelOpts = append(g.levelOpts, opts...) }
}

// WithObserver registers o on every Level the game creates.
func WithObserver(o core.Observer) Option {
	return func(g *Game) { g.observers = append(g.observers, o) }
}

// WithLevelHook calls fn with every Level the game creates, before the
// first entry is loaded.
func WithLevelHook(fn func(*core.Level)) Option {
	return func(g *Game) { g.hooks = append(g.hooks, fn) }
}

// New creates a game over pack. Call Reset before stepping it.
func New(id string, pack registry.Pack, opts ...Option) *Game {
	g := &Game{
		id:     id,
		pack:   pack,
		logger: log.New(io.Discard),
		cellW:  2,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the pack identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the pack name.
func (g *Game) Title() string {
	return g.pack.Title()
}

// Controller returns the controller of the current run.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

// Reset starts the pack over at the start level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.wasComplete = false

	opts := append([]core.LevelOption{core.WithTranslator(g.catalog.Translate)}, g.levelOpts...)
	level := core.NewLevel(g.pack, opts...)
	for _, o := range g.observers {
		level.Register(o)
	}
	for _, fn := range g.hooks {
		fn(level)
	}
	g.ctrl = NewController(level, WithControllerLogger(g.logger))

	start := g.start
	if start >= g.pack.Len() {
		start = 0
	}
	g.ctrl.Start(start)
}

// Step applies one frame of input.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.ctrl == nil || in.Empty() {
		return platformcore.StepResult{State: g.State()}
	}
	defer g.ctrl.Settle()

	// Any key continues after a solved level or the end of the pack.
	if !in.Has(platformcore.ActionQuit) {
		g.ctrl.Acknowledge()
	}

	if in.Has(platformcore.ActionRestart) {
		g.ctrl.Reset()
	}

	for _, m := range []struct {
		action platformcore.Action
		dir    core.Direction
	}{
		{platformcore.ActionUp, core.DirNorth},
		{platformcore.ActionDown, core.DirSouth},
		{platformcore.ActionLeft, core.DirWest},
		{platformcore.ActionRight, core.DirEast},
	} {
		if in.Has(m.action) {
			g.ctrl.Move(m.dir)
		}
	}

	if in.Clicked && !g.tooSmall {
		if pos, ok := g.screenToBoard(in.ClickX, in.ClickY); ok {
			g.ctrl.Click(pos)
		}
	}

	state := g.State()
	solved := state.Complete && !g.wasComplete
	g.wasComplete = state.Complete
	return platformcore.StepResult{State: state, Solved: solved}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.ctrl == nil {
		return platformcore.GameState{Levels: g.pack.Len()}
	}
	s := g.ctrl.Snapshot()
	return platformcore.GameState{
		Level:    s.Level,
		Levels:   s.Levels,
		Name:     s.Name,
		Moves:    s.Moves,
		Pushes:   s.Pushes,
		Complete: s.Complete,
		Finished: s.Finished,
		Quit:     s.Quit,
		Message:  s.Message,
	}
}

// screenToBoard converts a screen cell to a board position using the
// layout of the last render.
func (g *Game) screenToBoard(x, y int) (core.Vector, bool) {
	if x < g.offsetX || y < g.offsetY {
		return core.Vector{}, false
	}
	return core.V((x-g.offsetX)/g.cellW, y-g.offsetY), true
}
