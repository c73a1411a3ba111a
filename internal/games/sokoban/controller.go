package sokoban

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Controller turns player commands into Level operations. It holds the
// level-complete latch: while a solved level waits for a key, moves are
// ignored, and the key that continues is not taken as a move.
// Controller is safe for concurrent use.
type Controller struct {
	mu     sync.Mutex
	level  *core.Level
	logger *log.Logger

	complete   bool
	ignoreNext bool
	quit       bool
	lastErr    error
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithControllerLogger sets the logger that receives level load failures.
func WithControllerLogger(l *log.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// controllerObserver feeds Level events back into the controller state. It
// runs with c.mu held.
type controllerObserver struct {
	core.BaseObserver
	c *Controller
}

func (o controllerObserver) LevelComplete()  { o.c.complete = true }
func (o controllerObserver) LevelRepainted() { o.c.complete = false }
func (o controllerObserver) QuitRequested()  { o.c.quit = true }

// NewController wraps level. The level should not be used directly
// afterwards except through Do.
func NewController(level *core.Level, opts ...ControllerOption) *Controller {
	c := &Controller{
		level:  level,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	level.Register(controllerObserver{c: c})
	return c
}

// Start loads entry index, or the first entry when index is not positive.
func (c *Controller) Start(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index <= 0 {
		return c.advance()
	}
	err := c.level.LoadAt(index)
	c.record(err)
	return err
}

// Move walks the player one step. It reports whether the player moved.
func (c *Controller) Move(dir core.Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.move(dir)
}

func (c *Controller) move(dir core.Direction) bool {
	if c.ignoreNext {
		c.ignoreNext = false
		return false
	}
	if c.complete {
		return false
	}
	before := c.level.Stats().Moves
	c.level.Move(dir)
	return c.level.Stats().Moves != before
}

// Click moves the player onto pos when pos is next to the player. Any other
// position is ignored.
func (c *Controller) Click(pos core.Vector) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.level.Loaded() {
		return false
	}
	player := c.level.PlayerPosition()
	if !player.IsNeighbor(pos) {
		return false
	}
	return c.move(core.DirectionBetween(player, pos))
}

// Acknowledge answers a "press any key" prompt. On a solved level it loads
// the next one and swallows the next move. Once the pack is over it asks to
// quit. Otherwise it does nothing and reports false.
func (c *Controller) Acknowledge() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.complete:
		c.complete = false
		c.ignoreNext = true
		c.advance()
		return true
	case c.finished():
		c.advance()
		return true
	}
	return false
}

// Settle drops a pending swallowed move. Callers that deliver input in
// frames call it once the frame is processed.
func (c *Controller) Settle() {
	c.mu.Lock()
	c.ignoreNext = false
	c.mu.Unlock()
}

// Reset restores the current level to its initial state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.complete = false
	c.ignoreNext = false
	c.record(c.level.Reset())
}

// LoadAt jumps to entry index.
func (c *Controller) LoadAt(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ignoreNext = false
	err := c.level.LoadAt(index)
	c.record(err)
	return err
}

// Register adds an observer to the underlying level.
func (c *Controller) Register(o core.Observer) {
	c.mu.Lock()
	c.level.Register(o)
	c.mu.Unlock()
}

// Unregister removes an observer from the underlying level.
func (c *Controller) Unregister(o core.Observer) {
	c.mu.Lock()
	c.level.Unregister(o)
	c.mu.Unlock()
}

// Do runs fn with exclusive access to the level. fn must not call back into
// the controller.
func (c *Controller) Do(fn func(l *core.Level)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.level)
}

// Complete reports whether a solved level waits for acknowledgement.
func (c *Controller) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.complete
}

// Finished reports whether the pack is over, either solved or after a load
// failure.
func (c *Controller) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished()
}

// QuitRequested reports whether the level asked to quit.
func (c *Controller) QuitRequested() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quit
}

// Err returns the last level load error.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Snapshot captures the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) finished() bool {
	p := c.level.Progress()
	return p == core.Finished || p == core.Exhausted
}

func (c *Controller) advance() error {
	err := c.level.Advance()
	c.record(err)
	return err
}

func (c *Controller) record(err error) {
	if err == nil {
		return
	}
	c.lastErr = err
	c.logger.Error("level load failed", "error", err)
}
