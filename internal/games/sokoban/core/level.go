package core

import (
	"fmt"
	"io"
)

// Status message keys. A Translator maps them to display text; without one
// they are shown as is.
const (
	MsgGreeting   = "Good luck!"
	MsgTwoObjects = "I am not strong enough to push more than one!"
	MsgBlocked    = "Something is blocking the way!"
	MsgCantWalk   = "I can't walk there!"
)

// Source is one level description in a sequence.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// Sequence is an ordered list of level sources.
type Sequence interface {
	Len() int
	Source(i int) Source
}

// Progress is the position of a Level in its sequence.
type Progress uint8

const (
	// Idle: nothing has been loaded yet.
	Idle Progress = iota
	// Playing: a level is loaded.
	Playing
	// Finished: the sequence ran out or a load failed. Game-finished has
	// been sent.
	Finished
	// Exhausted: advanced past Finished. Every further advance asks to quit.
	Exhausted
)

// String returns the string representation of a progress state.
func (p Progress) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Playing:
		return "Playing"
	case Finished:
		return "Finished"
	case Exhausted:
		return "Exhausted"
	default:
		return "Unknown"
	}
}

// MoveStats counts player steps and pushes on the current level.
type MoveStats struct {
	Moves  int
	Pushes int
}

// LevelOption configures a Level.
type LevelOption func(*Level)

// WithGreeting sets the message shown after every load. Defaults to
// MsgGreeting.
func WithGreeting(msg string) LevelOption {
	return func(l *Level) { l.greeting = msg }
}

// WithTranslator sets the function that turns message keys into display
// text.
func WithTranslator(fn func(string) string) LevelOption {
	return func(l *Level) {
		if fn != nil {
			l.translate = fn
		}
	}
}

// WithParseOptions passes options to ParseLevel on every load.
func WithParseOptions(opts ...ParseOption) LevelOption {
	return func(l *Level) { l.parseOpts = append(l.parseOpts, opts...) }
}

// Level runs a sequence of boards: it loads entries, resolves moves and
// notifies observers. It is not safe for concurrent use.
type Level struct {
	seq      Sequence
	next     int
	current  int
	progress Progress
	board    *Board

	observers []Observer
	latest    MoveEvent
	message   string
	stats     MoveStats
	busy      bool

	greeting  string
	translate func(string) string
	parseOpts []ParseOption
}

// NewLevel creates an empty Level over seq. Call Advance to load the first
// entry.
func NewLevel(seq Sequence, opts ...LevelOption) *Level {
	l := &Level{
		seq:       seq,
		current:   -1,
		greeting:  MsgGreeting,
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Register adds an observer.
func (l *Level) Register(o Observer) {
	l.observers = append(l.observers, o)
}

// Unregister removes an observer added with Register.
func (l *Level) Unregister(o Observer) {
	for i, cur := range l.observers {
		if cur == o {
			l.observers = append(l.observers[:i:i], l.observers[i+1:]...)
			return
		}
	}
}

func (l *Level) notify(fn func(Observer)) {
	for _, o := range append([]Observer(nil), l.observers...) {
		fn(o)
	}
}

func (l *Level) lock() {
	if l.busy {
		panic("core: Level mutated from inside an observer callback")
	}
	l.busy = true
}

func (l *Level) unlock() { l.busy = false }

// Progress returns where the Level stands in its sequence.
func (l *Level) Progress() Progress { return l.progress }

// Loaded reports whether a board is loaded.
func (l *Level) Loaded() bool { return l.board != nil }

// Board returns the loaded board, or nil.
func (l *Level) Board() *Board { return l.board }

// Index returns the zero-based sequence index of the loaded board, or -1.
func (l *Level) Index() int { return l.current }

// Number returns the one-based number of the loaded board, 0 before the
// first load.
func (l *Level) Number() int { return l.current + 1 }

// Count returns the length of the sequence.
func (l *Level) Count() int { return l.seq.Len() }

// Name returns the source name of the loaded board.
func (l *Level) Name() string {
	if l.current < 0 {
		return ""
	}
	return l.seq.Source(l.current).Name()
}

// Width returns the board width, 0 before the first load.
func (l *Level) Width() int {
	if l.board == nil {
		return 0
	}
	return l.board.Width
}

// Height returns the board height, 0 before the first load.
func (l *Level) Height() int {
	if l.board == nil {
		return 0
	}
	return l.board.Height
}

// TileAt returns the tile at p. Cells outside the board are walls.
func (l *Level) TileAt(p Vector) Tile {
	if l.board == nil {
		return outsideBoard
	}
	return l.board.TileAt(p)
}

// PlayerPosition returns where the player stands.
func (l *Level) PlayerPosition() Vector {
	if l.board == nil {
		return Vector{}
	}
	return l.board.player.position
}

// Pushables returns every pushable in row-major order.
func (l *Level) Pushables() []*Moveable {
	if l.board == nil {
		return nil
	}
	return l.board.Pushables()
}

// LatestEvent returns the most recent pushable movement.
func (l *Level) LatestEvent() MoveEvent { return l.latest }

// Message returns the current status text.
func (l *Level) Message() string { return l.message }

// Stats returns the move counters of the current board.
func (l *Level) Stats() MoveStats { return l.stats }

// Complete reports whether every target holds a box.
func (l *Level) Complete() bool {
	return l.board != nil && l.board.AllTargetsFilled()
}

// String renders the loaded board in the level text format.
func (l *Level) String() string {
	if l.board == nil {
		return ""
	}
	return l.board.String()
}

// Advance loads the next entry. At the end of the sequence it sends
// game-finished once, and quit-requested on every later call. A failed load
// sends game-finished and returns the error.
func (l *Level) Advance() error {
	l.lock()
	defer l.unlock()

	switch l.progress {
	case Finished, Exhausted:
		l.progress = Exhausted
		l.notify(func(o Observer) { o.QuitRequested() })
		return nil
	}
	if l.next >= l.seq.Len() {
		l.finish()
		return nil
	}
	if err := l.load(l.next); err != nil {
		l.finish()
		return err
	}
	l.next++
	return nil
}

// Reset reloads the current entry, restoring its freshly parsed state. It is
// a no-op before the first load.
func (l *Level) Reset() error {
	l.lock()
	defer l.unlock()

	if l.current < 0 || l.progress != Playing {
		return nil
	}
	if err := l.load(l.current); err != nil {
		l.finish()
		return err
	}
	return nil
}

// LoadAt jumps to entry i. Later calls to Advance continue after it.
func (l *Level) LoadAt(i int) error {
	l.lock()
	defer l.unlock()

	if i < 0 || i >= l.seq.Len() {
		return fmt.Errorf("level index %d out of range [0,%d)", i, l.seq.Len())
	}
	if err := l.load(i); err != nil {
		l.finish()
		return err
	}
	l.next = i + 1
	return nil
}

func (l *Level) finish() {
	l.progress = Finished
	l.notify(func(o Observer) { o.GameFinished() })
}

// load parses entry i and swaps it in. The current board is untouched when
// parsing fails.
func (l *Level) load(i int) error {
	src := l.seq.Source(i)
	rc, err := src.Open()
	if err != nil {
		return &SourceReadError{Source: src.Name(), Err: err}
	}
	defer rc.Close()

	board, err := ParseLevel(src.Name(), rc, l.parseOpts...)
	if err != nil {
		return err
	}

	l.board = board
	l.current = i
	l.progress = Playing
	l.latest = MoveEvent{}
	l.stats = MoveStats{}
	l.message = l.translate(l.greeting)
	l.notify(func(o Observer) { o.LevelRepainted() })
	l.notify(func(o Observer) { o.MessageChanged(l.message) })
	return nil
}

func (l *Level) setMessage(key string) {
	text := ""
	if key != "" {
		text = l.translate(key)
	}
	if text == l.message {
		return
	}
	l.message = text
	l.notify(func(o Observer) { o.MessageChanged(text) })
}

func (l *Level) tileChanged(p Vector) {
	l.notify(func(o Observer) { o.TileChanged(p) })
}

// Move tries to step the player one cell in dir, pushing a single pushable
// ahead if there is one. Door groups and level completion are re-evaluated
// after every attempt. It reports whether the player moved.
func (l *Level) Move(dir Direction) bool {
	l.lock()
	defer l.unlock()

	if l.board == nil || l.progress != Playing || dir == DirNone {
		return false
	}
	moved := l.resolveMove(dir)

	for _, p := range l.board.doors.Resolve() {
		l.tileChanged(p)
	}
	if l.board.AllTargetsFilled() {
		l.notify(func(o Observer) { o.LevelComplete() })
	}
	return moved
}

func (l *Level) resolveMove(dir Direction) bool {
	b := l.board
	player := b.player
	oldPos := player.position
	newPos := oldPos.Add(dir.Vector())
	newTile := b.TileAt(newPos)

	if !newTile.IsPassable(player, dir) {
		l.setMessage(MsgCantWalk)
		return false
	}

	if pushable, ok := b.pushables[newPos]; ok {
		pushPos := newPos.Add(dir.Vector())
		if _, taken := b.pushables[pushPos]; taken {
			l.setMessage(MsgTwoObjects)
			return false
		}
		pushTile := b.TileAt(pushPos)
		if !pushTile.IsPassable(pushable, dir) {
			l.setMessage(MsgBlocked)
			return false
		}

		delete(b.pushables, newPos)
		pushable.setPosition(pushPos)
		if newTile.OnLeave(pushable) {
			l.tileChanged(newPos)
		}
		if enterReserved(pushTile, pushable, newTile) {
			l.tileChanged(pushPos)
		}
		b.pushables[pushable.position] = pushable
		l.latest = MoveEvent{Old: newPos, New: pushable.position, Moveable: pushable}
		l.stats.Pushes++
		l.notify(func(o Observer) { o.MoveableMoved() })
	}

	player.setPosition(newPos)
	if b.TileAt(oldPos).OnLeave(player) {
		l.tileChanged(oldPos)
	}
	if newTile.OnEnter(player) {
		l.tileChanged(newPos)
	}
	l.stats.Moves++
	l.notify(func(o Observer) { o.PlayerMoved() })
	l.setMessage("")
	return true
}

// enterReserved runs tile.OnEnter(m) while keeping reserved from receiving a
// teleported moveable: the player is about to step onto it.
func enterReserved(tile Tile, m *Moveable, reserved Tile) bool {
	t, ok := reserved.(*Teleporter)
	if !ok {
		return tile.OnEnter(m)
	}
	t.blocked = true
	changed := tile.OnEnter(m)
	t.blocked = false
	return changed
}
