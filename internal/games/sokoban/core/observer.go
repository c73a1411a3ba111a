package core

// Observer receives board notifications from a Level. Notifications are
// delivered synchronously; an observer must not call back into the Level
// that notified it.
type Observer interface {
	TileChanged(pos Vector)
	PlayerMoved()
	// MoveableMoved is sent after a pushable moved. Level.LatestEvent
	// describes the move.
	MoveableMoved()
	MessageChanged(text string)
	LevelRepainted()
	LevelComplete()
	GameFinished()
	QuitRequested()
}

// BaseObserver implements Observer with no-ops. Embed it to handle only the
// notifications you care about.
type BaseObserver struct{}

func (BaseObserver) TileChanged(Vector)    {}
func (BaseObserver) PlayerMoved()          {}
func (BaseObserver) MoveableMoved()        {}
func (BaseObserver) MessageChanged(string) {}
func (BaseObserver) LevelRepainted()       {}
func (BaseObserver) LevelComplete()        {}
func (BaseObserver) GameFinished()         {}
func (BaseObserver) QuitRequested()        {}

// EventKind names an observer notification.
type EventKind uint8

const (
	EventTileChanged EventKind = iota
	EventPlayerMoved
	EventMoveableMoved
	EventMessageChanged
	EventLevelRepainted
	EventLevelComplete
	EventGameFinished
	EventQuitRequested
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventTileChanged:
		return "tile-changed"
	case EventPlayerMoved:
		return "player-moved"
	case EventMoveableMoved:
		return "moveable-moved"
	case EventMessageChanged:
		return "message-changed"
	case EventLevelRepainted:
		return "level-repainted"
	case EventLevelComplete:
		return "level-complete"
	case EventGameFinished:
		return "game-finished"
	case EventQuitRequested:
		return "quit-requested"
	default:
		return "unknown"
	}
}

// Notification is a flattened observer callback.
type Notification struct {
	Kind EventKind
	Pos  Vector // tile-changed only
	Text string // message-changed only
}

type funcObserver struct {
	fn func(Notification)
}

// ObserverFunc adapts fn into an Observer that receives every notification
// as a Notification value.
func ObserverFunc(fn func(Notification)) Observer {
	return &funcObserver{fn: fn}
}

func (f *funcObserver) TileChanged(pos Vector) {
	f.fn(Notification{Kind: EventTileChanged, Pos: pos})
}
func (f *funcObserver) PlayerMoved()   { f.fn(Notification{Kind: EventPlayerMoved}) }
func (f *funcObserver) MoveableMoved() { f.fn(Notification{Kind: EventMoveableMoved}) }
func (f *funcObserver) MessageChanged(text string) {
	f.fn(Notification{Kind: EventMessageChanged, Text: text})
}
func (f *funcObserver) LevelRepainted() { f.fn(Notification{Kind: EventLevelRepainted}) }
func (f *funcObserver) LevelComplete()  { f.fn(Notification{Kind: EventLevelComplete}) }
func (f *funcObserver) GameFinished()   { f.fn(Notification{Kind: EventGameFinished}) }
func (f *funcObserver) QuitRequested()  { f.fn(Notification{Kind: EventQuitRequested}) }
