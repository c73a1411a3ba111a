package spectate

import (
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Event is the JSON message sent to spectators.
type Event struct {
	Session string    `json:"session"`
	Kind    string    `json:"kind"`
	X       *int      `json:"x,omitempty"`
	Y       *int      `json:"y,omitempty"`
	Text    string    `json:"text,omitempty"`
	Level   int       `json:"level,omitempty"`
	Name    string    `json:"name,omitempty"`
	Board   string    `json:"board,omitempty"`
	Moves   int       `json:"moves"`
	Pushes  int       `json:"pushes"`
	Time    time.Time `json:"time"`
}

// observer turns level notifications into events. It runs inside the
// level's notification loop and only reads from the level.
type observer struct {
	hub     *Hub
	session string
	level   *core.Level
	now     func() time.Time
}

// Observer returns an observer that publishes the events of level under
// the given session name.
func (h *Hub) Observer(session string, level *core.Level) core.Observer {
	return core.ObserverFunc((&observer{
		hub:     h,
		session: session,
		level:   level,
		now:     time.Now,
	}).handle)
}

func (o *observer) handle(n core.Notification) {
	ev := Event{
		Session: o.session,
		Kind:    n.Kind.String(),
		Text:    n.Text,
		Time:    o.now(),
	}
	if n.Kind == core.EventTileChanged {
		x, y := n.Pos.X, n.Pos.Y
		ev.X, ev.Y = &x, &y
	}

	l := o.level
	if l.Loaded() {
		stats := l.Stats()
		ev.Level = l.Number()
		ev.Name = l.Name()
		ev.Moves = stats.Moves
		ev.Pushes = stats.Pushes
		switch n.Kind {
		case core.EventMessageChanged, core.EventGameFinished, core.EventQuitRequested:
		default:
			ev.Board = l.String()
		}
	}

	o.hub.Publish(ev)
}
