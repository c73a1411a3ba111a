package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

// recorder collects every notification a Level sends.
type recorder struct {
	events []core.Notification
}

func record(l *core.Level) *recorder {
	r := &recorder{}
	l.Register(core.ObserverFunc(func(n core.Notification) {
		r.events = append(r.events, n)
	}))
	return r
}

func (r *recorder) kinds() []core.EventKind {
	out := make([]core.EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *recorder) count(kind core.EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) tiles() []core.Vector {
	var out []core.Vector
	for _, e := range r.events {
		if e.Kind == core.EventTileChanged {
			out = append(out, e.Pos)
		}
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

// start loads the first of texts and clears the load notifications.
func start(t *testing.T, texts ...string) (*core.Level, *recorder) {
	t.Helper()
	l := core.NewLevel(levels.Strings(texts...))
	r := record(l)
	require.NoError(t, l.Advance())
	r.reset()
	return l, r
}

func play(l *core.Level, dirs ...core.Direction) {
	for _, d := range dirs {
		l.Move(d)
	}
}

const (
	N = core.DirNorth
	E = core.DirEast
	S = core.DirSouth
	W = core.DirWest
)
