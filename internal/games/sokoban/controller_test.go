package sokoban

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

const (
	onePush  = "#####\n#@$.#\n#####\n"
	twoStep  = "#######\n#@  $.#\n#######\n"
	noPlayer = "#####\n#  .#\n#####\n"
)

func newController(t *testing.T, texts ...string) *Controller {
	t.Helper()
	c := NewController(core.NewLevel(levels.Strings(texts...)))
	require.NoError(t, c.Start(0))
	return c
}

func TestControllerCompleteLatch(t *testing.T) {
	c := newController(t, onePush, twoStep)

	require.True(t, c.Move(core.DirEast))
	require.True(t, c.Complete())

	// Moves are ignored while the solved level waits for a key.
	assert.False(t, c.Move(core.DirWest))
	assert.Equal(t, 1, c.Snapshot().Moves)

	require.True(t, c.Acknowledge())
	s := c.Snapshot()
	assert.Equal(t, 2, s.Level)
	assert.False(t, s.Complete)

	// The key that continued is not taken as a move.
	assert.False(t, c.Move(core.DirEast))
	assert.True(t, c.Move(core.DirEast))
	assert.True(t, c.Move(core.DirEast))
	assert.False(t, c.Complete())
	assert.True(t, c.Move(core.DirEast))
	assert.True(t, c.Complete())
}

func TestControllerSettleDropsSwallow(t *testing.T) {
	c := newController(t, onePush, twoStep)

	c.Move(core.DirEast)
	c.Acknowledge()
	c.Settle()

	assert.True(t, c.Move(core.DirEast))
}

func TestControllerAcknowledgeWhilePlaying(t *testing.T) {
	c := newController(t, twoStep)

	assert.False(t, c.Acknowledge())
	assert.True(t, c.Move(core.DirEast), "no move may be swallowed")
}

func TestControllerFinishAndQuit(t *testing.T) {
	c := newController(t, onePush)

	c.Move(core.DirEast)
	require.True(t, c.Acknowledge())
	assert.True(t, c.Finished())
	assert.False(t, c.QuitRequested())

	require.True(t, c.Acknowledge())
	assert.True(t, c.QuitRequested())
	assert.True(t, c.Snapshot().Quit)
}

func TestControllerClick(t *testing.T) {
	c := newController(t, twoStep)

	tests := []struct {
		name  string
		pos   core.Vector
		moved bool
	}{
		{"far away", core.V(4, 1), false},
		{"diagonal", core.V(2, 2), false},
		{"wall", core.V(1, 0), false},
		{"player cell", core.V(1, 1), false},
		{"neighbour", core.V(2, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.moved, c.Click(tt.pos))
		})
	}
	assert.Equal(t, 2, c.Snapshot().PlayerX)
}

func TestControllerResetClearsLatch(t *testing.T) {
	c := newController(t, onePush, twoStep)

	c.Move(core.DirEast)
	require.True(t, c.Complete())

	c.Reset()
	s := c.Snapshot()
	assert.False(t, s.Complete)
	assert.Equal(t, 1, s.Level)
	assert.Zero(t, s.Moves)
	assert.Equal(t, onePush, s.Board)
	assert.True(t, c.Move(core.DirEast))
}

func TestControllerStartAt(t *testing.T) {
	c := NewController(core.NewLevel(levels.Strings(onePush, twoStep)))
	require.NoError(t, c.Start(1))

	s := c.Snapshot()
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, "level-2", s.Name)
	assert.Equal(t, 7, s.Width)
	assert.Equal(t, 1, s.Targets)
	assert.Zero(t, s.Filled)

	assert.Error(t, c.LoadAt(5))
	assert.Equal(t, 2, c.Snapshot().Level)
}

func TestControllerLogsLoadFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	c := NewController(core.NewLevel(levels.Strings(noPlayer)), WithControllerLogger(logger))
	err := c.Start(0)

	var formatErr *core.LevelFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, core.CodeNoPlayer, formatErr.Code)
	assert.True(t, c.Finished())
	assert.Equal(t, err, c.Err())
	assert.NotEmpty(t, c.Snapshot().Error)
	assert.Contains(t, buf.String(), "level load failed")
}

func TestControllerObserver(t *testing.T) {
	c := newController(t, onePush)

	var kinds []core.EventKind
	o := core.ObserverFunc(func(n core.Notification) { kinds = append(kinds, n.Kind) })
	c.Register(o)
	c.Move(core.DirEast)
	assert.Contains(t, kinds, core.EventLevelComplete)

	c.Unregister(o)
	kinds = nil
	c.Reset()
	assert.Empty(t, kinds)
}
