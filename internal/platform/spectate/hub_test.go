package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

const onePush = "#####\n#@$.#\n#####\n"

func drain(h *Hub) []Event {
	var out []Event
	for {
		select {
		case ev := <-h.broadcast:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestPublishStoresLatestBoard(t *testing.T) {
	h := NewHub(nil)

	h.Publish(Event{Session: "p1", Kind: "level-repainted", Board: "#@#"})
	h.Publish(Event{Session: "p1", Kind: "message-changed", Text: "hi"})
	h.Publish(Event{Session: "p2", Kind: "player-moved", Board: "# @#"})

	latest := h.Latest()
	require.Len(t, latest, 2)
	assert.Equal(t, "#@#", latest["p1"].Board)
	assert.Equal(t, "# @#", latest["p2"].Board)

	h.Forget("p1")
	_, ok := h.Latest()["p1"]
	assert.False(t, ok)
}

func TestPublishDropsWhenFull(t *testing.T) {
	h := NewHub(nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < publishBuffer+10; i++ {
			h.Publish(Event{Session: "p1", Kind: "player-moved"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
	assert.Len(t, h.broadcast, publishBuffer)
}

func TestObserverPublishesLevelEvents(t *testing.T) {
	h := NewHub(nil)
	level := core.NewLevel(levels.Strings(onePush))
	level.Register(h.Observer("p1", level))

	require.NoError(t, level.Advance())
	require.True(t, level.Move(core.DirEast))

	events := drain(h)
	kinds := make([]string, 0, len(events))
	for _, ev := range events {
		assert.Equal(t, "p1", ev.Session)
		kinds = append(kinds, ev.Kind)
		switch ev.Kind {
		case "tile-changed":
			require.NotNil(t, ev.X)
			require.NotNil(t, ev.Y)
		case "message-changed":
			assert.Empty(t, ev.Board)
		}
	}
	assert.Contains(t, kinds, "level-repainted")
	assert.Contains(t, kinds, "moveable-moved")
	assert.Contains(t, kinds, "player-moved")
	assert.Contains(t, kinds, "level-complete")

	latest := h.Latest()["p1"]
	assert.Equal(t, level.String(), latest.Board)
	assert.Equal(t, 1, latest.Level)
	assert.Equal(t, "level-1", latest.Name)
	assert.Equal(t, 1, latest.Moves)
	assert.Equal(t, 1, latest.Pushes)
}

func TestObserverGameFinished(t *testing.T) {
	h := NewHub(nil)
	level := core.NewLevel(levels.Strings(onePush))
	level.Register(h.Observer("p1", level))

	require.NoError(t, level.Advance())
	drain(h)
	require.NoError(t, level.Advance())

	events := drain(h)
	require.Len(t, events, 1)
	assert.Equal(t, "game-finished", events[0].Kind)
	assert.Empty(t, events[0].Board)
}

func TestBoardRoutes(t *testing.T) {
	h := NewHub(nil)
	h.Publish(Event{Session: "p1", Kind: "level-repainted", Board: "#####\n#@$.#\n#####"})

	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/board")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var boards map[string]Event
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&boards))
	assert.Contains(t, boards, "p1")

	resp, err = http.Get(srv.URL + "/board/p1")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "#####\n#@$.#\n#####", string(body))

	resp, err = http.Get(srv.URL + "/board/nobody")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebsocketFollowsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	go h.Run(ctx)

	srv := httptest.NewServer(h.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?session=p1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration races the dial; publish until the client hears something.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				h.Publish(Event{Session: "p2", Kind: "player-moved"})
				h.Publish(Event{Session: "p1", Kind: "player-moved", Moves: 3})
			}
		}
	}()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev))
	assert.Equal(t, "p1", ev.Session)
	assert.Equal(t, 3, ev.Moves)
}
