package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

const (
	onePush = "#####\n#@$.#\n#####\n"
	twoStep = "#######\n#@  $.#\n#######\n"
)

type handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func call(t *testing.T, h handler, name string, args map[string]interface{}) (string, bool) {
	t.Helper()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	result, err := h(context.Background(), request)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("%s: empty result", name)
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("%s: expected TextContent, got %T", name, result.Content[0])
	}
	return text.Text, result.IsError
}

func TestNewServer(t *testing.T) {
	s := NewServer()
	if s.MCPServer() == nil {
		t.Fatal("Expected MCP server to be initialized")
	}
	if _, err := s.controller(); err == nil {
		t.Error("Expected no controller before load")
	}
}

func TestToolsNeedALevel(t *testing.T) {
	s := NewServer()
	for name, h := range map[string]handler{
		"state": s.handleState,
		"reset": s.handleReset,
		"next":  s.handleNext,
	} {
		if _, isErr := call(t, h, name, nil); !isErr {
			t.Errorf("%s: expected an error without a level", name)
		}
	}
}

func TestLoadTextAndSolve(t *testing.T) {
	s := NewServer()

	text, isErr := call(t, s.handleLoad, "load", map[string]interface{}{"text": onePush})
	if isErr {
		t.Fatalf("load failed: %s", text)
	}
	if !strings.Contains(text, "Level 1 of 1: custom") {
		t.Errorf("Expected level header, got:\n%s", text)
	}

	text, _ = call(t, s.handleMove, "move", map[string]interface{}{"direction": "right"})
	if !strings.Contains(text, "Status: solved") {
		t.Errorf("Expected solved status, got:\n%s", text)
	}
	if !strings.Contains(text, "# @*#") {
		t.Errorf("Expected box on target, got:\n%s", text)
	}

	// Solved levels ignore moves until next.
	text, _ = call(t, s.handleMove, "move", map[string]interface{}{"direction": "left"})
	if !strings.Contains(text, "did not move") {
		t.Errorf("Expected move to be ignored, got:\n%s", text)
	}

	text, isErr = call(t, s.handleNext, "next", nil)
	if isErr {
		t.Fatalf("next failed: %s", text)
	}
	if !strings.Contains(text, "Status: pack finished") {
		t.Errorf("Expected finished status, got:\n%s", text)
	}
}

func TestNextBeforeSolved(t *testing.T) {
	s := NewServer()
	if err := s.LoadText(twoStep); err != nil {
		t.Fatal(err)
	}

	if _, isErr := call(t, s.handleNext, "next", nil); !isErr {
		t.Error("Expected next to fail on an unsolved level")
	}
}

func TestWalk(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		want    string
	}{
		{name: "solves", path: "rrr", want: "Walked 3 of 3 steps."},
		{name: "stops when solved", path: "rrrr", want: "Walked 3 of 4 steps. Stopped"},
		{name: "blocked", path: "u", want: "Walked 0 of 1 steps."},
		{name: "separators", path: "r, r", want: "Walked 2 of 2 steps."},
		{name: "bad step", path: "rx", wantErr: true},
		{name: "empty", path: "  ", wantErr: true},
		{name: "too long", path: strings.Repeat("r", maxPath+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer()
			if err := s.LoadText(twoStep); err != nil {
				t.Fatal(err)
			}

			text, isErr := call(t, s.handleWalk, "walk", map[string]interface{}{"path": tt.path})
			if isErr != tt.wantErr {
				t.Fatalf("isErr = %v, want %v: %s", isErr, tt.wantErr, text)
			}
			if !tt.wantErr && !strings.HasPrefix(text, tt.want) {
				t.Errorf("Expected prefix %q, got:\n%s", tt.want, text)
			}
		})
	}
}

func TestMoveRejectsUnknownDirection(t *testing.T) {
	s := NewServer()
	if err := s.LoadText(twoStep); err != nil {
		t.Fatal(err)
	}

	if _, isErr := call(t, s.handleMove, "move", map[string]interface{}{"direction": "sideways"}); !isErr {
		t.Error("Expected an error for an unknown direction")
	}
}

func TestClick(t *testing.T) {
	s := NewServer()
	if err := s.LoadText(twoStep); err != nil {
		t.Fatal(err)
	}

	text, _ := call(t, s.handleClick, "click", map[string]interface{}{"x": float64(3), "y": float64(1)})
	if !strings.Contains(text, "did not move") {
		t.Errorf("Expected distant click to be ignored, got:\n%s", text)
	}

	text, _ = call(t, s.handleClick, "click", map[string]interface{}{"x": float64(2), "y": float64(1)})
	if !strings.Contains(text, "Player: (2,1)") {
		t.Errorf("Expected player at (2,1), got:\n%s", text)
	}

	if _, isErr := call(t, s.handleClick, "click", map[string]interface{}{"x": float64(2)}); !isErr {
		t.Error("Expected an error without y")
	}
}

func TestReset(t *testing.T) {
	s := NewServer()
	if err := s.LoadText(twoStep); err != nil {
		t.Fatal(err)
	}

	call(t, s.handleWalk, "walk", map[string]interface{}{"path": "rr"})
	text, _ := call(t, s.handleReset, "reset", nil)
	if !strings.Contains(text, "Moves: 0  Pushes: 0") {
		t.Errorf("Expected counters cleared, got:\n%s", text)
	}
	if !strings.Contains(text, "Player: (1,1)") {
		t.Errorf("Expected player back at start, got:\n%s", text)
	}
}

func TestLoadPack(t *testing.T) {
	s := NewServer()

	text, isErr := call(t, s.handleLoad, "load", map[string]interface{}{"pack": "tutorial", "level": float64(2)})
	if isErr {
		t.Fatalf("load failed: %s", text)
	}
	if !strings.Contains(text, "Pack: tutorial") || !strings.Contains(text, "Level 2 of") {
		t.Errorf("Expected tutorial level 2, got:\n%s", text)
	}

	for _, args := range []map[string]interface{}{
		{"pack": "tutorial", "level": float64(0)},
		{"pack": "tutorial", "level": float64(999)},
		{"pack": "missing"},
		{},
	} {
		if _, isErr := call(t, s.handleLoad, "load", args); !isErr {
			t.Errorf("Expected load %v to fail", args)
		}
	}
}

func TestLoadTextReportsParseErrors(t *testing.T) {
	s := NewServer()

	text, isErr := call(t, s.handleLoad, "load", map[string]interface{}{"text": "#####\n#  .#\n#####\n"})
	if !isErr {
		t.Fatal("Expected a level without a player to fail")
	}
	if !strings.Contains(text, "NO_PLAYER") {
		t.Errorf("Expected NO_PLAYER code, got %q", text)
	}
}

func TestListPacks(t *testing.T) {
	s := NewServer()

	text, _ := call(t, s.handleListPacks, "list_packs", nil)
	if !strings.Contains(text, "tutorial: Tutorial") {
		t.Errorf("Expected tutorial pack, got:\n%s", text)
	}
}

func TestLevelHookSeesEveryLevel(t *testing.T) {
	var sessions []string
	s := NewServer(
		WithSession("agent"),
		WithLevelHook(func(session string, l *core.Level) {
			sessions = append(sessions, session)
		}),
	)

	if err := s.LoadText(onePush); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadText(twoStep); err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 || sessions[0] != "agent" {
		t.Errorf("Expected two hook calls for agent, got %v", sessions)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want core.Direction
		ok   bool
	}{
		{"up", core.DirNorth, true},
		{"North", core.DirNorth, true},
		{"d", core.DirSouth, true},
		{"west", core.DirWest, true},
		{" right ", core.DirEast, true},
		{"e", core.DirEast, true},
		{"", core.DirNone, false},
		{"x", core.DirNone, false},
	}
	for _, tt := range tests {
		got, ok := parseDirection(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseDirection(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
