package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

const (
	serverName    = "Sokoban"
	serverVersion = "1.0.0"

	// Longest path accepted by the walk tool.
	maxPath = 500
)

const instructions = `Sokoban - MCP Interface

Push every box ($) onto a target (.) to solve a level.

LEGEND:
# wall    @ player    + player on target    $ box    * box on target
. target  R rock (pushable, never fills a target)
0-9 cracked floor (steps left)   N O S W ruts (one-way)
A-C/D-F doors, a-c/d-f their buttons   T-V/X-Z teleporters

AVAILABLE TOOLS:
- list_packs: List installed level packs
- load: Load a pack level or a raw level text
- state: Current board and counters
- move: One step (up/down/left/right or north/east/south/west)
- walk: A path of steps, e.g. "rrdlu"
- click: Step onto a neighboring cell
- reset: Restart the current level
- next: Continue after a solved level

After a level is solved, moves are ignored until next is called.`

// Server serves one sokoban session over MCP.
type Server struct {
	mu        sync.Mutex
	ctrl      *sokoban.Controller
	packID    string
	levelOpts []core.LevelOption
	hooks     []func(session string, l *core.Level)
	session   string
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLevelOptions passes opts to every Level the server creates.
func WithLevelOptions(opts ...core.LevelOption) Option {
	return func(s *Server) { s.levelOpts = append(s.levelOpts, opts...) }
}

// WithLevelHook calls fn with every Level the server creates.
func WithLevelHook(fn func(session string, l *core.Level)) Option {
	return func(s *Server) { s.hooks = append(s.hooks, fn) }
}

// WithSession names the session in hooks and logs.
func WithSession(name string) Option {
	return func(s *Server) { s.session = name }
}

// NewServer creates a server with no level loaded.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:  log.New(io.Discard),
		session: "mcp",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools on stdin and stdout until EOF.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP on stdio")
	return server.ServeStdio(s.mcpServer)
}

// LoadPack starts pack id at level n (1-indexed).
func (s *Server) LoadPack(id string, n int) error {
	pack, err := registry.Create(id)
	if err != nil {
		return err
	}
	if n < 1 || n > pack.Len() {
		return fmt.Errorf("level %d out of range 1..%d", n, pack.Len())
	}
	return s.start(id, pack, n)
}

// LoadText starts a single level given as text.
func (s *Server) LoadText(text string) error {
	seq := levels.List{levels.StringSource{Label: "custom", Text: text}}
	return s.start("", seq, 1)
}

func (s *Server) start(packID string, seq core.Sequence, n int) error {
	opts := append([]core.LevelOption{}, s.levelOpts...)
	level := core.NewLevel(seq, opts...)
	for _, hook := range s.hooks {
		hook(s.session, level)
	}

	ctrl := sokoban.NewController(level, sokoban.WithControllerLogger(s.logger))
	if err := ctrl.Start(n - 1); err != nil {
		return err
	}

	s.mu.Lock()
	s.ctrl = ctrl
	s.packID = packID
	s.mu.Unlock()

	s.logger.Info("level loaded", "session", s.session, "pack", packID, "level", n)
	return nil
}

func (s *Server) controller() (*sokoban.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return nil, fmt.Errorf("no level loaded, call load first")
	}
	return s.ctrl, nil
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_packs",
		Description: "List the installed level packs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListPacks)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "load",
		Description: "Load a level from a pack, or a raw level given as text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pack": map[string]interface{}{
					"type":        "string",
					"description": "Pack ID (see list_packs)",
				},
				"level": map[string]interface{}{
					"type":        "integer",
					"description": "Level number in the pack, starting at 1",
				},
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Level in the text format; used instead of pack when set",
				},
			},
		},
	}, s.handleLoad)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "state",
		Description: "Get the current board and counters",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the player one step",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right", "north", "south", "west", "east"},
					"description": "Direction to move",
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "walk",
		Description: "Move along a path of steps written as u/d/l/r letters",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Steps, e.g. \"rrdlu\"",
				},
			},
			Required: []string{"path"},
		},
	}, s.handleWalk)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "click",
		Description: "Step onto a cell next to the player",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "Column (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Row (0-based)",
				},
			},
			Required: []string{"x", "y"},
		},
	}, s.handleClick)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset",
		Description: "Restart the current level",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "next",
		Description: "Continue after a solved level",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleNext)
}

// Tool handlers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument.
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func (s *Server) handleListPacks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	for _, p := range registry.List() {
		fmt.Fprintf(&b, "%s: %s (%d levels)\n", p.ID, p.Title, p.Levels)
	}
	if b.Len() == 0 {
		return mcp.NewToolResultText("No packs installed."), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleLoad(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	text, _ := args["text"].(string)
	packID, _ := args["pack"].(string)

	var err error
	switch {
	case text != "":
		err = s.LoadText(text)
	case packID != "":
		n, ok := intArg(args, "level")
		if !ok {
			n = 1
		}
		err = s.LoadPack(packID, n)
	default:
		return mcp.NewToolResultError("either pack or text is required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.stateResult("Level loaded.")
}

func (s *Server) handleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stateResult("")
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctrl, err := s.controller()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	direction, _ := arguments(request)["direction"].(string)
	dir, ok := parseDirection(direction)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown direction %q", direction)), nil
	}

	moved := ctrl.Move(dir)
	ctrl.Settle()
	if !moved {
		return s.stateResult("The player did not move.")
	}
	return s.stateResult("")
}

func (s *Server) handleWalk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctrl, err := s.controller()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path, _ := arguments(request)["path"].(string)
	dirs, err := parsePath(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	done := 0
	for _, dir := range dirs {
		if !ctrl.Move(dir) {
			break
		}
		done++
	}
	ctrl.Settle()

	note := fmt.Sprintf("Walked %d of %d steps.", done, len(dirs))
	if done < len(dirs) {
		note += " Stopped at the first step that failed."
	}
	return s.stateResult(note)
}

func (s *Server) handleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctrl, err := s.controller()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := arguments(request)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y are required"), nil
	}

	moved := ctrl.Click(core.Vector{X: x, Y: y})
	ctrl.Settle()
	if !moved {
		return s.stateResult("The player did not move.")
	}
	return s.stateResult("")
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctrl, err := s.controller()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ctrl.Reset()
	return s.stateResult("Level restarted.")
}

func (s *Server) handleNext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ctrl, err := s.controller()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !ctrl.Acknowledge() {
		return mcp.NewToolResultError("the level is not solved yet"), nil
	}
	ctrl.Settle()
	return s.stateResult("")
}

func (s *Server) stateResult(note string) (*mcp.CallToolResult, error) {
	ctrl, err := s.controller()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	packID := s.packID
	s.mu.Unlock()

	return mcp.NewToolResultText(formatSnapshot(packID, ctrl.Snapshot(), note)), nil
}

func parseDirection(name string) (core.Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "up", "north", "n", "u":
		return core.DirNorth, true
	case "down", "south", "s", "d":
		return core.DirSouth, true
	case "left", "west", "w", "l":
		return core.DirWest, true
	case "right", "east", "e", "r":
		return core.DirEast, true
	}
	return core.DirNone, false
}

func parsePath(path string) ([]core.Direction, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}
	if len(path) > maxPath {
		return nil, fmt.Errorf("path longer than %d steps", maxPath)
	}

	dirs := make([]core.Direction, 0, len(path))
	for i, r := range path {
		if r == ' ' || r == ',' {
			continue
		}
		dir, ok := parseDirection(string(r))
		if !ok {
			return nil, fmt.Errorf("invalid step %q at position %d", r, i)
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

func formatSnapshot(packID string, snap sokoban.Snapshot, note string) string {
	var b strings.Builder

	if note != "" {
		b.WriteString(note)
		b.WriteString("\n\n")
	}

	if packID != "" {
		fmt.Fprintf(&b, "Pack: %s\n", packID)
	}
	fmt.Fprintf(&b, "Level %d of %d: %s\n", snap.Level, snap.Levels, snap.Name)
	fmt.Fprintf(&b, "Moves: %d  Pushes: %d  Targets: %d/%d\n", snap.Moves, snap.Pushes, snap.Filled, snap.Targets)
	fmt.Fprintf(&b, "Player: (%d,%d)\n", snap.PlayerX, snap.PlayerY)
	if snap.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", snap.Message)
	}
	if snap.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", snap.Error)
	}

	switch {
	case snap.Finished:
		b.WriteString("Status: pack finished\n")
	case snap.Complete:
		b.WriteString("Status: solved, call next to continue\n")
	default:
		b.WriteString("Status: playing\n")
	}

	if snap.Board != "" {
		b.WriteString("\n")
		b.WriteString(snap.Board)
		if !strings.HasSuffix(snap.Board, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
