package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

type testPack struct {
	levels.List
}

func (testPack) Title() string { return "Test Pack" }

func newTestModel(t *testing.T, store *storage.Store, texts ...string) Model {
	t.Helper()
	game := sokoban.New("tui-test", testPack{levels.Strings(texts...)})
	m := NewModel(game, store, core.DefaultConfig())
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelSavesRecordOnSolve(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("storage.Open failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store, "#######\n#@ $ .#\n#######\n", "#####\n#@$.#\n#####\n")

	for i := 0; i < 3; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
		m = update(t, m, TickMsg{})
	}
	if !m.State().Complete {
		t.Fatalf("expected a solved level, got %+v", m.State())
	}
	if m.saved != 1 {
		t.Errorf("expected one saved record, got %d", m.saved)
	}

	best, err := store.BestResult("tui-test", 0)
	if err != nil {
		t.Fatalf("BestResult failed: %v", err)
	}
	if best == nil || best.Moves != 3 || best.Pushes != 2 || best.LevelName != "level-1" {
		t.Errorf("unexpected record %+v", best)
	}

	// Further ticks do not save again.
	m = update(t, m, TickMsg{})
	if m.saved != 1 {
		t.Errorf("record saved twice")
	}
}

func TestModelQuitKey(t *testing.T) {
	m := newTestModel(t, nil, "#####\n#@$.#\n#####\n")

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !next.(Model).IsQuitting() {
		t.Error("model should be quitting")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model renders nothing")
	}
}

func TestModelQuitsWhenPackIsOver(t *testing.T) {
	m := newTestModel(t, nil, "#####\n#@$.#\n#####\n")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})
	if !m.State().Finished || m.IsQuitting() {
		t.Fatalf("expected finished pack, got %+v", m.State())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, TickMsg{})
	if !m.IsQuitting() {
		t.Error("any key after the last level should quit")
	}
}

func TestModelEmbeddedBack(t *testing.T) {
	m := newTestModel(t, nil, "#####\n#@$.#\n#####\n")
	m.embedded = true

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || m.IsQuitting() {
		t.Error("esc inside a session returns to the menu")
	}
}

func TestModelResizeKeepsLevel(t *testing.T) {
	m := newTestModel(t, nil, "#######\n#@   .#\n#######\n")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, TickMsg{})

	if m.State().Moves != 1 {
		t.Errorf("resize must not restart the level, got %d moves", m.State().Moves)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen not resized: %dx%d", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "Test Pack") {
		t.Error("view should show the pack title")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.SetColored(0, 1, '#', core.ColorBrown)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"ab", "cd", "#"} {
		if !strings.Contains(out, want) {
			t.Errorf("render lost %q", want)
		}
	}
}
