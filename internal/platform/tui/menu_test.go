package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

func updateMenu(t *testing.T, m MenuModel, msg tea.Msg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	menu, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return menu
}

func indexOf(m MenuModel, id string) int {
	for i, item := range m.items {
		if item.PackID == id {
			return i
		}
	}
	return -1
}

func TestMenuSelectPackAndLevel(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())

	classic := indexOf(m, "classic")
	if classic < 0 || indexOf(m, "tutorial") < 0 {
		t.Fatal("embedded packs missing from the menu")
	}
	for i := 0; i < classic; i++ {
		m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}

	levels := m.items[classic].Levels
	for i := 0; i < levels+2; i++ {
		m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	}
	if m.StartLevel() != levels {
		t.Errorf("start level should stop at %d, got %d", levels, m.StartLevel())
	}
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	result := m.Result()
	if result.PackID != "classic" || result.StartLevel != levels-1 || result.Quit {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestMenuMovingResetsLevel(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	if len(m.items) < 2 {
		t.Skip("needs two packs")
	}

	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.StartLevel() != 1 {
		t.Errorf("expected level 1 after changing pack, got %d", m.StartLevel())
	}
}

func TestMenuRecordsAndQuit(t *testing.T) {
	m := updateMenu(t, NewMenuModel(nil, core.DefaultConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.Result().WantsRecords {
		t.Error("tab should open records")
	}

	m = updateMenu(t, NewMenuModel(nil, core.DefaultConfig()), runeKey('q'))
	if !m.Result().Quit {
		t.Error("q should quit")
	}
}

func TestMenuView(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	view := m.View()
	for _, want := range []string{"S O K O B A N", "Tutorial", "Enter: Play"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}
}

func newSession(t *testing.T) SessionModel {
	t.Helper()
	factory := func(packID string, start int) (registry.Game, error) {
		pack, err := registry.Create(packID)
		if err != nil {
			return nil, err
		}
		return sokoban.New(packID, pack, sokoban.WithStartLevel(start)), nil
	}
	return NewSessionModel(nil, core.DefaultConfig(), factory, nil)
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	s, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return s
}

func TestSessionFlow(t *testing.T) {
	m := newSession(t)

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil {
		t.Fatal("enter should start a game")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatal("esc should return to the menu")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenRecords {
		t.Fatal("tab should open records")
	}
	if !strings.Contains(m.View(), "No records yet.") {
		t.Error("records view should be empty without a store")
	}

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatal("esc should leave records")
	}

	m = updateSession(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("q should end the session")
	}
}

func TestSessionFactoryError(t *testing.T) {
	m := newSession(t)
	m.newGame = func(string, int) (registry.Game, error) { return nil, errors.New("boom") }

	m = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenMenu || m.quitting {
		t.Error("a failing pack keeps the session in the menu")
	}
}
