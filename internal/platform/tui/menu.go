package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/registry"
	"github.com/vovakirdan/tui-sokoban/internal/storage"
)

// MenuItem represents a selectable pack in the menu.
type MenuItem struct {
	PackID string
	Title  string
	Levels int
	Solved int // Levels with a record
}

// MenuModel is the Bubble Tea model for the pack picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	startLevel  int // 1-indexed level of the highlighted pack
	width       int
	height      int
	store       *storage.Store
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	quitting    bool
	selected    *MenuItem // Set when user selects a pack
	openRecords bool      // True if user pressed Tab for records
}

// NewMenuModel creates a new menu model over the registered packs.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	packs := registry.List()
	items := make([]MenuItem, 0, len(packs))

	var stats map[string]*storage.PackStats
	if store != nil {
		// Best effort: the menu works without statistics
		stats, _ = store.GetAllPackStats()
	}

	for _, p := range packs {
		item := MenuItem{
			PackID: p.ID,
			Title:  p.Title,
			Levels: p.Levels,
		}
		if ps, ok := stats[p.ID]; ok {
			item.Solved = ps.Solved
		}
		items = append(items, item)
	}

	return MenuModel{
		items:      items,
		startLevel: 1,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.startLevel = 1
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.startLevel = 1
		}

	case MenuActionLeft:
		if m.startLevel > 1 {
			m.startLevel--
		}

	case MenuActionRight:
		if len(m.items) > 0 && m.startLevel < m.items[m.cursor].Levels {
			m.startLevel++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start the pack
		}

	case MenuActionRecords:
		m.openRecords = true
		return m, tea.Quit // Exit menu to show records
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	theme := GetTheme()

	b.WriteString("\n")
	b.WriteString(centerText(theme.MenuTitle.Render("S O K O B A N"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.MenuDescription.Render("Select a level pack"), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(theme.MenuDescription.Render("No level packs found."), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		line := fmt.Sprintf("  %s  (%d/%d solved)", item.Title, item.Solved, item.Levels)
		if i == m.cursor {
			line = fmt.Sprintf("> %s  < level %d/%d >", item.Title, m.startLevel, item.Levels)
			b.WriteString(centerText(theme.MenuItemActive.Render(line), m.width))
		} else {
			b.WriteString(centerText(theme.MenuItemNormal.Render(line), m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Pack  |  Left/Right: Level  |  Enter: Play  |  Tab: Records  |  Q: Quit"
	b.WriteString(centerText(theme.MenuDescription.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// StartLevel returns the 1-indexed level chosen for the highlighted pack.
func (m MenuModel) StartLevel() int {
	return m.startLevel
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records screen.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	PackID       string
	StartLevel   int
	Config       core.RuntimeConfig
	WantsRecords bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.Result(), nil
}

// Result summarizes the menu's final state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{
		Config: m.Config(),
	}

	switch {
	case m.WantsRecords():
		result.WantsRecords = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.PackID = m.Selected().PackID
		result.StartLevel = m.StartLevel()
	default:
		result.Quit = true
	}

	return result
}
