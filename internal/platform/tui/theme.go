package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of the menu and records screens.
type Theme struct {
	// Pack picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style

	// Records styles
	Border        lipgloss.Color
	TableSelectFg lipgloss.Color
	TableSelectBg lipgloss.Color
	RecordsEmpty  lipgloss.Style
	SidebarActive lipgloss.Style
	HelpText      lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		Border:        lipgloss.Color("240"),
		TableSelectFg: lipgloss.Color("229"),
		TableSelectBg: lipgloss.Color("57"),
		RecordsEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		SidebarActive: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		HelpText:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.TableSelectFg = lipgloss.Color("232")
	theme.TableSelectBg = lipgloss.Color("250")
	theme.SidebarActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	return theme
}

var themes = map[string]func() Theme{
	"default":    DefaultTheme,
	"monochrome": MonochromeTheme,
}

// ThemeNames lists the selectable theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName looks up a theme.
func ThemeByName(name string) (Theme, bool) {
	f, ok := themes[name]
	if !ok {
		return Theme{}, false
	}
	return f(), true
}

// Global theme variable (can be changed at startup)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}
