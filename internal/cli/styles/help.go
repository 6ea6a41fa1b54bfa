package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// PlayKeyMap defines keybindings for the interactive docking playground.
type PlayKeyMap struct {
	Save    key.Binding
	Restore key.Binding
	Undock  key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Restore, k.Undock, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Restore},
		{k.Undock, k.Cancel},
		{k.Help, k.Quit},
	}
}

// DefaultPlayKeyMap returns the default playground keybindings.
func DefaultPlayKeyMap() PlayKeyMap {
	return PlayKeyMap{
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save layout"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore layout"),
		),
		Undock: key.NewBinding(
			key.WithKeys("u", "delete"),
			key.WithHelp("u", "undock selected"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a help model with theme styling.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
