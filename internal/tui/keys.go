package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Top      key.Binding
	Bottom   key.Binding

	// Search inputs
	Keyword   key.Binding // Focus the keyword input
	Category  key.Binding // Cycle the category
	Assignees key.Binding // Enter chip selection
	Left      key.Binding // Previous chip
	Right     key.Binding // Next chip
	Toggle    key.Binding // Toggle chip or collapse row

	// Actions
	Search key.Binding // Run the search
	Submit key.Binding // Confirm input and search

	// General
	Help   key.Binding // Show help
	Quit   key.Binding // Quit application
	Escape key.Binding // Cancel/back
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "next page"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Keyword: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "keyword"),
		),
		Category: key.NewBinding(
			key.WithKeys("c", "tab"),
			key.WithHelp("c", "category"),
		),
		Assignees: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assignees"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev chip"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next chip"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter/r", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Keyword, k.Category, k.Assignees, k.Search, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage, k.Top, k.Bottom}, // Navigation
		{k.Keyword, k.Category, k.Assignees, k.Search},          // Search
		{k.Left, k.Right, k.Toggle},                             // Chips & rows
		{k.Help, k.Escape, k.Quit},                              // General
	}
}

// normalModeBindings returns the bindings active while navigating the grid.
func (k KeyMap) normalModeBindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.PrevPage, k.NextPage, k.Top, k.Bottom,
		k.Keyword, k.Category, k.Assignees, k.Toggle, k.Search, k.Help, k.Quit,
	}
}
