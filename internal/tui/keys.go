package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding

	// Catalog
	Search      key.Binding
	Filter      key.Binding
	ClearSearch key.Binding
	Reload      key.Binding
	Favorite    key.Binding
	Favorites   key.Binding
	Trailer     key.Binding
	Website     key.Binding

	// Filter selection
	CycleGenre   key.Binding
	CycleYear    key.Binding
	CycleRating  key.Binding
	ClearFilters key.Binding

	// Application
	Theme  key.Binding
	Logout key.Binding
	Help   key.Binding
	Quit   key.Binding
	Force  key.Binding

	// Confirmations
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back / clear"),
		),

		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "quick filter"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear search"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle favorite"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "favorites"),
		),
		Trailer: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open trailer"),
		),
		Website: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "open website"),
		),

		CycleGenre: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "next genre"),
		),
		CycleYear: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "next year"),
		),
		CycleRating: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "next rating"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),

		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log out"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Force: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "force quit"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Search, k.Favorite, k.Favorites, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Back, k.Filter},
		{k.Search, k.ClearSearch, k.Reload, k.Favorite, k.Favorites},
		{k.CycleGenre, k.CycleYear, k.CycleRating, k.ClearFilters},
		{k.Trailer, k.Website, k.Theme, k.Logout, k.Help, k.Quit},
	}
}

// Keys is the global key map instance
var Keys = DefaultKeyMap()
