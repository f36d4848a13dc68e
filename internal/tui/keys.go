package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Home     key.Binding
	End      key.Binding
	PageDown key.Binding
	PageUp   key.Binding

	// Actions
	Quit      key.Binding
	Help      key.Binding
	Escape    key.Binding
	Search    key.Binding
	Filter    key.Binding
	Like      key.Binding
	WatchList key.Binding
	Watched   key.Binding
	Rate      key.Binding
	Collect   key.Binding
	Remove    key.Binding
	Refresh   key.Binding
	Listing   key.Binding
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
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("C-d", "half page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("C-u", "half page up"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Search: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Like: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "like"),
		),
		WatchList: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "watch list"),
		),
		Watched: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark watched"),
		),
		Rate: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rate"),
		),
		Collect: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "collections"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Listing: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "change listing"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
