package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap documents the bindings for the help line. The keys themselves
// are interpreted by the state machine.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	First    key.Binding
	Last     key.Binding
	Deselect key.Binding
	Select   key.Binding
	Tab      key.Binding
	Search   key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding

	// search mode
	Suggest key.Binding
	Cursor  key.Binding
	Pick    key.Binding
	Cancel  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		First:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Deselect: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select station")),
		Tab:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch tab")),
		Search:   key.NewBinding(key.WithKeys("/", "s"), key.WithHelp("/", "search")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Suggest: key.NewBinding(key.WithKeys("up", "down", "ctrl+p", "ctrl+n"), key.WithHelp("↑/↓", "choose")),
		Cursor:  key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "move cursor")),
		Pick:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show departures")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// normalHelp implements help.KeyMap for normal mode.
type normalHelp struct{ keyMap }

func (k normalHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Select, k.Tab, k.Search, k.Refresh, k.Help, k.Quit}
}

func (k normalHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Down, k.Up, k.First, k.Last, k.Deselect},
		{k.Select, k.Tab, k.Search, k.Refresh},
		{k.Help, k.Quit},
	}
}

// searchHelp implements help.KeyMap for search mode.
type searchHelp struct{ keyMap }

func (k searchHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Suggest, k.Pick, k.Cursor, k.Cancel}
}

func (k searchHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
