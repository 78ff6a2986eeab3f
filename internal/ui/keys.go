package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"gitreplace/internal/domain"
)

// keyMap lists the host keys for the help line and the help pager.
// Dispatch itself lives in the input modes.
type keyMap struct {
	SearchReplace  key.Binding
	FindReferences key.Binding
	SwitchFocus    key.Binding
	Move           key.Binding
	Page           key.Binding
	Help           key.Binding
	Log            key.Binding
	Quit           key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		SearchReplace: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "search/replace"),
		),
		FindReferences: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "find references"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch split"),
		),
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"),
			key.WithHelp("↑/↓/←/→, hjkl", "move cursor"),
		),
		Page: key.NewBinding(
			key.WithKeys("pgup", "pgdown", "home", "end", "g", "G"),
			key.WithHelp("PgUp/PgDn, g/G", "page, top/bottom"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Log: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "diagnostic log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "Q"),
			key.WithHelp("Q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SearchReplace, k.FindReferences, k.SwitchFocus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Page, k.SwitchFocus},
		{k.SearchReplace, k.FindReferences},
		{k.Help, k.Log, k.Quit},
	}
}

// modeBindings turns the keybindings of a plugin mode into help entries
func modeBindings(mode domain.Mode) []key.Binding {
	bindings := make([]key.Binding, 0, len(mode.Bindings))
	for _, b := range mode.Bindings {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(b.Key),
			key.WithHelp(b.Key, b.Action),
		))
	}
	return bindings
}
