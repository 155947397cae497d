package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	NextPage  key.Binding
	PrevPage  key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Refresh   key.Binding
	Test      key.Binding
	Edit      key.Binding
	Cancel    key.Binding
	PlayPause key.Binding
	Next      key.Binding
	Previous  key.Binding
	VolUp     key.Binding
	VolDown   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default keyboard shortcuts.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPage:  key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev page")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "launch/apply")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Test:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "test connection")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit address")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		PlayPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next track")),
		Previous:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev track")),
		VolUp:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "volume up")),
		VolDown:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "volume down")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.Enter, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.Up, k.Down},
		{k.Enter, k.Refresh, k.Test, k.Edit, k.Cancel},
		{k.PlayPause, k.Next, k.Previous, k.VolUp, k.VolDown},
		{k.Help, k.Quit},
	}
}
