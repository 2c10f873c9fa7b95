package ui

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap holds the preview key bindings. It implements help.KeyMap.
type KeyMap struct {
	Shrink key.Binding
	Grow   key.Binding
	Rotate key.Binding
	Menu   key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the stock preview bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Shrink: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "shrink")),
		Grow:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "grow")),
		Rotate: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "rotate")),
		Menu:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "overflow menu")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy toolbar")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Shrink, k.Grow, k.Menu, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Shrink, k.Grow, k.Rotate},
		{k.Menu, k.Copy, k.Help, k.Quit},
	}
}
