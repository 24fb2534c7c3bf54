package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search key.Binding
	Next   key.Binding
	Prev   key.Binding
	Now    key.Binding
	Zodiac key.Binding
	Helio  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Search: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Next: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("C-n", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("C-p", "previous"),
	),
	Now: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("C-t", "now"),
	),
	Zodiac: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "zodiac"),
	),
	Helio: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("C-o", "helio/geo"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Search, k.Next, k.Prev, k.Now, k.Zodiac, k.Helio, k.Quit}
}
