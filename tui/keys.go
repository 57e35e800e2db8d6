// tui/keys.go
package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search     key.Binding
	ToggleMode key.Binding
	Up         key.Binding
	Down       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Search: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	ToggleMode: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "switch client"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous row"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next row"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

func (k keyMap) helpLine() string {
	line := ""
	for i, binding := range []key.Binding{k.Search, k.ToggleMode, k.Up, k.Down, k.Quit} {
		if i > 0 {
			line += " • "
		}
		help := binding.Help()
		line += help.Key + " " + help.Desc
	}
	return line
}
