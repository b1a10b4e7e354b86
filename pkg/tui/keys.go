package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	Add      key.Binding
	Search   key.Binding
	Connect  key.Binding
	Weight   key.Binding
	Path     key.Binding
	Delete   key.Binding
	Topology key.Binding
	Details  key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "nodes/edges")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add node")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Connect:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "connect")),
		Weight:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weight")),
		Path:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "shortest path")),
		Delete:   key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Topology: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "canvas")),
		Details:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Search, k.Connect, k.Weight, k.Path, k.Delete, k.Tab, k.Topology, k.Details, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.Topology, k.Details},
		{k.Add, k.Search, k.Connect, k.Weight, k.Path, k.Delete},
		{k.Submit, k.Cancel, k.Quit},
	}
}
