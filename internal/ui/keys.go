package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Switch   key.Binding
	Process  key.Binding
	Retrieve key.Binding
	Import   key.Binding
	Deploy   key.Binding
	Verify   key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand")),
		Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Process:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "process")),
		Retrieve: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retrieve")),
		Import:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Deploy:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deploy")),
		Verify:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "verify")),
		Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Toggle, k.Process, k.Retrieve, k.Verify, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Switch},
		{k.Process, k.Retrieve, k.Import, k.Deploy},
		{k.Verify, k.Reset, k.Help, k.Quit},
	}
}
