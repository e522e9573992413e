package tui

import "github.com/charmbracelet/bubbles/key"

type setupKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Commit   key.Binding
	Browser  key.Binding
	Quit     key.Binding
}

func defaultSetupKeys() setupKeyMap {
	return setupKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "present"),
		),
		Browser: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "present in browser"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k setupKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.MoveUp, k.MoveDown, k.Commit, k.Browser, k.Quit}
}

func (k setupKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type presentKeyMap struct {
	Next key.Binding
	Back key.Binding
	Fwd  key.Binding
	Quit key.Binding
}

func defaultPresentKeys() presentKeyMap {
	return presentKeyMap{
		Next: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous line"),
		),
		Fwd: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next line"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k presentKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Back, k.Fwd, k.Quit}
}

func (k presentKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
