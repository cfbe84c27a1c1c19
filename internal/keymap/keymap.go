package keymap

import "github.com/charmbracelet/bubbles/key"

// Fixed holds the bindings every popup carries regardless of its definition.
type Fixed struct {
	Help   key.Binding
	Quit   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
}

// DefaultFixed returns the standard help, quit and navigation bindings.
func DefaultFixed() Fixed {
	return Fixed{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+g", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "prev"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (f Fixed) ShortHelp() []key.Binding {
	return []key.Binding{f.Help, f.Select, f.Next, f.Quit}
}

// FullHelp implements help.KeyMap.
func (f Fixed) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{f.Next, f.Prev, f.Select},
		{f.Help, f.Quit},
	}
}

func (f Fixed) effects() []fixedEffect {
	return []fixedEffect{
		{f.Help, KindHelp},
		{f.Quit, KindQuit},
		{f.Next, KindNext},
		{f.Prev, KindPrev},
		{f.Select, KindSelect},
	}
}

type fixedEffect struct {
	binding key.Binding
	kind    Kind
}
