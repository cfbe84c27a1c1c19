package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/argpopup/internal/help"
	"github.com/atomicstack/argpopup/internal/popup"
)

// optionForm reads the value of one option.
type optionForm struct {
	input    textinput.Model
	argument string
	label    string
	help     string
}

func newOptionForm(entry popup.Entry, initial string) *optionForm {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = strings.TrimSuffix(strings.TrimLeft(entry.Argument, "-"), "=")
	ti.CharLimit = 256
	if styles.PromptText != nil {
		ti.TextStyle = *styles.PromptText
	}
	if styles.PromptPlaceholder != nil {
		ti.PlaceholderStyle = *styles.PromptPlaceholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	ti.Cursor.SetMode(cursor.CursorStatic)
	if initial != "" {
		ti.SetValue(initial)
		ti.CursorEnd()
	}
	ti.Focus()
	return &optionForm{
		input:    ti,
		argument: entry.Argument,
		label:    popup.PromptFor(entry.Argument),
		help:     "Enter to set, empty to clear the value, Esc to unset.",
	}
}

func (f *optionForm) Argument() string  { return f.argument }
func (f *optionForm) Label() string     { return f.label }
func (f *optionForm) Help() string      { return f.help }
func (f *optionForm) Value() string     { return f.input.Value() }
func (f *optionForm) InputView() string { return f.input.View() }

// Update returns done when the value was submitted and cancel when the user
// backed out.
func (f *optionForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
			}
			return nil, false, false
		}
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlG, tea.KeyCtrlC:
			return nil, false, true
		case tea.KeyEnter:
			return nil, true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}

func (m *Model) startOptionForm(entry popup.Entry) {
	initial := ""
	if v, ok := m.session.Arguments().Lookup(entry.Argument); ok {
		initial = v.Text
	}
	m.prompt = newOptionForm(entry, initial)
	m.mode = ModePrompt
}

func (m *Model) handlePromptForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.prompt == nil {
		return false, nil
	}
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		return false, nil
	}
	cmd, done, cancel := m.prompt.Update(msg)
	if !done && !cancel {
		return true, cmd
	}
	argument, value := m.prompt.Argument(), m.prompt.Value()
	m.prompt = nil
	m.mode = ModePopup
	return true, m.withPrompt(func() promptResult {
		if err := m.session.SetOption(argument, value, done); err != nil {
			return promptResult{Err: err}
		}
		return promptResult{Info: m.describeOption(argument)}
	})
}

// helpPage shows an action's documentation until the next key.
type helpPage struct {
	result help.Result
	body   string
	// styled bodies already carry glamour's colours.
	styled bool
}

func newHelpPage(res help.Result, width int) *helpPage {
	p := &helpPage{result: res}
	p.reflow(width)
	return p
}

func (p *helpPage) reflow(width int) {
	if width <= 0 {
		width = 80
	}
	p.body, p.styled = help.Markdown(p.result.Doc, width)
}

func (m *Model) handleHelpPage(msg tea.Msg) (bool, tea.Cmd) {
	if m.doc == nil {
		return false, nil
	}
	switch msg.(type) {
	case tea.KeyMsg:
	case tea.WindowSizeMsg:
		return false, nil
	default:
		return true, nil
	}
	m.doc = nil
	m.mode = ModePopup
	return true, nil
}
