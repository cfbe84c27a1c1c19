package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/argpopup/internal/session"
	"github.com/atomicstack/argpopup/internal/theme"
)

// Mode selects which surface owns key input.
type Mode int

const (
	ModePopup Mode = iota
	ModePrompt
	ModeHelp
)

const infoTTL = 3 * time.Second

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configure the popup model.
type Options struct {
	// Width and Height pin the surface size. Zero follows the terminal.
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	// OpenResource shows a popup's external help, e.g. a man page. The
	// returned command should report back with a ResourceOpenedMsg.
	OpenResource func(resource string) tea.Cmd
}

// ResourceOpenedMsg reports the outcome of Options.OpenResource.
type ResourceOpenedMsg struct {
	Resource string
	Err      error
}

// Model implements the Bubble Tea model for one popup session.
type Model struct {
	session *session.Session

	mode   Mode
	prompt *optionForm
	doc    *helpPage

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	footer      help.Model

	openResource func(string) tea.Cmd
	done         bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps an open session.
func NewModel(sess *session.Session, opts Options) *Model {
	m := &Model{
		session:      sess,
		mode:         ModePopup,
		showFooter:   opts.ShowFooter,
		verbose:      opts.Verbose,
		footer:       help.New(),
		openResource: opts.OpenResource,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if styles.Footer != nil {
		m.footer.Styles.ShortKey = *styles.Key
		m.footer.Styles.ShortDesc = *styles.Footer
		m.footer.Styles.ShortSeparator = *styles.Punctuation
	}
	m.registerHandlers()
	return m
}

// Session returns the session the model drives.
func (m *Model) Session() *session.Session { return m.session }

// Mode reports which surface currently owns input.
func (m *Model) Mode() Mode { return m.mode }

// Done reports whether the popup asked the program to exit.
func (m *Model) Done() bool { return m.done }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handled, cmd := m.handleActiveForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	switch m.mode {
	case ModePrompt:
		return m.handlePromptForm(msg)
	case ModeHelp:
		return m.handleHelpPage(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(ResourceOpenedMsg{}): m.handleResourceOpenedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	if m.doc != nil {
		m.doc.reflow(m.width)
	}
	return nil
}
