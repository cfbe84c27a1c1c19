package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/argpopup/internal/help"
	"github.com/atomicstack/argpopup/internal/session"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt resets the status line and runs action. The action can return
// a promptResult to control follow-up behaviour (command to run,
// informational message, or error).
func (m *Model) withPrompt(action func() promptResult) tea.Cmd {
	m.forceClearInfo()
	m.errMsg = ""
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		return nil
	}
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	}
	return result.Cmd
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	res := m.session.HandleKey(keyMsg.String())
	return m.withPrompt(func() promptResult {
		return m.applyResult(res)
	})
}

func (m *Model) applyResult(res session.Result) promptResult {
	switch res.Outcome {
	case session.OutcomeToggled:
		arg := res.Effect.Entry.Argument
		state := "off"
		if m.session.Arguments().Enabled(arg) {
			state = "on"
		}
		return promptResult{Info: fmt.Sprintf("%s %s", arg, state)}
	case session.OutcomeSet:
		return promptResult{Info: m.describeOption(res.Effect.Entry.Argument)}
	case session.OutcomePrompt:
		m.startOptionForm(res.Effect.Entry)
		return promptResult{}
	case session.OutcomeHelp:
		if res.Err != nil {
			return promptResult{Err: res.Err}
		}
		return m.showHelp(res.Help)
	case session.OutcomeQuit, session.OutcomeInvoke:
		m.done = true
		return promptResult{Cmd: tea.Quit}
	}
	return promptResult{Err: res.Err}
}

func (m *Model) describeOption(argument string) string {
	v, ok := m.session.Arguments().Lookup(argument)
	if !ok {
		return fmt.Sprintf("%s cleared", argument)
	}
	return fmt.Sprintf("%s%q", argument, v.Text)
}

func (m *Model) showHelp(res help.Result) promptResult {
	switch res.Kind {
	case help.KindResource:
		if m.openResource == nil {
			return promptResult{Info: fmt.Sprintf("see %s", res.Resource)}
		}
		return promptResult{Cmd: m.openResource(res.Resource)}
	case help.KindAction:
		m.doc = newHelpPage(res, m.width)
		m.mode = ModeHelp
	}
	return promptResult{}
}

func (m *Model) handleResourceOpenedMsg(msg tea.Msg) tea.Cmd {
	opened, ok := msg.(ResourceOpenedMsg)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		if opened.Err != nil {
			return promptResult{Err: fmt.Errorf("open %s: %w", opened.Resource, opened.Err)}
		}
		return promptResult{Info: fmt.Sprintf("opened %s", opened.Resource)}
	})
}
