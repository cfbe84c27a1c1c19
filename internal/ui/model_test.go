package ui

import (
	"context"
	"os"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/atomicstack/argpopup/internal/popup"
	"github.com/atomicstack/argpopup/internal/session"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type docs map[string]string

func (d docs) Describe(id string) (string, bool) {
	doc, ok := d[id]
	return doc, ok
}

func commitSession(t *testing.T) *session.Session {
	t.Helper()
	def, err := popup.NewStore().Register(popup.Spec{
		Name:         "commit",
		Title:        "Commit",
		HelpResource: "git-commit",
		Switches: []popup.Switch{
			{Key: 'v', Description: "verbose", Argument: "--verbose"},
			{Key: 'a', Description: "all", Argument: "--all"},
		},
		Options: []popup.Option{{Key: 'm', Description: "message", Argument: "--message="}},
		Actions: []popup.Action{{Key: 'c', Description: "commit", Command: "doCommit"}},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	s := session.New(def, session.Options{Docs: docs{"doCommit": "Record changes."}})
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestPrefixThenTriggerTogglesSwitch(t *testing.T) {
	h := NewHarness(NewModel(commitSession(t), Options{}))
	h.Press("-")
	if got := h.Model().Session().Pending(); got != "-" {
		t.Fatalf("expected pending prefix, got %q", got)
	}
	if !strings.Contains(h.View(), "-…") {
		t.Fatalf("expected prefix indicator, got:\n%s", h.View())
	}
	h.Press("v")
	if !h.Model().Session().Arguments().Enabled("--verbose") {
		t.Fatalf("expected --verbose enabled")
	}
	h.Press("-", "v")
	if h.Model().Session().Arguments().Enabled("--verbose") {
		t.Fatalf("expected second toggle to disable --verbose")
	}
	if h.Quit() {
		t.Fatalf("toggling must not end the popup")
	}
}

func TestOptionPromptSetsValue(t *testing.T) {
	h := NewHarness(NewModel(commitSession(t), Options{}))
	h.Press("=", "m")
	if h.Model().Mode() != ModePrompt {
		t.Fatalf("expected prompt mode, got %v", h.Model().Mode())
	}
	if !strings.Contains(h.View(), "Message: ") {
		t.Fatalf("expected derived prompt label, got:\n%s", h.View())
	}
	h.Type("hello")
	h.Press("enter")
	if h.Model().Mode() != ModePopup {
		t.Fatalf("expected popup mode after submit")
	}
	v, ok := h.Model().Session().Arguments().Lookup("--message=")
	if !ok || v.Text != "hello" {
		t.Fatalf("expected message set, got %#v %v", v, ok)
	}
	if !strings.Contains(h.View(), `(--message="hello")`) {
		t.Fatalf("expected value in view, got:\n%s", h.View())
	}

	h.Press("=", "m")
	if got := h.Model().prompt.Value(); got != "hello" {
		t.Fatalf("expected prompt prefilled with current value, got %q", got)
	}
	h.Press("esc")
	if _, ok := h.Model().Session().Arguments().Lookup("--message="); ok {
		t.Fatalf("expected cancelled prompt to clear the option")
	}
}

func TestOptionPromptBlankKeepsEmptyValue(t *testing.T) {
	h := NewHarness(NewModel(commitSession(t), Options{}))
	h.Press("=", "m")
	h.Type("   ")
	h.Press("enter")
	v, ok := h.Model().Session().Arguments().Lookup("--message=")
	if !ok || v.Text != "" {
		t.Fatalf("expected empty-but-present value, got %#v %v", v, ok)
	}
}

func TestActionEndsProgramWithInvocation(t *testing.T) {
	h := NewHarness(NewModel(commitSession(t), Options{}))
	h.Press("-", "a", "c")
	if !h.Quit() || !h.Model().Done() {
		t.Fatalf("expected the action to end the program")
	}
	sess := h.Model().Session()
	if sess.State() != session.Dispatching {
		t.Fatalf("expected dispatching, got %s", sess.State())
	}
	inv, ok := sess.Invocation()
	if !ok || inv.Command != "doCommit" || !reflect.DeepEqual(inv.Tokens, []string{"--all"}) {
		t.Fatalf("unexpected invocation %#v", inv)
	}
	if h.View() != "" {
		t.Fatalf("expected an empty view once done")
	}
}

func TestEnterAfterFirstRenderRunsDefaultAction(t *testing.T) {
	def, err := popup.NewStore().Register(popup.Spec{
		Name:          "log",
		DefaultAction: 'l',
		Actions: []popup.Action{
			{Key: 'a', Description: "log all", Command: "git:log-all"},
			{Key: 'l', Description: "log", Command: "git:log"},
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	sess := session.New(def, session.Options{})
	if err := sess.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	h := NewHarness(NewModel(sess, Options{Width: 60}))
	h.View()
	h.Press("enter")
	if !h.Quit() {
		t.Fatalf("expected enter to end the program")
	}
	if inv, _ := sess.Invocation(); inv.Command != "git:log" {
		t.Fatalf("expected default action git:log, got %q", inv.Command)
	}
}

func TestQuitEndsProgramWithoutInvocation(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+g", "ctrl+c"} {
		h := NewHarness(NewModel(commitSession(t), Options{}))
		h.Press(key)
		if !h.Quit() {
			t.Fatalf("%s: expected quit", key)
		}
		if _, ok := h.Model().Session().Invocation(); ok {
			t.Fatalf("%s: quit must not dispatch", key)
		}
	}
}

func TestEscCancelsPendingPrefix(t *testing.T) {
	h := NewHarness(NewModel(commitSession(t), Options{}))
	h.Press("-", "esc")
	if h.Quit() {
		t.Fatalf("esc during a prefix should only cancel the prefix")
	}
	if h.Model().Session().Pending() != "" {
		t.Fatalf("expected prefix cleared")
	}
}

func TestUnboundKeyReportsError(t *testing.T) {
	h := NewHarness(NewModel(commitSession(t), Options{}))
	h.Press("x")
	if !strings.Contains(h.View(), "key is not bound") {
		t.Fatalf("expected unbound key error, got:\n%s", h.View())
	}
	h.Press("-", "v")
	if strings.Contains(h.View(), "key is not bound") {
		t.Fatalf("expected error cleared by the next key")
	}
}

func TestHelpShowsActionDocWithoutMutating(t *testing.T) {
	h := NewHarness(NewModel(commitSession(t), Options{Width: 60}))
	h.Press("-", "v", "?", "c")
	if h.Model().Mode() != ModeHelp {
		t.Fatalf("expected help page, got mode %v", h.Model().Mode())
	}
	if !strings.Contains(h.View(), "Record changes.") {
		t.Fatalf("expected action doc, got:\n%s", h.View())
	}
	if h.Model().doc.styled {
		t.Fatalf("expected an unstyled markdown body under the ascii profile")
	}
	h.Press("c")
	if h.Model().Mode() != ModePopup || h.Quit() {
		t.Fatalf("expected any key to return to the popup")
	}
	sess := h.Model().Session()
	if sess.State() != session.Active {
		t.Fatalf("expected session active, got %s", sess.State())
	}
	if got := sess.Arguments().Tokens(); !reflect.DeepEqual(got, []string{"--verbose"}) {
		t.Fatalf("expected arguments untouched, got %v", got)
	}
}

func TestHelpResourceOpensManual(t *testing.T) {
	var opened string
	opts := Options{
		Verbose: true,
		OpenResource: func(resource string) tea.Cmd {
			return func() tea.Msg {
				opened = resource
				return ResourceOpenedMsg{Resource: resource}
			}
		},
	}
	h := NewHarness(NewModel(commitSession(t), opts))
	h.Press("?", "?")
	if opened != "git-commit" {
		t.Fatalf("expected git-commit opened, got %q", opened)
	}
	if !strings.Contains(h.View(), "opened git-commit") {
		t.Fatalf("expected confirmation, got:\n%s", h.View())
	}
}

func TestHelpResourceWithoutOpener(t *testing.T) {
	h := NewHarness(NewModel(commitSession(t), Options{Verbose: true}))
	h.Press("?", "?")
	if !strings.Contains(h.View(), "see git-commit") {
		t.Fatalf("expected resource hint, got:\n%s", h.View())
	}
}

func TestWindowSizeIgnoredWhenFixed(t *testing.T) {
	m := NewModel(commitSession(t), Options{Width: 40})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	if m.width != 40 || m.height != 20 {
		t.Fatalf("expected fixed width and tracked height, got %dx%d", m.width, m.height)
	}
}
