package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/atomicstack/argpopup/internal/commands"
	"github.com/atomicstack/argpopup/internal/help"
	"github.com/atomicstack/argpopup/internal/keymap"
	"github.com/atomicstack/argpopup/internal/logging/events"
	"github.com/atomicstack/argpopup/internal/popup"
	"github.com/atomicstack/argpopup/internal/render"
	"github.com/atomicstack/argpopup/internal/state"
)

// ErrUnboundKey is reported for keys the dispatch table does not know.
var ErrUnboundKey = errors.New("key is not bound")

// ErrNotActive is returned when keys arrive outside the Active state.
var ErrNotActive = errors.New("session is not active")

// Lifecycle is the state of a session.
type Lifecycle int

const (
	Idle Lifecycle = iota
	Active
	Dispatching
	Closed
)

func (l Lifecycle) String() string {
	switch l {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Dispatching:
		return "dispatching"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("lifecycle(%d)", int(l))
	}
}

// ViewState is whatever was focused before the popup opened. The zero value
// means there is nothing to restore.
type ViewState struct {
	Window string
	Pane   string
}

// ViewKeeper saves and restores the surrounding display.
type ViewKeeper interface {
	Save(ctx context.Context) (ViewState, error)
	Restore(ctx context.Context, view ViewState) error
}

type nopKeeper struct{}

func (nopKeeper) Save(context.Context) (ViewState, error)   { return ViewState{}, nil }
func (nopKeeper) Restore(context.Context, ViewState) error { return nil }

// Invoker receives the chosen command once the session is closed.
type Invoker interface {
	Invoke(ctx context.Context, inv commands.Invocation) error
}

// Options configure a session.
type Options struct {
	Keeper ViewKeeper
	Docs   help.Describer
	Keys   *keymap.Fixed
}

// Session is one open popup: its argument state, its dispatch table and the
// view to restore once it ends.
type Session struct {
	ID string

	def    *popup.Definition
	args   state.ArgumentStore
	table  *keymap.Table
	keys   keymap.Fixed
	keeper ViewKeeper
	docs   help.Describer

	saved       ViewState
	selected    render.ItemID
	hasSelected bool
	pending     string
	helpPending bool
	lifecycle   Lifecycle
	invocation  *commands.Invocation
}

// New prepares a session for def. It starts Idle; call Open to activate it.
func New(def *popup.Definition, opts Options) *Session {
	keeper := opts.Keeper
	if keeper == nil {
		keeper = nopKeeper{}
	}
	keys := keymap.DefaultFixed()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	return &Session{
		ID:     uuid.NewString(),
		def:    def,
		args:   state.NewArgumentStore(),
		keys:   keys,
		keeper: keeper,
		docs:   opts.Docs,
	}
}

// Open saves the current view and activates the session.
func (s *Session) Open(ctx context.Context) error {
	if s.lifecycle != Idle {
		return fmt.Errorf("open %s: session is %s", s.def.Name, s.lifecycle)
	}
	view, err := s.keeper.Save(ctx)
	if err != nil {
		return fmt.Errorf("save view: %w", err)
	}
	s.saved = view
	s.table = keymap.BuildWith(s.def, s.keys)
	s.lifecycle = Active
	events.Session.Open(s.ID, s.def.Name)
	return nil
}

// Popup returns the definition the session was opened for.
func (s *Session) Popup() *popup.Definition { return s.def }

// Arguments exposes the session's argument state.
func (s *Session) Arguments() state.ArgumentStore { return s.args }

// State reports the lifecycle state.
func (s *Session) State() Lifecycle { return s.lifecycle }

// Pending returns the category prefix typed so far, if any.
func (s *Session) Pending() string { return s.pending }

// HelpPending reports whether the next key is a help target.
func (s *Session) HelpPending() bool { return s.helpPending }

// Invocation returns the command chosen by the user, if any.
func (s *Session) Invocation() (commands.Invocation, bool) {
	if s.invocation == nil {
		return commands.Invocation{}, false
	}
	return *s.invocation, true
}

// Table returns the dispatch table, rebuilding it when the definition has
// changed since it was built.
func (s *Session) Table() *keymap.Table {
	if !s.table.Current(s.def) {
		s.table = keymap.BuildWith(s.def, s.keys)
	}
	return s.table
}

// Frame lays the popup out for width and settles the selection on the new
// layout. With nothing selected yet, the default action is highlighted.
func (s *Session) Frame(width int) render.Frame {
	frame := render.Render(s.def, s.args, render.Options{Width: width})
	previous, hadPrevious := s.selected, s.hasSelected
	if !hadPrevious && s.def.DefaultAction != 0 {
		previous, hadPrevious = render.ItemID{Category: popup.Actions, Trigger: s.def.DefaultAction}, true
	}
	id, ok := render.Select(frame, previous, hadPrevious)
	if ok && (!s.hasSelected || id != s.selected) {
		events.UI.Cursor(s.def.Name, id.String())
	}
	s.selected, s.hasSelected = id, ok
	return frame
}

// Selected returns the highlighted item.
func (s *Session) Selected() (render.ItemID, bool) {
	return s.selected, s.hasSelected
}

// Close restores the saved view and ends the session. Closing twice is a
// no-op.
func (s *Session) Close(ctx context.Context) error {
	if s.lifecycle == Closed {
		return nil
	}
	reason := events.SessionReasonQuit
	if s.lifecycle == Dispatching {
		reason = events.SessionReasonDispatch
	}
	var err error
	if s.lifecycle != Idle {
		if err = s.keeper.Restore(ctx, s.saved); err != nil {
			events.Session.RestoreError(s.ID, err)
			err = fmt.Errorf("restore view: %w", err)
		}
	}
	s.lifecycle = Closed
	s.pending = ""
	s.helpPending = false
	events.Session.Close(s.ID, s.def.Name, reason)
	return err
}

// Finish closes the session and only then hands any chosen command to
// invoker. A restore failure does not stop the command from running. The
// invocation is cleared once the command returns.
func (s *Session) Finish(ctx context.Context, invoker Invoker) error {
	closeErr := s.Close(ctx)
	inv, ok := s.Invocation()
	if !ok || invoker == nil {
		return closeErr
	}
	err := invoker.Invoke(ctx, inv)
	s.invocation = nil
	if err != nil {
		return errors.Join(closeErr, err)
	}
	return closeErr
}
