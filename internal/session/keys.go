package session

import (
	"fmt"

	"github.com/atomicstack/argpopup/internal/commands"
	"github.com/atomicstack/argpopup/internal/help"
	"github.com/atomicstack/argpopup/internal/keymap"
	"github.com/atomicstack/argpopup/internal/logging/events"
	"github.com/atomicstack/argpopup/internal/popup"
	"github.com/atomicstack/argpopup/internal/render"
)

// Outcome is what a key did.
type Outcome int

const (
	// OutcomeIgnored covers unbound keys and cancelled prefixes.
	OutcomeIgnored Outcome = iota
	OutcomePrefix
	OutcomeToggled
	OutcomeSet
	// OutcomePrompt asks the host to read a value for Effect.Entry.
	OutcomePrompt
	OutcomeMoved
	OutcomeHelpPending
	OutcomeHelp
	OutcomeQuit
	OutcomeInvoke
)

// Result reports the effect of one key.
type Result struct {
	Outcome Outcome
	Effect  keymap.Effect
	Help    help.Result
	Err     error
}

// Ends reports whether the session should be torn down.
func (r Result) Ends() bool {
	return r.Outcome == OutcomeQuit || r.Outcome == OutcomeInvoke
}

// HandleKey feeds one key, named the way Bubble Tea names keys, into the
// session.
func (s *Session) HandleKey(key string) Result {
	if s.lifecycle != Active {
		return Result{Err: fmt.Errorf("%s: %w", key, ErrNotActive)}
	}
	table := s.Table()

	if s.helpPending {
		s.helpPending = false
		if fixed, ok := table.Fixed(key); ok && fixed.Kind == keymap.KindQuit && len([]rune(key)) > 1 {
			events.Help.Cancel(s.def.Name, key)
			if key == "ctrl+c" {
				return s.quit(fixed)
			}
			return Result{}
		}
		res, err := help.Lookup(s.def, table, key, s.docs)
		if err != nil {
			return Result{Outcome: OutcomeHelp, Err: err}
		}
		return Result{Outcome: OutcomeHelp, Help: res}
	}

	if s.pending != "" {
		seq := s.pending + key
		s.pending = ""
		if fixed, ok := table.Fixed(key); ok && fixed.Kind == keymap.KindQuit && len([]rune(key)) > 1 {
			if key == "ctrl+c" {
				return s.quit(fixed)
			}
			return Result{}
		}
		e, ok := table.Lookup(seq)
		events.Session.Key(s.ID, seq, ok)
		if !ok || e.Fixed() {
			return Result{Err: fmt.Errorf("%s: %w", seq, ErrUnboundKey)}
		}
		return s.apply(e)
	}

	if fixed, ok := table.Fixed(key); ok {
		events.Session.Key(s.ID, key, true)
		return s.applyFixed(fixed)
	}
	if table.IsPrefix(key) {
		s.pending = key
		return Result{Outcome: OutcomePrefix}
	}
	e, ok := table.Lookup(key)
	events.Session.Key(s.ID, key, ok)
	if !ok {
		return Result{Err: fmt.Errorf("%s: %w", key, ErrUnboundKey)}
	}
	return s.apply(e)
}

func (s *Session) applyFixed(e keymap.Effect) Result {
	switch e.Kind {
	case keymap.KindHelp:
		s.helpPending = true
		return Result{Outcome: OutcomeHelpPending, Effect: e}
	case keymap.KindQuit:
		return s.quit(e)
	case keymap.KindNext, keymap.KindPrev:
		return s.move(e)
	case keymap.KindSelect:
		return s.activate(e)
	}
	return Result{Effect: e}
}

func (s *Session) quit(e keymap.Effect) Result {
	return Result{Outcome: OutcomeQuit, Effect: e}
}

func (s *Session) move(e keymap.Effect) Result {
	delta := 1
	if e.Kind == keymap.KindPrev {
		delta = -1
	}
	frame := render.Render(s.def, s.args, render.Options{})
	id, ok := render.Step(frame, s.selected, delta)
	if !ok {
		return Result{Effect: e}
	}
	s.selected, s.hasSelected = id, true
	events.UI.Cursor(s.def.Name, id.String())
	return Result{Outcome: OutcomeMoved, Effect: e}
}

// activate runs the highlighted item, or the default action when nothing is
// highlighted.
func (s *Session) activate(e keymap.Effect) Result {
	table := s.Table()
	if s.hasSelected {
		seq := s.selected.String()
		if bound, ok := table.Lookup(seq); ok && !bound.Fixed() {
			return s.apply(bound)
		}
	}
	if s.def.DefaultAction != 0 {
		if bound, ok := table.Lookup(popup.MustDescribe(popup.Actions).Glyph(s.def.DefaultAction)); ok && bound.Kind == keymap.KindInvoke {
			return s.apply(bound)
		}
	}
	return Result{Effect: e}
}

func (s *Session) apply(e keymap.Effect) Result {
	s.selected = render.ItemID{Category: e.Category, Trigger: e.Entry.Trigger}
	s.hasSelected = true
	switch e.Kind {
	case keymap.KindToggle:
		s.args.Toggle(e.Entry.Argument)
		return Result{Outcome: OutcomeToggled, Effect: e}
	case keymap.KindPrompt:
		if e.Entry.Reader != nil {
			raw, ok := e.Entry.Reader(popup.PromptFor(e.Entry.Argument))
			if !ok {
				events.Argument.CancelPrompt(e.Entry.Argument, events.PromptReasonReader)
			}
			s.args.SetOption(e.Entry.Argument, raw, ok)
			return Result{Outcome: OutcomeSet, Effect: e}
		}
		events.Argument.Prompt(e.Entry.Argument)
		return Result{Outcome: OutcomePrompt, Effect: e}
	case keymap.KindInvoke:
		return s.dispatch(e)
	}
	return Result{Effect: e}
}

func (s *Session) dispatch(e keymap.Effect) Result {
	inv := commands.Invocation{
		Popup:   s.def.Name,
		Command: e.Entry.Command,
		Tokens:  s.args.Tokens(),
	}
	s.invocation = &inv
	s.lifecycle = Dispatching
	events.Session.Dispatch(s.ID, inv.Command, inv.Tokens)
	return Result{Outcome: OutcomeInvoke, Effect: e}
}

// SetOption records the answer to an OutcomePrompt. ok is false when the
// user cancelled.
func (s *Session) SetOption(argument, raw string, ok bool) error {
	if s.lifecycle != Active {
		return fmt.Errorf("set %s: %w", argument, ErrNotActive)
	}
	if !ok {
		events.Argument.CancelPrompt(argument, events.PromptReasonEscape)
	}
	s.args.SetOption(argument, raw, ok)
	return nil
}
