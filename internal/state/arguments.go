package state

import (
	"strings"

	"github.com/atomicstack/argpopup/internal/logging/events"
)

// Kind distinguishes switch values from option values.
type Kind int

const (
	KindSwitch Kind = iota + 1
	KindOption
)

// Value is the recorded state of one argument.
type Value struct {
	Argument string
	Kind     Kind
	// On is the switch state.
	On bool
	// Text is the option value. An empty Text on a present option means the
	// user supplied blank input.
	Text string
}

// Enabled reports whether the value contributes to an invocation.
func (v Value) Enabled() bool {
	switch v.Kind {
	case KindSwitch:
		return v.On
	case KindOption:
		return v.Text != ""
	default:
		return false
	}
}

// Token is the command-line form of v, or "" when v contributes nothing.
func (v Value) Token() string {
	if !v.Enabled() {
		return ""
	}
	if v.Kind == KindOption {
		return v.Argument + v.Text
	}
	return v.Argument
}

// ArgumentStore is the per-session argument state.
type ArgumentStore interface {
	Toggle(argument string) bool
	SetOption(argument, raw string, ok bool) (Value, bool)
	Lookup(argument string) (Value, bool)
	Enabled(argument string) bool
	Entries() []Value
	Tokens() []string
	Len() int
}

type argumentStore struct {
	order  []string
	values map[string]Value
}

// NewArgumentStore returns an empty store that remembers insertion order.
func NewArgumentStore() ArgumentStore {
	return &argumentStore{values: make(map[string]Value)}
}

// Toggle flips a switch and returns its new state. An absent switch counts as
// off, so the first toggle records true.
func (s *argumentStore) Toggle(argument string) bool {
	v, ok := s.values[argument]
	if !ok {
		v = Value{Argument: argument, Kind: KindSwitch}
		s.order = append(s.order, argument)
	}
	v.Kind = KindSwitch
	v.On = !v.On
	s.values[argument] = v
	events.Argument.Toggle(argument, v.On)
	return v.On
}

// SetOption records the outcome of reading an option value. A cancelled read
// removes the option; blank input is kept as present-but-empty. The returned
// bool reports whether the option is present afterwards.
func (s *argumentStore) SetOption(argument, raw string, ok bool) (Value, bool) {
	text, present := ClassifyInput(raw, ok)
	if !present {
		s.remove(argument)
		events.Argument.Clear(argument)
		return Value{}, false
	}
	if _, exists := s.values[argument]; !exists {
		s.order = append(s.order, argument)
	}
	v := Value{Argument: argument, Kind: KindOption, Text: text}
	s.values[argument] = v
	events.Argument.Set(argument, text)
	return v, true
}

func (s *argumentStore) remove(argument string) {
	if _, ok := s.values[argument]; !ok {
		return
	}
	delete(s.values, argument)
	for i, name := range s.order {
		if name == argument {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *argumentStore) Lookup(argument string) (Value, bool) {
	v, ok := s.values[argument]
	return v, ok
}

func (s *argumentStore) Enabled(argument string) bool {
	v, ok := s.values[argument]
	return ok && v.Enabled()
}

// Entries returns the recorded values in insertion order.
func (s *argumentStore) Entries() []Value {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]Value, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.values[name])
	}
	return out
}

// Tokens flattens the store into command-line tokens in insertion order.
func (s *argumentStore) Tokens() []string {
	tokens := make([]string, 0, len(s.order))
	for _, name := range s.order {
		if token := s.values[name].Token(); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func (s *argumentStore) Len() int {
	return len(s.order)
}

// ClassifyInput maps raw prompt input to an option value: cancelled input is
// absent, blank input is present and empty, anything else is kept verbatim.
func ClassifyInput(raw string, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	if strings.TrimSpace(raw) == "" {
		return "", true
	}
	return raw, true
}
